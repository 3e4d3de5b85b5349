// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email is
	// already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrOrganizationSlugExists is returned when the slug derived from an
	// organization name is taken.
	ErrOrganizationSlugExists = errors.New("organization slug already exists")

	// ErrSlugAlreadyExists is returned when a profile slug is taken.
	ErrSlugAlreadyExists = errors.New("profile slug already exists")

	// ErrCardAlreadyRegistered is returned when a card with the same chip id
	// or serial number already exists.
	ErrCardAlreadyRegistered = errors.New("card already registered")

	ErrNoUserWasFound         = errors.New("no user was found")
	ErrOrganizationNotFound   = errors.New("organization was not found")
	ErrProfileNotFound        = errors.New("profile was not found")
	ErrTemplateNotFound       = errors.New("template was not found")
	ErrCardNotFound           = errors.New("card was not found")
	ErrCardNotAssigned        = errors.New("card is not assigned to an active profile")
	ErrCardWriteProtected     = errors.New("card is write protected")
	ErrUnknownResourceKind    = errors.New("unknown resource kind")
	ErrInvalidProfileTemplate = errors.New("template does not exist or is inactive")

	// ErrUsageLimitReached is returned when a guarded usage increment
	// matched no row: the organization is at its plan limit.
	ErrUsageLimitReached = errors.New("usage limit reached")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingColumn is returned when a JSONB column value cannot be
	// encoded or decoded.
	ErrEncodingColumn = errors.New("failed to encode jsonb column")
)
