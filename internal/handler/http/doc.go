// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of tapcard.
//
// It wires chi routes to the service layer and carries the transport
// concerns: bearer authentication, per-client rate limiting of the public
// endpoints, request tracing, access logging and CORS. Errors returned by
// the services are mapped to status codes and JSON bodies in one place,
// see errors_mapper.go.
package http
