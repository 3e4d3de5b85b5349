// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line reporting client. It logs in
// through the REST API and prints the organization's usage report and
// analytics dashboard as JSON.
package client
