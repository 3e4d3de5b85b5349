// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the process: RunServer blocks until a stop
// signal arrives and everything has been shut down.
type Server interface {
	RunServer()
	Shutdown(ctx context.Context) error
}

// BackgroundRunner is a set of workers stopped by cancelling ctx. Run must
// return once all of them finished.
type BackgroundRunner interface {
	Run(ctx context.Context)
}
