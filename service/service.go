// Package service supervises the long-lived parts of the binary
package service

import "context"

// Service defines the lifecycle of an infrastructure subsystem
// Services manage long-lived resources: audio device, terminal, input
//
// Lifecycle:
//  1. Construction
//  2. Init() - acquire resources, in dependency order
//  3. Run(ctx) - block until ctx is done or the service ends on its own
//  4. Stop() - release resources, in reverse order
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	Init() error

	// Run blocks until ctx is canceled or the service finishes
	// Any Run returning ends every other service
	Run(ctx context.Context) error

	// Stop releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
