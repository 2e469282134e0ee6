// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"aidmatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// VolunteerRepoFactory provides access to the volunteer repository within a transaction.
	VolunteerRepoFactory interface {
		VolunteerRepository() ports.VolunteerRepository
	}

	// RequestUoW manages transactions for request-only operations.
	// Used when commands only modify request aggregates.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// VolunteerUoW manages transactions for volunteer-only operations.
	// Used when commands only modify volunteer aggregates.
	VolunteerUoW interface {
		TxManager
		VolunteerRepoFactory
	}

	// VolunteerUoWFactory creates new volunteer unit of work instances.
	VolunteerUoWFactory interface {
		Create() VolunteerUoW
	}

	// UoW manages transactions across both request and volunteer aggregates.
	// Used for commands that coordinate the claim/completion state of a
	// request with the volunteer's active task counter.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requestRepo := uow.RequestRepository()
	//   volunteerRepo := uow.VolunteerRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		VolunteerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
