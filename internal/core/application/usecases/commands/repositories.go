// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"autoservice/internal/core/ports"
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

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// ChatRepoFactory provides access to the chat repository within a transaction.
	ChatRepoFactory interface {
		ChatRepository() ports.ChatRepository
	}

	// CatalogRepoFactory provides access to the catalog resolver within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderCatalogUoW manages transactions for operations that mutate an
	// order and resolve catalog references in the same transaction.
	OrderCatalogUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	// OrderCatalogUoWFactory creates new order+catalog unit of work instances.
	OrderCatalogUoWFactory interface {
		Create() OrderCatalogUoW
	}

	// AcceptUoW manages the acceptance transaction, which spans the order,
	// the contractor's account and the provisioned chat.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, _ := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   acct, _ := uow.AccountRepository().GetByOwnerForUpdate(ctx, masterID)
	//   // ... apply the transition
	//
	//   err = uow.Commit(ctx)
	AcceptUoW interface {
		TxManager
		OrderRepoFactory
		AccountRepoFactory
		ChatRepoFactory
	}

	// AcceptUoWFactory creates new acceptance unit of work instances.
	AcceptUoWFactory interface {
		Create() AcceptUoW
	}
)
