// Package account holds the contractor balance ledger. Every contractor
// owns exactly one account; accepting an order reserves funds from it.
package account

import (
	"errors"
	"fmt"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through NewAccount or RestoreAccount.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

	// ErrInsufficientFunds is returned when a reservation would drive the
	// balance below zero. The balance is left untouched in that case.
	ErrInsufficientFunds = errors.New("not enough money on balance")
)

// Account is a contractor's balance ledger.
//
// Invariants:
//   - owned by exactly one contractor
//   - balance is never negative
//   - reservations are all-or-nothing: a failed reservation changes nothing
//
// Callers that reserve funds must hold the account's row lock for the
// duration of the surrounding transaction so concurrent spends serialize.
type Account struct {
	id      kernel.UUID
	ownerID kernel.UUID
	balance int

	isConstructed bool
}

// NewAccount creates an account for a contractor with an opening balance.
func NewAccount(id, ownerID kernel.UUID, balance int) (*Account, error) {
	acc := &Account{isConstructed: true}

	if err := errors.Join(
		acc.setID(id),
		acc.setOwnerID(ownerID),
		acc.setBalance(balance),
	); err != nil {
		return nil, err
	}

	return acc, nil
}

// RestoreAccount reconstructs an account from persistent storage.
func RestoreAccount(id, ownerID kernel.UUID, balance int) (*Account, error) {
	return NewAccount(id, ownerID, balance)
}

// Validate ensures the Account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID { return a.id }

// OwnerID returns the owning contractor's identifier.
func (a *Account) OwnerID() kernel.UUID { return a.ownerID }

// Balance returns the current balance in whole currency units.
func (a *Account) Balance() int { return a.balance }

// Reserve atomically deducts amount from the balance.
// Fails with ErrInsufficientFunds when the balance does not cover the
// amount; no partial deduction is ever applied.
func (a *Account) Reserve(amount int) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}
	if a.balance < amount {
		return ErrInsufficientFunds
	}

	a.balance -= amount
	return nil
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	a.ownerID = ownerID
	return nil
}

func (a *Account) setBalance(balance int) error {
	if balance < 0 {
		return errs.NewValueIsInvalidErrorWithCause("balance", fmt.Errorf("%d is negative", balance))
	}
	a.balance = balance
	return nil
}
