// Package repository contains the data access layer. Each entity has an
// interface and a GORM implementation; services depend on the interfaces so
// tests can substitute in-memory fakes.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Repository aggregates all entity repositories behind one constructor.
type Repository struct {
	User     UserRepository
	Mission  MissionRepository
	Proposal ProposalRepository
	Message  MessageRepository

	db *gorm.DB
}

// New wires the GORM implementations.
func New(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Mission:  NewMissionRepository(db),
		Proposal: NewProposalRepository(db),
		Message:  NewMessageRepository(db),
		db:       db,
	}
}

// Transaction runs fn inside a database transaction, handing it a Repository
// bound to the transactional connection. Used by proposal acceptance, where
// the proposal and the mission must change together. A Repository assembled
// from in-memory implementations has no db handle; fn then runs directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
