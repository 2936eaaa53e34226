// Package repository declares the persistence contracts used by the
// services. Implementations return errors wrapping common.ErrNotFound for
// missing rows and common.ErrConflict for unique violations.
package repository

import (
	"context"

	"github.com/kbaid4/testwecicada/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
}

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	// List returns every event, or only those created by createdBy when it is non-zero.
	List(ctx context.Context, createdBy uint) ([]models.Event, error)
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	// DeleteCascade removes the event and every task referencing it in one
	// unit of work and returns the removed event.
	DeleteCascade(ctx context.Context, id uint) (*models.Event, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	// List returns every task, or only those of eventID when it is non-zero.
	List(ctx context.Context, eventID uint) ([]models.Task, error)
	FindByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id uint) error
}

type SupplierRepository interface {
	Create(ctx context.Context, s *models.Supplier) error
	List(ctx context.Context) ([]models.Supplier, error)
	FindByID(ctx context.Context, id uint) (*models.Supplier, error)
	Update(ctx context.Context, s *models.Supplier) error
	Delete(ctx context.Context, id uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	// Between returns messages exchanged by a and b in either direction, oldest first.
	Between(ctx context.Context, a, b uint) ([]models.Message, error)
	// Involving returns messages sent or received by userID, newest first.
	Involving(ctx context.Context, userID uint) ([]models.Message, error)
}

// Manager hands out the repositories backed by one store.
type Manager interface {
	Users() UserRepository
	Events() EventRepository
	Tasks() TaskRepository
	Suppliers() SupplierRepository
	Messages() MessageRepository
	Ping(ctx context.Context) error
	Close() error
}
