// Package gormrepo implements the repositories on top of gorm, for the
// postgres and mysql dialects.
package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/repository"
)

type Manager struct {
	db        *gorm.DB
	users     *UserRepo
	events    *EventRepo
	tasks     *TaskRepo
	suppliers *SupplierRepo
	messages  *MessageRepo
}

var _ repository.Manager = (*Manager)(nil)

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:        db,
		users:     NewUserRepo(db),
		events:    NewEventRepo(db),
		tasks:     NewTaskRepo(db),
		suppliers: NewSupplierRepo(db),
		messages:  NewMessageRepo(db),
	}
}

func (m *Manager) Users() repository.UserRepository         { return m.users }
func (m *Manager) Events() repository.EventRepository       { return m.events }
func (m *Manager) Tasks() repository.TaskRepository         { return m.tasks }
func (m *Manager) Suppliers() repository.SupplierRepository { return m.suppliers }
func (m *Manager) Messages() repository.MessageRepository   { return m.messages }

func (m *Manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm errors onto the shared sentinels. The gorm.DB must be
// opened with TranslateError for dialect unique violations to surface as
// gorm.ErrDuplicatedKey.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s not found", common.ErrNotFound, entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", common.ErrConflict, entity)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}
