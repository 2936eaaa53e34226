// Package memory keeps every entity in process memory. It backs
// DB_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
)

type store struct {
	mu  sync.RWMutex
	now func() time.Time

	users     map[uint]models.User
	events    map[uint]models.Event
	tasks     map[uint]models.Task
	suppliers map[uint]models.Supplier
	messages  map[uint]models.Message

	nextUser, nextEvent, nextTask, nextSupplier, nextMessage uint
}

type Manager struct {
	s *store
}

var _ repository.Manager = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{s: &store{
		now:       time.Now,
		users:     make(map[uint]models.User),
		events:    make(map[uint]models.Event),
		tasks:     make(map[uint]models.Task),
		suppliers: make(map[uint]models.Supplier),
		messages:  make(map[uint]models.Message),
	}}
}

// WithClock replaces the timestamp source. Tests use it to produce ties.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.s.mu.Lock()
	m.s.now = now
	m.s.mu.Unlock()
	return m
}

func (m *Manager) Users() repository.UserRepository         { return &UserRepo{s: m.s} }
func (m *Manager) Events() repository.EventRepository       { return &EventRepo{s: m.s} }
func (m *Manager) Tasks() repository.TaskRepository         { return &TaskRepo{s: m.s} }
func (m *Manager) Suppliers() repository.SupplierRepository { return &SupplierRepo{s: m.s} }
func (m *Manager) Messages() repository.MessageRepository   { return &MessageRepo{s: m.s} }

func (m *Manager) Ping(ctx context.Context) error { return ctx.Err() }
func (m *Manager) Close() error                   { return nil }

func notFound(entity string) error {
	return fmt.Errorf("%w: %s not found", common.ErrNotFound, entity)
}

func sortedKeys[V any](m map[uint]V) []uint {
	return slices.Sorted(maps.Keys(m))
}
