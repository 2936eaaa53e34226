package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
)

// Values are copied on the way in and out so callers never share memory
// with the store.

func cloneEvent(e models.Event) models.Event {
	e.Documents = slices.Clone(e.Documents)
	if e.StartDate != nil {
		d := *e.StartDate
		e.StartDate = &d
	}
	if e.EndDate != nil {
		d := *e.EndDate
		e.EndDate = &d
	}
	return e
}

func cloneTask(t models.Task) models.Task {
	if t.SupplierID != nil {
		id := *t.SupplierID
		t.SupplierID = &id
	}
	if t.Date != nil {
		d := *t.Date
		t.Date = &d
	}
	return t
}

func cloneSupplier(s models.Supplier) models.Supplier {
	s.Services = slices.Clone(s.Services)
	return s
}

type UserRepo struct{ s *store }

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: user already exists", common.ErrConflict)
		}
	}
	r.s.nextUser++
	now := r.s.now()
	u.ID, u.CreatedAt, u.UpdatedAt = r.s.nextUser, now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, notFound("user")
}

func (r *UserRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return notFound("user")
	}
	for id, existing := range r.s.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: user already exists", common.ErrConflict)
		}
	}
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = *u
	return nil
}

type EventRepo struct{ s *store }

func (r *EventRepo) Create(ctx context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEvent++
	now := r.s.now()
	e.ID, e.CreatedAt, e.UpdatedAt = r.s.nextEvent, now, now
	r.s.events[e.ID] = cloneEvent(*e)
	return nil
}

func (r *EventRepo) List(ctx context.Context, createdBy uint) ([]models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	events := []models.Event{}
	for _, id := range sortedKeys(r.s.events) {
		e := r.s.events[id]
		if createdBy != 0 && e.CreatedBy != createdBy {
			continue
		}
		events = append(events, cloneEvent(e))
	}
	return events, nil
}

func (r *EventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, notFound("event")
	}
	e = cloneEvent(e)
	return &e, nil
}

func (r *EventRepo) Update(ctx context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.ID]; !ok {
		return notFound("event")
	}
	e.UpdatedAt = r.s.now()
	r.s.events[e.ID] = cloneEvent(*e)
	return nil
}

func (r *EventRepo) DeleteCascade(ctx context.Context, id uint) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, notFound("event")
	}
	for tid, t := range r.s.tasks {
		if t.EventID == id {
			delete(r.s.tasks, tid)
		}
	}
	delete(r.s.events, id)
	return &e, nil
}

type TaskRepo struct{ s *store }

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[t.EventID]; !ok {
		return notFound("event")
	}
	r.s.nextTask++
	now := r.s.now()
	t.ID, t.CreatedAt, t.UpdatedAt = r.s.nextTask, now, now
	r.s.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (r *TaskRepo) List(ctx context.Context, eventID uint) ([]models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tasks := []models.Task{}
	for _, id := range sortedKeys(r.s.tasks) {
		t := r.s.tasks[id]
		if eventID != 0 && t.EventID != eventID {
			continue
		}
		tasks = append(tasks, cloneTask(t))
	}
	return tasks, nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, notFound("task")
	}
	t = cloneTask(t)
	return &t, nil
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[t.ID]; !ok {
		return notFound("task")
	}
	if _, ok := r.s.events[t.EventID]; !ok {
		return notFound("event")
	}
	t.UpdatedAt = r.s.now()
	r.s.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return notFound("task")
	}
	delete(r.s.tasks, id)
	return nil
}

type SupplierRepo struct{ s *store }

func (r *SupplierRepo) Create(ctx context.Context, sp *models.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextSupplier++
	now := r.s.now()
	sp.ID, sp.CreatedAt, sp.UpdatedAt = r.s.nextSupplier, now, now
	r.s.suppliers[sp.ID] = cloneSupplier(*sp)
	return nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]models.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	suppliers := []models.Supplier{}
	for _, id := range sortedKeys(r.s.suppliers) {
		suppliers = append(suppliers, cloneSupplier(r.s.suppliers[id]))
	}
	return suppliers, nil
}

func (r *SupplierRepo) FindByID(ctx context.Context, id uint) (*models.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, notFound("supplier")
	}
	sp = cloneSupplier(sp)
	return &sp, nil
}

func (r *SupplierRepo) Update(ctx context.Context, sp *models.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sp.ID]; !ok {
		return notFound("supplier")
	}
	sp.UpdatedAt = r.s.now()
	r.s.suppliers[sp.ID] = cloneSupplier(*sp)
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return notFound("supplier")
	}
	delete(r.s.suppliers, id)
	return nil
}

type MessageRepo struct{ s *store }

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextMessage++
	m.ID, m.CreatedAt = r.s.nextMessage, r.s.now()
	r.s.messages[m.ID] = *m
	return nil
}

func (r *MessageRepo) Between(ctx context.Context, a, b uint) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	msgs := []models.Message{}
	for _, m := range r.s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			msgs = append(msgs, m)
		}
	}
	models.SortThread(msgs)
	return msgs, nil
}

func (r *MessageRepo) Involving(ctx context.Context, userID uint) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	msgs := []models.Message{}
	for _, m := range r.s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			msgs = append(msgs, m)
		}
	}
	models.SortThread(msgs)
	slices.Reverse(msgs)
	return msgs, nil
}
