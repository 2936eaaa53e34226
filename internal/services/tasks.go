package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
)

// TaskInput carries task fields for create and partial update. A supplierId
// of 0 detaches the supplier.
type TaskInput struct {
	Name       *string  `json:"name"`
	EventID    *uint    `json:"eventId"`
	SupplierID *uint    `json:"supplierId"`
	Status     *string  `json:"status"`
	Date       *string  `json:"date"`
	Budget     *float64 `json:"budget"`
	Completed  *bool    `json:"completed"`
	Progress   *float64 `json:"progress"`
}

// TaskDetail is a task with its supplier joined. SupplierUnknown is set when
// the task points at a supplier that no longer exists.
type TaskDetail struct {
	models.Task
	Supplier        *models.Supplier `json:"supplier,omitempty"`
	SupplierUnknown bool             `json:"supplierUnknown,omitempty"`
}

type TaskService struct {
	tasks     repository.TaskRepository
	events    repository.EventRepository
	suppliers repository.SupplierRepository
}

func NewTaskService(m repository.Manager) *TaskService {
	return &TaskService{tasks: m.Tasks(), events: m.Events(), suppliers: m.Suppliers()}
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	if in.Name == nil {
		return nil, fmt.Errorf("%w: name is required", common.ErrBadRequest)
	}
	if in.EventID == nil || *in.EventID == 0 {
		return nil, fmt.Errorf("%w: eventId is required", common.ErrBadRequest)
	}

	t := &models.Task{}
	t.SetStatus(models.StatusPending)
	if err := s.apply(ctx, t, in); err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// apply merges in onto t. An explicit status wins over the completed flag.
func (s *TaskService) apply(ctx context.Context, t *models.Task, in TaskInput) error {
	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return err
		}
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.EventID != nil && *in.EventID != t.EventID {
		if _, err := s.events.FindByID(ctx, *in.EventID); err != nil {
			return err
		}
		t.EventID = *in.EventID
	}
	if in.SupplierID != nil {
		if *in.SupplierID == 0 {
			t.SupplierID = nil
		} else {
			if _, err := s.suppliers.FindByID(ctx, *in.SupplierID); err != nil {
				return err
			}
			id := *in.SupplierID
			t.SupplierID = &id
		}
	}
	if in.Date != nil {
		d, err := parseDate("date", *in.Date)
		if err != nil {
			return err
		}
		t.Date = d
	}
	if in.Budget != nil {
		if err := nonNegative("budget", *in.Budget); err != nil {
			return err
		}
		t.Budget = *in.Budget
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return fmt.Errorf("%w: progress must be between 0 and 100", common.ErrBadRequest)
		}
		t.Progress = *in.Progress
	}

	switch {
	case in.Status != nil:
		st, err := models.ParseTaskStatus(*in.Status)
		if err != nil {
			return err
		}
		t.SetStatus(st)
	case in.Completed != nil:
		t.SetCompleted(*in.Completed)
	}
	return nil
}

// List returns every task, or only eventID's when it is non-zero.
func (s *TaskService) List(ctx context.Context, eventID uint) ([]models.Task, error) {
	return s.tasks.List(ctx, eventID)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*TaskDetail, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &TaskDetail{Task: *t}
	if t.SupplierID != nil {
		sp, err := s.suppliers.FindByID(ctx, *t.SupplierID)
		switch {
		case err == nil:
			d.Supplier = sp
		case errors.Is(err, common.ErrNotFound):
			d.SupplierUnknown = true
		default:
			return nil, err
		}
	}
	return d, nil
}

func (s *TaskService) Update(ctx context.Context, id uint, in TaskInput) (*models.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, t, in); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) SetStatus(ctx context.Context, id uint, status string) (*models.Task, error) {
	st, err := models.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.SetStatus(st)
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	return s.tasks.Delete(ctx, id)
}
