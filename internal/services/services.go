// Package services holds the business rules of the planner: identities,
// events with their documents, tasks, suppliers and direct messages.
// Services are stateless; every call carries the request context down to
// the repositories and the blob store.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbaid4/testwecicada/internal/auth"
	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/repository"
	"github.com/kbaid4/testwecicada/internal/storage"
)

// Services bundles every service built over one repository manager.
type Services struct {
	Identity  *IdentityService
	Events    *EventService
	Tasks     *TaskService
	Suppliers *SupplierService
	Messages  *MessageService
}

func New(m repository.Manager, blobs storage.BlobStore, guard *auth.Guard, log logging.Logger) *Services {
	return &Services{
		Identity:  NewIdentityService(m, guard, log),
		Events:    NewEventService(m, blobs, log),
		Tasks:     NewTaskService(m),
		Suppliers: NewSupplierService(m),
		Messages:  NewMessageService(m),
	}
}

const dateOnly = "2006-01-02"

// parseDate accepts RFC3339 or YYYY-MM-DD. A blank value yields nil.
func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: invalid %s format (use RFC3339 or YYYY-MM-DD)", common.ErrBadRequest, field)
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrBadRequest, field)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrBadRequest, field)
	}
	return nil
}
