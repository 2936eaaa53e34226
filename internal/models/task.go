package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kbaid4/testwecicada/internal/common"
)

type TaskStatus string

const (
	StatusPending     TaskStatus = "Pending"
	StatusStopped     TaskStatus = "Stopped"
	StatusInProgress  TaskStatus = "In Progress"
	StatusNegotiation TaskStatus = "Negotiation"
	StatusCompleted   TaskStatus = "Completed"
)

var taskStatuses = []TaskStatus{
	StatusPending,
	StatusStopped,
	StatusInProgress,
	StatusNegotiation,
	StatusCompleted,
}

// ParseTaskStatus matches s case-insensitively against the recognized
// statuses and returns the canonical spelling.
func ParseTaskStatus(s string) (TaskStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range taskStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: status must be one of: Pending, Stopped, In Progress, Negotiation, Completed", common.ErrBadRequest)
}

type Task struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	EventID    uint       `gorm:"index;not null" json:"eventId"`
	SupplierID *uint      `gorm:"index" json:"supplierId,omitempty"`
	Status     TaskStatus `gorm:"size:32;not null" json:"status"`
	Date       *time.Time `json:"date,omitempty"`
	Budget     float64    `json:"budget"`
	Completed  bool       `gorm:"not null" json:"completed"`
	Progress   float64    `json:"progress"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// SetStatus keeps Completed in agreement with Status.
func (t *Task) SetStatus(s TaskStatus) {
	t.Status = s
	t.Completed = s == StatusCompleted
}

// SetCompleted maps the checkbox representation onto Status. Unchecking a
// completed task moves it back to In Progress; unchecking anything else is a no-op.
func (t *Task) SetCompleted(done bool) {
	switch {
	case done:
		t.SetStatus(StatusCompleted)
	case t.Status == StatusCompleted:
		t.SetStatus(StatusInProgress)
	default:
		t.Completed = false
	}
}

// CompletionPercentage is the share of tasks whose status is Completed,
// rounded to two decimals. An empty slice yields 0.
func CompletionPercentage(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			done++
		}
	}
	pct := float64(done) / float64(len(tasks)) * 100
	return math.Round(pct*100) / 100
}
