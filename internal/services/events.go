package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
	"github.com/kbaid4/testwecicada/internal/storage"
)

// EventInput carries event fields for create and partial update. Nil fields
// are left unchanged on update. A blank date clears it.
type EventInput struct {
	Name      *string  `json:"name"`
	Budget    *float64 `json:"budget"`
	Type      *string  `json:"type"`
	SubType   *string  `json:"subType"`
	AddAdmin  *string  `json:"addAdmin"`
	Location  *string  `json:"location"`
	StartDate *string  `json:"startDate"`
	EndDate   *string  `json:"endDate"`
}

type Progress struct {
	EventID    uint    `json:"eventId"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Completion float64 `json:"completion"`
}

type EventService struct {
	events repository.EventRepository
	tasks  repository.TaskRepository
	blobs  storage.BlobStore
	log    logging.Logger
	now    func() time.Time
}

func NewEventService(m repository.Manager, blobs storage.BlobStore, log logging.Logger) *EventService {
	return &EventService{
		events: m.Events(),
		tasks:  m.Tasks(),
		blobs:  blobs,
		log:    log.With("component", "events"),
		now:    time.Now,
	}
}

// Create stores a new event owned by ownerID, whatever the input says.
func (s *EventService) Create(ctx context.Context, ownerID uint, in EventInput) (*models.Event, error) {
	if in.Name == nil {
		return nil, fmt.Errorf("%w: name is required", common.ErrBadRequest)
	}
	ev := &models.Event{CreatedBy: ownerID, Documents: []models.Document{}}
	if err := applyEventInput(ev, in); err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "event created", "event_id", ev.ID, "owner_id", ownerID)
	return ev, nil
}

func applyEventInput(ev *models.Event, in EventInput) error {
	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return err
		}
		ev.Name = strings.TrimSpace(*in.Name)
	}
	if in.Budget != nil {
		if err := nonNegative("budget", *in.Budget); err != nil {
			return err
		}
		ev.Budget = *in.Budget
	}
	setString(&ev.Type, in.Type)
	setString(&ev.SubType, in.SubType)
	setString(&ev.AddAdmin, in.AddAdmin)
	setString(&ev.Location, in.Location)
	if in.StartDate != nil {
		d, err := parseDate("startDate", *in.StartDate)
		if err != nil {
			return err
		}
		ev.StartDate = d
	}
	if in.EndDate != nil {
		d, err := parseDate("endDate", *in.EndDate)
		if err != nil {
			return err
		}
		ev.EndDate = d
	}
	if ev.StartDate != nil && ev.EndDate != nil && ev.EndDate.Before(*ev.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", common.ErrBadRequest)
	}
	return nil
}

// List returns every event, or only ownerID's when mineOnly is set.
func (s *EventService) List(ctx context.Context, ownerID uint, mineOnly bool) ([]models.Event, error) {
	if mineOnly {
		return s.events.List(ctx, ownerID)
	}
	return s.events.List(ctx, 0)
}

func (s *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	return s.events.FindByID(ctx, id)
}

// Update merges the supplied fields. Owner and documents are not alterable here.
func (s *EventService) Update(ctx context.Context, id uint, in EventInput) (*models.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventInput(ev, in); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Delete removes the event and its tasks atomically, then releases the
// document blobs. Blobs that fail to delete are left for the sweeper.
func (s *EventService) Delete(ctx context.Context, id uint) error {
	ev, err := s.events.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	released := 0
	for _, d := range ev.Documents {
		if err := s.blobs.Delete(context.WithoutCancel(ctx), d.Filename); err != nil {
			s.log.Warn(ctx, "document release failed", "event_id", id, "handle", d.Filename, "error", err)
			continue
		}
		released++
	}
	s.log.Info(ctx, "event deleted", "event_id", id, "documents_released", released)
	return nil
}

// AttachDocument stores r and appends its metadata to the event. When the
// metadata cannot be saved the stored blob is removed again and the error
// returned.
func (s *EventService) AttachDocument(ctx context.Context, eventID uint, r io.Reader, originalName string) (*models.Document, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no file uploaded", common.ErrBadRequest)
	}
	ev, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	handle := storage.NewHandle(originalName)
	path, err := s.blobs.Put(ctx, handle, r)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:           uuid.NewString(),
		Filename:     handle,
		Path:         path,
		OriginalName: displayName(originalName),
		UploadedAt:   s.now().UTC(),
	}
	ev.Documents = append(ev.Documents, doc)
	if err := s.events.Update(ctx, ev); err != nil {
		if derr := s.blobs.Delete(context.WithoutCancel(ctx), handle); derr != nil {
			s.log.Warn(ctx, "orphaned upload", "event_id", eventID, "handle", handle, "error", derr)
		}
		return nil, err
	}
	s.log.Info(ctx, "document attached", "event_id", eventID, "handle", handle)
	return &doc, nil
}

// displayName keeps only the last path element of a client-supplied name.
func displayName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// ListDocuments returns the event's documents in upload order.
func (s *EventService) ListDocuments(ctx context.Context, eventID uint) ([]models.Document, error) {
	ev, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Documents == nil {
		return []models.Document{}, nil
	}
	return ev.Documents, nil
}

// OpenDocument validates filename before touching storage.
func (s *EventService) OpenDocument(ctx context.Context, filename string) (io.ReadCloser, error) {
	if err := storage.ValidateHandle(filename); err != nil {
		return nil, err
	}
	return s.blobs.Open(ctx, filename)
}

// Progress is recomputed from the event's current tasks on every call.
func (s *EventService) Progress(ctx context.Context, eventID uint) (*Progress, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, eventID)
	if err != nil {
		return nil, err
	}
	p := &Progress{EventID: eventID, Total: len(tasks), Completion: models.CompletionPercentage(tasks)}
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			p.Completed++
		}
	}
	return p, nil
}

// ReferencedHandles lists every storage handle held by some event. It feeds
// the orphan sweeper.
func (s *EventService) ReferencedHandles(ctx context.Context) (map[string]struct{}, error) {
	events, err := s.events.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]struct{})
	for _, ev := range events {
		for _, d := range ev.Documents {
			refs[d.Filename] = struct{}{}
		}
	}
	return refs, nil
}
