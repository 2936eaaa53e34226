package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kbaid4/testwecicada/internal/models"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Create(ctx context.Context, e *models.Event) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "event")
}

func (r *EventRepo) List(ctx context.Context, createdBy uint) ([]models.Event, error) {
	events := []models.Event{}
	q := r.db.WithContext(ctx).Model(&models.Event{})
	if createdBy != 0 {
		q = q.Where("created_by = ?", createdBy)
	}
	if err := q.Order("id asc").Find(&events).Error; err != nil {
		return nil, translate(err, "event")
	}
	return events, nil
}

func (r *EventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var e models.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, "event")
	}
	return &e, nil
}

func (r *EventRepo) Update(ctx context.Context, e *models.Event) error {
	return translate(r.db.WithContext(ctx).Save(e).Error, "event")
}

func (r *EventRepo) DeleteCascade(ctx context.Context, id uint) (*models.Event, error) {
	var ev models.Event

	// Delete dependent tasks and the event in a transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ev, id).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, ev.ID).Error
	})
	if err != nil {
		return nil, translate(err, "event")
	}
	return &ev, nil
}
