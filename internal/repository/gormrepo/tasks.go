package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
)

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create relies on the tasks.event_id foreign key, so an event deleted after
// the caller looked it up is reported as NotFound.
func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	return translateTaskWrite(r.db.WithContext(ctx).Create(t).Error)
}

func translateTaskWrite(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: event not found", common.ErrNotFound)
	}
	return translate(err, "task")
}

func (r *TaskRepo) List(ctx context.Context, eventID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	q := r.db.WithContext(ctx).Model(&models.Task{})
	if eventID != 0 {
		q = q.Where("event_id = ?", eventID)
	}
	if err := q.Order("id asc").Find(&tasks).Error; err != nil {
		return nil, translate(err, "task")
	}
	return tasks, nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err, "task")
	}
	return &t, nil
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	return translateTaskWrite(r.db.WithContext(ctx).Save(t).Error)
}

func (r *TaskRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return translate(res.Error, "task")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "task")
	}
	return nil
}
