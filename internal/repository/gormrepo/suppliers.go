package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kbaid4/testwecicada/internal/models"
)

type SupplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

func (r *SupplierRepo) Create(ctx context.Context, s *models.Supplier) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "supplier")
}

func (r *SupplierRepo) List(ctx context.Context) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&suppliers).Error; err != nil {
		return nil, translate(err, "supplier")
	}
	return suppliers, nil
}

func (r *SupplierRepo) FindByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, "supplier")
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *models.Supplier) error {
	return translate(r.db.WithContext(ctx).Save(s).Error, "supplier")
}

func (r *SupplierRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return translate(res.Error, "supplier")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "supplier")
	}
	return nil
}
