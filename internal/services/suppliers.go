package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
)

type SupplierInput struct {
	Name        *string   `json:"name"`
	Type        *string   `json:"type"`
	Rating      *float64  `json:"rating"`
	Services    *[]string `json:"services"`
	CompanyName *string   `json:"companyName"`
	Address     *string   `json:"address"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	TaxID       *string   `json:"taxId"`
}

type SupplierService struct {
	suppliers repository.SupplierRepository
}

func NewSupplierService(m repository.Manager) *SupplierService {
	return &SupplierService{suppliers: m.Suppliers()}
}

func (s *SupplierService) Create(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	if in.Name == nil {
		return nil, fmt.Errorf("%w: name is required", common.ErrBadRequest)
	}
	sp := &models.Supplier{Services: []string{}}
	if err := applySupplierInput(sp, in); err != nil {
		return nil, err
	}
	if err := s.suppliers.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func applySupplierInput(sp *models.Supplier, in SupplierInput) error {
	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return err
		}
		sp.Name = strings.TrimSpace(*in.Name)
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return fmt.Errorf("%w: rating must be between 0 and 5", common.ErrBadRequest)
		}
		sp.Rating = *in.Rating
	}
	if in.Services != nil {
		services := make([]string, 0, len(*in.Services))
		for _, svc := range *in.Services {
			if svc = strings.TrimSpace(svc); svc != "" {
				services = append(services, svc)
			}
		}
		sp.Services = services
	}
	setString(&sp.Type, in.Type)
	setString(&sp.CompanyName, in.CompanyName)
	setString(&sp.Address, in.Address)
	setString(&sp.Phone, in.Phone)
	setString(&sp.Email, in.Email)
	setString(&sp.TaxID, in.TaxID)
	return nil
}

func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *SupplierService) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	return s.suppliers.FindByID(ctx, id)
}

func (s *SupplierService) Update(ctx context.Context, id uint, in SupplierInput) (*models.Supplier, error) {
	sp, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySupplierInput(sp, in); err != nil {
		return nil, err
	}
	if err := s.suppliers.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Delete leaves tasks pointing at the supplier untouched.
func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	return s.suppliers.Delete(ctx, id)
}
