package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbaid4/testwecicada/internal/common"
)

func TestSupplierCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sp, err := env.svc.Suppliers.Create(ctx, SupplierInput{
		Name:     ptr("Acme Catering"),
		Type:     ptr("catering"),
		Services: ptr([]string{"buffet", " ", "bar "}),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sp.Rating)
	assert.Equal(t, []string{"buffet", "bar"}, sp.Services)

	updated, err := env.svc.Suppliers.Update(ctx, sp.ID, SupplierInput{Rating: ptr(4.5), Phone: ptr("555-0101")})
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, "Acme Catering", updated.Name)
	assert.Equal(t, []string{"buffet", "bar"}, updated.Services)

	list, err := env.svc.Suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "555-0101", list[0].Phone)

	require.NoError(t, env.svc.Suppliers.Delete(ctx, sp.ID))
	_, err = env.svc.Suppliers.Get(ctx, sp.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.True(t, errors.Is(env.svc.Suppliers.Delete(ctx, sp.ID), common.ErrNotFound))
}

func TestSupplierValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Suppliers.Create(ctx, SupplierInput{Type: ptr("venue")})
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Suppliers.Create(ctx, SupplierInput{Name: ptr("x"), Rating: ptr(7.0)})
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Suppliers.Update(ctx, 42, SupplierInput{Name: ptr("x")})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
