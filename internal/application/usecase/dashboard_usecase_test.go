package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

func TestDashboard_ContadoresYUltimos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner", entity.RoleVendor)
	v := f.addVendor(t, owner)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		p := &entity.Product{
			ID: fmt.Sprintf("p-%d", i), VendorID: v.ID, Name: "Producto", SoftwareType: "ERP", Module: "Core",
			ClientType: "B2B", BusinessArea: "Ventas", CloudStatus: entity.CloudEnabled,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.store.Products().Create(ctx, p))
	}

	uc := usecase.NewDashboardUseCase(f.store.Users(), f.store.Vendors(), f.store.Products())
	out, err := uc.Summary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Users)
	assert.Equal(t, 1, out.Vendors)
	assert.Equal(t, 7, out.Products)
	require.Len(t, out.LatestProducts, usecase.LatestProductsOnDashboard)
	assert.Equal(t, "p-6", out.LatestProducts[0].ID)
}

func TestDashboard_SinActor(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewDashboardUseCase(f.store.Users(), f.store.Vendors(), f.store.Products())
	_, err := uc.Summary(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
