package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

// LatestProductsOnDashboard cantidad de productos recientes en la portada.
const LatestProductsOnDashboard = 5

// DashboardUseCase portada: contadores y últimos productos.
type DashboardUseCase struct {
	users    repository.UserRepository
	vendors  repository.VendorRepository
	products repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(users repository.UserRepository, vendors repository.VendorRepository, products repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{users: users, vendors: vendors, products: products}
}

// Summary ejecuta las cuatro consultas en paralelo; la primera que falla cancela el resto.
func (uc *DashboardUseCase) Summary(ctx context.Context, actor *authz.Actor) (*dto.DashboardResponse, error) {
	if actor == nil || !actor.IsActive {
		return nil, domain.ErrUnauthorized
	}
	var (
		out    dto.DashboardResponse
		latest []*entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Users, err = uc.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Vendors, err = uc.vendors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Products, err = uc.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		latest, err = uc.products.Latest(gctx, LatestProductsOnDashboard)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.LatestProducts = toProductResponses(latest)
	return &out, nil
}
