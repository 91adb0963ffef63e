package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/catalog"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// ReviewReader lectura de reseñas agregadas; la implementa CommentUseCase.
type ReviewReader interface {
	Reviews(ctx context.Context, target entity.Target) (*dto.ReviewsResponse, error)
}

// AccessPolicy opciones de autorización configurables.
type AccessPolicy struct {
	// EnforceView exige view_* en listados y detalles (además de estar autenticado).
	EnforceView bool
}

// VendorUseCase CRUD de vendors. Las mutaciones pasan por el gate: dueño o permiso.
type VendorUseCase struct {
	vendors   repository.VendorRepository
	products  repository.ProductRepository
	documents repository.DocumentRepository
	storage   FileStorage
	reviews   ReviewReader
	policy    AccessPolicy
	log       *logger.Logger
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(vendors repository.VendorRepository, products repository.ProductRepository, documents repository.DocumentRepository, storage FileStorage, reviews ReviewReader, policy AccessPolicy, log *logger.Logger) *VendorUseCase {
	return &VendorUseCase{
		vendors:   vendors,
		products:  products,
		documents: documents,
		storage:   storage,
		reviews:   reviews,
		policy:    policy,
		log:       log.Component("vendors"),
	}
}

// Create registra el vendor del actor. Solo roles Vendor o Admin; uno por usuario.
func (uc *VendorUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.VendorRequest) (*dto.VendorResponse, error) {
	if !authz.HasRole(actor, entity.RoleVendor, entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	v := &entity.Vendor{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		CreatedBy: actor.Username,
		UpdatedBy: actor.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyVendorRequest(v, in)
	if err := v.Validate(now); err != nil {
		return nil, err
	}
	if err := uc.vendors.Create(ctx, v); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("el usuario ya tiene un vendor: %w", err)
		}
		return nil, err
	}
	uc.log.Info().Str("vendor_id", v.ID).Str("user_id", v.UserID).Msg("vendor creado")
	out := toVendorResponse(v)
	return &out, nil
}

// Update edita el vendor. Permitido al dueño o con update_vendor_record.
func (uc *VendorUseCase) Update(ctx context.Context, actor *authz.Actor, id string, in dto.VendorRequest) (*dto.VendorResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.AllowOwner(actor, v.UserID, catalog.UpdateVendorRecord) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	applyVendorRequest(v, in)
	v.UpdatedBy = actor.Username
	v.UpdatedAt = now
	if err := v.Validate(now); err != nil {
		return nil, err
	}
	if err := uc.vendors.Update(ctx, v); err != nil {
		return nil, err
	}
	out := toVendorResponse(v)
	return &out, nil
}

// Delete borra el vendor con sus productos, documentos y reseñas; luego elimina los archivos.
func (uc *VendorUseCase) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	v, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.AllowOwner(actor, v.UserID, catalog.DeleteVendorRecord) {
		return domain.ErrForbidden
	}
	products, err := uc.products.ListByVendor(ctx, id)
	if err != nil {
		return err
	}
	var docs []*entity.Document
	for _, p := range products {
		list, err := uc.documents.ListByProduct(ctx, p.ID)
		if err != nil {
			return err
		}
		docs = append(docs, list...)
	}
	if err := uc.vendors.Delete(ctx, id); err != nil {
		return err
	}
	removeFiles(ctx, uc.storage, uc.log, docs)
	uc.log.Info().Str("vendor_id", id).Str("by", actor.Username).Int("documents", len(docs)).Msg("vendor eliminado")
	return nil
}

// Get detalle del vendor con sus productos y reseñas.
func (uc *VendorUseCase) Get(ctx context.Context, actor *authz.Actor, id string) (*dto.VendorDetailResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.policy.EnforceView && !authz.AllowOwner(actor, v.UserID, catalog.ViewVendorRecord) {
		return nil, domain.ErrForbidden
	}
	products, err := uc.products.ListByVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := uc.reviews.Reviews(ctx, entity.VendorTarget(id))
	if err != nil {
		return nil, err
	}
	return &dto.VendorDetailResponse{
		Vendor:   toVendorResponse(v),
		Products: toProductResponses(products),
		Reviews:  *reviews,
	}, nil
}

// List lista vendors paginados.
func (uc *VendorUseCase) List(ctx context.Context, actor *authz.Actor, page dto.PageRequest) (*dto.VendorListResponse, error) {
	if uc.policy.EnforceView && !authz.Allow(actor, catalog.ViewVendorRecord) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.vendors.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.vendors.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, toVendorResponse(v))
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *VendorUseCase) get(ctx context.Context, id string) (*entity.Vendor, error) {
	v, err := uc.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func applyVendorRequest(v *entity.Vendor, in dto.VendorRequest) {
	v.Name = in.VendorName
	v.WebsiteURL = in.CompanyWebsiteURL
	v.FoundedYear = in.CompanyEstablishedOn
	v.EmployeesBand = in.NoOfEmployees
	v.Country = in.Country
	v.City = in.City
	v.Address = in.Address
	v.PhoneNumber = in.PhoneNumber
	v.Description = in.Description
}
