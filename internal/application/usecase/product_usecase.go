package usecase

import (
	"context"
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

// Carpeta de documentos dentro del FileStorage.
const documentsDir = "documents"

// ProductUseCase CRUD de productos y de sus documentos adjuntos.
type ProductUseCase struct {
	products  repository.ProductRepository
	documents repository.DocumentRepository
	vendors   repository.VendorRepository
	tx        CatalogTxRunner
	storage   FileStorage
	reviews   ReviewReader
	policy    AccessPolicy
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	documents repository.DocumentRepository,
	vendors repository.VendorRepository,
	tx CatalogTxRunner,
	storage FileStorage,
	reviews ReviewReader,
	policy AccessPolicy,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:  products,
		documents: documents,
		vendors:   vendors,
		tx:        tx,
		storage:   storage,
		reviews:   reviews,
		policy:    policy,
		log:       log.Component("products"),
	}
}

// Create crea el producto y sus documentos en una transacción.
// Permitido al dueño del vendor o con add_vendor_product_record.
// Si la transacción falla, los archivos ya guardados se eliminan.
func (uc *ProductUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.ProductRequest, uploads []Upload) (*dto.ProductDetailResponse, error) {
	vendor, err := uc.vendorFor(ctx, in.VendorID)
	if err != nil {
		return nil, err
	}
	if !authz.AllowOwner(actor, vendor.UserID, catalog.AddVendorProductRecord) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CreatedBy: actor.Username,
		UpdatedBy: actor.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProductRequest(p, in)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	docs, err := uc.store(ctx, p.ID, actor.Username, uploads, now)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, documents repository.DocumentRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		return attach(ctx, products, documents, p, docs)
	})
	if err != nil {
		uc.discard(ctx, docs)
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("vendor_id", p.VendorID).Int("documents", len(docs)).Msg("producto creado")
	return uc.detail(ctx, p)
}

// Update edita el producto y agrega los documentos subidos.
// Permitido al dueño del vendor o con update_vendor_product_record.
func (uc *ProductUseCase) Update(ctx context.Context, actor *authz.Actor, id string, in dto.ProductRequest, uploads []Upload) (*dto.ProductDetailResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := uc.vendorFor(ctx, p.VendorID)
	if err != nil {
		return nil, err
	}
	if !authz.AllowOwner(actor, owner.UserID, catalog.UpdateVendorProductRecord) {
		return nil, domain.ErrForbidden
	}
	if in.VendorID != "" && in.VendorID != p.VendorID {
		// mover el producto exige poder operar también sobre el vendor destino
		dest, err := uc.vendorFor(ctx, in.VendorID)
		if err != nil {
			return nil, err
		}
		if !authz.AllowOwner(actor, dest.UserID, catalog.UpdateVendorProductRecord) {
			return nil, domain.ErrForbidden
		}
	}
	now := time.Now()
	applyProductRequest(p, in)
	p.UpdatedBy = actor.Username
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return nil, err
	}

	docs, err := uc.store(ctx, p.ID, actor.Username, uploads, now)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, documents repository.DocumentRepository) error {
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		return attach(ctx, products, documents, p, docs)
	})
	if err != nil {
		uc.discard(ctx, docs)
		return nil, err
	}
	return uc.detail(ctx, p)
}

// Delete borra el producto con sus documentos y reseñas; luego elimina los archivos.
func (uc *ProductUseCase) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	p, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	owner, err := uc.vendorFor(ctx, p.VendorID)
	if err != nil {
		return err
	}
	if !authz.AllowOwner(actor, owner.UserID, catalog.DeleteVendorProductRecord) {
		return domain.ErrForbidden
	}
	docs, err := uc.documents.ListByProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	uc.discard(ctx, docs)
	uc.log.Info().Str("product_id", id).Str("by", actor.Username).Msg("producto eliminado")
	return nil
}

// DeleteDocument quita un documento y recalcula document_attached en la misma transacción.
func (uc *ProductUseCase) DeleteDocument(ctx context.Context, actor *authz.Actor, documentID string) (*dto.ProductDetailResponse, error) {
	doc, err := uc.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.get(ctx, doc.ProductID)
	if err != nil {
		return nil, err
	}
	owner, err := uc.vendorFor(ctx, p.VendorID)
	if err != nil {
		return nil, err
	}
	if !authz.AllowOwner(actor, owner.UserID, catalog.UpdateVendorProductRecord) {
		return nil, domain.ErrForbidden
	}
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, documents repository.DocumentRepository) error {
		if err := documents.Delete(ctx, documentID); err != nil {
			return err
		}
		attached, err := products.RefreshDocumentAttached(ctx, p.ID)
		if err != nil {
			return err
		}
		p.DocumentAttached = attached
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.discard(ctx, []*entity.Document{doc})
	return uc.detail(ctx, p)
}

// Get detalle del producto con documentos y reseñas.
func (uc *ProductUseCase) Get(ctx context.Context, actor *authz.Actor, id string) (*dto.ProductDetailResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.policy.EnforceView && !authz.Allow(actor, catalog.ViewVendorProductRecord) {
		owner, err := uc.vendorFor(ctx, p.VendorID)
		if err != nil {
			return nil, err
		}
		if !authz.AllowOwner(actor, owner.UserID, catalog.ViewVendorProductRecord) {
			return nil, domain.ErrForbidden
		}
	}
	return uc.detail(ctx, p)
}

// List lista productos paginados, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, actor *authz.Actor, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if uc.policy.EnforceView && !authz.Allow(actor, catalog.ViewVendorProductRecord) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) vendorFor(ctx context.Context, vendorID string) (*entity.Vendor, error) {
	if vendorID == "" {
		return nil, domain.NewValidationError("vendor", "es requerido")
	}
	v, err := uc.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NewValidationError("vendor", "el vendor no existe")
	}
	return v, nil
}

func (uc *ProductUseCase) detail(ctx context.Context, p *entity.Product) (*dto.ProductDetailResponse, error) {
	docs, err := uc.documents.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := uc.reviews.Reviews(ctx, entity.ProductTarget(p.ID))
	if err != nil {
		return nil, err
	}
	out := &dto.ProductDetailResponse{
		Product:   ToProductResponse(p),
		Documents: make([]dto.DocumentResponse, 0, len(docs)),
		Reviews:   *reviews,
	}
	for _, d := range docs {
		out.Documents = append(out.Documents, toDocumentResponse(d))
	}
	return out, nil
}

// store guarda los archivos antes de abrir la transacción. Si uno falla, borra los anteriores.
func (uc *ProductUseCase) store(ctx context.Context, productID, by string, uploads []Upload, now time.Time) ([]*entity.Document, error) {
	docs := make([]*entity.Document, 0, len(uploads))
	for _, up := range uploads {
		path, err := uc.save(ctx, up)
		if err != nil {
			uc.discard(ctx, docs)
			return nil, err
		}
		docs = append(docs, &entity.Document{
			ID:        uuid.New().String(),
			ProductID: productID,
			FilePath:  path,
			CreatedBy: by,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return docs, nil
}

func (uc *ProductUseCase) save(ctx context.Context, up Upload) (string, error) {
	r, err := up.Open()
	if err != nil {
		return "", fmt.Errorf("abrir %s: %w", up.Filename, err)
	}
	defer r.Close()
	return uc.storage.Save(ctx, documentsDir, up.Filename, r)
}

func (uc *ProductUseCase) discard(ctx context.Context, docs []*entity.Document) {
	removeFiles(ctx, uc.storage, uc.log, docs)
}

// removeFiles borra del storage los archivos de los documentos. Un fallo solo se registra.
func removeFiles(ctx context.Context, storage FileStorage, log *logger.Logger, docs []*entity.Document) {
	for _, d := range docs {
		if !d.HasFile() {
			continue
		}
		if err := storage.Remove(ctx, d.FilePath); err != nil {
			log.Warn().Err(err).Str("path", d.FilePath).Msg("no se pudo eliminar el archivo")
		}
	}
}

func attach(ctx context.Context, products repository.ProductRepository, documents repository.DocumentRepository, p *entity.Product, docs []*entity.Document) error {
	for _, d := range docs {
		if err := documents.Create(ctx, d); err != nil {
			return err
		}
	}
	attached, err := products.RefreshDocumentAttached(ctx, p.ID)
	if err != nil {
		return err
	}
	p.DocumentAttached = attached
	return nil
}

func applyProductRequest(p *entity.Product, in dto.ProductRequest) {
	if in.VendorID != "" {
		p.VendorID = in.VendorID
	}
	p.Name = in.Name
	p.SoftwareType = in.SoftwareType
	p.Module = in.Module
	p.ClientType = in.ClientType
	p.BusinessArea = in.BusinessArea
	p.CloudStatus = in.CloudStatus
	if p.CloudStatus == "" {
		p.CloudStatus = entity.CloudNative
	}
	p.LastDemoDate = in.LastDemoDate
	p.LastReviewDate = in.LastReviewDate
	p.NextReviewDate = in.NextReviewDate
	p.AdditionalInformation = in.AdditionalInformation
	p.InternalProfessionalServices = in.InternalProfessionalServices
}
