package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn con repos de productos y documentos atados a una misma transacción.
// document_attached se recalcula dentro de la tx que agrega o quita documentos.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		products repository.ProductRepository,
		documents repository.DocumentRepository,
	) error) error
}

// FileStorage almacena archivos subidos. Save devuelve la ruta relativa guardada en la DB.
type FileStorage interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// Upload archivo recibido en un formulario multipart.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// Metrics contadores de negocio. Los implementa el adaptador Prometheus.
type Metrics interface {
	ReviewSubmitted(targetKind, result string)
	PermissionAssigned(action string)
	PermissionsSeeded(created, renamed int)
}

// NopMetrics descarta las métricas (tests y CLI).
type NopMetrics struct{}

func (NopMetrics) ReviewSubmitted(string, string) {}
func (NopMetrics) PermissionAssigned(string)      {}
func (NopMetrics) PermissionsSeeded(int, int)     {}
