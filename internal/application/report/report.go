// Package report exporta el catálogo de productos a CSV y PDF.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/catalog"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

// Nombres de archivo de las exportaciones.
const (
	CSVFilename = "software_data.csv"
	PDFFilename = "softwares.pdf"
)

// CSVHeader columnas del CSV, en orden fijo.
var CSVHeader = []string{
	"Name",
	"Software Type",
	"Module",
	"Client Type",
	"Last Demo Date",
	"Last Review Date",
	"Next Review Date",
	"Document Attached",
	"Cloud Status",
	"Additional Information",
	"Internal Professional Services",
	"Business Area",
}

// Formato de fechas en el CSV.
const csvTimeLayout = "2006-01-02 15:04:05-07:00"

// PDFRenderer dibuja el listado de productos. Lo implementa el adaptador maroto.
type PDFRenderer interface {
	RenderProducts(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase exportaciones del catálogo. Requieren can_generate_vendor_product_report.
type ReportUseCase struct {
	products repository.ProductRepository
	pdf      PDFRenderer
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(products repository.ProductRepository, pdf PDFRenderer) *ReportUseCase {
	return &ReportUseCase{products: products, pdf: pdf}
}

// WriteCSV escribe cabecera + una fila por producto.
func (uc *ReportUseCase) WriteCSV(ctx context.Context, actor *authz.Actor, w io.Writer) error {
	list, err := uc.load(ctx, actor)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, p := range list {
		if err := cw.Write(csvRow(p)); err != nil {
			return fmt.Errorf("csv: fila %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDF genera el listado de productos en PDF.
func (uc *ReportUseCase) PDF(ctx context.Context, actor *authz.Actor) ([]byte, error) {
	list, err := uc.load(ctx, actor)
	if err != nil {
		return nil, err
	}
	return uc.pdf.RenderProducts(ctx, list, time.Now())
}

func (uc *ReportUseCase) load(ctx context.Context, actor *authz.Actor) ([]*entity.Product, error) {
	if !authz.Allow(actor, catalog.CanGenerateVendorProductReport) {
		return nil, domain.ErrForbidden
	}
	return uc.products.ListAll(ctx)
}

func csvRow(p *entity.Product) []string {
	return []string{
		p.Name,
		p.SoftwareType,
		p.Module,
		p.ClientType,
		formatTime(p.LastDemoDate),
		formatTime(p.LastReviewDate),
		formatTime(p.NextReviewDate),
		formatBool(p.DocumentAttached),
		p.CloudStatus,
		p.AdditionalInformation,
		formatBool(p.InternalProfessionalServices),
		p.BusinessArea,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(csvTimeLayout)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
