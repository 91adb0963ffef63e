package entity

import (
	"time"

	"github.com/jhoicas/vendor-management/internal/domain"
)

// Estados cloud de un producto.
const (
	CloudEnabled = "Enabled"
	CloudNative  = "Native"
	CloudBased   = "Based"
)

// Product software ofrecido por un Vendor.
// DocumentAttached es derivado: true sii existe al menos un Document con archivo.
type Product struct {
	ID                           string
	VendorID                     string
	Name                         string
	SoftwareType                 string
	Module                       string
	ClientType                   string
	BusinessArea                 string
	CloudStatus                  string
	LastDemoDate                 *time.Time
	LastReviewDate               *time.Time
	NextReviewDate               *time.Time
	DocumentAttached             bool
	AdditionalInformation        string
	InternalProfessionalServices bool
	CreatedBy                    string
	UpdatedBy                    string
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// ValidCloudStatus informa si el estado cloud es válido.
func ValidCloudStatus(s string) bool {
	switch s {
	case CloudEnabled, CloudNative, CloudBased:
		return true
	}
	return false
}

// Validate revisa los campos obligatorios del producto.
func (p *Product) Validate() error {
	vErr := &domain.ValidationError{}
	if p.VendorID == "" {
		vErr.Add("vendor", "es requerido")
	}
	required := map[string]string{
		"name":          p.Name,
		"software_type": p.SoftwareType,
		"module":        p.Module,
		"client_type":   p.ClientType,
		"business_area": p.BusinessArea,
	}
	for field, val := range required {
		if val == "" {
			vErr.Add(field, "es requerido")
		}
	}
	if !ValidCloudStatus(p.CloudStatus) {
		vErr.Add("cloud_status", "debe ser Enabled, Native o Based")
	}
	return vErr.OrNil()
}

// Document archivo adjunto a un producto.
type Document struct {
	ID        string
	ProductID string
	FilePath  string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFile informa si el documento referencia un archivo almacenado.
func (d *Document) HasFile() bool {
	return d != nil && d.FilePath != ""
}
