package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/vendor-management/internal/domain"
)

// MinFoundedYear año de fundación más antiguo aceptado.
const MinFoundedYear = 1600

// Vendor empresa proveedora; cada usuario es dueño de a lo sumo un vendor.
type Vendor struct {
	ID            string
	UserID        string
	Name          string
	WebsiteURL    string
	FoundedYear   int
	EmployeesBand string
	Country       string
	City          string
	Address       string
	PhoneNumber   string
	Description   string
	CreatedBy     string
	UpdatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateFoundedYear exige 1600 <= year <= año actual (según now).
func ValidateFoundedYear(year int, now time.Time) error {
	if year < MinFoundedYear || year > now.Year() {
		return domain.NewValidationError("company_established_on",
			fmt.Sprintf("debe estar entre %d y %d", MinFoundedYear, now.Year()))
	}
	return nil
}

// Validate revisa los campos obligatorios y las cotas del vendor.
func (v *Vendor) Validate(now time.Time) error {
	vErr := &domain.ValidationError{}
	if v.Name == "" {
		vErr.Add("vendor_name", "es requerido")
	}
	if v.FoundedYear < MinFoundedYear || v.FoundedYear > now.Year() {
		vErr.Add("company_established_on", fmt.Sprintf("debe estar entre %d y %d", MinFoundedYear, now.Year()))
	}
	return vErr.OrNil()
}
