package entity

import (
	"time"

	"github.com/jhoicas/vendor-management/internal/domain"
)

// Cotas del rating de una reseña.
const (
	MinRating = 1
	MaxRating = 5
)

// Tipos de destino de una reseña.
const (
	TargetVendor  = "vendor"
	TargetProduct = "product"
)

// Target destino de una reseña: exactamente un vendor o exactamente un producto.
type Target struct {
	Kind string // vendor | product
	ID   string
}

// VendorTarget construye un destino vendor.
func VendorTarget(id string) Target { return Target{Kind: TargetVendor, ID: id} }

// ProductTarget construye un destino producto.
func ProductTarget(id string) Target { return Target{Kind: TargetProduct, ID: id} }

// Valid informa si el destino está bien formado.
func (t Target) Valid() bool {
	return (t.Kind == TargetVendor || t.Kind == TargetProduct) && t.ID != ""
}

// Comment reseña de un usuario sobre un vendor o un producto. Inmutable una vez creada.
type Comment struct {
	ID        string
	UserID    string
	Username  string // solo lectura (join con users)
	VendorID  *string
	ProductID *string
	Content   string
	Rating    int
	CreatedAt time.Time
}

// NewComment arma el comentario para el destino indicado dejando la otra FK en nil.
func NewComment(id, userID string, target Target, content string, rating int, now time.Time) *Comment {
	c := &Comment{ID: id, UserID: userID, Content: content, Rating: rating, CreatedAt: now}
	targetID := target.ID
	switch target.Kind {
	case TargetVendor:
		c.VendorID = &targetID
	case TargetProduct:
		c.ProductID = &targetID
	}
	return c
}

// Target devuelve el destino del comentario.
func (c *Comment) Target() Target {
	if c.VendorID != nil {
		return VendorTarget(*c.VendorID)
	}
	if c.ProductID != nil {
		return ProductTarget(*c.ProductID)
	}
	return Target{}
}

// ValidateRating exige MinRating <= r <= MaxRating.
func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return domain.NewValidationError("rating", "debe estar entre 1 y 5")
	}
	return nil
}

// Validate revisa rating y que haya exactamente un destino.
func (c *Comment) Validate() error {
	if (c.VendorID == nil) == (c.ProductID == nil) {
		return domain.NewValidationError("target", "el comentario debe referir a un vendor o a un producto, no a ambos")
	}
	return ValidateRating(c.Rating)
}
