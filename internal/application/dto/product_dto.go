package dto

import "time"

// ProductRequest alta o edición de un producto. En JSON las fechas van en RFC 3339;
// en formularios el handler también acepta YYYY-MM-DD.
type ProductRequest struct {
	VendorID                     string     `json:"vendor" form:"vendor" validate:"required"`
	Name                         string     `json:"name" form:"name" validate:"required,max=255"`
	SoftwareType                 string     `json:"software_type" form:"software_type" validate:"required,max=255"`
	Module                       string     `json:"module" form:"module" validate:"required,max=255"`
	ClientType                   string     `json:"client_type" form:"client_type" validate:"required,max=255"`
	BusinessArea                 string     `json:"business_area" form:"business_area" validate:"required,max=255"`
	CloudStatus                  string     `json:"cloud_status" form:"cloud_status" validate:"omitempty,oneof=Enabled Native Based"`
	LastDemoDate                 *time.Time `json:"last_demo_date" form:"-"`
	LastReviewDate               *time.Time `json:"last_review_date" form:"-"`
	NextReviewDate               *time.Time `json:"next_review_date" form:"-"`
	AdditionalInformation        string     `json:"additional_information" form:"additional_information"`
	InternalProfessionalServices bool       `json:"internal_professional_services" form:"internal_professional_services"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                           string     `json:"id"`
	VendorID                     string     `json:"vendor"`
	Name                         string     `json:"name"`
	SoftwareType                 string     `json:"software_type"`
	Module                       string     `json:"module"`
	ClientType                   string     `json:"client_type"`
	BusinessArea                 string     `json:"business_area"`
	CloudStatus                  string     `json:"cloud_status"`
	LastDemoDate                 *time.Time `json:"last_demo_date"`
	LastReviewDate               *time.Time `json:"last_review_date"`
	NextReviewDate               *time.Time `json:"next_review_date"`
	DocumentAttached             bool       `json:"document_attached"`
	AdditionalInformation        string     `json:"additional_information"`
	InternalProfessionalServices bool       `json:"internal_professional_services"`
	CreatedBy                    string     `json:"created_by"`
	UpdatedBy                    string     `json:"updated_by"`
	CreatedAt                    time.Time  `json:"created_at"`
	UpdatedAt                    time.Time  `json:"updated_at"`
}

// DocumentResponse salida de un documento adjunto.
type DocumentResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	FilePath  string    `json:"file_path"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetailResponse producto con documentos y reseñas.
type ProductDetailResponse struct {
	Product   ProductResponse    `json:"product"`
	Documents []DocumentResponse `json:"documents"`
	Reviews   ReviewsResponse    `json:"reviews"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
