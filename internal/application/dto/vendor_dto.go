package dto

import "time"

// VendorRequest alta o edición de un vendor.
type VendorRequest struct {
	VendorName           string `json:"vendor_name" form:"vendor_name" validate:"required,max=255"`
	CompanyWebsiteURL    string `json:"company_website_url" form:"company_website_url" validate:"omitempty,url,max=200"`
	CompanyEstablishedOn int    `json:"company_established_on" form:"company_established_on" validate:"required"`
	NoOfEmployees        string `json:"no_of_employees" form:"no_of_employees" validate:"omitempty,max=255"`
	Country              string `json:"country" form:"country" validate:"omitempty,max=255"`
	City                 string `json:"city" form:"city" validate:"omitempty,max=255"`
	Address              string `json:"address" form:"address" validate:"omitempty,max=255"`
	PhoneNumber          string `json:"phone_number" form:"phone_number" validate:"omitempty,max=200"`
	Description          string `json:"description" form:"description"`
}

// VendorResponse salida de un vendor.
type VendorResponse struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	VendorName           string    `json:"vendor_name"`
	CompanyWebsiteURL    string    `json:"company_website_url"`
	CompanyEstablishedOn int       `json:"company_established_on"`
	NoOfEmployees        string    `json:"no_of_employees"`
	Country              string    `json:"country"`
	City                 string    `json:"city"`
	Address              string    `json:"address"`
	PhoneNumber          string    `json:"phone_number"`
	Description          string    `json:"description"`
	CreatedBy            string    `json:"created_by"`
	UpdatedBy            string    `json:"updated_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// VendorDetailResponse vendor con sus productos y reseñas.
type VendorDetailResponse struct {
	Vendor   VendorResponse    `json:"vendor"`
	Products []ProductResponse `json:"products"`
	Reviews  ReviewsResponse   `json:"reviews"`
}

// VendorListResponse lista paginada de vendors.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
