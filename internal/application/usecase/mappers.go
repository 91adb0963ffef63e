package usecase

import (
	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.DateJoined,
	}
}

func toVendorResponse(v *entity.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:                   v.ID,
		UserID:               v.UserID,
		VendorName:           v.Name,
		CompanyWebsiteURL:    v.WebsiteURL,
		CompanyEstablishedOn: v.FoundedYear,
		NoOfEmployees:        v.EmployeesBand,
		Country:              v.Country,
		City:                 v.City,
		Address:              v.Address,
		PhoneNumber:          v.PhoneNumber,
		Description:          v.Description,
		CreatedBy:            v.CreatedBy,
		UpdatedBy:            v.UpdatedBy,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

// ToProductResponse se exporta para los reportes.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                           p.ID,
		VendorID:                     p.VendorID,
		Name:                         p.Name,
		SoftwareType:                 p.SoftwareType,
		Module:                       p.Module,
		ClientType:                   p.ClientType,
		BusinessArea:                 p.BusinessArea,
		CloudStatus:                  p.CloudStatus,
		LastDemoDate:                 p.LastDemoDate,
		LastReviewDate:               p.LastReviewDate,
		NextReviewDate:               p.NextReviewDate,
		DocumentAttached:             p.DocumentAttached,
		AdditionalInformation:        p.AdditionalInformation,
		InternalProfessionalServices: p.InternalProfessionalServices,
		CreatedBy:                    p.CreatedBy,
		UpdatedBy:                    p.UpdatedBy,
		CreatedAt:                    p.CreatedAt,
		UpdatedAt:                    p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:        d.ID,
		ProductID: d.ProductID,
		FilePath:  d.FilePath,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
	}
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  c.Username,
		VendorID:  c.VendorID,
		ProductID: c.ProductID,
		Content:   c.Content,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}

func toPermissionResponse(p *entity.Permission) dto.PermissionResponse {
	return dto.PermissionResponse{
		ID:          p.ID,
		Codename:    p.Codename,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		Origin:      p.Origin,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
