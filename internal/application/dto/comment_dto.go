package dto

import "time"

// CommentRequest alta de una reseña.
type CommentRequest struct {
	Content string `json:"content" form:"content"`
	Rating  int    `json:"rating" form:"rating" validate:"required"`
}

// CommentResponse salida de una reseña.
type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	VendorID  *string   `json:"vendor_id,omitempty"`
	ProductID *string   `json:"product_id,omitempty"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewsResponse reseñas de un destino con el resumen agregado.
// Average es null cuando no hay reseñas.
type ReviewsResponse struct {
	Count   int               `json:"count"`
	Average *int              `json:"average"`
	Exact   *string           `json:"exact_average,omitempty"`
	Items   []CommentResponse `json:"items"`
}
