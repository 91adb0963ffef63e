package dto

// DashboardResponse contadores globales y los últimos productos cargados.
type DashboardResponse struct {
	Users          int               `json:"users"`
	Vendors        int               `json:"vendors"`
	Products       int               `json:"products"`
	LatestProducts []ProductResponse `json:"latest_products"`
}
