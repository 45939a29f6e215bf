package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
)

// DistributionEntry fila de una tabla de distribución. El porcentaje de la
// variante del dashboard es entero (la variante del informe CSV usa dos decimales).
type DistributionEntry struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// FromBuckets proyecta una distribución del snapshot.
func FromBuckets(buckets []catalog.Bucket) []DistributionEntry {
	out := make([]DistributionEntry, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DistributionEntry{
			Label:   b.Label,
			Count:   b.Count,
			Percent: b.PercentInt(),
		})
	}
	return out
}

// RecentProductResponse entrada del widget de últimos productos.
type RecentProductResponse struct {
	ID              int64           `json:"id"`
	Article         string          `json:"article"`
	Name            string          `json:"product_name"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
}

// DashboardResponse resumen del catálogo: conteos, estadísticas de precio y
// tiempo, últimos productos y las tres distribuciones.
type DashboardResponse struct {
	TotalProducts  int `json:"total_products"`
	TotalWorkshops int `json:"total_workshops"`
	TotalTypes     int `json:"total_types"`
	TotalMaterials int `json:"total_materials"`

	AvgPrice decimal.Decimal `json:"avg_price"`
	MinPrice decimal.Decimal `json:"min_price"`
	MaxPrice decimal.Decimal `json:"max_price"`

	AvgProductionTime   float64 `json:"avg_production_time"`
	TotalProductionTime float64 `json:"total_production_time"`

	RecentProducts []RecentProductResponse `json:"recent_products"`

	ByType     []DistributionEntry `json:"distribution_by_type"`
	ByMaterial []DistributionEntry `json:"distribution_by_material"`
	ByPrice    []DistributionEntry `json:"distribution_by_price"`
}

// CalculationRequest parámetros del cálculo de materia prima.
type CalculationRequest struct {
	ProductTypeID  int64   `json:"product_type_id"`
	MaterialTypeID int64   `json:"material_type_id"`
	Quantity       int     `json:"quantity"`
	Param1         float64 `json:"param1"`
	Param2         float64 `json:"param2"`
}

// CalculationResponse resultado del cálculo.
type CalculationResponse struct {
	RawMaterialNeeded int `json:"raw_material_needed"`
}
