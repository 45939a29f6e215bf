package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// Los nombres de campo JSON siguen el contrato del backend de la fábrica
// (product_name, min_partner_price, ...) para que la capa de presentación
// maneje un solo vocabulario.

// ProductDraftRequest alta o reemplazo completo de un producto.
// workshop_ids define la ruta de producción en orden.
type ProductDraftRequest struct {
	Article         string          `json:"article"`
	Name            string          `json:"product_name"`
	ProductTypeID   int64           `json:"product_type_id"`
	MainMaterialID  int64           `json:"main_material_id"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
	Param1          float64         `json:"param1"`
	Param2          float64         `json:"param2"`
	WorkshopIDs     []int64         `json:"workshop_ids"`
}

// ToDraft convierte la petición al borrador de dominio.
func (r ProductDraftRequest) ToDraft() entity.ProductDraft {
	return entity.ProductDraft{
		Article:         r.Article,
		Name:            r.Name,
		ProductTypeID:   r.ProductTypeID,
		MainMaterialID:  r.MainMaterialID,
		MinPartnerPrice: r.MinPartnerPrice,
		Param1:          r.Param1,
		Param2:          r.Param2,
		WorkshopIDs:     r.WorkshopIDs,
	}
}

// ProductRowResponse fila del listado con campos derivados.
type ProductRowResponse struct {
	ID              int64           `json:"id"`
	Article         string          `json:"article"`
	Name            string          `json:"product_name"`
	TypeName        string          `json:"type_name"`
	MaterialName    string          `json:"material_name"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
	Param1          float64         `json:"param1"`
	Param2          float64         `json:"param2"`
	WorkshopCount   int             `json:"workshop_count"`
	TotalTime       float64         `json:"total_time"`
	Selected        bool            `json:"selected"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FromProductRow proyecta una fila del store.
func FromProductRow(row catalog.ProductRow) ProductRowResponse {
	return ProductRowResponse{
		ID:              row.ID,
		Article:         row.Article,
		Name:            row.Name,
		TypeName:        row.TypeName,
		MaterialName:    row.MaterialName,
		MinPartnerPrice: row.MinPartnerPrice,
		Param1:          row.Param1,
		Param2:          row.Param2,
		WorkshopCount:   row.WorkshopCount,
		TotalTime:       row.TotalTime,
		Selected:        row.Selected,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// PageInfoResponse metadatos de paginación ("Mostrando X–Y de Z").
type PageInfoResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	From       int `json:"from"`
	To         int `json:"to"`
	Filtered   int `json:"filtered"`
	Total      int `json:"total"`
}

// FromPageInfo proyecta los metadatos del store.
func FromPageInfo(info catalog.PageInfo) PageInfoResponse {
	return PageInfoResponse{
		Page:       info.Page,
		PageSize:   info.PageSize,
		TotalPages: info.TotalPages,
		From:       info.From,
		To:         info.To,
		Filtered:   info.Filtered,
		Total:      info.Total,
	}
}

// ProductListResponse página proyectada del listado con el filtro activo.
type ProductListResponse struct {
	Items  []ProductRowResponse `json:"items"`
	Page   PageInfoResponse     `json:"page"`
	Filter FilterRequest        `json:"filter"`
}

// FilterRequest criterios del listado; los campos ausentes no filtran.
type FilterRequest struct {
	Search     string           `json:"search"`
	TypeID     int64            `json:"type_id"`
	MaterialID int64            `json:"material_id"`
	PriceMin   *decimal.Decimal `json:"price_min"`
	PriceMax   *decimal.Decimal `json:"price_max"`
}

// FromFilter eco del filtro activo del store.
func FromFilter(f catalog.Filter) FilterRequest {
	return FilterRequest{
		Search:     f.Search,
		TypeID:     f.TypeID,
		MaterialID: f.MaterialID,
		PriceMin:   f.PriceMin,
		PriceMax:   f.PriceMax,
	}
}

// ToFilter convierte la petición al filtro del store.
func (r FilterRequest) ToFilter() catalog.Filter {
	return catalog.Filter{
		Search:     r.Search,
		TypeID:     r.TypeID,
		MaterialID: r.MaterialID,
		PriceMin:   r.PriceMin,
		PriceMax:   r.PriceMax,
	}
}

// WorkshopResponse taller con su carga derivada.
type WorkshopResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"workshop_name"`
	WorkerCount    int     `json:"worker_count"`
	ProcessingTime float64 `json:"processing_time"`
	Load           int     `json:"load"` // porcentaje 0–100
}

// MaterialResponse material con el conteo de productos que lo usan.
type MaterialResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"material_name"`
	LossPercentage float64 `json:"loss_percentage"`
	ProductCount   int     `json:"product_count"`
}

// ProductTypeResponse tipo de producto.
type ProductTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"type_name"`
}

// SelectionResponse estado de la selección para acciones masivas.
type SelectionResponse struct {
	IDs   []int64 `json:"ids"`
	Count int     `json:"count"`
}
