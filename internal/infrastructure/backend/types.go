package backend

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// ── Tipos de transporte (JSON del backend) ────────────────────────────────────

// wireTime acepta los formatos de fecha que emite el backend: RFC3339 con o
// sin zona horaria, y fecha sin hora.
type wireTime struct {
	time.Time
}

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range wireTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("backend: fecha no reconocida: %q", s)
}

type productTypeWire struct {
	ID   int64  `json:"id"`
	Name string `json:"type_name"`
}

type materialWire struct {
	ID             int64   `json:"id"`
	Name           string  `json:"material_name"`
	LossPercentage float64 `json:"loss_percentage"`
}

type workshopWire struct {
	ID             int64   `json:"id"`
	Name           string  `json:"workshop_name"`
	WorkerCount    int     `json:"worker_count"`
	ProcessingTime float64 `json:"processing_time"`
}

type productWire struct {
	ID              int64           `json:"id"`
	Article         string          `json:"article"`
	Name            string          `json:"product_name"`
	ProductTypeID   int64           `json:"product_type_id"`
	MainMaterialID  int64           `json:"main_material_id"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
	Param1          float64         `json:"param1"`
	Param2          float64         `json:"param2"`
	Workshops       []workshopWire  `json:"workshops"`
	CreatedAt       wireTime        `json:"created_at"`
	UpdatedAt       wireTime        `json:"updated_at"`
}

// productPayload cuerpo de POST/PUT /products. El backend maneja las
// asociaciones de talleres por endpoints separados.
type productPayload struct {
	Article         string          `json:"article"`
	ProductTypeID   int64           `json:"product_type_id"`
	Name            string          `json:"product_name"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price"`
	MainMaterialID  int64           `json:"main_material_id"`
	Param1          float64         `json:"param1"`
	Param2          float64         `json:"param2"`
}

type batchDeleteResponse struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted_count"`
}

type calculationWire struct {
	RawMaterialNeeded int `json:"raw_material_needed"`
}

// errorWire cuerpo de error estándar del backend: {"detail": "..."}.
type errorWire struct {
	Detail string `json:"detail"`
}

// ── Conversión a entidades ────────────────────────────────────────────────────

func (w productWire) toEntity() entity.Product {
	workshops := make([]entity.Workshop, 0, len(w.Workshops))
	for _, ws := range w.Workshops {
		workshops = append(workshops, ws.toEntity())
	}
	return entity.Product{
		ID:              w.ID,
		Article:         w.Article,
		Name:            w.Name,
		ProductTypeID:   w.ProductTypeID,
		MainMaterialID:  w.MainMaterialID,
		MinPartnerPrice: w.MinPartnerPrice,
		Param1:          w.Param1,
		Param2:          w.Param2,
		Workshops:       workshops,
		CreatedAt:       w.CreatedAt.Time,
		UpdatedAt:       w.UpdatedAt.Time,
	}
}

func (w workshopWire) toEntity() entity.Workshop {
	return entity.Workshop{
		ID:             w.ID,
		Name:           w.Name,
		WorkerCount:    w.WorkerCount,
		ProcessingTime: w.ProcessingTime,
	}
}

func (w productTypeWire) toEntity() entity.ProductType {
	return entity.ProductType{ID: w.ID, Name: w.Name}
}

func (w materialWire) toEntity() entity.Material {
	return entity.Material{ID: w.ID, Name: w.Name, LossPercentage: w.LossPercentage}
}

func draftToPayload(d entity.ProductDraft) productPayload {
	return productPayload{
		Article:         d.Article,
		ProductTypeID:   d.ProductTypeID,
		Name:            d.Name,
		MinPartnerPrice: d.MinPartnerPrice,
		MainMaterialID:  d.MainMaterialID,
		Param1:          d.Param1,
		Param2:          d.Param2,
	}
}
