package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de la fábrica de muebles.
// El artículo (Article) es la clave de negocio única; ID es la identidad
// interna asignada por el backend. Workshops llega ordenado por la posición
// de la ruta de producción (processing_order).
type Product struct {
	ID              int64
	Article         string
	Name            string
	ProductTypeID   int64
	MainMaterialID  int64
	MinPartnerPrice decimal.Decimal // precio mínimo para socios, >= 0
	Param1          float64         // parámetro de forma 1 (m), > 0
	Param2          float64         // parámetro de forma 2 (m), > 0
	Workshops       []Workshop      // ruta de producción, en orden
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalProductionTime tiempo total de producción en horas: suma del tiempo
// de proceso de los talleres asociados. 0 si no hay talleres.
func (p Product) TotalProductionTime() float64 {
	var total float64
	for _, w := range p.Workshops {
		total += w.ProcessingTime
	}
	return total
}

// WorkshopCount número de talleres de la ruta de producción.
func (p Product) WorkshopCount() int {
	return len(p.Workshops)
}

// ProductDraft datos editables de un producto (alta o reemplazo completo).
// WorkshopIDs define la ruta de producción; el orden del slice es la
// secuencia (posición 1-based al persistir).
type ProductDraft struct {
	Article         string
	Name            string
	ProductTypeID   int64
	MainMaterialID  int64
	MinPartnerPrice decimal.Decimal
	Param1          float64
	Param2          float64
	WorkshopIDs     []int64
}
