package catalog

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// weeklyCapacityHours capacidad semanal por trabajador usada para la carga
// determinista de un taller (reemplaza el valor aleatorio del indicador
// original, que no era un dato real).
const weeklyCapacityHours = 40

// Snapshot estado inmutable del catálogo en un instante: base de todos los
// informes y agregados. Los cálculos son sobre la memoria, sin red.
type Snapshot struct {
	Products  []entity.Product
	Workshops []entity.Workshop
	Types     []entity.ProductType
	Materials []entity.Material

	typeNames     map[int64]string
	materialNames map[int64]string
}

// NewSnapshot construye un snapshot con los índices de nombres resueltos.
func NewSnapshot(products []entity.Product, workshops []entity.Workshop, types []entity.ProductType, materials []entity.Material) Snapshot {
	s := Snapshot{
		Products:      products,
		Workshops:     workshops,
		Types:         types,
		Materials:     materials,
		typeNames:     make(map[int64]string, len(types)),
		materialNames: make(map[int64]string, len(materials)),
	}
	for _, t := range types {
		s.typeNames[t.ID] = t.Name
	}
	for _, m := range materials {
		s.materialNames[m.ID] = m.Name
	}
	return s
}

// TypeName nombre del tipo o NotSpecified.
func (s Snapshot) TypeName(id int64) string {
	if name, ok := s.typeNames[id]; ok && name != "" {
		return name
	}
	return NotSpecified
}

// MaterialName nombre del material o NotSpecified.
func (s Snapshot) MaterialName(id int64) string {
	if name, ok := s.materialNames[id]; ok && name != "" {
		return name
	}
	return NotSpecified
}

// ── Agregados ─────────────────────────────────────────────────────────────────

// Summary conteos y estadísticas de precio/tiempo del catálogo completo.
type Summary struct {
	TotalProducts  int
	TotalWorkshops int
	TotalTypes     int
	TotalMaterials int

	AvgPrice decimal.Decimal
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal

	AvgProductionTime   float64 // horas, redondeado al entero más cercano
	TotalProductionTime float64 // horas, suma sobre todos los productos
}

// Summary calcula los agregados del snapshot. Con catálogo vacío todos los
// valores quedan en cero.
func (s Snapshot) Summary() Summary {
	sum := Summary{
		TotalProducts:  len(s.Products),
		TotalWorkshops: len(s.Workshops),
		TotalTypes:     len(s.Types),
		TotalMaterials: len(s.Materials),
	}
	if len(s.Products) == 0 {
		return sum
	}

	total := decimal.Zero
	min := s.Products[0].MinPartnerPrice
	max := s.Products[0].MinPartnerPrice
	var totalTime float64
	for _, p := range s.Products {
		price := p.MinPartnerPrice
		total = total.Add(price)
		if price.LessThan(min) {
			min = price
		}
		if price.GreaterThan(max) {
			max = price
		}
		totalTime += p.TotalProductionTime()
	}

	n := decimal.NewFromInt(int64(len(s.Products)))
	sum.AvgPrice = total.Div(n).Round(2)
	sum.MinPrice = min
	sum.MaxPrice = max
	sum.TotalProductionTime = totalTime
	sum.AvgProductionTime = math.Round(totalTime / float64(len(s.Products)))
	return sum
}

// Recent primeros n productos del snapshot (el backend los entrega con los
// más recientes al inicio).
func (s Snapshot) Recent(n int) []entity.Product {
	if n > len(s.Products) {
		n = len(s.Products)
	}
	out := make([]entity.Product, n)
	copy(out, s.Products[:n])
	return out
}

// ProductsUsingMaterial cantidad de productos cuyo material principal es el indicado.
func (s Snapshot) ProductsUsingMaterial(materialID int64) int {
	count := 0
	for _, p := range s.Products {
		if p.MainMaterialID == materialID {
			count++
		}
	}
	return count
}

// WorkshopLoad carga determinista de un taller como porcentaje 0–100:
// horas comprometidas (productos que pasan por el taller × tiempo de proceso)
// contra la capacidad semanal de su plantilla.
func (s Snapshot) WorkshopLoad(w entity.Workshop) int {
	if w.WorkerCount <= 0 {
		return 0
	}
	using := 0
	for _, p := range s.Products {
		for _, pw := range p.Workshops {
			if pw.ID == w.ID {
				using++
				break
			}
		}
	}
	committed := float64(using) * w.ProcessingTime
	capacity := float64(w.WorkerCount) * weeklyCapacityHours
	load := math.Round(committed / capacity * 100)
	if load > 100 {
		return 100
	}
	return int(load)
}

// ── Tablas de distribución ────────────────────────────────────────────────────

// Bucket fila de una tabla de distribución: categoría, conteo y porcentaje
// sobre el total de productos.
type Bucket struct {
	Label   string
	Count   int
	Percent float64
}

// PercentInt porcentaje redondeado a entero (variante del dashboard).
func (b Bucket) PercentInt() int {
	return int(math.Round(b.Percent))
}

// DistributionByType agrupa los productos por tipo, en orden de primera
// aparición. Solo aparecen categorías con al menos un producto.
func (s Snapshot) DistributionByType() []Bucket {
	return s.groupBy(func(p entity.Product) string {
		return s.TypeName(p.ProductTypeID)
	})
}

// DistributionByMaterial agrupa los productos por material principal.
func (s Snapshot) DistributionByMaterial() []Bucket {
	return s.groupBy(func(p entity.Product) string {
		return s.MaterialName(p.MainMaterialID)
	})
}

// Límites de los rangos de precio de la distribución.
var priceBrackets = []struct {
	label string
	upper decimal.Decimal // exclusivo; Zero = sin límite
}{
	{"Hasta 5000", decimal.NewFromInt(5000)},
	{"5000 - 10000", decimal.NewFromInt(10000)},
	{"10000 - 20000", decimal.NewFromInt(20000)},
	{"20000 - 50000", decimal.NewFromInt(50000)},
	{"Más de 50000", decimal.Decimal{}},
}

// DistributionByPrice agrupa los productos por rango de precio. Siempre
// devuelve los cinco rangos, incluidos los vacíos.
func (s Snapshot) DistributionByPrice() []Bucket {
	counts := make([]int, len(priceBrackets))
	for _, p := range s.Products {
		idx := len(priceBrackets) - 1
		for i, b := range priceBrackets[:len(priceBrackets)-1] {
			if p.MinPartnerPrice.LessThan(b.upper) {
				idx = i
				break
			}
		}
		counts[idx]++
	}

	buckets := make([]Bucket, len(priceBrackets))
	for i, b := range priceBrackets {
		buckets[i] = Bucket{
			Label:   b.label,
			Count:   counts[i],
			Percent: s.percentOfTotal(counts[i]),
		}
	}
	return buckets
}

func (s Snapshot) groupBy(key func(entity.Product) string) []Bucket {
	counts := map[string]int{}
	var order []string
	for _, p := range s.Products {
		k := key(p)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	buckets := make([]Bucket, 0, len(order))
	for _, label := range order {
		buckets = append(buckets, Bucket{
			Label:   label,
			Count:   counts[label],
			Percent: s.percentOfTotal(counts[label]),
		})
	}
	return buckets
}

func (s Snapshot) percentOfTotal(count int) float64 {
	if len(s.Products) == 0 {
		return 0
	}
	return float64(count) / float64(len(s.Products)) * 100
}
