package entity

// Material materia prima principal de un producto.
type Material struct {
	ID             int64
	Name           string
	LossPercentage float64 // pérdida de material en producción, 0–100
}
