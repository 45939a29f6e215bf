package entity

// Workshop taller de producción.
type Workshop struct {
	ID             int64
	Name           string
	WorkerCount    int     // trabajadores asignados, > 0
	ProcessingTime float64 // horas de proceso por producto, >= 0
}
