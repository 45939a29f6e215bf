package entity

// ProductType tipo de producto. Conjunto de referencia cerrado, poblado por el backend.
type ProductType struct {
	ID   int64
	Name string
}
