package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDisponible estado inicial de un soporte publicado.
const ProductDisponible = "DISPONIBLE"

// Product espacio publicitario (soporte) publicado en el marketplace.
type Product struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Type           string
	City           string
	Country        string
	PricePerMonth  decimal.Decimal
	Dimensions     string
	WidthM         float64
	HeightM        float64
	AreaM2         float64
	Lat            float64
	Lng            float64
	GoogleMapsLink string
	Images         []string
	Featured       bool
	Status         string
	OwnerID        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
