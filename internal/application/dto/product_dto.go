package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest campos de texto del multipart de POST /api/products.
type CreateProductRequest struct {
	Title          string   `form:"title"`
	Description    string   `form:"description"`
	Category       string   `form:"category"`
	Type           string   `form:"type"`
	City           string   `form:"city"`
	Country        string   `form:"country"`
	PricePerMonth  string   `form:"pricePerMonth"`
	Dimensions     string   `form:"dimensions"`
	GoogleMapsLink string   `form:"googleMapsLink"`
	Lat            *float64 `form:"lat"`
	Lng            *float64 `form:"lng"`
	Featured       bool     `form:"featured"`
}

// ImageUpload imagen recibida en el multipart.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Category string `query:"category"`
	Q        string `query:"q"`
	City     string `query:"city"`
	Featured string `query:"featured"`
	Limit    int    `query:"limit"`
}

// ProductResponse soporte publicado.
type ProductResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Type           string          `json:"type"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	PricePerMonth  decimal.Decimal `json:"pricePerMonth"`
	Dimensions     string          `json:"dimensions"`
	Width          float64         `json:"width"`
	Height         float64         `json:"height"`
	Area           float64         `json:"area"`
	Lat            float64         `json:"lat"`
	Lng            float64         `json:"lng"`
	GoogleMapsLink string          `json:"googleMapsLink,omitempty"`
	Images         []string        `json:"images"`
	Featured       bool            `json:"featured"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}
