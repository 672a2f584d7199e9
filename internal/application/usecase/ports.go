package usecase

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// ImageStore persiste una imagen subida y devuelve su URL pública.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// PlacemarkExporter serializa soportes como marcadores de mapa (KML).
type PlacemarkExporter interface {
	Export(products []*entity.Product) ([]byte, error)
}
