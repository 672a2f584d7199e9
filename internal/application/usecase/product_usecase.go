package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/soporte"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	exportLimit      = 1000
)

// ProductOptions límites de subida de imágenes.
type ProductOptions struct {
	MaxImageBytes int64
	Placeholder   string
}

// ProductUseCase publicación y listado de soportes del marketplace.
type ProductUseCase struct {
	repo     repository.ProductRepository
	images   ImageStore
	exporter PlacemarkExporter
	opts     ProductOptions
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, images ImageStore, exporter PlacemarkExporter, opts ProductOptions) *ProductUseCase {
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 5 << 20
	}
	return &ProductUseCase{repo: repo, images: images, exporter: exporter, opts: opts, now: time.Now}
}

// Create publica un soporte: valida campos, calcula medidas y coordenadas y guarda las imágenes.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProductRequest, uploads []dto.ImageUpload) (*dto.ProductResponse, error) {
	in = trimRequest(in)
	if missing := missingFields(in); len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan campos obligatorios: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(in.PricePerMonth, ",", "."))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: pricePerMonth debe ser un número no negativo", domain.ErrInvalidInput)
	}
	w, h, area, ok := soporte.ParseDimensions(in.Dimensions)
	if !ok {
		return nil, fmt.Errorf("%w: dimensions debe tener el formato ANCHOxALTO", domain.ErrInvalidInput)
	}
	for _, up := range uploads {
		if err := uc.checkImage(up); err != nil {
			return nil, err
		}
	}

	images := make([]string, 0, len(uploads))
	for _, up := range uploads {
		url, err := uc.images.Save(ctx, up.Filename, up.ContentType, up.Data)
		if err != nil {
			return nil, fmt.Errorf("guardar imagen %s: %w", up.Filename, err)
		}
		images = append(images, url)
	}
	if len(images) == 0 && uc.opts.Placeholder != "" {
		images = append(images, uc.opts.Placeholder)
	}

	lat, lng := soporte.ResolveCoords(in.Lat, in.Lng, in.GoogleMapsLink)
	now := uc.now()
	p := &entity.Product{
		ID:             uuid.New().String(),
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Type:           in.Type,
		City:           in.City,
		Country:        in.Country,
		PricePerMonth:  price,
		Dimensions:     in.Dimensions,
		WidthM:         w,
		HeightM:        h,
		AreaM2:         area,
		Lat:            lat,
		Lng:            lng,
		GoogleMapsLink: in.GoogleMapsLink,
		Images:         images,
		Featured:       in.Featured,
		Status:         entity.ProductDisponible,
		OwnerID:        ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// List devuelve los soportes filtrados; limit por defecto 50.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	f, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// ExportKML exporta los soportes filtrados como documento KML.
func (uc *ProductUseCase) ExportKML(ctx context.Context, q dto.ProductListQuery) ([]byte, error) {
	f, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		f.Limit = exportLimit
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(list)
}

func (uc *ProductUseCase) checkImage(up dto.ImageUpload) error {
	if !strings.HasPrefix(strings.ToLower(up.ContentType), "image/") {
		return fmt.Errorf("%w: %s no es una imagen", domain.ErrInvalidInput, up.Filename)
	}
	size := up.Size
	if size == 0 {
		size = int64(len(up.Data))
	}
	if size > uc.opts.MaxImageBytes {
		return fmt.Errorf("%w: %s supera el tamaño máximo de %d MB", domain.ErrInvalidInput, up.Filename, uc.opts.MaxImageBytes>>20)
	}
	return nil
}

func toFilter(q dto.ProductListQuery) (repository.ProductFilter, error) {
	f := repository.ProductFilter{
		Category: strings.TrimSpace(q.Category),
		Query:    strings.TrimSpace(q.Q),
		City:     strings.TrimSpace(q.City),
		Limit:    q.Limit,
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if s := strings.TrimSpace(q.Featured); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, fmt.Errorf("%w: featured debe ser true o false", domain.ErrInvalidInput)
		}
		f.Featured = &b
	}
	return f, nil
}

func trimRequest(in dto.CreateProductRequest) dto.CreateProductRequest {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Type = strings.TrimSpace(in.Type)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	in.PricePerMonth = strings.TrimSpace(in.PricePerMonth)
	in.Dimensions = strings.TrimSpace(in.Dimensions)
	in.GoogleMapsLink = strings.TrimSpace(in.GoogleMapsLink)
	return in
}

func missingFields(in dto.CreateProductRequest) []string {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"title", in.Title},
		{"pricePerMonth", in.PricePerMonth},
		{"city", in.City},
		{"country", in.Country},
		{"dimensions", in.Dimensions},
		{"type", in.Type},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return dto.ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		Type:           p.Type,
		City:           p.City,
		Country:        p.Country,
		PricePerMonth:  p.PricePerMonth,
		Dimensions:     p.Dimensions,
		Width:          p.WidthM,
		Height:         p.HeightM,
		Area:           p.AreaM2,
		Lat:            p.Lat,
		Lng:            p.Lng,
		GoogleMapsLink: p.GoogleMapsLink,
		Images:         images,
		Featured:       p.Featured,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}
