package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/usecase"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/soporte"
)

type memProducts struct {
	rows    []*entity.Product
	lastFil repository.ProductFilter
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.rows = append(m.rows, p)
	return nil
}
func (m *memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	m.lastFil = f
	return m.rows, nil
}

type memImages struct{ saved []string }

func (m *memImages) Save(_ context.Context, filename, _ string, _ []byte) (string, error) {
	url := fmt.Sprintf("/uploads/support_%d_%s", len(m.saved), filename)
	m.saved = append(m.saved, url)
	return url, nil
}

type countingExporter struct{ n int }

func (c *countingExporter) Export(products []*entity.Product) ([]byte, error) {
	c.n = len(products)
	return []byte("<kml/>"), nil
}

func validRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Title: "Valla Castellana", PricePerMonth: "1200.50", City: "Madrid", Country: "España",
		Dimensions: "8×3", Type: "valla",
		GoogleMapsLink: "https://www.google.com/maps/place/X/@40.43,-3.69,17z",
	}
}

func newUC() (*usecase.ProductUseCase, *memProducts, *memImages, *countingExporter) {
	repo := &memProducts{}
	img := &memImages{}
	exp := &countingExporter{}
	uc := usecase.NewProductUseCase(repo, img, exp, usecase.ProductOptions{MaxImageBytes: 1024, Placeholder: "/static/placeholder.jpg"})
	return uc, repo, img, exp
}

func TestCreate_CoordenadasYMedidas(t *testing.T) {
	uc, repo, _, _ := newUC()

	out, err := uc.Create(context.Background(), "u1", validRequest(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 40.43, out.Lat, 1e-9)
	assert.InDelta(t, -3.69, out.Lng, 1e-9)
	assert.Equal(t, 24.0, out.Area)
	assert.Equal(t, entity.ProductDisponible, out.Status)
	assert.Equal(t, []string{"/static/placeholder.jpg"}, out.Images)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "u1", repo.rows[0].OwnerID)
}

func TestCreate_CoordenadasExplicitasYDefecto(t *testing.T) {
	uc, _, _, _ := newUC()

	in := validRequest()
	lat, lng := 4.6, -74.08
	in.Lat, in.Lng = &lat, &lng
	out, err := uc.Create(context.Background(), "u1", in, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.6, out.Lat)

	in = validRequest()
	in.GoogleMapsLink = ""
	out, err = uc.Create(context.Background(), "u1", in, nil)
	require.NoError(t, err)
	assert.Equal(t, soporte.DefaultLat, out.Lat)
	assert.Equal(t, soporte.DefaultLng, out.Lng)
}

func TestCreate_Imagenes(t *testing.T) {
	uc, repo, img, _ := newUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "u1", validRequest(), []dto.ImageUpload{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
		{Filename: "b.png", ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)
	assert.Len(t, out.Images, 2)

	_, err = uc.Create(ctx, "u1", validRequest(), []dto.ImageUpload{
		{Filename: "ok.jpg", ContentType: "image/jpeg", Data: []byte("x")},
		{Filename: "doc.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", validRequest(), []dto.ImageUpload{
		{Filename: "big.jpg", ContentType: "image/jpeg", Size: 2048},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Len(t, img.saved, 2, "no se guarda nada si alguna imagen es inválida")
	assert.Len(t, repo.rows, 1)
}

func TestCreate_CamposObligatorios(t *testing.T) {
	uc, repo, _, _ := newUC()

	in := validRequest()
	in.Title, in.Country = "", " "
	_, err := uc.Create(context.Background(), "u1", in, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title, country")

	in = validRequest()
	in.PricePerMonth = "gratis"
	_, err = uc.Create(context.Background(), "u1", in, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRequest()
	in.Dimensions = "grande"
	_, err = uc.Create(context.Background(), "u1", in, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, repo.rows)
}

func TestList_Filtros(t *testing.T) {
	uc, repo, _, exp := newUC()
	ctx := context.Background()

	_, err := uc.List(ctx, dto.ProductListQuery{City: " Madrid ", Featured: "true"})
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastFil.Limit)
	assert.Equal(t, "Madrid", repo.lastFil.City)
	require.NotNil(t, repo.lastFil.Featured)
	assert.True(t, *repo.lastFil.Featured)

	_, err = uc.List(ctx, dto.ProductListQuery{Featured: "quizás"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", validRequest(), nil)
	require.NoError(t, err)
	kml, err := uc.ExportKML(ctx, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "<kml/>", string(kml))
	assert.Equal(t, 1, exp.n)
	assert.Equal(t, 1000, repo.lastFil.Limit)
}
