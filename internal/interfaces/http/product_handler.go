package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/usecase"
)

const imagePartPrefix = "image_"

// ProductHandler soportes publicitarios del marketplace.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar soportes
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Param        q         query  string  false  "Texto libre"
// @Param        city      query  string  false  "Ciudad"
// @Param        featured  query  bool    false  "Solo destacados"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Success      200       {array}   dto.ProductResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, err := productQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportKML godoc
// @Summary      Exportar soportes como KML
// @Tags         products
// @Produce      application/vnd.google-earth.kml+xml
// @Param        category  query  string  false  "Categoría"
// @Param        city      query  string  false  "Ciudad"
// @Success      200       {file}    binary
// @Router       /api/products/export.kml [get]
func (h *ProductHandler) ExportKML(c *fiber.Ctx) error {
	q, err := productQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	doc, err := h.uc.ExportKML(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.google-earth.kml+xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="soportes.kml"`)
	return c.Send(doc)
}

func productQuery(c *fiber.Ctx) (dto.ProductListQuery, error) {
	var q dto.ProductListQuery
	err := c.QueryParser(&q)
	return q, err
}

// Create godoc
// @Summary      Publicar soporte
// @Description  Multipart: campos de texto más imágenes en partes image_0, image_1, ...
// @Tags         products
// @Security     Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        title           formData  string  true   "Título"
// @Param        pricePerMonth   formData  string  true   "Precio mensual"
// @Param        city            formData  string  true   "Ciudad"
// @Param        country         formData  string  true   "País"
// @Param        dimensions      formData  string  true   "Medidas WxH en metros"
// @Param        type            formData  string  true   "Tipo de soporte"
// @Param        googleMapsLink  formData  string  false  "Enlace de Google Maps"
// @Param        lat             formData  number  false  "Latitud"
// @Param        lng             formData  number  false  "Longitud"
// @Param        image_0         formData  file    false  "Imagen"
// @Success      201             {object}  dto.ProductResponse
// @Failure      400             {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se esperaba multipart/form-data"})
	}
	in, err := productRequest(form)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	uploads, err := imageUploads(form)
	if err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in, uploads)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func productRequest(form *multipart.Form) (dto.CreateProductRequest, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	in := dto.CreateProductRequest{
		Title:          value("title"),
		Description:    value("description"),
		Category:       value("category"),
		Type:           value("type"),
		City:           value("city"),
		Country:        value("country"),
		PricePerMonth:  value("pricePerMonth"),
		Dimensions:     value("dimensions"),
		GoogleMapsLink: value("googleMapsLink"),
	}
	var err error
	if in.Lat, err = optionalFloat("lat", value("lat")); err != nil {
		return in, err
	}
	if in.Lng, err = optionalFloat("lng", value("lng")); err != nil {
		return in, err
	}
	if v := value("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return in, fmt.Errorf("featured debe ser true o false")
		}
		in.Featured = b
	}
	return in, nil
}

func optionalFloat(name, v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%s debe ser numérico", name)
	}
	return &f, nil
}

// imageUploads lee las partes image_* en orden de nombre.
func imageUploads(form *multipart.Form) ([]dto.ImageUpload, error) {
	keys := make([]string, 0, len(form.File))
	for k := range form.File {
		if strings.HasPrefix(k, imagePartPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var uploads []dto.ImageUpload
	for _, k := range keys {
		for _, fh := range form.File[k] {
			data, err := readPart(fh)
			if err != nil {
				return nil, fmt.Errorf("leer %s: %w", k, err)
			}
			uploads = append(uploads, dto.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
				Data:        data,
			})
		}
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
