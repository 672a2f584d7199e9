// Package kml exporta soportes como marcadores KML para herramientas de mapas.
package kml

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

const namespace = "http://www.opengis.net/kml/2.2"

// Exporter implementa usecase.PlacemarkExporter con etree.
type Exporter struct {
	name string
}

// NewExporter construye el exportador; name es el nombre del documento KML.
func NewExporter(name string) *Exporter {
	if name == "" {
		name = "Soportes StellarMotion"
	}
	return &Exporter{name: name}
}

// Export genera un Document con un Placemark por soporte.
func (e *Exporter) Export(products []*entity.Product) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("kml")
	root.CreateAttr("xmlns", namespace)
	document := root.CreateElement("Document")
	document.CreateElement("name").SetText(e.name)

	for _, p := range products {
		pm := document.CreateElement("Placemark")
		pm.CreateAttr("id", p.ID)
		pm.CreateElement("name").SetText(p.Title)
		pm.CreateElement("description").SetText(description(p))

		ext := pm.CreateElement("ExtendedData")
		addData(ext, "city", p.City)
		addData(ext, "type", p.Type)
		addData(ext, "dimensions", p.Dimensions)
		addData(ext, "pricePerMonth", p.PricePerMonth.StringFixed(2))
		addData(ext, "status", p.Status)

		point := pm.CreateElement("Point")
		// KML usa el orden lon,lat[,alt].
		point.CreateElement("coordinates").SetText(
			strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64) + ",0",
		)
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("kml: serializar documento: %w", err)
	}
	return out.Bytes(), nil
}

func addData(ext *etree.Element, name, value string) {
	if value == "" {
		return
	}
	d := ext.CreateElement("Data")
	d.CreateAttr("name", name)
	d.CreateElement("value").SetText(value)
}

func description(p *entity.Product) string {
	if p.Description != "" {
		return p.Description
	}
	return fmt.Sprintf("%s · %s · %s/mes", p.Type, p.Dimensions, p.PricePerMonth.StringFixed(2))
}
