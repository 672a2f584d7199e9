package kml_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/infrastructure/kml"
)

func TestExport_Placemarks(t *testing.T) {
	products := []*entity.Product{
		{ID: "s1", Title: "Valla <Castellana> & Co", City: "Madrid", Type: "valla", Dimensions: "8×3",
			PricePerMonth: decimal.RequireFromString("1200.5"), Lat: 40.43, Lng: -3.69, Status: entity.ProductDisponible},
		{ID: "s2", Title: "Mupi Sol", Lat: 40.4168, Lng: -3.7038, PricePerMonth: decimal.Zero},
	}

	out, err := kml.NewExporter("").Export(products)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Equal(t, "http://www.opengis.net/kml/2.2", doc.Root().SelectAttrValue("xmlns", ""))

	pms := doc.FindElements("//Placemark")
	require.Len(t, pms, 2)
	assert.Equal(t, "Valla <Castellana> & Co", pms[0].FindElement("name").Text())
	assert.Equal(t, "-3.69,40.43,0", pms[0].FindElement("Point/coordinates").Text())
	assert.Equal(t, "1200.50", pms[0].FindElement("ExtendedData/Data[@name='pricePerMonth']/value").Text())
	assert.Nil(t, pms[1].FindElement("ExtendedData/Data[@name='city']"), "los campos vacíos se omiten")
}

func TestExport_Vacio(t *testing.T) {
	out, err := kml.NewExporter("Mapa").Export(nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Equal(t, "Mapa", doc.FindElement("//Document/name").Text())
	assert.Empty(t, doc.FindElements("//Placemark"))
}
