package soporte_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/soporte"
)

func TestParseMapsLink_Formatos(t *testing.T) {
	cases := map[string][2]float64{
		"https://www.google.com/maps/place/Sol/@40.4169,-3.7035,17z":                   {40.4169, -3.7035},
		"https://www.google.com/maps/place/X/data=!3m1!4b1!4m6!3m5!3d41.3874!4d2.1686": {41.3874, 2.1686},
		"https://maps.google.com/?ll=19.4326,-99.1332&z=12":                            {19.4326, -99.1332},
		"https://maps.google.com/?q=-34.6037,-58.3816":                                 {-34.6037, -58.3816},
		"https://www.google.com/maps/search/?api=1&query=4.711,-74.0721":               {4.711, -74.0721},
		"https://www.google.com/maps/@?api=1&map_action=map&center=10.5,-66.9":         {10.5, -66.9},
	}
	for link, want := range cases {
		lat, lng, ok := soporte.ParseMapsLink(link)
		assert.True(t, ok, link)
		assert.InDelta(t, want[0], lat, 1e-9, link)
		assert.InDelta(t, want[1], lng, 1e-9, link)
	}
}

func TestParseMapsLink_SinCoordenadas(t *testing.T) {
	_, _, ok := soporte.ParseMapsLink("https://goo.gl/maps/abc")
	assert.False(t, ok)
	_, _, ok = soporte.ParseMapsLink("")
	assert.False(t, ok)
}

func TestResolveCoords(t *testing.T) {
	lat, lng := 1.5, 2.5
	la, ln := soporte.ResolveCoords(&lat, &lng, "https://maps.google.com/?q=9,9")
	assert.Equal(t, 1.5, la)
	assert.Equal(t, 2.5, ln)

	la, ln = soporte.ResolveCoords(nil, nil, "sin enlace")
	assert.Equal(t, soporte.DefaultLat, la)
	assert.Equal(t, soporte.DefaultLng, ln)
}

func TestParseDimensions(t *testing.T) {
	w, h, area, ok := soporte.ParseDimensions("8×3")
	assert.True(t, ok)
	assert.Equal(t, 8.0, w)
	assert.Equal(t, 3.0, h)
	assert.Equal(t, 24.0, area)

	_, _, area, ok = soporte.ParseDimensions("4,5 x 2.2 m")
	assert.True(t, ok)
	assert.Equal(t, 9.9, area)

	_, _, _, ok = soporte.ParseDimensions("grande")
	assert.False(t, ok)
}
