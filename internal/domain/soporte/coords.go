// Package soporte reúne el parseo de ubicación y medidas de un espacio publicitario.
package soporte

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Coordenadas por defecto (Madrid) cuando el enlace no trae ubicación.
const (
	DefaultLat = 40.4168
	DefaultLng = -3.7038
)

var coordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`[?&]ll=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`[?&]q=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`[?&]query=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`[?&]center=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`),
}

// ParseMapsLink extrae lat/lng de un enlace de Google Maps.
// Prueba los formatos en orden: @lat,lng · !3d!4d · ll= · q= · query= · center=.
func ParseMapsLink(link string) (lat, lng float64, ok bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return 0, 0, false
	}
	if dec, err := url.QueryUnescape(link); err == nil {
		link = dec
	}
	for _, re := range coordPatterns {
		m := re.FindStringSubmatch(link)
		if m == nil {
			continue
		}
		la, err1 := strconv.ParseFloat(m[1], 64)
		ln, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || !validCoords(la, ln) {
			continue
		}
		return la, ln, true
	}
	return 0, 0, false
}

// ResolveCoords decide la ubicación final: coordenadas explícitas, enlace o Madrid.
func ResolveCoords(lat, lng *float64, link string) (float64, float64) {
	if lat != nil && lng != nil && validCoords(*lat, *lng) {
		return *lat, *lng
	}
	if la, ln, ok := ParseMapsLink(link); ok {
		return la, ln
	}
	return DefaultLat, DefaultLng
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
