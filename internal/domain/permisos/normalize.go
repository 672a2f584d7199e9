// Package permisos arma la matriz {modulo: {accion: asignado}} de roles y usuarios.
package permisos

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize pliega un nombre de módulo a su clave de agrupación:
// descompone (NFD), elimina marcas diacríticas, recorta espacios y pasa a minúsculas.
// "Técnico", " tecnico " y "TECNICO" producen "tecnico".
func Normalize(modulo string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, modulo)
	if err != nil {
		out = modulo
	}
	return strings.ToLower(strings.TrimSpace(out))
}
