package soporte

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var dimensionsRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*[×xX]\s*(\d+(?:[.,]\d+)?)`)

// ParseDimensions interpreta "8×3", "8 x 3" o "4,5×2" como ancho y alto en metros.
// El área se redondea a dos decimales.
func ParseDimensions(s string) (width, height, area float64, ok bool) {
	m := dimensionsRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, false
	}
	w, err1 := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	h, err2 := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, 0, false
	}
	return w, h, math.Round(w*h*100) / 100, true
}
