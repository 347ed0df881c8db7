package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SearchKey normaliza un nombre para búsqueda: minúsculas y sin diacríticos
// ("Ácido Clorhídrico" -> "acido clorhidrico"). Si la transformación falla,
// devuelve el texto original en minúsculas.
func SearchKey(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}
