// Package textutil normaliza términos de búsqueda: razones sociales y
// nombres de producto en español suelen llevar tildes que el usuario no
// escribe al buscar.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch pasa el término a minúsculas y elimina diacríticos
// (José -> jose) para que el ILIKE de la base encuentre coincidencias
// sin importar tildes.
func NormalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}
