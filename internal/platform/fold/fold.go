// Package fold normaliza nombres para comparaciones case-insensitive.
//
// Groups y traits se identifican por un "name key" derivado del nombre visible;
// todas las implementaciones de storage deben usar Key para que la unicidad sea la misma.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key devuelve la forma plegada (case folding Unicode) del nombre sin espacios extremos.
func Key(s string) string {
	// cases.Caser no es seguro para uso concurrente; se crea uno por llamada.
	return cases.Fold().String(strings.TrimSpace(s))
}

// Equal compara dos nombres por su key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Contains reporta si needle aparece dentro de haystack ignorando mayúsculas.
func Contains(haystack, needle string) bool {
	return strings.Contains(Key(haystack), Key(needle))
}

// EscapeLike escapa los comodines de LIKE para usar el texto como literal con ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
