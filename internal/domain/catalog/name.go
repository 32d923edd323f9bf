// Package catalog contiene reglas de dominio compartidas por productos y sucursales.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NameKey devuelve la clave de unicidad de un nombre visible:
// espacios recortados y colapsados, forma NFC y plegado de mayúsculas/minúsculas.
// "  Café  Central" y "CAFÉ CENTRAL" producen la misma clave.
func NameKey(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	joined := norm.NFC.String(strings.Join(fields, " "))
	return norm.NFC.String(folder.String(joined))
}

// CleanName recorta y colapsa espacios, conservando mayúsculas, para almacenar el nombre visible.
func CleanName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}
