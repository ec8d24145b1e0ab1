package inventory

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

var seriesPattern = regexp.MustCompile(`^[A-Z0-9_-]{1,16}$`)

// NormalizeCode limpia espacios y normaliza a NFC. Conserva mayúsculas/minúsculas:
// "abc" y "ABC" son códigos distintos.
func NormalizeCode(code string) string {
	return norm.NFC.String(strings.TrimSpace(code))
}

// NormalizeName limpia espacios internos repetidos.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// NormalizeSeries devuelve la serie en mayúsculas o DefaultSeries si viene vacía.
func NormalizeSeries(series string) (string, error) {
	s := cases.Upper(language.Und).String(strings.TrimSpace(series))
	if s == "" {
		return entity.DefaultSeries, nil
	}
	if !seriesPattern.MatchString(s) {
		return "", domain.Invalid("serie %q", series)
	}
	return s, nil
}

// NextFolio siguiente folio de una serie dado el máximo actual.
func NextFolio(max int64) int64 {
	if max < 0 {
		return 1
	}
	return max + 1
}

// ValidateFolio un folio explícito debe ser positivo.
func ValidateFolio(folio int64) error {
	if folio <= 0 {
		return domain.Invalid("folio %d", folio)
	}
	return nil
}

// ValidMovementKind indica si kind es un tipo de movimiento conocido.
func ValidMovementKind(kind string) bool {
	switch kind {
	case entity.MovementKindIn, entity.MovementKindOut, entity.MovementKindAdjust,
		entity.MovementKindXferIn, entity.MovementKindXferOut:
		return true
	}
	return false
}

// ValidDocumentType indica si t es un tipo de documento conocido.
func ValidDocumentType(t string) bool {
	switch t {
	case entity.DocumentTypeIn, entity.DocumentTypeOut, entity.DocumentTypeAdjust:
		return true
	}
	return false
}
