package inventory

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-]{2,49}$`)

// GenerateSKU arma "CAT-XXXXXXXX": tres primeras letras de la categoría y 8 hex en mayúscula.
func GenerateSKU(category string) string {
	prefix := strings.ToUpper(category)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return prefix + "-" + randomHex(8)
}

// NormalizeSKU recorta y pasa a mayúsculas un SKU ingresado manualmente; valida el formato.
func NormalizeSKU(sku string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(sku))
	if !skuPattern.MatchString(s) {
		return "", fmt.Errorf("sku inválido %q: solo A-Z, 0-9 y guiones (3-50 caracteres)", sku)
	}
	return s, nil
}

// GenerateOrderNumber "YYYYMMDD-XXXXXX" para órdenes de compra.
func GenerateOrderNumber(now time.Time) string {
	return now.Format("20060102") + "-" + randomHex(6)
}

func randomHex(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:n]
}
