package parser

import (
	"strconv"
	"strings"

	"crescer-uniformes/models"
)

// ParseItem splits a raw item line such as "2 vestidos tam 4" or "3 polos T-6"
// into quantity, product and size.
func ParseItem(raw string) models.ParsedItem {
	quantity := 1
	if m := leadingQuantity.FindString(raw); m != "" {
		// zero or overflowing quantities fall back to one unit
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			quantity = n
		}
	}

	clean := quantityPrefix.ReplaceAllString(raw, "")

	size := models.StandardSize
	if m := sizeLabel.FindStringSubmatch(clean); m != nil {
		size = strings.ToUpper(m[1])
		clean = strings.TrimSpace(strings.Replace(clean, m[0], "", 1))
	} else if m := trailingNumber.FindStringSubmatch(clean); m != nil {
		size = m[1]
		clean = strings.TrimSpace(strings.Replace(clean, m[0], "", 1))
	}

	product := strings.TrimSpace(productResidue.ReplaceAllString(clean, ""))
	if product == "" {
		product = models.UndefinedItem
	}

	return models.ParsedItem{
		Quantity: quantity,
		Product:  product,
		Size:     size,
	}
}
