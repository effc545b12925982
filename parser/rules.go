package parser

import (
	"regexp"
	"strings"

	"crescer-uniformes/models"
)

// SchoolKeywords are matched as substrings of the uppercased line, in this order
var SchoolKeywords = []string{
	"TRINUM",
	"DIANTE DO APRENDER",
	"CRESCIMENTO",
	"BABYTOOM",
	"CHILD TIME",
	"MAPLE BEAR",
	"SANTA TERESA",
	"AUDAZ",
	"CIRANDA",
}

const (
	// FallbackSchool is used when a header matched but no keyword could be picked
	FallbackSchool = "TRINUM"
	// UnknownSchool marks content that appeared before the first header
	UnknownSchool = "UNKNOWN"
	// DefaultAreaCode is prefixed to 8 and 9 digit phone numbers (São Luís, MA)
	DefaultAreaCode = "98"
)

// Whitespace classes also accept \p{Zs}, which covers non-breaking spaces
var (
	phonePattern      = regexp.MustCompile(`(\d{2})?[\s\p{Zs}]?9?[\s\p{Zs}]?\d{4}[\s\p{Zs}-]?\d{4}`)
	phoneLabelPattern = regexp.MustCompile(`(?i)contato|:|cont\.?`)
	namedLinePattern  = regexp.MustCompile(`(?i)^(Mãe|Mae|Pai|Contato|Nome)[:\s\p{Zs}]`)
	namedLinePrefix   = regexp.MustCompile(`(?i)^(Mãe|Mae|Pai|Contato|Nome)[:\s\p{Zs}]*`)
	itemPattern       = regexp.MustCompile(`(?i)(polo|calça|bermuda|regata|short|saia|vestido|conjunto|camisa)`)
	digitPattern      = regexp.MustCompile(`\d`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
	pagoFragment      = regexp.MustCompile(`(?i)[- ]?pago`)
	nameLabelResidue  = regexp.MustCompile(`(?i)cont\.?|:`)

	leadingQuantity = regexp.MustCompile(`^(\d+)`)
	quantityPrefix  = regexp.MustCompile(`^\d+[\s\p{Zs}]*`)
	sizeLabel       = regexp.MustCompile(`(?i)\b(?:tam\.?|t-?|size)[:\s\p{Zs}]*(\w+)`)
	trailingNumber  = regexp.MustCompile(`[\s\p{Zs}](\d+)$`)
	productResidue  = regexp.MustCompile(`[-:]`)
)

// matchSchool returns the first keyword found in the line
func matchSchool(line string) (string, bool) {
	upper := strings.ToUpper(line)
	for _, school := range SchoolKeywords {
		if strings.Contains(upper, school) {
			return school, true
		}
	}
	return "", false
}

// paymentFromText guesses a payment status from one piece of text.
// PAGO wins over METADE/50% when both appear.
func paymentFromText(text string) models.PaymentStatus {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "PAGO") {
		return models.PaymentPaidInFull
	}
	if strings.Contains(upper, "METADE") || strings.Contains(upper, "50%") {
		return models.PaymentPartial
	}
	return models.PaymentPending
}

func mentionsPago(text string) bool {
	return strings.Contains(strings.ToUpper(text), "PAGO")
}

// NormalizePhone keeps the digits and prefixes the default area code
// to numbers that came without one.
func NormalizePhone(phone string) string {
	cleaned := nonDigitPattern.ReplaceAllString(phone, "")
	if len(cleaned) == 8 || len(cleaned) == 9 {
		cleaned = DefaultAreaCode + cleaned
	}
	return cleaned
}

// DigitsOnly strips everything but digits
func DigitsOnly(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}
