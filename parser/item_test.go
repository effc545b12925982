package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crescer-uniformes/models"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		raw  string
		want models.ParsedItem
	}{
		{"2 vestidos tam 4", models.ParsedItem{Quantity: 2, Product: "vestidos", Size: "4"}},
		{"2\u00a0vestidos\u00a0tam\u00a04", models.ParsedItem{Quantity: 2, Product: "vestidos", Size: "4"}},
		{"vestidos\u00a04", models.ParsedItem{Quantity: 1, Product: "vestidos", Size: "4"}},
		{"3 polos tam. 6", models.ParsedItem{Quantity: 3, Product: "polos", Size: "6"}},
		{"1 polo T-8", models.ParsedItem{Quantity: 1, Product: "polo", Size: "8"}},
		{"2 bermudas t 10", models.ParsedItem{Quantity: 2, Product: "bermudas", Size: "10"}},
		{"1 regata size p", models.ParsedItem{Quantity: 1, Product: "regata", Size: "P"}},
		{"1 camisa tam: gg", models.ParsedItem{Quantity: 1, Product: "camisa", Size: "GG"}},
		{"vestidos 4", models.ParsedItem{Quantity: 1, Product: "vestidos", Size: "4"}},
		{"4 saias", models.ParsedItem{Quantity: 4, Product: "saias", Size: models.StandardSize}},
		{"10short", models.ParsedItem{Quantity: 10, Product: "short", Size: models.StandardSize}},
		{"2 - calça: azul", models.ParsedItem{Quantity: 2, Product: "calça azul", Size: models.StandardSize}},
		{"3 tam 6", models.ParsedItem{Quantity: 3, Product: models.UndefinedItem, Size: "6"}},
		{"0 polos", models.ParsedItem{Quantity: 1, Product: "polos", Size: models.StandardSize}},
		{"99999999999999999999999 polos", models.ParsedItem{Quantity: 1, Product: "polos", Size: models.StandardSize}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseItem(tt.raw))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8888-7777", "9888887777"},
		{"99999-9999", "98999999999"},
		{"98 99999999", "9899999999"},
		{"(98) 98888-7777", "98988887777"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}

func TestPaymentStatusUpgrade(t *testing.T) {
	assert.Equal(t, models.PaymentPartial, models.PaymentPending.Upgrade(models.PaymentPartial))
	assert.Equal(t, models.PaymentPaidInFull, models.PaymentPartial.Upgrade(models.PaymentPaidInFull))
	assert.Equal(t, models.PaymentPaidInFull, models.PaymentPaidInFull.Upgrade(models.PaymentPartial))
	assert.Equal(t, models.PaymentPaidInFull, models.PaymentPaidInFull.Upgrade(models.PaymentPending))
	assert.Equal(t, models.PaymentPartial, models.PaymentPartial.Upgrade(models.PaymentPending))
	assert.Equal(t, models.PaymentPending, models.PaymentStatus("").Upgrade(models.PaymentPending))
}
