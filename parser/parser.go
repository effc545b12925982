// Package parser turns the free-text order lists copied from messaging apps
// into staging orders. Parsing is a pure function of the input text.
//
// Expected input looks like:
//
//	TRINUM - pago
//	Maria 98 99999-9999
//	2 vestidos tam 4
//	1 polo T-6
//
//	CRESCIMENTO metade
//	Mãe: Joana
//	3 bermudas 8
//
// Every school header opens a new order; lines before the first header go to
// an order with school UNKNOWN.
package parser

import (
	"fmt"
	"io"
	"strings"

	"crescer-uniformes/models"
)

// Parse converts the whole text into staging orders, in file order.
// It never fails: lines that match no rule are absorbed or dropped.
func Parse(text string) []models.StagingOrder {
	orders := []models.StagingOrder{}
	acc := accumulator{}

	for _, line := range splitLines(text) {
		var emitted *models.StagingOrder
		acc, emitted = acc.consume(line)
		if emitted != nil {
			orders = append(orders, *emitted)
		}
	}

	if acc.open {
		orders = append(orders, finalize(acc.order))
	}
	return orders
}

// ParseReader reads r to the end and parses its content
func ParseReader(r io.Reader) ([]models.StagingOrder, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read order list: %w", err)
	}
	return Parse(string(content)), nil
}

// splitLines returns the trimmed, non-blank lines of text
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Summary counts what a parse run produced
type Summary struct {
	Orders           int `json:"orders"`
	Items            int `json:"items"`
	UnknownCustomers int `json:"unknownCustomers"`
	WithoutPhone     int `json:"withoutPhone"`
	Headerless       int `json:"headerless"`
}

// Summarize computes a Summary for a batch of parsed orders
func Summarize(orders []models.StagingOrder) Summary {
	s := Summary{Orders: len(orders)}
	for _, o := range orders {
		s.Items += len(o.ParsedItems)
		if o.CustomerName == models.UnknownCustomer {
			s.UnknownCustomers++
		}
		if o.Phone == "" {
			s.WithoutPhone++
		}
		if o.School == UnknownSchool {
			s.Headerless++
		}
	}
	return s
}
