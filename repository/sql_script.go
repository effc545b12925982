package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"crescer-uniformes/models"
)

// RenderInsertScript renders the staging INSERT statements for orders as a
// standalone SQL script, for loading through a SQL console instead of a
// direct connection.
func RenderInsertScript(orders []models.StagingOrder) (string, error) {
	var b strings.Builder
	for _, o := range orders {
		rawItems, err := json.Marshal(nonNilStrings(o.Items))
		if err != nil {
			return "", fmt.Errorf("failed to encode raw items: %w", err)
		}
		parsedItems, err := json.Marshal(nonNilItems(o.ParsedItems))
		if err != nil {
			return "", fmt.Errorf("failed to encode parsed items: %w", err)
		}

		fmt.Fprintf(&b,
			"INSERT INTO imported_orders (raw_header, customer_name, phone, school, payment_status, original_text, raw_items, parsed_items, status) VALUES (%s, %s, %s, %s, %s, %s, %s, %s, 'pending');\n",
			sqlLiteral(o.RawHeader),
			sqlLiteral(o.CustomerName),
			sqlLiteral(o.Phone),
			sqlLiteral(o.School),
			sqlLiteral(string(o.PaymentStatus)),
			sqlLiteral(o.OriginalText()),
			sqlLiteral(string(rawItems)),
			sqlLiteral(string(parsedItems)),
		)
	}
	return b.String(), nil
}

// sqlLiteral quotes s as a SQL string literal; empty strings become NULL
func sqlLiteral(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
