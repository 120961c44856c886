package repository

// Sort keys arrive straight from the query string and end up in raw ORDER BY
// SQL, so each listing resolves them against a whitelist of orderable columns.

var clientSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"company":    "company",
	"city":       "city",
	"created_at": "created_at",
}

var itemSortColumns = map[string]string{
	"name":       "name",
	"unit_price": "unit_price",
	"created_at": "created_at",
}

var quoteSortColumns = map[string]string{
	"date":        "quotes.date",
	"valid_until": "quotes.valid_until",
	"total":       "quotes.total",
	"status":      "quotes.status",
	"created_at":  "quotes.created_at",
}

var invoiceSortColumns = map[string]string{
	"date":       "invoices.date",
	"due_date":   "invoices.due_date",
	"total":      "invoices.total",
	"status":     "invoices.status",
	"created_at": "invoices.created_at",
}

// sortColumn maps a caller-supplied sort key to a known column, falling back
// to the default for anything unrecognized.
func sortColumn(allowed map[string]string, key, fallback string) string {
	if col, ok := allowed[key]; ok {
		return col
	}
	return fallback
}
