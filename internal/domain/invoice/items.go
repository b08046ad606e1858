package invoice

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

// Number is a lenient JSON number: it accepts numbers and numeric strings
// and records anything else as invalid instead of failing the whole body.
type Number struct {
	value float64
	valid bool
}

func Num(v float64) Number {
	return Number{value: v, valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

func (n Number) Float() (float64, bool) {
	return n.value, n.valid
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Num(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Num(f)
		}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

type RawItem struct {
	ServiceID    string `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	Deliverables string `json:"deliverables"`
	Quantity     Number `json:"quantity"`
	Price        Number `json:"price"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
}

// SanitizeItems drops lines without a service id or name and recomputes
// every subtotal; a client-sent subtotal is never trusted.
func SanitizeItems(raw []RawItem) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(raw))
	for _, r := range raw {
		id := strings.TrimSpace(r.ServiceID)
		name := strings.TrimSpace(r.ServiceName)
		if id == "" || name == "" {
			continue
		}

		qty, ok := r.Quantity.Float()
		if !ok || qty <= 0 {
			qty = 1
		}
		price, ok := r.Price.Float()
		if !ok || price < 0 {
			price = 0
		}

		items = append(items, models.InvoiceItem{
			ServiceID:    id,
			ServiceName:  name,
			Deliverables: strings.TrimSpace(r.Deliverables),
			Quantity:     qty,
			Price:        price,
			Subtotal:     qty * price,
		})
	}
	return items
}

// CalculateTotals has no tax or fee layer: total always equals subtotal.
func CalculateTotals(items []models.InvoiceItem) Totals {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal
	}
	return Totals{Subtotal: sum, Total: sum}
}
