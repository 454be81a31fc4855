package render

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one billable entry of an invoice, as seen by the aggregation
// helpers.
type LineItem struct {
	Description string
	Amount      decimal.Decimal
	Tax         decimal.Decimal
	Quantity    int64
}

// Total returns (Amount + Tax) × Quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.Amount.Add(li.Tax).Mul(decimal.NewFromInt(li.Quantity))
}

// ToDecimal converts v to a decimal. Strings are parsed after trimming
// spaces. The boolean is false for nil, non-numeric and non-finite values.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return fromUint(uint64(n)), true
	case uint8:
		return decimal.NewFromInt(int64(n)), true
	case uint16:
		return decimal.NewFromInt(int64(n)), true
	case uint32:
		return decimal.NewFromInt(int64(n)), true
	case uint64:
		return fromUint(n), true
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		return fromString(n.String())
	case string:
		return fromString(n)
	default:
		return decimal.Zero, false
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromString(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Sum adds every argument that parses as a number.
func Sum(values ...any) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		if d, ok := ToDecimal(v); ok {
			total = total.Add(d)
		}
	}
	return total
}

// Product multiplies every argument that parses as a number.
func Product(values ...any) decimal.Decimal {
	total := decimal.NewFromInt(1)
	for _, v := range values {
		if d, ok := ToDecimal(v); ok {
			total = total.Mul(d)
		}
	}
	return total
}

// Format rounds x half away from zero to two decimals and renders exactly
// two decimal digits. Non-numeric values format as zero.
func Format(x any) string {
	d, _ := ToDecimal(x)
	return d.StringFixed(2)
}

// Subtotal returns Σ amount × quantity.
func Subtotal(items any) decimal.Decimal {
	total := decimal.Zero
	for _, li := range LineItems(items) {
		total = total.Add(li.Amount.Mul(decimal.NewFromInt(li.Quantity)))
	}
	return total
}

// TaxTotal returns Σ tax × quantity.
func TaxTotal(items any) decimal.Decimal {
	total := decimal.Zero
	for _, li := range LineItems(items) {
		total = total.Add(li.Tax.Mul(decimal.NewFromInt(li.Quantity)))
	}
	return total
}

// GrandTotal returns Σ (amount + tax) × quantity.
func GrandTotal(items any) decimal.Decimal {
	total := decimal.Zero
	for _, li := range LineItems(items) {
		total = total.Add(li.Total())
	}
	return total
}

// LineItems coerces a list of item records into LineItems. It accepts
// []LineItem, []map[string]any, []any of maps and any other slice of
// string-keyed maps. Missing or non-numeric fields count as zero; entries
// that are not records are skipped.
func LineItems(items any) []LineItem {
	switch v := items.(type) {
	case nil:
		return nil
	case []LineItem:
		return v
	case []map[string]any:
		out := make([]LineItem, 0, len(v))
		for _, m := range v {
			out = append(out, lineItemFromMap(m))
		}
		return out
	}

	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}

	out := make([]LineItem, 0, rv.Len())
	for i := range rv.Len() {
		switch entry := rv.Index(i).Interface().(type) {
		case LineItem:
			out = append(out, entry)
		case map[string]any:
			out = append(out, lineItemFromMap(entry))
		}
	}
	return out
}

func lineItemFromMap(m map[string]any) LineItem {
	li := LineItem{}
	if s, ok := m["description"].(string); ok {
		li.Description = s
	}
	li.Amount, _ = ToDecimal(m["amount"])
	li.Tax, _ = ToDecimal(m["tax"])
	if q, ok := ToDecimal(m["quantity"]); ok {
		li.Quantity = q.IntPart()
	}
	return li
}
