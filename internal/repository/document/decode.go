package document

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/shopspring/decimal"
)

// decimalField reads a money value stored either as a JSON number or as a string.
func decimalField(d record.Data, field string) (decimal.Decimal, bool) {
	switch v := d[field].(type) {
	case string:
		dec, err := decimal.NewFromString(strings.TrimSpace(v))
		return dec, err == nil
	case json.Number:
		dec, err := decimal.NewFromString(v.String())
		return dec, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	}
	return decimal.Zero, false
}

// dataList reads a nested array of objects in either of the shapes a store may decode it to.
func dataList(d record.Data, field string) []record.Data {
	var out []record.Data
	switch v := d[field].(type) {
	case []interface{}:
		for _, item := range v {
			switch m := item.(type) {
			case map[string]interface{}:
				out = append(out, record.Data(m))
			case record.Data:
				out = append(out, m)
			}
		}
	case []map[string]interface{}:
		for _, m := range v {
			out = append(out, record.Data(m))
		}
	case []record.Data:
		out = append(out, v...)
	}
	return out
}
