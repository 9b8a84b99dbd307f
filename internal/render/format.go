package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/druckwerk/belegdesigner/internal/placeholder"
)

// dateLayout prints day.month.year as German business documents expect.
const dateLayout = "02.01.2006"

// formatValue renders a resolved context value according to the catalog's
// type hint. Formatting never fails; values that do not fit the hint fall
// back to their plain-text form.
func formatValue(value any, hint placeholder.ValueType) string {
	switch hint {
	case placeholder.TypeCurrency:
		if f, ok := toFloat(value); ok {
			return formatCurrency(f)
		}
	case placeholder.TypeDate:
		if t, ok := toTime(value); ok {
			return t.Format(dateLayout)
		}
	case placeholder.TypeQuantity:
		if f, ok := toFloat(value); ok {
			return formatQuantity(f)
		}
	}
	return plainText(value)
}

// formatCurrency renders two decimals with a comma separator and the euro
// suffix: 1234.5 → "1234,50 €".
func formatCurrency(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1) + " €"
}

func formatQuantity(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1)
}

func plainText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case time.Time:
		return typed.Format(dateLayout)
	case *time.Time:
		if typed == nil {
			return ""
		}
		return typed.Format(dateLayout)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(typed), ",", ".", 1), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return typed, true
	case *time.Time:
		if typed == nil {
			return time.Time{}, false
		}
		return *typed, true
	case string:
		for _, layout := range []string{time.RFC3339, dateLayout, "2006-01-02"} {
			if t, err := time.Parse(layout, strings.TrimSpace(typed)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
