// Package recon reconciles the two extractions of one assessment: field by
// field for general information, type by type for energy data, under a
// relative tolerance with a small mismatch taxonomy.
package recon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTolerance is the relative tolerance for numeric agreement.
const DefaultTolerance = 0.01

// Mismatch classifications.
const (
	MissingValue    = "missing_value"
	TextMismatch    = "text_mismatch"
	NumericMismatch = "numeric_mismatch"
	TypeMismatch    = "type_mismatch"
)

// Validation statuses.
const (
	StatusValidated  = "validated"
	StatusNotInExcel = "not_in_excel"
)

const notAvailable = "N/A"

// Result is the outcome of comparing one document-side value against its
// workbook-side counterpart.
type Result struct {
	DocValue         any    `json:"doc_value"`
	ExcelValue       any    `json:"excel_value"`
	Match            bool   `json:"match"`
	MismatchType     string `json:"mismatch_type,omitempty"`
	Difference       string `json:"difference,omitempty"`
	FormattedDoc     string `json:"formatted_doc"`
	FormattedExcel   string `json:"formatted_excel"`
	ValidationStatus string `json:"validation_status,omitempty"`
}

// Compare reconciles two values under the given relative tolerance.
// Absence decides first: two absent values agree, exactly one absent is a
// missing_value mismatch. Text on either side forces a case-insensitive
// trimmed comparison. Numeric pairs match when |a-b|/|b| stays within
// tolerance (exact equality when b is zero), with the relative difference
// recorded as a percentage either way. Anything else falls back to raw
// string equality.
func Compare(doc, excel any, tolerance float64) Result {
	res := Result{
		DocValue:       doc,
		ExcelValue:     excel,
		FormattedDoc:   formatRaw(doc),
		FormattedExcel: formatRaw(excel),
	}

	if doc == nil && excel == nil {
		res.Match = true
		return res
	}
	if doc == nil || excel == nil {
		res.MismatchType = MissingValue
		return res
	}

	_, docText := doc.(string)
	_, excelText := excel.(string)
	if docText || excelText {
		a := strings.ToLower(strings.TrimSpace(formatRaw(doc)))
		b := strings.ToLower(strings.TrimSpace(formatRaw(excel)))
		res.Match = a == b
		if !res.Match {
			res.MismatchType = TextMismatch
		}
		return res
	}

	docNum, docOK := toFloat(doc)
	excelNum, excelOK := toFloat(excel)
	if !docOK || !excelOK {
		res.Match = fmt.Sprint(doc) == fmt.Sprint(excel)
		if !res.Match {
			res.MismatchType = TypeMismatch
		}
		return res
	}

	res.FormattedDoc = formatNumber(docNum)
	res.FormattedExcel = formatNumber(excelNum)

	if excelNum != 0 {
		rel := math.Abs(docNum-excelNum) / math.Abs(excelNum)
		res.Difference = fmt.Sprintf("%.1f%%", rel*100)
		res.Match = rel <= tolerance
	} else {
		res.Match = docNum == excelNum
	}
	if !res.Match {
		res.MismatchType = NumericMismatch
	}
	return res
}

var printer = message.NewPrinter(language.English)

// formatNumber renders a numeric value for display: a million and up gets
// thousands separators (two decimals when fractional), smaller values show
// two decimals when fractional and plain integer form otherwise.
func formatNumber(n float64) string {
	integral := n == math.Trunc(n)
	if n >= 1e6 {
		if integral {
			return printer.Sprintf("%.0f", n)
		}
		return printer.Sprintf("%.2f", n)
	}
	if integral {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', 2, 64)
}

// formatRaw is the pre-comparison rendering: absent values read "N/A",
// numbers use their shortest decimal form.
func formatRaw(v any) string {
	switch t := v.(type) {
	case nil:
		return notAvailable
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
