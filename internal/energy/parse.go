package energy

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	usagePattern    = regexp.MustCompile(`[\(]?([0-9,]+\.?[0-9]*)\s+([A-Za-z/]+)[\)]?`)
	costStrip       = regexp.MustCompile(`[\$,/yr\s]`)
	numberPattern   = regexp.MustCompile(`\d+\.?\d*`)
	unitCostPattern = regexp.MustCompile(`\$([0-9,]+\.?[0-9]*)/([A-Za-z]+)`)
	valueJunk       = regexp.MustCompile(`[,\s]`)

	betweenPeriod = regexp.MustCompile(`(?i)between\s+(\w+\s+\d{4})\s+and\s+(\w+\s+\d{4})`)
	rangePeriod   = regexp.MustCompile(`(?i)(?:from\s+)?(\w+\s+\d{4})(?:\s+(?:to|-)\s+)(\w+\s+\d{4})`)
)

// ParseUsage extracts every "<number> <unit>" occurrence from a usage cell
// into a unit → value map. A cell can cite the same quantity in several
// units, e.g. "649,680 kWh/yr (2,217 MMBTU/yr)".
func ParseUsage(text string) map[string]float64 {
	usage := map[string]float64{}
	for _, m := range usagePattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(valueJunk.ReplaceAllString(m[1], ""), 64)
		if err != nil {
			continue
		}
		usage[m[2]] = value
	}
	return usage
}

// ParseCost strips currency symbols, separators, and per-year suffixes from
// a cost cell and returns the first number found, defaulting to zero.
func ParseCost(text string) float64 {
	clean := costStrip.ReplaceAllString(text, "")
	if m := numberPattern.FindString(clean); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v
		}
	}
	return 0
}

// ParseUnitCost parses a "$X.XX/unit" cell. Placeholder dashes and cells
// without that shape yield nil.
func ParseUnitCost(text string) *UnitCost {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "-" {
		return nil
	}
	m := unitCostPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &UnitCost{Amount: amount, Unit: m[2]}
}

// ParsePeriod extracts a reporting window from narrative text, preferring an
// explicit "between X and Y" phrasing over "from X to Y" and "X - Y" forms.
func ParsePeriod(text string) (Period, bool) {
	if m := betweenPeriod.FindStringSubmatch(text); m != nil {
		return Period{Start: m[1], End: m[2]}, true
	}
	if m := rangePeriod.FindStringSubmatch(text); m != nil {
		return Period{Start: m[1], End: m[2]}, true
	}
	return Period{}, false
}
