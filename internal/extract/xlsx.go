package extract

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/itac-tools/reportrecon/internal/energy"
	"github.com/itac-tools/reportrecon/internal/gridscan"
	"github.com/itac-tools/reportrecon/internal/normalize"
)

// Assessment workbooks carry their structured data on three known sheets.
const (
	generalInfoSheet    = "General Info"
	energyWasteSheet    = "Energy-Waste Info"
	recommendationSheet = "Recommendation Info"
)

// Column caps. Sheets with phantom dimensions get a sane default, and the
// structured sheets never need more than their template width.
const (
	defaultScanCols    = 50
	hardScanColCap     = 100
	keyValueColCap     = 20
	energyWasteColCap  = 15
	recommendationCols = 35
)

// scanConcurrency bounds the per-sheet scan workers.
const scanConcurrency = 4

// SheetScan is the generic scan result for one sheet: detected key-value
// rows, detected tables, and the raw dimensions. Err is set when the scan
// of this sheet failed; the rest of the workbook is unaffected.
type SheetScan struct {
	Name      string              `json:"-"`
	KeyValues []gridscan.KeyValue `json:"key_values"`
	Tables    []gridscan.Table    `json:"tables"`
	MaxRow    int                 `json:"max_row"`
	MaxCol    int                 `json:"max_column"`
	Err       string              `json:"error,omitempty"`
}

// Workbook is the full extraction of an assessment workbook: the generic
// per-sheet scan plus the structured records from the three known sheets.
type Workbook struct {
	SheetNames      []string             `json:"sheet_names"`
	Sheets          map[string]SheetScan `json:"sheets"`
	GeneralInfo     map[string]any       `json:"general_info"`
	EnergyWaste     energy.Report        `json:"energy_waste_info"`
	Recommendations RecommendationInfo   `json:"recommendation_info"`
}

// RecommendationInfo holds the parsed assessment recommendation rows and
// their aggregate totals.
type RecommendationInfo struct {
	Recommendations []map[string]any   `json:"recommendations"`
	Summary         map[string]float64 `json:"summary"`
}

// FromGrids extracts everything from a decoded workbook. maxCols further
// caps how many columns the generic scan examines; 0 means no extra cap.
func FromGrids(grids []*gridscan.Grid, maxCols int) *Workbook {
	wb := &Workbook{
		SheetNames:      make([]string, 0, len(grids)),
		Sheets:          ScanWorkbook(grids, maxCols),
		GeneralInfo:     GeneralInfoRecord(grids),
		EnergyWaste:     EnergyWasteReport(grids),
		Recommendations: RecommendationReport(grids),
	}
	for _, g := range grids {
		wb.SheetNames = append(wb.SheetNames, g.Name)
	}
	return wb
}

// ScanWorkbook runs the generic detectors over every sheet. Sheets scan
// concurrently; results are keyed by sheet name so output does not depend
// on completion order. A failure in one sheet is recorded on its entry and
// does not abort the others.
func ScanWorkbook(grids []*gridscan.Grid, maxCols int) map[string]SheetScan {
	scans := make([]SheetScan, len(grids))

	var g errgroup.Group
	g.SetLimit(scanConcurrency)
	for i, grid := range grids {
		g.Go(func() error {
			scans[i] = scanSheet(grid, maxCols)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]SheetScan, len(scans))
	for _, s := range scans {
		out[s.Name] = s
	}
	return out
}

func scanSheet(g *gridscan.Grid, maxCols int) (scan SheetScan) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("extract: sheet scan failed",
				zap.String("sheet", g.Name),
				zap.Any("cause", r),
			)
			scan = SheetScan{
				Name:      g.Name,
				KeyValues: []gridscan.KeyValue{},
				Tables:    []gridscan.Table{},
				Err:       fmt.Sprint(r),
			}
		}
	}()

	actual := g.MaxCol()
	if actual == 0 {
		actual = defaultScanCols
	}
	if actual > hardScanColCap {
		actual = hardScanColCap
	}
	if maxCols > 0 && actual > maxCols {
		actual = maxCols
	}
	kvCol := actual
	if kvCol > keyValueColCap {
		kvCol = keyValueColCap
	}

	return SheetScan{
		Name:      g.Name,
		KeyValues: gridscan.DetectKeyValues(g, kvCol),
		Tables:    gridscan.DetectTables(g, actual),
		MaxRow:    g.MaxRow(),
		MaxCol:    g.MaxCol(),
	}
}

// GeneralInfoRecord reads the first two columns of the General Info sheet
// into a canonical field record. Labels canonicalize through the field
// alias tables; product fields keep their raw string, everything else gets
// numeric coercion. Later rows win on duplicate keys.
func GeneralInfoRecord(grids []*gridscan.Grid) map[string]any {
	info := map[string]any{}
	g := findGrid(grids, generalInfoSheet)
	if g == nil {
		zap.L().Warn("extract: sheet not found", zap.String("sheet", generalInfoSheet))
		return info
	}
	for r := 1; r <= g.MaxRow(); r++ {
		raw := strings.TrimSpace(g.Cell(r, 1).String())
		if raw == "" {
			continue
		}
		// Banner row, not a field.
		if strings.EqualFold(gridscan.CleanKey(raw), "GENERAL INFO") {
			continue
		}
		key, aliased := normalize.FieldKey(raw)
		if key == "" {
			continue
		}
		if normalize.ProductKey(key, aliased) {
			info[key] = strings.TrimSpace(g.Cell(r, 2).String())
			continue
		}
		info[key] = gridscan.CoerceNumeric(g.Cell(r, 2))
	}
	return info
}

var electricalTypes = map[string]bool{
	"electrical_energy": true,
	"electrical_demand": true,
	"electrical_fees":   true,
}

// EnergyWasteReport reads the first detected table on the Energy-Waste Info
// sheet into an energy report. Column roles come from the cleaned header
// names: the template's duplicate Consumption and Cost columns hold the
// real figures, col_5 the units, col_12 an occasional rightmost total.
func EnergyWasteReport(grids []*gridscan.Grid) energy.Report {
	rep := energy.Report{Data: []energy.Entry{}}
	g := findGrid(grids, energyWasteSheet)
	if g == nil {
		zap.L().Warn("extract: sheet not found", zap.String("sheet", energyWasteSheet))
		return rep
	}

	maxCol := g.MaxCol()
	if maxCol == 0 || maxCol > energyWasteColCap {
		maxCol = energyWasteColCap
	}
	tables := gridscan.DetectTables(g, maxCol)
	if len(tables) == 0 {
		return rep
	}
	main := tables[0]

	var totalEnergy, totalElectrical, totalUtility float64
	for _, row := range main.Rows {
		var (
			source      string
			consumption any
			cost        any
			unitCost    any
			units       string
			totalCost   float64
		)
		for _, h := range main.Headers {
			v := row[h]
			key := strings.ToLower(h)
			switch {
			case strings.Contains(key, "energy"), strings.Contains(key, "waste"), strings.Contains(key, "info"):
				if s := strings.TrimSpace(anyText(v)); s != "" {
					source = s
				}
			case key == "consumption_2":
				// The second Consumption column carries the figures.
				consumption = coerceValue(v)
			case key == "cost_2":
				cost = coerceValue(v)
			case key == "cost":
				if !truthy(cost) {
					cost = coerceValue(v)
				}
			case key == "col_5":
				if s := strings.TrimSpace(anyText(v)); s != "" && !strings.EqualFold(s, "n/a") {
					units = s
				}
			case strings.Contains(key, "unit") && strings.Contains(key, "cost"):
				unitCost = coerceValue(v)
			case key == "col_12":
				if f, ok := v.(float64); ok && f > 0 {
					totalCost = f
				}
			}
		}

		if source == "" || (consumption == nil && cost == nil) {
			continue
		}

		usage := map[string]float64{}
		if c, ok := consumption.(float64); ok {
			if units != "" {
				unitKey := units
				if !strings.HasSuffix(unitKey, "/yr") {
					unitKey += "/yr"
				}
				usage[unitKey] = c
			} else {
				usage["value"] = c
			}
		}

		var uc *energy.UnitCost
		if a, ok := unitCost.(float64); ok && a != 0 {
			unit := "unknown"
			if units != "" {
				unit = strings.TrimSpace(strings.ReplaceAll(units, "per ", ""))
			}
			uc = &energy.UnitCost{Amount: a, Unit: unit}
		}

		finalCost, _ := cost.(float64)
		if totalCost > 0 && totalCost > finalCost {
			finalCost = totalCost
		}

		typ := normalize.EnergyType(source)
		rep.Data = append(rep.Data, energy.Entry{
			Type:         typ,
			OriginalName: source,
			Usage:        usage,
			Cost:         finalCost,
			UnitCost:     uc,
		})

		if finalCost > 0 {
			if typ == "total_utility" {
				// Stored separately so the grand total is not counted twice.
				totalUtility = finalCost
			} else {
				totalEnergy += finalCost
				if electricalTypes[typ] {
					totalElectrical += finalCost
				}
			}
		}
	}

	utility := totalUtility
	if utility <= 0 {
		utility = totalEnergy
	}
	sources := 0
	for _, e := range rep.Data {
		if e.Cost > 0 {
			sources++
		}
	}
	rep.Summary = map[string]float64{
		"total_energy_cost":     totalEnergy,
		"total_electrical_cost": totalElectrical,
		"total_utility_cost":    utility,
		"num_energy_sources":    float64(sources),
		"total_data_entries":    float64(len(rep.Data)),
	}
	return rep
}

// RecommendationReport reads the first detected table on the Recommendation
// Info sheet. Columns are recognized by header substrings; a row must yield
// at least two recognized fields to count as a recommendation.
func RecommendationReport(grids []*gridscan.Grid) RecommendationInfo {
	info := RecommendationInfo{
		Recommendations: []map[string]any{},
		Summary:         map[string]float64{},
	}
	g := findGrid(grids, recommendationSheet)
	if g == nil {
		zap.L().Warn("extract: sheet not found", zap.String("sheet", recommendationSheet))
		return info
	}

	maxCol := g.MaxCol()
	if maxCol == 0 || maxCol > recommendationCols {
		maxCol = recommendationCols
	}
	tables := gridscan.DetectTables(g, maxCol)
	if len(tables) == 0 {
		return info
	}
	main := tables[0]

	var totalSavings, totalCost float64
	for _, row := range main.Rows {
		rec := map[string]any{}
		for _, h := range main.Headers {
			v := row[h]
			if strings.TrimSpace(anyText(v)) == "" {
				continue
			}
			key := strings.ToLower(h)
			switch {
			case strings.Contains(key, "arc") && strings.Contains(key, "code"):
				rec["arc_code"] = coerceValue(v)
			case strings.Contains(key, "app") && strings.Contains(key, "code"):
				rec["app_code"] = coerceValue(v)
			case strings.Contains(key, "description"):
				rec["description"] = strings.TrimSpace(anyText(v))
			case strings.Contains(key, "primary") && strings.Contains(key, "resource"):
				rec["primary_resource"] = strings.TrimSpace(anyText(v))
			case strings.Contains(key, "unit") && strings.Contains(key, "savings"):
				rec["unit_savings"] = coerceValue(v)
			case strings.Contains(key, "savings") && strings.Contains(key, "$"):
				rec["dollar_savings"] = coerceValue(v)
			case strings.Contains(key, "cost") && strings.Contains(key, "capital"):
				rec["capital_cost"] = coerceValue(v)
			case strings.Contains(key, "cost") && strings.Contains(key, "other"):
				rec["other_cost"] = coerceValue(v)
			}
		}
		if len(rec) < 2 {
			continue
		}
		info.Recommendations = append(info.Recommendations, rec)
		if f, ok := rec["dollar_savings"].(float64); ok {
			totalSavings += f
		}
		if f, ok := rec["capital_cost"].(float64); ok {
			totalCost += f
		}
		if f, ok := rec["other_cost"].(float64); ok {
			totalCost += f
		}
	}

	payback := 0.0
	if totalSavings > 0 {
		payback = totalCost / totalSavings
	}
	info.Summary = map[string]float64{
		"total_recommendations":     float64(len(info.Recommendations)),
		"total_annual_savings":      totalSavings,
		"total_implementation_cost": totalCost,
		"simple_payback_years":      payback,
	}
	return info
}

func findGrid(grids []*gridscan.Grid, name string) *gridscan.Grid {
	for _, g := range grids {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// coerceValue applies the numeric coercion rules to a value already lifted
// out of a scanned table row.
func coerceValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	default:
		return v
	}
}

func anyText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
