package recon

import (
	"github.com/itac-tools/reportrecon/internal/energy"
)

// FieldSummary aggregates the per-field outcomes of a general-info
// comparison. Validated counts fields present on both sides.
type FieldSummary struct {
	TotalFields      int `json:"total_fields"`
	MatchedFields    int `json:"matched_fields"`
	MismatchedFields int `json:"mismatched_fields"`
	MissingInExcel   int `json:"missing_in_excel"`
	ValidatedFields  int `json:"validated_fields"`
}

// GeneralComparison is the field-by-field reconciliation of the two
// general-information records, keyed by canonical field.
type GeneralComparison struct {
	Fields  map[string]Result `json:"fields"`
	Summary FieldSummary      `json:"summary"`
}

// CompareGeneralInfo reconciles the document-side record against the
// workbook-side one. The document side decides which fields get checked; a
// field the workbook lacks counts as missing, not as a mismatch.
func CompareGeneralInfo(docInfo, excelInfo map[string]any, tolerance float64) GeneralComparison {
	cmp := GeneralComparison{Fields: make(map[string]Result, len(docInfo))}
	for field, docVal := range docInfo {
		excelVal := excelInfo[field]
		res := Compare(docVal, excelVal, tolerance)

		cmp.Summary.TotalFields++
		if excelVal != nil {
			cmp.Summary.ValidatedFields++
			if res.Match {
				cmp.Summary.MatchedFields++
			} else {
				cmp.Summary.MismatchedFields++
			}
		} else {
			cmp.Summary.MissingInExcel++
			res.ValidationStatus = StatusNotInExcel
		}
		cmp.Fields[field] = res
	}
	return cmp
}

// TypeComparison reconciles one energy type across the two reports.
// ExcelData is nil when the workbook has no entry of this type.
type TypeComparison struct {
	DocData          energy.Entry      `json:"doc_data"`
	ExcelData        *energy.Entry     `json:"excel_data"`
	CostComparison   Result            `json:"cost_comparison"`
	UsageComparison  map[string]Result `json:"usage_comparison"`
	ValidationStatus string            `json:"validation_status"`
}

// EnergySummary aggregates the per-type outcomes plus the grand-total
// check.
type EnergySummary struct {
	TotalTypes          int     `json:"total_types"`
	MatchedTypes        int     `json:"matched_types"`
	MismatchedTypes     int     `json:"mismatched_types"`
	MissingInExcel      int     `json:"missing_in_excel"`
	ValidatedTypes      int     `json:"validated_types"`
	TotalCostMatch      bool    `json:"total_cost_match"`
	DocTotalCost        float64 `json:"doc_total_cost"`
	ExcelTotalCost      float64 `json:"excel_total_cost"`
	TotalCostComparison Result  `json:"total_cost_comparison"`
}

// EnergyComparison is the type-by-type reconciliation of the two energy
// reports, keyed by canonical type.
type EnergyComparison struct {
	EnergyTypes map[string]TypeComparison `json:"energy_types"`
	Summary     EnergySummary             `json:"summary"`
}

// CompareEnergyData reconciles the document-side energy report against the
// workbook-side one. The document side decides which types get checked.
// Costs compare directly; usage compares unit by unit where the unit keys
// overlap, and a lone document unit also matches a workbook-side generic
// "value" entry. The grand total compares the summed document costs
// against the workbook's reported utility total, falling back to its
// energy total. Duplicate types within a report collapse to the last
// entry.
func CompareEnergyData(doc, excel energy.Report, tolerance float64) EnergyComparison {
	cmp := EnergyComparison{EnergyTypes: make(map[string]TypeComparison, len(doc.Data))}

	docTypes := make(map[string]energy.Entry, len(doc.Data))
	for _, e := range doc.Data {
		docTypes[e.Type] = e
	}
	excelTypes := make(map[string]energy.Entry, len(excel.Data))
	for _, e := range excel.Data {
		excelTypes[e.Type] = e
	}

	for typ, docItem := range docTypes {
		excelItem, present := excelTypes[typ]

		var excelCost any
		status := StatusNotInExcel
		if present {
			excelCost = excelItem.Cost
			status = StatusValidated
		}

		tc := TypeComparison{
			DocData:          docItem,
			CostComparison:   Compare(docItem.Cost, excelCost, tolerance),
			UsageComparison:  map[string]Result{},
			ValidationStatus: status,
		}
		if present {
			tc.ExcelData = &excelItem
		}

		if len(docItem.Usage) > 0 && len(excelItem.Usage) > 0 {
			for unit, value := range docItem.Usage {
				if ev, ok := excelItem.Usage[unit]; ok {
					tc.UsageComparison[unit] = Compare(value, ev, tolerance)
				} else if ev, ok := excelItem.Usage["value"]; ok && len(docItem.Usage) == 1 {
					tc.UsageComparison[unit] = Compare(value, ev, tolerance)
				}
			}
		}

		cmp.EnergyTypes[typ] = tc
		cmp.Summary.TotalTypes++
		if present {
			cmp.Summary.ValidatedTypes++
			if tc.CostComparison.Match {
				cmp.Summary.MatchedTypes++
			} else {
				cmp.Summary.MismatchedTypes++
			}
		} else {
			cmp.Summary.MissingInExcel++
		}
	}

	var docTotal float64
	for _, e := range doc.Data {
		docTotal += e.Cost
	}
	excelTotal := excel.Summary["total_utility_cost"]
	if excelTotal == 0 {
		excelTotal = excel.Summary["total_energy_cost"]
	}

	total := Compare(docTotal, excelTotal, tolerance)
	cmp.Summary.DocTotalCost = docTotal
	cmp.Summary.ExcelTotalCost = excelTotal
	cmp.Summary.TotalCostMatch = total.Match
	cmp.Summary.TotalCostComparison = total
	return cmp
}
