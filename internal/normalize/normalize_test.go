package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		aliased bool
	}{
		{"SIC. No.", "sic_no", true},
		{"SIC No", "sic_no", true},
		{"SIC Code (4 Digits)", "sic_no", true},
		{"SIC Code: (4 Digits)", "sic_no", true},
		{"sic no.", "sic_no", true},
		{"NAICS Code (6 Digits)", "naics_code", true},
		{"Principle Product", "principal_product", true},
		{"# of Employees", "no_of_employees", true},
		{"Plant Area (sqft.)", "total_facility_area", true},
		{"Production Hrs. Annual", "operating_hours", true},
		{"Annual Sales ($)", "annual_sales", true},
		{"Value per Finished Product", "value_per_finished_product", true},
		{"No. of Assessment Recommendations:", "no_of_assessment_recommendations", true},
		{"Steam Capacity(LBM/Hr)", "steam_capacity_lbm_hr", true},
		{"  Total   Utility  Cost ", "total_utility_cost", true},
		{"Plant Manager", "plant_manager", false},
		{"Boiler Pressure (PSIG)", "boiler_pressure_psig", false},
		{"", "", false},
	}
	for _, tt := range tests {
		key, aliased := FieldKey(tt.raw)
		assert.Equal(t, tt.want, key, "FieldKey(%q)", tt.raw)
		assert.Equal(t, tt.aliased, aliased, "FieldKey(%q) aliased", tt.raw)
	}
}

func TestFieldKeyIdempotent(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"SIC No.", "Annual Sales ($)", "Plant Manager", "Total Utility Cost"} {
		key, _ := FieldKey(raw)
		again, _ := FieldKey(key)
		assert.Equal(t, key, again, "FieldKey(FieldKey(%q))", raw)
	}
}

func TestEnergyType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"Electrical Energy", "electrical_energy"},
		{"ELECTRICITY", "electrical_energy"},
		{"Electric Consumption", "electrical_energy"},
		{"Demand", "electrical_demand"},
		{"Demand Charge", "demand_charge"},
		{"L.P.G.", "propane_gas"},
		{"#2 Fuel Oil", "fuel_oil"},
		{"Fuel Oil #6", "fuel_oil"},
		{"Wood", "biomass"},
		{"Water Usage", "water"},
		{"Water", "water"},
		{"Solid Waste (non-haz)", "solid_waste_non_haz"},
		{"Total", "total_utility"},
		{"TotalUtility", "total_utility"},
		{"Waste Heat & Recovery", "waste_heat_and_recovery"},
		{"Bio-Gas/Landfill", "bio_gas_landfill"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnergyType(tt.raw), "EnergyType(%q)", tt.raw)
	}
}

func TestEnergyTypeIdempotent(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"Electrical Energy", "Total", "Solid Waste (haz)", "Bio-Gas"} {
		key := EnergyType(raw)
		assert.Equal(t, key, EnergyType(key), "EnergyType(EnergyType(%q))", raw)
	}
}

func TestProductKey(t *testing.T) {
	t.Parallel()

	assert.True(t, ProductKey("principal_product", true))
	assert.True(t, ProductKey("principal_products", true))
	assert.False(t, ProductKey("value_per_finished_product", true),
		"aliased non-product fields stay numeric")
	assert.True(t, ProductKey("secondary_product_line", false))
	assert.False(t, ProductKey("shift_count", false))
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	_, err := load([]byte("fields: [not a map"))
	require.Error(t, err)
}

func TestTablesLoaded(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, canon.fields)
	require.NotEmpty(t, canon.energy)
	assert.True(t, canon.product["principal_product"])
}
