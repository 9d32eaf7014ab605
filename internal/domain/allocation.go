package domain

// CostCategory is one of the operating-cost types of the BetrKV that an
// invoice can be allocated to.
type CostCategory string

const (
	CategoryPropertyTax     CostCategory = "Grundsteuer"
	CategoryColdWater       CostCategory = "Kaltwasser"
	CategoryDrainage        CostCategory = "Entwässerung"
	CategoryHeating         CostCategory = "Heizkosten"
	CategoryHotWater        CostCategory = "Warmwasserversorgung"
	CategoryCaretaker       CostCategory = "Hausmeister"
	CategoryInsurance       CostCategory = "Sach- & Haftpflichtversicherung"
	CategoryWasteCollection CostCategory = "Müllabfuhr"
	CategoryElevators       CostCategory = "Aufzüge"
	CategoryStreetCleaning  CostCategory = "Straßenreinigung"
	CategoryBuildingClean   CostCategory = "Gebäudereinigung"
	CategoryGardening       CostCategory = "Gartenpflege"
	CategoryLighting        CostCategory = "Beleuchtung"
	CategoryChimneySweep    CostCategory = "Schornsteinfeger"

	// CategoryOther is returned when no known category is recognised.
	CategoryOther CostCategory = "Other"
)

// Allocation keys used to split a category among tenants.
const (
	KeyLivingArea           = "living area in sqm"
	KeyConsumption          = "consumption"
	KeyUnits                = "number of units"
	KeyUnitsExcludingGround = "number of units excluding ground floor"
	KeyUnknown              = "Unknown"
)

// AllocationRule binds a cost category to its allocation key.
type AllocationRule struct {
	Category      CostCategory `json:"category"`
	AllocationKey string       `json:"allocation_key"`
}

// allocationRules is ordered; classification scans it front to back and
// the first match wins.
var allocationRules = []AllocationRule{
	{CategoryPropertyTax, KeyLivingArea},
	{CategoryColdWater, KeyConsumption},
	{CategoryDrainage, KeyLivingArea},
	{CategoryHeating, KeyConsumption},
	{CategoryHotWater, KeyConsumption},
	{CategoryCaretaker, KeyUnits},
	{CategoryInsurance, KeyUnits},
	{CategoryWasteCollection, KeyUnits},
	{CategoryElevators, KeyUnitsExcludingGround},
	{CategoryStreetCleaning, KeyUnits},
	{CategoryBuildingClean, KeyLivingArea},
	{CategoryGardening, KeyLivingArea},
	{CategoryLighting, KeyLivingArea},
	{CategoryChimneySweep, KeyLivingArea},
}

var allocationIndex = func() map[CostCategory]string {
	m := make(map[CostCategory]string, len(allocationRules)+1)
	for _, r := range allocationRules {
		m[r.Category] = r.AllocationKey
	}
	m[CategoryOther] = KeyUnknown
	return m
}()

// AllocationRules returns a copy of the rule table in declared order.
// The Other fallback is not part of the table.
func AllocationRules() []AllocationRule {
	out := make([]AllocationRule, len(allocationRules))
	copy(out, allocationRules)
	return out
}

// KnownCategories returns the 14 category names in declared order.
func KnownCategories() []CostCategory {
	out := make([]CostCategory, len(allocationRules))
	for i, r := range allocationRules {
		out[i] = r.Category
	}
	return out
}

// AllocationKeyFor looks up the allocation key for a category. Unknown
// categories resolve like Other.
func AllocationKeyFor(c CostCategory) string {
	if k, ok := allocationIndex[c]; ok {
		return k
	}
	return KeyUnknown
}

// IsKnownCategory reports whether c is one of the 14 table categories.
func IsKnownCategory(c CostCategory) bool {
	_, ok := allocationIndex[c]
	return ok && c != CategoryOther
}
