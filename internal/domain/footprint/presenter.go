package footprint

import (
	"fmt"
	"math"
	"sort"
)

// EmissionUnit is the unit of every estimate.
const EmissionUnit = "kg CO2/month"

// PredictionFailedMessage is all a user sees when an estimate cannot be
// produced. The underlying reason is only logged.
const PredictionFailedMessage = "Prediction failed. Please review your answers and try again."

// FormatEstimate renders the result line shown to the user.
func FormatEstimate(value float64) string {
	return fmt.Sprintf("Estimated Carbon Emission: %.2f %s", value, EmissionUnit)
}

// Contributor is one bar of the contributor chart. The value is the raw
// answer, so bars of different units share one axis.
type Contributor struct {
	Field string  `json:"field"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RankContributors orders the six numeric answers by raw value, largest
// first. Equal values keep their fixed field order.
func RankContributors(s Survey) []Contributor {
	items := []Contributor{
		{Field: ColGroceryBill, Label: "Grocery Bill", Value: s.GroceryBill},
		{Field: ColVehicleDistance, Label: "Vehicle Distance", Value: s.VehicleDistanceKm},
		{Field: ColScreenHours, Label: "TV/PC Hours", Value: s.ScreenHours},
		{Field: ColNewClothes, Label: "New Clothes", Value: float64(s.NewClothes)},
		{Field: ColInternetHours, Label: "Internet Hours", Value: s.InternetHours},
		{Field: ColWasteBagCount, Label: "Waste Count", Value: float64(s.WasteBagCount)},
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	return items
}

// BarWidths scales contributor values to integer widths in [0, max].
func BarWidths(items []Contributor, max int) []int {
	widths := make([]int, len(items))
	if max <= 0 {
		return widths
	}
	var peak float64
	for _, it := range items {
		peak = math.Max(peak, it.Value)
	}
	if peak <= 0 {
		return widths
	}
	for i, it := range items {
		widths[i] = int(math.Round(it.Value / peak * float64(max)))
	}
	return widths
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
