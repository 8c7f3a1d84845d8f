package footprint

import (
	"fmt"
	"math"
	"slices"

	apperrors "github.com/yanqian/carbon-footprint/pkg/errors"
)

// Allowed values for every enumerated survey answer.
var (
	BodyTypes          = []string{"underweight", "normal", "overweight", "obese"}
	Sexes              = []string{"male", "female"}
	Diets              = []string{"vegan", "vegetarian", "pescatarian", "omnivore"}
	ShowerFrequencies  = []string{"less frequently", "daily", "twice a day", "more frequently"}
	HeatingSources     = []string{"wood", "coal", "electricity", "natural gas", "lpg"}
	TransportModes     = []string{"public", "private", "walk/bicycle"}
	VehicleTypes       = []string{"petrol", "diesel", "hybrid", "electric", "lpg", ""}
	SocialActivities   = []string{"never", "sometimes", "often"}
	AirTravelFrequency = []string{"never", "rarely", "frequently", "very frequently"}
	WasteBagSizes      = []string{"small", "medium", "large", "extra large"}
	EnergyEfficiency   = []string{"Yes", "No", "Sometimes"}
	RecyclingOptions   = []string{"Paper", "Plastic", "Glass", "Metal"}
	CookingOptions     = []string{"Stove", "Oven", "Microwave", "Grill", "Airfryer"}
)

// Survey holds the typed answers gathered by the input collector.
type Survey struct {
	BodyType          string   `json:"bodyType" form:"bodyType"`
	Sex               string   `json:"sex" form:"sex"`
	Diet              string   `json:"diet" form:"diet"`
	Shower            string   `json:"shower" form:"shower"`
	HeatingSource     string   `json:"heatingSource" form:"heatingSource"`
	Transport         string   `json:"transport" form:"transport"`
	VehicleType       string   `json:"vehicleType" form:"vehicleType"`
	SocialActivity    string   `json:"socialActivity" form:"socialActivity"`
	GroceryBill       float64  `json:"groceryBill" form:"groceryBill"`
	AirTravel         string   `json:"airTravel" form:"airTravel"`
	VehicleDistanceKm float64  `json:"vehicleDistanceKm" form:"vehicleDistanceKm"`
	WasteBagSize      string   `json:"wasteBagSize" form:"wasteBagSize"`
	WasteBagCount     int      `json:"wasteBagCount" form:"wasteBagCount"`
	ScreenHours       float64  `json:"screenHours" form:"screenHours"`
	NewClothes        int      `json:"newClothes" form:"newClothes"`
	InternetHours     float64  `json:"internetHours" form:"internetHours"`
	EnergyEfficiency  string   `json:"energyEfficiency" form:"energyEfficiency"`
	Recycling         []string `json:"recycling" form:"recycling"`
	CookingWith       []string `json:"cookingWith" form:"cookingWith"`
}

// DefaultSurvey mirrors the initial state of the form widgets.
func DefaultSurvey() Survey {
	return Survey{
		BodyType:          BodyTypes[0],
		Sex:               Sexes[0],
		Diet:              "omnivore",
		Shower:            "daily",
		HeatingSource:     HeatingSources[0],
		Transport:         "public",
		VehicleType:       VehicleTypes[0],
		SocialActivity:    SocialActivities[0],
		GroceryBill:       200,
		AirTravel:         AirTravelFrequency[0],
		VehicleDistanceKm: 100,
		WasteBagSize:      WasteBagSizes[0],
		WasteBagCount:     1,
		ScreenHours:       5,
		NewClothes:        5,
		InternetHours:     5,
		EnergyEfficiency:  EnergyEfficiency[0],
		Recycling:         []string{},
		CookingWith:       []string{},
	}
}

// Normalize enforces the widget constraints and returns a copy with
// multi-select answers deduplicated and ordered like their option list.
func Normalize(s Survey) (Survey, error) {
	enums := []struct {
		label   string
		value   string
		allowed []string
	}{
		{"Body Type", s.BodyType, BodyTypes},
		{"Sex", s.Sex, Sexes},
		{"Diet", s.Diet, Diets},
		{"How Often Shower", s.Shower, ShowerFrequencies},
		{"Heating Energy Source", s.HeatingSource, HeatingSources},
		{"Transport", s.Transport, TransportModes},
		{"Vehicle Type", s.VehicleType, VehicleTypes},
		{"Social Activity", s.SocialActivity, SocialActivities},
		{"Frequency of Traveling by Air", s.AirTravel, AirTravelFrequency},
		{"Waste Bag Size", s.WasteBagSize, WasteBagSizes},
		{"Energy efficiency", s.EnergyEfficiency, EnergyEfficiency},
	}
	for _, e := range enums {
		if !slices.Contains(e.allowed, e.value) {
			return Survey{}, invalidInput("%s must be one of %q, got %q", e.label, e.allowed, e.value)
		}
	}

	numbers := []struct {
		label string
		value float64
	}{
		{"Monthly Grocery Bill", s.GroceryBill},
		{"Vehicle Monthly Distance Km", s.VehicleDistanceKm},
		{"Waste Bag Weekly Count", float64(s.WasteBagCount)},
		{"How Long TV/PC Daily Hour", s.ScreenHours},
		{"How Many New Clothes Monthly", float64(s.NewClothes)},
		{"How Long Internet Daily Hour", s.InternetHours},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return Survey{}, invalidInput("%s must be a finite number", n.label)
		}
		if n.value < 0 {
			return Survey{}, invalidInput("%s cannot be negative", n.label)
		}
	}

	recycling, err := normalizeSet("Recycling", s.Recycling, RecyclingOptions)
	if err != nil {
		return Survey{}, err
	}
	cooking, err := normalizeSet("Cooking With", s.CookingWith, CookingOptions)
	if err != nil {
		return Survey{}, err
	}

	out := s
	out.Recycling = recycling
	out.CookingWith = cooking
	return out, nil
}

func normalizeSet(label string, items, allowed []string) ([]string, error) {
	for _, item := range items {
		if !slices.Contains(allowed, item) {
			return nil, invalidInput("%s contains unsupported option %q", label, item)
		}
	}
	out := make([]string, 0, len(items))
	for _, option := range allowed {
		if slices.Contains(items, option) {
			out = append(out, option)
		}
	}
	return out, nil
}

func invalidInput(format string, args ...any) error {
	return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf(format, args...), nil)
}
