package footprint

// Input widget kinds used by the form renderer.
const (
	InputSelect      = "select"
	InputRadio       = "radio"
	InputNumber      = "number"
	InputMultiSelect = "multiselect"
)

// Form is the sectioned layout of the survey.
type Form struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section groups related fields.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field describes one widget. Key matches the Survey json/form tag.
type Field struct {
	Key     string   `json:"key"`
	Column  string   `json:"column"`
	Label   string   `json:"label"`
	Input   string   `json:"input"`
	Options []string `json:"options,omitempty"`
	Integer bool     `json:"integer,omitempty"`
	Min     float64  `json:"min"`
	Default any      `json:"default"`
}

// SurveyForm returns the canonical sectioned form with widget defaults.
func SurveyForm() Form {
	d := DefaultSurvey()
	return Form{
		Title: "Carbon Footprint Tracker",
		Sections: []Section{
			{
				Title: "Personal",
				Fields: []Field{
					choice("bodyType", ColBodyType, "Body Type", InputSelect, BodyTypes, d.BodyType),
					choice("sex", ColSex, "Sex", InputRadio, Sexes, d.Sex),
					choice("diet", ColDiet, "Diet", InputSelect, Diets, d.Diet),
					choice("shower", ColShower, "How Often Shower", InputSelect, ShowerFrequencies, d.Shower),
					choice("socialActivity", ColSocialActivity, "Social Activity", InputSelect, SocialActivities, d.SocialActivity),
				},
			},
			{
				Title: "Travel",
				Fields: []Field{
					choice("transport", ColTransport, "Transport", InputSelect, TransportModes, d.Transport),
					choice("vehicleType", ColVehicleType, "Vehicle Type", InputSelect, VehicleTypes, d.VehicleType),
					number("vehicleDistanceKm", ColVehicleDistance, "Vehicle Monthly Distance Km", false, d.VehicleDistanceKm),
					choice("airTravel", ColAirTravel, "Frequency of Traveling by Air", InputSelect, AirTravelFrequency, d.AirTravel),
				},
			},
			{
				Title: "Home & Energy",
				Fields: []Field{
					choice("heatingSource", ColHeatingSource, "Heating Energy Source", InputSelect, HeatingSources, d.HeatingSource),
					choice("energyEfficiency", ColEnergyEfficiency, "Energy efficiency", InputSelect, EnergyEfficiency, d.EnergyEfficiency),
					multi("cookingWith", ColCookingWith, "Cooking With", CookingOptions),
					number("screenHours", ColScreenHours, "How Long TV/PC Daily Hour", false, d.ScreenHours),
					number("internetHours", ColInternetHours, "How Long Internet Daily Hour", false, d.InternetHours),
				},
			},
			{
				Title: "Waste",
				Fields: []Field{
					choice("wasteBagSize", ColWasteBagSize, "Waste Bag Size", InputSelect, WasteBagSizes, d.WasteBagSize),
					number("wasteBagCount", ColWasteBagCount, "Waste Bag Weekly Count", true, d.WasteBagCount),
					multi("recycling", ColRecycling, "Recycling", RecyclingOptions),
				},
			},
			{
				Title: "Consumption",
				Fields: []Field{
					number("groceryBill", ColGroceryBill, "Monthly Grocery Bill", false, d.GroceryBill),
					number("newClothes", ColNewClothes, "How Many New Clothes Monthly", true, d.NewClothes),
				},
			},
		},
	}
}

func choice(key, column, label, input string, options []string, def string) Field {
	return Field{Key: key, Column: column, Label: label, Input: input, Options: options, Default: def}
}

func number(key, column, label string, integer bool, def any) Field {
	return Field{Key: key, Column: column, Label: label, Input: InputNumber, Integer: integer, Default: def}
}

func multi(key, column, label string, options []string) Field {
	return Field{Key: key, Column: column, Label: label, Input: InputMultiSelect, Options: options, Default: []string{}}
}
