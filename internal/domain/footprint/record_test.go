package footprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var expectedColumns = []string{
	"Body Type",
	"Sex",
	"Diet",
	"How Often Shower",
	"Heating Energy Source",
	"Transport",
	"Vehicle Type",
	"Social Activity",
	"Monthly Grocery Bill",
	"Frequency of Traveling by Air",
	"Vehicle Monthly Distance Km",
	"Waste Bag Size",
	"Waste Bag Weekly Count",
	"How Long TV PC Daily Hour",
	"How Many New Clothes Monthly",
	"How Long Internet Daily Hour",
	"Energy efficiency",
	"Recycling",
	"Cooking_With",
}

func scenarioSurvey() Survey {
	return Survey{
		BodyType:          "normal",
		Sex:               "male",
		Diet:              "omnivore",
		Shower:            "daily",
		HeatingSource:     "electricity",
		Transport:         "private",
		VehicleType:       "petrol",
		SocialActivity:    "sometimes",
		GroceryBill:       200,
		AirTravel:         "rarely",
		VehicleDistanceKm: 100,
		WasteBagSize:      "medium",
		WasteBagCount:     1,
		ScreenHours:       5,
		NewClothes:        5,
		InternetHours:     5,
		EnergyEfficiency:  "Yes",
		Recycling:         []string{"Paper"},
		CookingWith:       []string{"Stove"},
	}
}

func TestBuildRecordScenario(t *testing.T) {
	record := BuildRecord(scenarioSurvey())
	require.Equal(t, 19, record.Len())

	table := record.Table()
	require.Equal(t, expectedColumns, table.Columns)
	require.Len(t, table.Data, 1)
	require.Equal(t, []any{
		"normal", "male", "omnivore", "daily", "electricity", "private", "petrol", "sometimes",
		200.0, "rarely", 100.0, "medium", 1.0, 5.0, 5.0, 5.0, "Yes",
		[]string{"Paper"}, []string{"Stove"},
	}, table.Data[0])
}

func TestColumnsMatchRecordOrder(t *testing.T) {
	cols := Columns()
	require.Len(t, cols, 19)
	cells := BuildRecord(DefaultSurvey()).Cells()
	for i, col := range cols {
		require.Equal(t, expectedColumns[i], col.Name)
		require.Equal(t, col.Name, cells[i].Column)
		require.Equal(t, col.Kind, cells[i].Kind)
	}
}

func TestBuildRecordEveryEnumValue(t *testing.T) {
	domains := map[string][]string{
		"bodyType":         BodyTypes,
		"sex":              Sexes,
		"diet":             Diets,
		"shower":           ShowerFrequencies,
		"heatingSource":    HeatingSources,
		"transport":        TransportModes,
		"vehicleType":      VehicleTypes,
		"socialActivity":   SocialActivities,
		"airTravel":        AirTravelFrequency,
		"wasteBagSize":     WasteBagSizes,
		"energyEfficiency": EnergyEfficiency,
	}
	for field, values := range domains {
		for _, v := range values {
			s := DefaultSurvey()
			switch field {
			case "bodyType":
				s.BodyType = v
			case "sex":
				s.Sex = v
			case "diet":
				s.Diet = v
			case "shower":
				s.Shower = v
			case "heatingSource":
				s.HeatingSource = v
			case "transport":
				s.Transport = v
			case "vehicleType":
				s.VehicleType = v
			case "socialActivity":
				s.SocialActivity = v
			case "airTravel":
				s.AirTravel = v
			case "wasteBagSize":
				s.WasteBagSize = v
			case "energyEfficiency":
				s.EnergyEfficiency = v
			}
			normalized, err := Normalize(s)
			require.NoError(t, err, "%s=%q", field, v)
			record := BuildRecord(normalized)
			require.Equal(t, expectedColumns, record.Table().Columns)
		}
	}
}

func TestBuildRecordNilSetsBecomeEmpty(t *testing.T) {
	s := DefaultSurvey()
	s.Recycling = nil
	s.CookingWith = nil

	cell, ok := BuildRecord(s).Lookup(ColRecycling)
	require.True(t, ok)
	require.Equal(t, KindSet, cell.Kind)
	require.NotNil(t, cell.Items)
	require.Empty(t, cell.Items)
}

func TestRecordIsNotAliasedToSurvey(t *testing.T) {
	s := scenarioSurvey()
	record := BuildRecord(s)
	s.Recycling[0] = "Metal"

	cell, ok := record.Lookup(ColRecycling)
	require.True(t, ok)
	require.Equal(t, []string{"Paper"}, cell.Items)

	cells := record.Cells()
	cells[17].Items[0] = "Glass"
	cell, _ = record.Lookup(ColRecycling)
	require.Equal(t, []string{"Paper"}, cell.Items)
}

func TestLookupUnknownColumn(t *testing.T) {
	_, ok := BuildRecord(DefaultSurvey()).Lookup("CarbonEmission")
	require.False(t, ok)
}
