package footprint

import "slices"

// ColumnKind describes how a feature column is typed.
type ColumnKind string

const (
	KindCategorical ColumnKind = "categorical"
	KindNumeric     ColumnKind = "numeric"
	KindSet         ColumnKind = "set"
)

// Column names use the spelling of the training data set; Label is what the form shows.
const (
	ColBodyType         = "Body Type"
	ColSex              = "Sex"
	ColDiet             = "Diet"
	ColShower           = "How Often Shower"
	ColHeatingSource    = "Heating Energy Source"
	ColTransport        = "Transport"
	ColVehicleType      = "Vehicle Type"
	ColSocialActivity   = "Social Activity"
	ColGroceryBill      = "Monthly Grocery Bill"
	ColAirTravel        = "Frequency of Traveling by Air"
	ColVehicleDistance  = "Vehicle Monthly Distance Km"
	ColWasteBagSize     = "Waste Bag Size"
	ColWasteBagCount    = "Waste Bag Weekly Count"
	ColScreenHours      = "How Long TV PC Daily Hour"
	ColNewClothes       = "How Many New Clothes Monthly"
	ColInternetHours    = "How Long Internet Daily Hour"
	ColEnergyEfficiency = "Energy efficiency"
	ColRecycling        = "Recycling"
	ColCookingWith      = "Cooking_With"
)

// Column is one entry of the feature schema.
type Column struct {
	Name  string     `json:"name"`
	Label string     `json:"label"`
	Kind  ColumnKind `json:"kind"`
}

var schema = []Column{
	{ColBodyType, "Body Type", KindCategorical},
	{ColSex, "Sex", KindCategorical},
	{ColDiet, "Diet", KindCategorical},
	{ColShower, "How Often Shower", KindCategorical},
	{ColHeatingSource, "Heating Energy Source", KindCategorical},
	{ColTransport, "Transport", KindCategorical},
	{ColVehicleType, "Vehicle Type", KindCategorical},
	{ColSocialActivity, "Social Activity", KindCategorical},
	{ColGroceryBill, "Monthly Grocery Bill", KindNumeric},
	{ColAirTravel, "Frequency of Traveling by Air", KindCategorical},
	{ColVehicleDistance, "Vehicle Monthly Distance Km", KindNumeric},
	{ColWasteBagSize, "Waste Bag Size", KindCategorical},
	{ColWasteBagCount, "Waste Bag Weekly Count", KindNumeric},
	{ColScreenHours, "How Long TV/PC Daily Hour", KindNumeric},
	{ColNewClothes, "How Many New Clothes Monthly", KindNumeric},
	{ColInternetHours, "How Long Internet Daily Hour", KindNumeric},
	{ColEnergyEfficiency, "Energy efficiency", KindCategorical},
	{ColRecycling, "Recycling", KindSet},
	{ColCookingWith, "Cooking With", KindSet},
}

// Columns returns the ordered schema the model was trained against.
func Columns() []Column {
	return slices.Clone(schema)
}

// Cell is a single typed value of a FeatureRecord. Only the field matching
// Kind is meaningful.
type Cell struct {
	Column   string     `json:"column"`
	Kind     ColumnKind `json:"kind"`
	Category string     `json:"category,omitempty"`
	Number   float64    `json:"number,omitempty"`
	Items    []string   `json:"items,omitempty"`
}

// Value returns the cell content as a plain value (string, float64 or []string).
func (c Cell) Value() any {
	switch c.Kind {
	case KindNumeric:
		return c.Number
	case KindSet:
		return slices.Clone(c.Items)
	default:
		return c.Category
	}
}

// FeatureRecord is the single-row model input. It is built once per
// submission and never mutated afterwards.
type FeatureRecord struct {
	cells []Cell
}

// Table is the single-row tabular encoding of a FeatureRecord.
type Table struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// BuildRecord maps survey answers onto the fixed column order.
func BuildRecord(s Survey) FeatureRecord {
	values := []any{
		s.BodyType,
		s.Sex,
		s.Diet,
		s.Shower,
		s.HeatingSource,
		s.Transport,
		s.VehicleType,
		s.SocialActivity,
		s.GroceryBill,
		s.AirTravel,
		s.VehicleDistanceKm,
		s.WasteBagSize,
		float64(s.WasteBagCount),
		s.ScreenHours,
		float64(s.NewClothes),
		s.InternetHours,
		s.EnergyEfficiency,
		s.Recycling,
		s.CookingWith,
	}

	cells := make([]Cell, len(schema))
	for i, col := range schema {
		cell := Cell{Column: col.Name, Kind: col.Kind}
		switch v := values[i].(type) {
		case string:
			cell.Category = v
		case float64:
			cell.Number = v
		case []string:
			cell.Items = slices.Clone(v)
			if cell.Items == nil {
				cell.Items = []string{}
			}
		}
		cells[i] = cell
	}
	return FeatureRecord{cells: cells}
}

// Len reports the number of columns in the record.
func (r FeatureRecord) Len() int {
	return len(r.cells)
}

// Cells returns a copy of the ordered cells.
func (r FeatureRecord) Cells() []Cell {
	out := make([]Cell, len(r.cells))
	for i, c := range r.cells {
		c.Items = slices.Clone(c.Items)
		out[i] = c
	}
	return out
}

// Lookup finds a cell by column name.
func (r FeatureRecord) Lookup(name string) (Cell, bool) {
	for _, c := range r.cells {
		if c.Column == name {
			return c, true
		}
	}
	return Cell{}, false
}

// Table wraps the record as a one-row table.
func (r FeatureRecord) Table() Table {
	cols := make([]string, len(r.cells))
	row := make([]any, len(r.cells))
	for i, c := range r.cells {
		cols[i] = c.Column
		row[i] = c.Value()
	}
	return Table{Columns: cols, Data: [][]any{row}}
}
