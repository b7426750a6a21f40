package sim

import (
	"fmt"
	"math"
)

// Column identifies one of the eight table columns.
type Column int

const (
	Temperature Column = iota
	Pressure
	GrowthTime
	BoronRatio
	CrystalliteSize
	DefectDensity
	ThermalConductivity
	Bandgap

	NumColumns = 8
)

var columnNames = [NumColumns]string{
	"temperature",
	"pressure",
	"growth_time",
	"boron_ratio",
	"crystallite_size",
	"defect_density",
	"thermal_conductivity",
	"bandgap",
}

var columnUnits = [NumColumns]string{"K", "atm", "min", "mol frac", "nm", "cm^-2", "W/m·K", "eV"}

func (c Column) String() string {
	if c < 0 || c >= NumColumns {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// Unit returns the physical unit of the column.
func (c Column) Unit() string {
	if c < 0 || c >= NumColumns {
		return ""
	}
	return columnUnits[c]
}

// IsProperty reports whether c is a derived material property.
func (c Column) IsProperty() bool {
	return c >= CrystalliteSize && c < NumColumns
}

// ParseColumn maps a CSV header name to its column.
func ParseColumn(name string) (Column, bool) {
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// Columns returns all columns in output order.
func Columns() []Column {
	return []Column{Temperature, Pressure, GrowthTime, BoronRatio, CrystalliteSize, DefectDensity, ThermalConductivity, Bandgap}
}

// ProcessColumns returns the sampled process variables in draw order.
func ProcessColumns() []Column {
	return []Column{Temperature, Pressure, GrowthTime, BoronRatio}
}

// Properties returns the derived properties in computation order.
func Properties() []Column {
	return []Column{CrystalliteSize, DefectDensity, ThermalConductivity, Bandgap}
}

// ColumnNames returns the CSV header.
func ColumnNames() []string {
	names := make([]string, NumColumns)
	copy(names, columnNames[:])
	return names
}

type Range struct {
	Min float64
	Max float64
}

func (r Range) Clip(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Ranges maps a column to its bounds.
type Ranges map[Column]Range

// DefaultProcessRanges returns the sampling intervals of the CVD process.
func DefaultProcessRanges() Ranges {
	return Ranges{
		Temperature: {1500, 1800},
		Pressure:    {1, 5},
		GrowthTime:  {30, 180},
		BoronRatio:  {0.05, 0.15},
	}
}

// DefaultPropertyRanges returns the physical clipping bounds of the
// material properties.
func DefaultPropertyRanges() Ranges {
	return Ranges{
		CrystalliteSize:     {400, 2200},
		DefectDensity:       {5e7, 2e10},
		ThermalConductivity: {390, 460},
		Bandgap:             {5.85, 6.05},
	}
}

// Table holds N samples stored column-wise. All columns have the same
// length and are index-aligned by generation order.
type Table struct {
	n    int
	cols [NumColumns][]float64
}

func NewTable(n int) *Table {
	t := &Table{n: n}
	for i := range t.cols {
		t.cols[i] = make([]float64, n)
	}
	return t
}

func (t *Table) Len() int { return t.n }

// Column returns the backing slice of c. Writes through it modify the table.
func (t *Table) Column(c Column) []float64 {
	return t.cols[c]
}

// Row returns the eight values of row i in column order.
func (t *Table) Row(i int) []float64 {
	row := make([]float64, NumColumns)
	for c := range t.cols {
		row[c] = t.cols[c][i]
	}
	return row
}

func (t *Table) Clone() *Table {
	c := NewTable(t.n)
	for i := range t.cols {
		copy(c.cols[i], t.cols[i])
	}
	return c
}

// Reference is an experimental dataset holding a subset of the property
// columns. Only the per-column mean is used.
type Reference map[Column][]float64

// Has reports whether the reference carries a non-empty column c.
func (r Reference) Has(c Column) bool {
	return len(r[c]) > 0
}
