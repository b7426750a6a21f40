package sim

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/sadpig70/PAT-System/internal/stats"
)

const (
	DefaultSeed = 42

	// CalibrationThreshold is the relative mean difference above which a
	// property column is shifted toward the reference.
	CalibrationThreshold = 0.02
	// CalibrationGain is the fraction of the mean difference applied.
	CalibrationGain = 0.98

	criticalTemperature = 1650.0
	smallGrainThreshold = 700.0
)

type Config struct {
	Seed      int64
	Reference Reference
	// Reclip clips calibrated columns back into their property ranges.
	Reclip bool
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Seed:   DefaultSeed,
		Reclip: true,
	}
}

type Simulator struct {
	rng       *rand.Rand
	process   Ranges
	property  Ranges
	reference Reference
	reclip    bool
	logger    *slog.Logger
}

func New(cfg Config) *Simulator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		process:   DefaultProcessRanges(),
		property:  DefaultPropertyRanges(),
		reference: cfg.Reference,
		reclip:    cfg.Reclip,
		logger:    logger,
	}
}

func (s *Simulator) ProcessRanges() Ranges  { return s.process }
func (s *Simulator) PropertyRanges() Ranges { return s.property }

// Generate draws n samples. Process variables are drawn in column order,
// then each property is computed and perturbed in turn, so a fixed seed
// always reproduces the same table.
func (s *Simulator) Generate(n int) (*Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidArgument, n)
	}

	t := NewTable(n)
	for _, c := range ProcessColumns() {
		s.uniform(t.Column(c), s.process[c])
	}

	temp := t.Column(Temperature)
	pressure := t.Column(Pressure)
	growth := t.Column(GrowthTime)
	boron := t.Column(BoronRatio)

	grain := t.Column(CrystalliteSize)
	for i := range grain {
		accel := 0.0
		if temp[i] > criticalTemperature {
			accel = 300 * math.Exp((temp[i]-criticalTemperature)/80)
		}
		grain[i] = 0.7*(temp[i]-1500) +
			1.2*math.Log1p(growth[i]) -
			60*(pressure[i]-1) +
			accel +
			200*math.Sin(boron[i]*math.Pi*4)
	}
	s.perturb(grain, 120, s.property[CrystalliteSize])

	defects := t.Column(DefectDensity)
	for i := range defects {
		defects[i] = 1.5e10 -
			1.2e9*math.Tanh((temp[i]-1500)/200) -
			4e9*(boron[i]-0.05)/0.1 +
			2.5e9*math.Sqrt(pressure[i])
		if grain[i] < smallGrainThreshold {
			defects[i] += 1e9
		}
	}
	s.perturb(defects, 2e8, s.property[DefectDensity])

	conductivity := t.Column(ThermalConductivity)
	for i := range conductivity {
		conductivity[i] = 412 +
			0.024*math.Sqrt(grain[i]-400) -
			1.2e-9*(defects[i]-5e7) +
			8*math.Tanh((grain[i]-1000)/700)
	}
	s.perturb(conductivity, 2.5, s.property[ThermalConductivity])

	gap := t.Column(Bandgap)
	for i := range gap {
		gap[i] = 5.97 -
			1.5e-11*(defects[i]-5e7) +
			0.01*math.Exp(-(temp[i]-1600)/100) -
			0.005*(pressure[i]-1)
	}
	s.perturb(gap, 0.007, s.property[Bandgap])

	if s.reference != nil {
		if _, err := s.Calibrate(t, s.reference); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *Simulator) uniform(dst []float64, r Range) {
	for i := range dst {
		dst[i] = r.Min + r.Width()*s.rng.Float64()
	}
}

// perturb adds N(0, std) noise to every value and clips to r.
func (s *Simulator) perturb(dst []float64, std float64, r Range) {
	for i := range dst {
		dst[i] = r.Clip(dst[i] + std*s.rng.NormFloat64())
	}
}

// Shift records a calibration offset applied to a property column.
type Shift struct {
	Property Column
	SimMean  float64
	ExpMean  float64
	Delta    float64
}

// Calibrate shifts each property column of t toward the reference mean
// when the two means differ by more than CalibrationThreshold. Every
// property must be present in ref.
func (s *Simulator) Calibrate(t *Table, ref Reference) ([]Shift, error) {
	means := make(map[Column]float64, len(Properties()))
	for _, p := range Properties() {
		if !ref.Has(p) {
			return nil, &ColumnError{Column: p.String(), Row: -1, Wrapped: ErrMissingColumn}
		}
		m, err := referenceMean(ref, p)
		if err != nil {
			return nil, err
		}
		means[p] = m
	}

	var shifts []Shift
	for _, p := range Properties() {
		col := t.Column(p)
		expMean := means[p]
		simMean := stats.Mean(col)
		diff := expMean - simMean
		if !(math.Abs(diff/expMean) > CalibrationThreshold) {
			continue
		}

		delta := diff * CalibrationGain
		r := s.property[p]
		for i := range col {
			col[i] += delta
			if s.reclip {
				col[i] = r.Clip(col[i])
			}
		}

		s.logger.Debug("calibrated property",
			"property", p.String(),
			"sim_mean", simMean,
			"exp_mean", expMean,
			"delta", delta,
			"reclip", s.reclip,
		)
		shifts = append(shifts, Shift{Property: p, SimMean: simMean, ExpMean: expMean, Delta: delta})
	}

	return shifts, nil
}

// CheckAgreement compares t against the simulator's reference.
func (s *Simulator) CheckAgreement(t *Table) (AgreementReport, error) {
	return CompareAgreement(t, s.reference)
}
