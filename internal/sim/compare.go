package sim

import (
	"fmt"
	"math"

	"github.com/sadpig70/PAT-System/internal/stats"
)

// AgreementThreshold is the largest relative error still counted as
// agreement. The boundary is inclusive.
const AgreementThreshold = 0.02

type Agreement struct {
	Property       Column
	SimMean        float64
	ExpMean        float64
	RelativeError  float64
	Within2Percent bool
}

// AgreementReport lists one entry per property shared by the table and the
// reference, in column order.
type AgreementReport []Agreement

// Passed reports whether every compared property is within the threshold.
func (r AgreementReport) Passed() bool {
	for _, a := range r {
		if !a.Within2Percent {
			return false
		}
	}
	return len(r) > 0
}

// Get returns the entry for property p.
func (r AgreementReport) Get(p Column) (Agreement, bool) {
	for _, a := range r {
		if a.Property == p {
			return a, true
		}
	}
	return Agreement{}, false
}

// CompareAgreement reports the relative error between the simulated and
// reference mean of every property present in both.
func CompareAgreement(t *Table, ref Reference) (AgreementReport, error) {
	if ref == nil {
		return nil, ErrNoReferenceData
	}

	var report AgreementReport
	for _, p := range Properties() {
		if !ref.Has(p) {
			continue
		}
		expMean, err := referenceMean(ref, p)
		if err != nil {
			return nil, err
		}
		simMean := stats.Mean(t.Column(p))
		relErr := math.Abs(simMean-expMean) / math.Abs(expMean)
		report = append(report, Agreement{
			Property:       p,
			SimMean:        simMean,
			ExpMean:        expMean,
			RelativeError:  relErr,
			Within2Percent: relErr <= AgreementThreshold,
		})
	}

	if len(report) == 0 {
		return nil, fmt.Errorf("%w: reference shares no property column", ErrNoReferenceData)
	}
	return report, nil
}

// referenceMean returns the mean of ref[p]. The mean must be finite and
// non-zero for relative errors to be defined.
func referenceMean(ref Reference, p Column) (float64, error) {
	m := stats.Mean(ref[p])
	switch {
	case math.IsNaN(m) || math.IsInf(m, 0):
		return 0, &ColumnError{Column: p.String(), Row: -1, Wrapped: fmt.Errorf("%w: reference mean is not finite", ErrInvalidArgument)}
	case m == 0:
		return 0, &ColumnError{Column: p.String(), Row: -1, Wrapped: fmt.Errorf("%w: reference mean is zero", ErrInvalidArgument)}
	}
	return m, nil
}
