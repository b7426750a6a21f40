package sim

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func tableWith(p Column, values ...float64) *Table {
	t := NewTable(len(values))
	copy(t.Column(p), values)
	return t
}

var _ = Describe("Simulator", func() {
	var s *Simulator

	BeforeEach(func() {
		s = New(DefaultConfig())
	})

	Context("generating 100 samples with seed 42", func() {
		var table *Table

		BeforeEach(func() {
			var err error
			table, err = s.Generate(100)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps temperatures inside the process range", func() {
			Expect(table.Column(Temperature)).To(HaveEach(And(
				BeNumerically(">=", 1500),
				BeNumerically("<=", 1800),
			)))
		})

		It("keeps crystallite sizes inside the clip range", func() {
			Expect(table.Column(CrystalliteSize)).To(HaveEach(And(
				BeNumerically(">=", 400),
				BeNumerically("<=", 2200),
			)))
		})

		It("reproduces the first row on a fresh simulator", func() {
			again, err := New(DefaultConfig()).Generate(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Row(0)).To(Equal(table.Row(0)))
		})
	})

	It("rejects a non-positive sample count", func() {
		_, err := s.Generate(0)
		Expect(err).To(MatchError(ErrInvalidArgument))
	})

	It("has no reference to compare against by default", func() {
		table, err := s.Generate(10)
		Expect(err).NotTo(HaveOccurred())

		_, err = s.CheckAgreement(table)
		Expect(errors.Is(err, ErrNoReferenceData)).To(BeTrue())
	})
})

var _ = Describe("CompareAgreement", func() {
	It("fails without reference data", func() {
		_, err := CompareAgreement(NewTable(3), nil)
		Expect(err).To(MatchError(ErrNoReferenceData))
	})

	It("fails when no property column is shared", func() {
		_, err := CompareAgreement(NewTable(3), Reference{})
		Expect(err).To(MatchError(ErrNoReferenceData))
	})

	It("treats a 2% relative error as agreement", func() {
		table := tableWith(CrystalliteSize, 101, 103)

		report, err := CompareAgreement(table, Reference{CrystalliteSize: {100}})
		Expect(err).NotTo(HaveOccurred())
		Expect(report).To(HaveLen(1))

		a := report[0]
		Expect(a.Property).To(Equal(CrystalliteSize))
		Expect(a.SimMean).To(Equal(102.0))
		Expect(a.ExpMean).To(Equal(100.0))
		Expect(a.RelativeError).To(Equal(0.02))
		Expect(a.Within2Percent).To(BeTrue())
		Expect(report.Passed()).To(BeTrue())
	})

	It("passes when the reference mean is 1.02 times the simulated mean", func() {
		table := tableWith(ThermalConductivity, 400, 400)

		report, err := CompareAgreement(table, Reference{ThermalConductivity: {408}})
		Expect(err).NotTo(HaveOccurred())
		Expect(report[0].RelativeError).To(BeNumerically("~", 8.0/408.0, 1e-15))
		Expect(report[0].Within2Percent).To(BeTrue())
	})

	It("flags properties beyond the threshold", func() {
		table := tableWith(Bandgap, 5.85, 5.85)

		report, err := CompareAgreement(table, Reference{Bandgap: {6.0}})
		Expect(err).NotTo(HaveOccurred())

		a, ok := report.Get(Bandgap)
		Expect(ok).To(BeTrue())
		Expect(a.RelativeError).To(BeNumerically("~", 0.025, 1e-12))
		Expect(a.Within2Percent).To(BeFalse())
		Expect(report.Passed()).To(BeFalse())
	})

	It("reports only shared properties in column order", func() {
		table := NewTable(2)
		copy(table.Column(DefectDensity), []float64{1e10, 1e10})
		copy(table.Column(CrystalliteSize), []float64{900, 1100})

		ref := Reference{
			DefectDensity:   {1e10},
			CrystalliteSize: {1000, 1000},
		}
		report, err := CompareAgreement(table, ref)
		Expect(err).NotTo(HaveOccurred())
		Expect(report).To(HaveLen(2))
		Expect(report[0].Property).To(Equal(CrystalliteSize))
		Expect(report[1].Property).To(Equal(DefectDensity))
		Expect(report[0].RelativeError).To(BeZero())

		_, ok := report.Get(Bandgap)
		Expect(ok).To(BeFalse())
	})

	It("rejects a zero reference mean", func() {
		_, err := CompareAgreement(tableWith(Bandgap, 1), Reference{Bandgap: {0}})
		Expect(err).To(MatchError(ErrInvalidArgument))
	})

	DescribeTable("rejects a non-finite reference mean",
		func(v float64) {
			_, err := CompareAgreement(tableWith(Bandgap, 5.9), Reference{Bandgap: {5.9, v}})
			Expect(err).To(MatchError(ErrInvalidArgument))
		},
		Entry("nan", math.NaN()),
		Entry("positive infinity", math.Inf(1)),
		Entry("negative infinity", math.Inf(-1)),
	)
})
