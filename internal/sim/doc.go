// Package sim generates synthetic process-structure-property data for hBN
// CVD growth.
//
// The package defines the fixed column set and the physical ranges, and
// provides the two operations built on top of them:
//
//   - [Simulator.Generate]: draws process parameters, derives the material
//     properties and optionally calibrates them against a [Reference]
//   - [CompareAgreement]: relative-error agreement between simulated and
//     reference property means
//
// # Example
//
//	s := sim.New(sim.DefaultConfig())
//	table, err := s.Generate(1000)
//	if err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// A Simulator owns its random generator and is NOT thread-safe. Run
// independent simulations on separate Simulator instances with distinct
// seeds.
package sim
