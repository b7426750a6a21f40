package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sadpig70/PAT-System/internal/sim"
)

type AgreementData struct {
	Property       string  `json:"property"`
	SimMean        float64 `json:"sim_mean"`
	ExpMean        float64 `json:"exp_mean"`
	RelativeError  float64 `json:"relative_error"`
	Within2Percent bool    `json:"within_2percent"`
}

type ReportData struct {
	Samples    int             `json:"samples"`
	Passed     bool            `json:"passed"`
	Properties []AgreementData `json:"properties"`
}

func newReportData(samples int, report sim.AgreementReport) ReportData {
	data := ReportData{
		Samples:    samples,
		Passed:     report.Passed(),
		Properties: make([]AgreementData, len(report)),
	}
	for i, a := range report {
		data.Properties[i] = AgreementData{
			Property:       a.Property.String(),
			SimMean:        a.SimMean,
			ExpMean:        a.ExpMean,
			RelativeError:  a.RelativeError,
			Within2Percent: a.Within2Percent,
		}
	}
	return data
}

// WriteReportJSON encodes the agreement report as indented JSON.
func WriteReportJSON(w io.Writer, samples int, report sim.AgreementReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReportData(samples, report))
}

func ExportReportJSON(path string, samples int, report sim.AgreementReport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReportJSON(file, samples, report); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
