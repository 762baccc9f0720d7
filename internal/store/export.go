// Package store exports simulation results for external tooling.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/randify/internal/randvar"
)

type ExportData struct {
	Scenario string       `json:"scenario"`
	Trials   int          `json:"trials"`
	Seed     uint64       `json:"seed"`
	Outputs  []OutputData `json:"outputs"`
}

type OutputData struct {
	Name      string      `json:"name"`
	Samples   [][]float64 `json:"samples,omitempty"`
	Estimates []Density   `json:"estimates"`
}

type Density struct {
	Support   []float64 `json:"support"`
	Density   []float64 `json:"density"`
	Bandwidth float64   `json:"bandwidth"`
	Mean      float64   `json:"mean"`
	Variance  float64   `json:"variance"`
	Skewness  float64   `json:"skewness"`
	Kurtosis  float64   `json:"kurtosis"`
}

// FromOutputs flattens named output variables into exportable form.
// Names and vars must align; withSamples additionally embeds the raw
// per-trial sample record.
func FromOutputs(scenario string, trials int, seed uint64, names []string,
	vars []*randvar.RandomVariable, withSamples bool) (*ExportData, error) {

	if len(names) != len(vars) {
		return nil, fmt.Errorf("store: %d names for %d outputs", len(names), len(vars))
	}
	data := &ExportData{
		Scenario: scenario,
		Trials:   trials,
		Seed:     seed,
		Outputs:  make([]OutputData, len(vars)),
	}
	for i, rv := range vars {
		out := OutputData{Name: names[i]}
		ests, err := rv.EstimatePDF()
		if err != nil {
			return nil, fmt.Errorf("store: output %s: %w", names[i], err)
		}
		for _, e := range ests {
			out.Estimates = append(out.Estimates, Density{
				Support:   e.Support,
				Density:   e.Density,
				Bandwidth: e.Bandwidth,
				Mean:      e.Mean,
				Variance:  e.Variance,
				Skewness:  e.Skewness,
				Kurtosis:  e.Kurtosis,
			})
		}
		if withSamples && rv.Mode() == randvar.Empirical {
			samples, err := rv.SampleN(rv.Len())
			if err != nil {
				return nil, fmt.Errorf("store: output %s: %w", names[i], err)
			}
			out.Samples = make([][]float64, len(samples))
			for j, s := range samples {
				out.Samples[j] = s
			}
		}
		data.Outputs[i] = out
	}
	return data, nil
}

// ExportJSON writes data as indented JSON to path.
func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, data)
}

// ExportJSONStdout writes data as indented JSON to standard output.
func ExportJSONStdout(data *ExportData) error {
	return writeJSON(os.Stdout, data)
}

func writeJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
