// Package viz renders estimated probability densities in the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/randify/internal/density"
	"github.com/san-kum/randify/internal/randvar"
)

// RenderEstimate plots one density estimate as an ASCII graph with a
// stats caption.
func RenderEstimate(name string, est *density.Estimate, width, height int) string {
	caption := fmt.Sprintf("pdf(%s)  support [%.4g, %.4g]",
		name, est.Support[0], est.Support[len(est.Support)-1])
	graph := asciigraph.Plot(est.Density,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)

	var b strings.Builder
	b.WriteString(cyan.Render(graph))
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("mean=%.6g  var=%.6g  skew=%.4g  exkurt=%.4g  h=%.4g",
		est.Mean, est.Variance, est.Skewness, est.Kurtosis, est.Bandwidth)))
	b.WriteString("\n")
	return b.String()
}

// RenderVariable plots every element of a random variable's estimated
// density. Vector-valued variables get one plot per element.
func RenderVariable(name string, rv *randvar.RandomVariable, width, height int) (string, error) {
	ests, err := rv.EstimatePDF()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for k, est := range ests {
		label := name
		if len(ests) > 1 {
			label = fmt.Sprintf("%s[%d]", name, k)
		}
		b.WriteString(RenderEstimate(label, est, width, height))
	}
	return b.String(), nil
}
