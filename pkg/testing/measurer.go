package testing

import "golang.org/x/net/html"

// CountingMeasurer reports a fixed natural height and counts how often it
// was asked for it.
type CountingMeasurer struct {
	Height float64

	Measures int
	Reflows  int
}

// Measure returns m.Height.
func (m *CountingMeasurer) Measure(*html.Node) float64 {
	m.Measures++
	return m.Height
}

// Reflow counts forced layout flushes.
func (m *CountingMeasurer) Reflow(*html.Node) {
	m.Reflows++
}
