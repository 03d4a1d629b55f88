package measure

import "golang.org/x/net/html"

// Static reports the same natural height for every element.
type Static float64

// Measure returns s.
func (s Static) Measure(*html.Node) float64 { return float64(s) }

// Func adapts a function to a measurer.
type Func func(n *html.Node) float64

// Measure calls f(n).
func (f Func) Measure(n *html.Node) float64 { return f(n) }
