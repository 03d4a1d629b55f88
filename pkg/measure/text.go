// Package measure computes the natural height of collapsible content.
//
// Browsers answer this with scrollHeight. Hosts without a layout engine use
// [Text], which lays the text content of a node out in a fixed-width column
// using font metrics from golang.org/x/image/font.
package measure

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text measures an element by wrapping its text content into lines.
type Text struct {
	// Face supplies glyph advances and line metrics. Nil means basicfont.Face7x13.
	Face font.Face
	// Width is the column width in pixels. Zero or less disables wrapping.
	Width float64
	// LineHeight overrides the face's line height when positive.
	LineHeight float64
	// Padding is added above and below non-empty content.
	Padding float64
}

func (m Text) face() font.Face {
	if m.Face != nil {
		return m.Face
	}
	return basicfont.Face7x13
}

func (m Text) lineHeight() float64 {
	if m.LineHeight > 0 {
		return m.LineHeight
	}
	return float64(m.face().Metrics().Height.Ceil())
}

// Measure returns the laid-out height of n's text in pixels. Content with no
// visible text measures 0.
func (m Text) Measure(n *html.Node) float64 {
	lines := m.Lines(n)
	if len(lines) == 0 {
		return 0
	}
	return float64(len(lines))*m.lineHeight() + 2*m.Padding
}

// Lines returns n's text wrapped to the column width.
func (m Text) Lines(n *html.Node) []string {
	face := m.face()
	limit := fixed.Int26_6(m.Width * 64)
	space := font.MeasureString(face, " ")

	var lines []string
	for _, para := range Paragraphs(n) {
		var line strings.Builder
		var width fixed.Int26_6
		for _, word := range strings.Fields(para) {
			adv := font.MeasureString(face, word)
			if line.Len() > 0 && m.Width > 0 && width+space+adv > limit {
				lines = append(lines, line.String())
				line.Reset()
				width = 0
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
				width += space
			}
			line.WriteString(word)
			width += adv
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}

// Paragraphs extracts the text of n split at block boundaries and <br>.
// Whitespace-only paragraphs are dropped.
func Paragraphs(n *html.Node) []string {
	var paras []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			paras = append(paras, s)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Template:
				return
			case atom.Br:
				flush()
				return
			}
		}
		block := n.Type == html.ElementNode && isBlock(n.DataAtom)
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	if n != nil {
		walk(n)
	}
	flush()
	return paras
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Dd,
		atom.Div, atom.Dl, atom.Dt, atom.Fieldset, atom.Figure, atom.Footer,
		atom.Form, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Header, atom.Hr, atom.Li, atom.Main, atom.Nav, atom.Ol, atom.P,
		atom.Pre, atom.Section, atom.Table, atom.Tr, atom.Ul:
		return true
	}
	return false
}
