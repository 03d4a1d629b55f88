package measure

import (
	"slices"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func fragment(t *testing.T, src string) *html.Node {
	t.Helper()
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), root)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"plain", "hello world", []string{"hello world"}},
		{"blocks", "<p>one</p><p>two</p>", []string{"one", "two"}},
		{"br", "one<br>two", []string{"one", "two"}},
		{"inline", "<b>bold</b> and <i>it</i>alic", []string{"bold and italic"}},
		{"script dropped", "<p>x</p><script>var y</script>", []string{"x"}},
		{"empty", "<div>  </div>", nil},
		{"nested list", "<ul><li>a</li><li>b</li></ul>", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paragraphs(fragment(t, tt.src)); !slices.Equal(got, tt.want) {
				t.Errorf("Paragraphs(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestTextLines(t *testing.T) {
	// basicfont.Face7x13 advances 7px per glyph.
	m := Text{Width: 70}
	got := m.Lines(fragment(t, "hello world foo"))
	want := []string{"hello", "world foo"}
	if !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestTextLines_LongWordKeepsOwnLine(t *testing.T) {
	m := Text{Width: 21}
	got := m.Lines(fragment(t, "a extraordinarily b"))
	want := []string{"a", "extraordinarily", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestTextMeasure(t *testing.T) {
	tests := []struct {
		name string
		m    Text
		src  string
		want float64
	}{
		{"single line", Text{}, "hello", 13},
		{"wrapped", Text{Width: 70}, "hello world foo", 26},
		{"paragraphs", Text{}, "<p>a</p><p>b</p><p>c</p>", 39},
		{"line height", Text{LineHeight: 20}, "<p>a</p><p>b</p>", 40},
		{"padding", Text{Padding: 8}, "a", 29},
		{"empty has no padding", Text{Padding: 8}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Measure(fragment(t, tt.src)); got != tt.want {
				t.Errorf("Measure(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestStaticAndFunc(t *testing.T) {
	if got := Static(120).Measure(nil); got != 120 {
		t.Errorf("Static(120).Measure = %v", got)
	}
	f := Func(func(n *html.Node) float64 { return float64(len(Paragraphs(n))) })
	if got := f.Measure(fragment(t, "<p>a</p><p>b</p>")); got != 2 {
		t.Errorf("Func.Measure = %v, want 2", got)
	}
}
