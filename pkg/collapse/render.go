package collapse

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/accordion/pkg/errors"
	"github.com/go-drift/accordion/pkg/transition"
)

// Node returns the container element. It is the node handed to hooks and
// measurers and stays the same for the lifetime of the collapse.
func (c *Collapse) Node() *html.Node {
	return c.node
}

// Content returns the inner element wrapping the caller's content.
func (c *Collapse) Content() *html.Node {
	return c.body
}

// Render returns the container with its attributes brought up to date, or
// nil while unmounted.
func (c *Collapse) Render() *html.Node {
	if c.Status() == transition.Unmounted {
		return nil
	}
	c.sync()
	return c.node
}

// RenderHTML writes the container's markup to w. Nothing is written while
// unmounted.
func (c *Collapse) RenderHTML(w io.Writer) error {
	n := c.Render()
	if n == nil {
		return nil
	}
	if err := html.Render(w, n); err != nil {
		return errors.New("collapse.RenderHTML", errors.KindRender, err)
	}
	return nil
}

// SetContent replaces the content with nodes. Nodes attached elsewhere are
// detached first.
func (c *Collapse) SetContent(nodes ...*html.Node) {
	for child := c.body.FirstChild; child != nil; {
		next := child.NextSibling
		c.body.RemoveChild(child)
		child = next
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		c.body.AppendChild(n)
	}
}

// SetContentHTML parses src as a fragment and makes it the content.
func (c *Collapse) SetContentHTML(src string) error {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return errors.New("collapse.SetContentHTML", errors.KindRender, err)
	}
	c.SetContent(nodes...)
	return nil
}

// sync rewrites the container attributes from the current state.
func (c *Collapse) sync() {
	a := c.cfg.Attributes
	attrs := make([]html.Attribute, 0, len(a.Extra)+3)
	attrs = append(attrs,
		html.Attribute{Key: "class", Val: c.ClassName()},
		html.Attribute{Key: "id", Val: a.ID},
	)
	if style := c.Style(); style != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: style})
	}
	for _, attr := range a.Extra {
		switch strings.ToLower(attr.Key) {
		case "class", "style":
		default:
			attrs = append(attrs, attr)
		}
	}
	c.node.Attr = attrs
}
