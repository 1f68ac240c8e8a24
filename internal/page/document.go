// Package page is the server-side host for the pricing controller.
// It parses the landing page into an x/net/html tree and exposes the
// lookup, text and attribute operations pricing.Document expects.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vesaa/digestly/internal/pricing"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root    *html.Node
	toggles map[*html.Node]*Checkbox
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &Document{root: root, toggles: make(map[*html.Node]*Checkbox)}, nil
}

// Render serialises the (possibly modified) tree.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// ElementByID returns the first element with the given id, or nil.
func (d *Document) ElementByID(id string) pricing.Element {
	if n := d.findID(id); n != nil {
		return &Node{n: n}
	}
	return nil
}

// ToggleByID returns the checkbox with the given id, or nil when the id is
// missing or names something other than a checkbox input. Repeated lookups
// return the same Checkbox so handlers are shared.
func (d *Document) ToggleByID(id string) pricing.Toggle {
	if cb := d.Checkbox(id); cb != nil {
		return cb
	}
	return nil
}

// Checkbox is ToggleByID with the concrete type, for callers that need
// SetChecked.
func (d *Document) Checkbox(id string) *Checkbox {
	n := d.findID(id)
	if n == nil || n.DataAtom != atom.Input || !strings.EqualFold(attr(n, "type"), "checkbox") {
		return nil
	}
	if cb, ok := d.toggles[n]; ok {
		return cb
	}
	cb := &Checkbox{Node: Node{n: n}}
	d.toggles[n] = cb
	return cb
}

// ElementsByClass returns every element whose class list contains class,
// in document order.
func (d *Document) ElementsByClass(class string) []pricing.Element {
	var out []pricing.Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, &Node{n: n})
		}
		return true
	})
	return out
}

func (d *Document) findID(id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Node is an element of the tree.
type Node struct {
	n *html.Node
}

// Text returns the concatenated text of all descendant text nodes.
func (e *Node) Text() string {
	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *Node) SetText(s string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// Attr looks up an attribute by name.
func (e *Node) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Checkbox is an <input type="checkbox"> with change notification.
type Checkbox struct {
	Node
	handlers []func(bool)
}

// Checked reports whether the checked attribute is present.
func (c *Checkbox) Checked() bool {
	_, ok := c.Attr("checked")
	return ok
}

// OnChange registers fn; handlers are never removed.
func (c *Checkbox) OnChange(fn func(checked bool)) {
	c.handlers = append(c.handlers, fn)
}

// SetChecked updates the checked attribute. Handlers run synchronously, in
// registration order, only when the state actually changes.
func (c *Checkbox) SetChecked(checked bool) {
	if c.Checked() == checked {
		return
	}
	if checked {
		c.n.Attr = append(c.n.Attr, html.Attribute{Key: "checked"})
	} else {
		kept := c.n.Attr[:0]
		for _, a := range c.n.Attr {
			if a.Namespace == "" && a.Key == "checked" {
				continue
			}
			kept = append(kept, a)
		}
		c.n.Attr = kept
	}
	for _, fn := range c.handlers {
		fn(checked)
	}
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
