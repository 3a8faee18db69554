package render

import (
	"strings"

	"github.com/Zachkp/journey/internal/timeline"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// element builds an element node from key/value attribute pairs.
func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// svgElement builds an element in the SVG namespace.
func svgElement(tag string, attrs ...string) *html.Node {
	n := element(tag, attrs...)
	n.Namespace = "svg"
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// appendChildren appends children to parent and returns parent.
func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

// style joins property/value pairs into an inline style declaration.
func style(decls ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(decls); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(decls[i])
		b.WriteString(": ")
		b.WriteString(decls[i+1])
		b.WriteByte(';')
	}
	return b.String()
}

func num(v float64) string {
	return timeline.FormatPx(v)
}

func px(v float64) string {
	return num(v) + "px"
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces key on n.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries class in its class attribute.
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	v, _ := Attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Clear removes every child of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// FindByID returns the first element below root (inclusive) with the given id.
func FindByID(root *html.Node, id string) *html.Node {
	if root == nil {
		return nil
	}
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if v, ok := Attr(n, "id"); ok && n.Type == html.ElementNode && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByClass returns every element below root (inclusive) carrying class,
// in document order.
func FindByClass(root *html.Node, class string) []*html.Node {
	var out []*html.Node
	if root == nil {
		return out
	}
	walk(root, func(n *html.Node) bool {
		if HasClass(n, class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FirstByClass is FindByClass limited to the first match.
func FirstByClass(root *html.Node, class string) *html.Node {
	var found *html.Node
	if root == nil {
		return nil
	}
	walk(root, func(n *html.Node) bool {
		if HasClass(n, class) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Outer serialises n including its own tag.
func Outer(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Inner serialises the children of n.
func Inner(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// NewContainer returns the timeline container element the renderers fill.
func NewContainer() *html.Node {
	return element("div", "id", ContainerID, "class", "git-timeline")
}
