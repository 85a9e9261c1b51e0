package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrMountNotFound is returned when no element carries the requested id.
	ErrMountNotFound = errors.New("mount point not found")
	// ErrNoListener is returned when an event has no registered listener.
	ErrNoListener = errors.New("no listener registered")
)

// Listener handles an event dispatched to an element. value carries the
// control's value (selected option, clicked button value).
type Listener func(value string) error

type listenerKey struct {
	id    string
	event string
}

// Document is an HTML tree with elements indexed by id.
type Document struct {
	root      *html.Node
	byID      map[string]*html.Node
	listeners map[listenerKey]Listener
}

// Parse builds a Document from an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	d := &Document{
		root:      root,
		byID:      make(map[string]*html.Node),
		listeners: make(map[listenerKey]Listener),
	}
	d.index(root)
	return d, nil
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(page []byte) (*Document, error) {
	return Parse(bytes.NewReader(page))
}

// Has reports whether a mount point exists.
func (d *Document) Has(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// SetText replaces the children of the mount point with a text node.
func (d *Document) SetText(id, text string) error {
	n, err := d.mount(id)
	if err != nil {
		return err
	}
	d.clear(n)
	n.AppendChild(Text(text))
	return nil
}

// Clear removes every child of the mount point.
func (d *Document) Clear(id string) error {
	n, err := d.mount(id)
	if err != nil {
		return err
	}
	d.clear(n)
	return nil
}

// Append adds nodes as the last children of the mount point. Elements with
// an id inside the appended subtrees become mount points themselves.
func (d *Document) Append(id string, nodes ...*html.Node) error {
	n, err := d.mount(id)
	if err != nil {
		return err
	}
	for _, child := range nodes {
		if child == nil {
			continue
		}
		n.AppendChild(child)
		d.index(child)
	}
	return nil
}

// SetAttr sets an attribute on the mount point.
func (d *Document) SetAttr(id, key, value string) error {
	n, err := d.mount(id)
	if err != nil {
		return err
	}
	setAttr(n, key, value)
	return nil
}

// On registers the listener for event on the element id, replacing any
// previous one. The element does not need to exist yet.
func (d *Document) On(id, event string, fn Listener) {
	d.listeners[listenerKey{id: id, event: event}] = fn
}

// Dispatch delivers an event to its listener and returns the listener's error.
func (d *Document) Dispatch(id, event, value string) error {
	fn, ok := d.listeners[listenerKey{id: id, event: event}]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNoListener, id, event)
	}
	return fn(value)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

// TextOf returns the concatenated text content of a mount point.
func (d *Document) TextOf(id string) string {
	n, ok := d.byID[id]
	if !ok {
		return ""
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

// Count returns how many elements below the mount point carry class.
func (d *Document) Count(id, class string) int {
	n, ok := d.byID[id]
	if !ok {
		return 0
	}
	count := 0
	walk(n, func(c *html.Node) {
		if c != n && c.Type == html.ElementNode && hasClass(c, class) {
			count++
		}
	})
	return count
}

// Element returns the node for id, mainly for assertions in tests.
func (d *Document) Element(id string) (*html.Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

func (d *Document) mount(id string) (*html.Node, error) {
	n, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMountNotFound, id)
	}
	return n, nil
}

func (d *Document) clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		d.unindex(c)
		n.RemoveChild(c)
		c = next
	}
}

func (d *Document) index(n *html.Node) {
	walk(n, func(c *html.Node) {
		if c.Type != html.ElementNode {
			return
		}
		if id := Attr(c, "id"); id != "" {
			d.byID[id] = c
		}
	})
}

func (d *Document) unindex(n *html.Node) {
	walk(n, func(c *html.Node) {
		if c.Type != html.ElementNode {
			return
		}
		if id := Attr(c, "id"); id != "" && d.byID[id] == c {
			delete(d.byID, id)
		}
	})
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func collectText(n *html.Node, sb *strings.Builder) {
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
}

// Attr returns the value of an attribute, or "" when unset.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Text creates a text node. Content is escaped on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Element creates an element node. attrs are key/value pairs.
func Element(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Attrs turns key, value, key, value... into attributes.
func Attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}
