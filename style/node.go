package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"vetter/check"
)

// Metric attributes carry scroll measurements for documents that were never
// laid out, such as server-rendered snapshots.
const (
	AttrScrollTop    = "data-scroll-top"
	AttrClientHeight = "data-client-height"
	AttrScrollHeight = "data-scroll-height"
)

// Node exposes an element of a static document as a check.Element.
type Node struct {
	HTML *html.Node
}

var _ check.Element = (*Node)(nil)

// ScrollTop reads the data-scroll-top attribute.
func (n *Node) ScrollTop() float64 { return n.metric(AttrScrollTop) }

// ClientHeight reads the data-client-height attribute.
func (n *Node) ClientHeight() float64 { return n.metric(AttrClientHeight) }

// ScrollHeight reads the data-scroll-height attribute.
func (n *Node) ScrollHeight() float64 { return n.metric(AttrScrollHeight) }

func (n *Node) metric(attr string) float64 {
	if n == nil || n.HTML == nil {
		return 0
	}
	raw := strings.TrimSuffix(strings.TrimSpace(getAttr(n.HTML, attr)), "px")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// Find returns the first element of doc matching selector, or nil when
// nothing matches.
func Find(doc *html.Node, selector string) (*Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	if doc == nil {
		return nil, nil
	}
	match := sel.MatchFirst(doc)
	if match == nil {
		return nil, nil
	}
	return &Node{HTML: match}, nil
}
