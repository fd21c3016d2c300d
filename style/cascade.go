package style

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"vetter/check"
)

// inline declarations outrank every selector and come after all sheet rules.
var inlineSpecificity = cascadia.Specificity{1 << 12, 0, 0}

const inlineOrder = 1 << 30

// Compute returns the cascaded author styles of n keyed by lower-case
// property name. Shorthands are expanded where the longhands matter to
// callers (overflow). It returns nil for non-element nodes or when no
// declaration applies.
func (ss *Sheet) Compute(n *html.Node) map[string]string {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}

	props := map[string]propState{}
	if ss != nil {
		for _, r := range ss.rules {
			if r.selector == nil || !r.selector.Match(n) {
				continue
			}
			for _, decl := range r.declarations {
				applyDeclaration(props, decl, r.specificity, r.order)
			}
		}
	}
	for i, decl := range inlineDeclarations(getAttr(n, "style")) {
		applyDeclaration(props, decl, inlineSpecificity, inlineOrder+i)
	}

	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, st := range props {
		out[k] = st.val
	}
	return out
}

// Value resolves a single property of n, or "" when it is not set.
func (ss *Sheet) Value(n *html.Node, property string) string {
	return ss.Compute(n)[strings.ToLower(strings.TrimSpace(property))]
}

// ComputedStyle resolves property for el when el is a *Node. It has the
// shape of check.StyleFunc.
func (ss *Sheet) ComputedStyle(el check.Element, property string) string {
	node, ok := el.(*Node)
	if !ok || node == nil {
		return ""
	}
	return ss.Value(node.HTML, property)
}

// StyleFunc adapts the sheet to check.Env.
func (ss *Sheet) StyleFunc() check.StyleFunc { return ss.ComputedStyle }

func inlineDeclarations(inline string) []declaration {
	inline = strings.TrimSpace(inline)
	if inline == "" {
		return nil
	}
	// The declaration parser drops a final declaration that lacks its semicolon.
	if !strings.HasSuffix(inline, ";") {
		inline += ";"
	}
	if decls, err := parser.ParseDeclarations(inline); err == nil {
		out := make([]declaration, 0, len(decls))
		for _, d := range decls {
			if d == nil {
				continue
			}
			out = append(out, declaration{
				property:  strings.ToLower(strings.TrimSpace(d.Property)),
				value:     d.Value,
				important: d.Important,
			})
		}
		return out
	}
	parts := strings.Split(inline, ";")
	out := make([]declaration, 0, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		value := strings.TrimSpace(kv[1])
		important := false
		if strings.HasSuffix(strings.ToLower(value), "!important") {
			important = true
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}
		out = append(out, declaration{
			property:  strings.ToLower(strings.TrimSpace(kv[0])),
			value:     value,
			important: important,
		})
	}
	return out
}

func applyDeclaration(store map[string]propState, decl declaration, spec cascadia.Specificity, order int) {
	prop := strings.ToLower(strings.TrimSpace(decl.property))
	value := strings.TrimSpace(decl.value)
	if prop == "" || value == "" {
		return
	}
	if prop == "overflow" {
		x, y := splitOverflow(value)
		setProp(store, "overflow", propState{val: value, spec: spec, order: order, important: decl.important})
		setProp(store, "overflow-x", propState{val: x, spec: spec, order: order, important: decl.important})
		setProp(store, "overflow-y", propState{val: y, spec: spec, order: order, important: decl.important})
		return
	}
	if prop == "overflow-x" || prop == "overflow-y" {
		value = strings.ToLower(value)
	}
	setProp(store, prop, propState{val: value, spec: spec, order: order, important: decl.important})
}

// splitOverflow expands the overflow shorthand: one keyword sets both axes,
// two keywords are x then y.
func splitOverflow(value string) (string, string) {
	fields := strings.Fields(strings.ToLower(value))
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], fields[0]
	default:
		return fields[0], fields[1]
	}
}

func setProp(store map[string]propState, prop string, entry propState) {
	prev, ok := store[prop]
	if !ok {
		store[prop] = entry
		return
	}
	if prev.important && !entry.important {
		return
	}
	if entry.important && !prev.important {
		store[prop] = entry
		return
	}
	if prev.spec.Less(entry.spec) {
		store[prop] = entry
		return
	}
	if entry.spec.Less(prev.spec) {
		return
	}
	if entry.order >= prev.order {
		store[prop] = entry
	}
}
