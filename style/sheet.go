package style

import (
	"context"
	"strings"

	"github.com/andybalholm/cascadia"
	cssast "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	maxImportDepth = 16
	fetchBudget    = 16
	maxRules       = 12 * 64
)

type propState struct {
	val       string
	spec      cascadia.Specificity
	order     int
	important bool
}

type declaration struct {
	property  string
	value     string
	important bool
}

type rule struct {
	selector     cascadia.Sel
	specificity  cascadia.Specificity
	declarations []declaration
	order        int
}

// Sheet is the set of author rules collected from a document.
// A nil *Sheet is valid and resolves inline styles only.
type Sheet struct {
	rules []rule
}

// Options controls how a document's stylesheets are collected.
type Options struct {
	// BaseURL resolves relative <link> and @import targets.
	BaseURL string
	// Fetcher loads external stylesheets. Nil keeps parsing offline.
	Fetcher Fetcher
	// ScreenW and ScreenH feed @media evaluation. Zero means 1280x800.
	ScreenW int
	ScreenH int
	Logger  *zap.Logger
}

type parseContext struct {
	ctx     context.Context
	baseURL string
	opts    *Options
	depth   int
	visited map[string]struct{}
	budget  *int
	logger  *zap.Logger
}

func (pc *parseContext) child(newBase string) *parseContext {
	next := *pc
	next.baseURL = newBase
	next.depth = pc.depth + 1
	return &next
}

// Parse collects <style> blocks and, when a Fetcher is configured, linked
// stylesheets of doc. It returns nil when the document carries no rules.
func Parse(ctx context.Context, doc *html.Node, opts Options) *Sheet {
	if doc == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ss := &Sheet{}
	order := 0
	budget := fetchBudget
	pc := &parseContext{
		ctx:     ctx,
		baseURL: opts.BaseURL,
		opts:    &opts,
		visited: map[string]struct{}{},
		budget:  &budget,
		logger:  logger,
	}

	var links []string
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "style":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					if rs, ord := parseCSSText(n.FirstChild.Data, order, pc); len(rs) > 0 {
						ss.rules = append(ss.rules, rs...)
						order = ord
					}
				}
			case "link":
				if href, ok := stylesheetHref(n); ok {
					links = append(links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(doc)

	if opts.Fetcher != nil {
		for _, link := range links {
			if len(ss.rules) >= maxRules {
				break
			}
			abs := resolveAbsURL(opts.BaseURL, link)
			if abs == "" || !pc.visit(abs) {
				continue
			}
			if !pc.take() {
				break
			}
			b, err := opts.Fetcher.Fetch(ctx, abs)
			if err != nil {
				logger.Debug("stylesheet fetch failed", zap.String("url", abs), zap.Error(err))
				continue
			}
			if rs, ord := parseCSSText(string(b), order, pc.child(abs)); len(rs) > 0 {
				ss.rules = append(ss.rules, rs...)
				order = ord
			}
		}
	}

	if len(ss.rules) == 0 {
		return nil
	}
	return ss
}

func stylesheetHref(n *html.Node) (string, bool) {
	rel := strings.ToLower(strings.TrimSpace(getAttr(n, "rel")))
	if rel != "" && !strings.Contains(rel, "stylesheet") {
		return "", false
	}
	typ := strings.ToLower(strings.TrimSpace(getAttr(n, "type")))
	if typ != "" && typ != "text/css" {
		return "", false
	}
	href := strings.TrimSpace(getAttr(n, "href"))
	return href, href != ""
}

// take spends one unit of the fetch budget.
func (pc *parseContext) take() bool {
	if *pc.budget <= 0 {
		return false
	}
	*pc.budget--
	return true
}

func (pc *parseContext) visit(abs string) bool {
	if _, seen := pc.visited[abs]; seen {
		return false
	}
	pc.visited[abs] = struct{}{}
	return true
}

func parseCSSText(txt string, startOrder int, pc *parseContext) ([]rule, int) {
	trimmed := strings.TrimSpace(txt)
	if trimmed == "" || pc.depth >= maxImportDepth {
		return nil, startOrder
	}
	sheet, err := parser.Parse(trimmed)
	if err != nil {
		pc.logger.Debug("css parse failed", zap.String("base", pc.baseURL), zap.Error(err))
		return nil, startOrder
	}

	rules := make([]rule, 0, len(sheet.Rules)*2)
	order := startOrder

	var walk func([]*cssast.Rule, *parseContext)
	walk = func(list []*cssast.Rule, cur *parseContext) {
		for _, r := range list {
			if r == nil {
				continue
			}
			switch r.Kind {
			case cssast.AtRule:
				switch strings.ToLower(strings.TrimSpace(r.Name)) {
				case "@media":
					if mediaRuleActive(r.Prelude, cur.opts) {
						walk(r.Rules, cur)
					}
				case "@supports":
					walk(r.Rules, cur)
				case "@import":
					rs, ord := cur.importRules(r.Prelude, order)
					rules = append(rules, rs...)
					order = ord
				default:
					if r.EmbedsRules() {
						walk(r.Rules, cur)
					}
				}
			case cssast.QualifiedRule:
				decls := convertDeclarations(r.Declarations)
				if len(decls) == 0 || len(r.Selectors) == 0 {
					continue
				}
				group, err := cascadia.ParseGroup(strings.Join(r.Selectors, ","))
				if err != nil {
					cur.logger.Debug("css selector rejected", zap.Strings("selectors", r.Selectors), zap.Error(err))
					continue
				}
				for _, sel := range group {
					if sel == nil || sel.PseudoElement() != "" {
						continue
					}
					rules = append(rules, rule{selector: sel, specificity: sel.Specificity(), declarations: cloneDecls(decls), order: order})
					order++
				}
			}
		}
	}

	walk(sheet.Rules, pc)
	return rules, order
}

func (pc *parseContext) importRules(prelude string, order int) ([]rule, int) {
	if pc.opts.Fetcher == nil {
		return nil, order
	}
	target, media := extractImportTarget(prelude)
	if target == "" {
		return nil, order
	}
	if media != "" && !mediaRuleActive(media, pc.opts) {
		return nil, order
	}
	abs := resolveAbsURL(pc.baseURL, target)
	if abs == "" {
		abs = target
	}
	if !pc.visit(abs) || !pc.take() {
		return nil, order
	}
	b, err := pc.opts.Fetcher.Fetch(pc.ctx, abs)
	if err != nil {
		pc.logger.Debug("css import failed", zap.String("url", abs), zap.Error(err))
		return nil, order
	}
	return parseCSSText(string(b), order, pc.child(abs))
}

func cloneDecls(src []declaration) []declaration {
	out := make([]declaration, len(src))
	copy(out, src)
	return out
}

func convertDeclarations(list []*cssast.Declaration) []declaration {
	if len(list) == 0 {
		return nil
	}
	out := make([]declaration, 0, len(list))
	for _, decl := range list {
		if decl == nil {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(decl.Property))
		val := strings.TrimSpace(decl.Value)
		if prop == "" || val == "" {
			continue
		}
		out = append(out, declaration{property: prop, value: val, important: decl.Important})
	}
	return out
}

func extractImportTarget(prelude string) (string, string) {
	s := strings.TrimSpace(prelude)
	if s == "" {
		return "", ""
	}
	if strings.HasPrefix(strings.ToLower(s), "url(") {
		end := strings.Index(s, ")")
		if end == -1 {
			return "", ""
		}
		return trimCSSString(s[4:end]), strings.TrimSpace(s[end+1:])
	}
	if (s[0] == '"' || s[0] == '\'') && len(s) > 1 {
		if idx := strings.IndexByte(s[1:], s[0]); idx != -1 {
			return s[1 : idx+1], strings.TrimSpace(s[idx+2:])
		}
	}
	fields := strings.Fields(s)
	return trimCSSString(fields[0]), strings.TrimSpace(strings.TrimPrefix(s, fields[0]))
}

func trimCSSString(v string) string {
	vv := strings.TrimSpace(v)
	if len(vv) >= 2 {
		if (vv[0] == '"' && vv[len(vv)-1] == '"') || (vv[0] == '\'' && vv[len(vv)-1] == '\'') {
			return vv[1 : len(vv)-1]
		}
	}
	return vv
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
