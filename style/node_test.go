package style

import "testing"

func TestNodeMetrics(t *testing.T) {
	t.Parallel()
	doc := mustParseHTML(t, `<div id="a" data-scroll-top="12.5" data-client-height="100px" data-scroll-height="  300 "></div>
		<div id="b" data-scroll-top="lots"></div>`)
	a := mustFind(t, doc, "#a")
	if a.ScrollTop() != 12.5 || a.ClientHeight() != 100 || a.ScrollHeight() != 300 {
		t.Fatalf("metrics = %v/%v/%v", a.ScrollTop(), a.ClientHeight(), a.ScrollHeight())
	}
	b := mustFind(t, doc, "#b")
	if b.ScrollTop() != 0 || b.ClientHeight() != 0 || b.ScrollHeight() != 0 {
		t.Fatalf("unparseable metrics should read as zero, got %v/%v/%v", b.ScrollTop(), b.ClientHeight(), b.ScrollHeight())
	}
	var none *Node
	if none.ScrollTop() != 0 {
		t.Fatal("nil node should read as zero")
	}
}

func TestFindInvalidSelector(t *testing.T) {
	t.Parallel()
	doc := mustParseHTML(t, `<div></div>`)
	if _, err := Find(doc, "div[["); err == nil {
		t.Fatal("expected error for invalid selector")
	}
}
