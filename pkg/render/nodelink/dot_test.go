package nodelink

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/boardtree/pkg/design"
)

func testTree(t *testing.T) (*design.Tree, *design.Report) {
	t.Helper()
	d := design.Design{
		Nodes: []design.Node{
			{Key: "board", Absolute: &design.Position{X: 10, Y: 10, Layer: "TOP"}},
			{Key: "r1", Parent: "board", Designator: "R", Relative: &design.Position{X: 5}},
			{Key: "lost", Designator: "C"},
		},
	}
	tree, err := design.Build(d, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree, design.NewReport(tree, nil)
}

func TestToDOT(t *testing.T) {
	tree, rep := testTree(t)
	dot := ToDOT(tree, rep, Options{})

	for _, want := range []string{
		"digraph G {",
		`"board" -> "r1";`,
		`"board" [label="board", style="rounded,filled,bold", penwidth=3, fillcolor="#e3f2fd"];`,
		`"lost" [label="lost", style="rounded,filled,dashed", fillcolor=lightgrey`,
		`"r1" [label="r1", fillcolor="#e3f2fd"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	tree, rep := testTree(t)
	dot := ToDOT(tree, rep, Options{Detailed: true})
	want := `"r1" [label="r1\ndesignator: R\n(15, 10, 0°, TOP)", fillcolor="#e3f2fd"];`
	if !strings.Contains(dot, want) {
		t.Errorf("DOT missing %q\n%s", want, dot)
	}
}

func TestToDOTNilReport(t *testing.T) {
	tree, _ := testTree(t)
	dot := ToDOT(tree, nil, Options{Detailed: true})
	if strings.Contains(dot, "dashed") || strings.Contains(dot, "bold") {
		t.Errorf("nil report should not style nodes:\n%s", dot)
	}
}

func TestToDOTComponentNodes(t *testing.T) {
	d := design.Design{
		Nodes: []design.Node{
			{Key: "board", Absolute: &design.Position{Layer: "BOTTOM"}},
			{Key: "reg", Parent: "board", Component: design.ComponentLDO, Relative: &design.Position{X: 1}},
		},
	}
	tree, err := design.Build(d, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dot := ToDOT(tree, design.NewReport(tree, nil), Options{})

	if !strings.Contains(dot, `"reg" [label="reg", fillcolor="#fdece3"];`) {
		t.Errorf("bottom-layer placement should use the bottom fill:\n%s", dot)
	}
	for _, key := range tree.Keys() {
		if !strings.HasPrefix(key, "reg.") {
			continue
		}
		if !strings.Contains(dot, fmt.Sprintf("%q [label=%q, shape=ellipse", key, strings.TrimPrefix(key, "reg."))) {
			t.Errorf("interface node %s should be an ellipse:\n%s", key, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("svg without viewBox should be unchanged")
	}
}
