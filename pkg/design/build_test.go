package design

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boardtree/pkg/core/library"
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
)

func boardDesign() Design {
	return Design{
		Name: "demo",
		Nodes: []Node{
			{Key: "board", Absolute: &Position{X: 10, Y: 10, Layer: "TOP"}},
			{Key: "reg", Parent: "board", Component: ComponentLDO, Relative: &Position{X: 5}},
			{Key: "a0", Parent: "board", Designator: "R"},
			{Key: "a1", Parent: "board", Designator: "R"},
			{Key: "a2", Parent: "board", Designator: "R"},
		},
		Layouts: []Layout{
			{Type: "extrude", Vector: []float64{2, 0}, Targets: []string{"a0", "a1", "a2"}},
		},
	}
}

func TestBuild(t *testing.T) {
	tree, err := Build(boardDesign(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tree.Roots) != 1 || tree.Roots[0].Name() != "board" {
		t.Fatalf("Roots = %v, want [board]", tree.Roots)
	}

	wantKeys := []string{
		"board",
		"reg", "reg.v_in", "reg.v_in.hv", "reg.v_in.lv", "reg.v_out", "reg.v_out.hv", "reg.v_out.lv",
		"a0", "a1", "a2",
	}
	if diff := cmp.Diff(wantKeys, tree.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	reg, ok := tree.Lookup("reg")
	if !ok {
		t.Fatal("reg not indexed")
	}
	if reg.Parent() != tree.Roots[0] {
		t.Errorf("reg parent = %v, want board", reg.Parent())
	}
	if d, _ := node.Get[library.DesignatorPrefix](reg, library.CategoryDesignatorPrefix); d.Prefix != "U" {
		t.Errorf("reg designator = %q, want U", d.Prefix)
	}

	hv, _ := tree.Lookup("reg.v_in.hv")
	if key, ok := tree.Key(hv); !ok || key != "reg.v_in.hv" {
		t.Errorf("Key(hv) = %q, %v", key, ok)
	}
}

func TestBuildResolves(t *testing.T) {
	tree, err := Build(boardDesign(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tests := []struct {
		key  string
		want pcb.Position
	}{
		{"board", pcb.Position{X: 10, Y: 10, Layer: pcb.LayerTop}},
		{"reg", pcb.Position{X: 15, Y: 10, Layer: pcb.LayerTop}},
		{"a0", pcb.Position{X: 10, Y: 10, Layer: pcb.LayerTop}},
		{"a1", pcb.Position{X: 12, Y: 10, Layer: pcb.LayerTop}},
		{"a2", pcb.Position{X: 14, Y: 10, Layer: pcb.LayerTop}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			n, _ := tree.Lookup(tt.key)
			got, err := pcb.Resolve(n)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestBuildOverridesDesignator(t *testing.T) {
	d := Design{Nodes: []Node{{Key: "reg", Component: ComponentLDO, Designator: "IC"}}}
	tree, err := Build(d, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	reg, _ := tree.Lookup("reg")
	if got, _ := node.Get[library.DesignatorPrefix](reg, library.CategoryDesignatorPrefix); got.Prefix != "IC" {
		t.Errorf("designator = %q, want IC", got.Prefix)
	}
}

func TestBuildMeta(t *testing.T) {
	d := Design{Nodes: []Node{{Key: "a", Name: "Alpha", Meta: map[string]any{"mpn": "X1"}}}}
	tree, err := Build(d, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a, _ := tree.Lookup("a")
	if a.Name() != "Alpha" {
		t.Errorf("Name = %q, want Alpha", a.Name())
	}
	m, ok := node.Get[Meta](a, CategoryMeta)
	if !ok || m["mpn"] != "X1" {
		t.Errorf("meta = %v, %v", m, ok)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		design Design
		want   error
	}{
		{
			name:   "DuplicateKey",
			design: Design{Nodes: []Node{{Key: "a"}, {Key: "a"}}},
			want:   ErrDuplicateKey,
		},
		{
			name:   "InterfaceKeyCollision",
			design: Design{Nodes: []Node{{Key: "u", Component: ComponentLDO}, {Key: "u.v_in"}}},
			want:   ErrDuplicateKey,
		},
		{
			name:   "UnknownParent",
			design: Design{Nodes: []Node{{Key: "a", Parent: "ghost"}}},
			want:   ErrUnknownParent,
		},
		{
			name:   "UnknownComponent",
			design: Design{Nodes: []Node{{Key: "a", Component: "flux_capacitor"}}},
			want:   ErrUnknownComponent,
		},
		{
			name:   "Cycle",
			design: Design{Nodes: []Node{{Key: "a", Parent: "b"}, {Key: "b", Parent: "a"}}},
			want:   node.ErrCycle,
		},
		{
			name:   "SelfParent",
			design: Design{Nodes: []Node{{Key: "a", Parent: "a"}}},
			want:   node.ErrCycle,
		},
		{
			name:   "UnknownLayer",
			design: Design{Nodes: []Node{{Key: "a", Absolute: &Position{Layer: "MIDDLE"}}}},
			want:   pcb.ErrUnknownLayer,
		},
		{
			name: "UnknownTarget",
			design: Design{
				Nodes:   []Node{{Key: "a"}},
				Layouts: []Layout{{Type: "extrude", Vector: []float64{1, 0}, Targets: []string{"a", "b"}}},
			},
			want: ErrUnknownTarget,
		},
		{
			name: "BadVector",
			design: Design{
				Nodes:   []Node{{Key: "a"}},
				Layouts: []Layout{{Type: "extrude", Vector: []float64{1}, Targets: []string{"a"}}},
			},
			want: ErrInvalidVector,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.design, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}
