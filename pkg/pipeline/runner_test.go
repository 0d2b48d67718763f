package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boardtree/pkg/cache"
	"github.com/matzehuels/boardtree/pkg/design"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
)

// memCache is an in-memory cache.Cache that counts hits.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func testDesign() design.Design {
	return design.Design{
		Name: "demo",
		Nodes: []design.Node{
			{Key: "board", Absolute: &design.Position{X: 10, Y: 10, Layer: "TOP"}},
			{Key: "reg", Parent: "board", Component: design.ComponentLDO, Relative: &design.Position{X: 5}},
		},
	}
}

func TestPlace(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	res, err := r.Place(context.Background(), testDesign(), Options{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if res.CacheHit {
		t.Error("first run should miss the cache")
	}
	if res.Hash == "" || len(res.Hash) != 64 {
		t.Errorf("Hash = %q", res.Hash)
	}
	want := []design.Placement{
		{Key: "board", Path: "board", X: 10, Y: 10, Layer: "TOP", Anchor: true},
		{Key: "reg", Path: "board.reg", Designator: "U", X: 15, Y: 10, Layer: "TOP"},
	}
	if diff := cmp.Diff(want, res.Report.Placements); diff != "" {
		t.Errorf("Placements mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.NodeCount != 8 || res.Stats.Placed != 2 || res.Stats.Failed != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestPlaceCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	first, err := r.Place(ctx, testDesign(), Options{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	second, err := r.Place(ctx, testDesign(), Options{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.Tree == nil {
		t.Error("cached result should still carry a tree")
	}
	if diff := cmp.Diff(first.Report, second.Report); diff != "" {
		t.Errorf("cached report differs (-first +second):\n%s", diff)
	}

	refreshed, err := r.Place(ctx, testDesign(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestPlaceStrict(t *testing.T) {
	d := design.Design{Nodes: []design.Node{
		{Key: "root"},
		{Key: "part", Parent: "root", Designator: "C"},
	}}
	r := NewRunner(nil, nil, nil)

	res, err := r.Place(context.Background(), d, Options{})
	if err != nil {
		t.Fatalf("non-strict Place should succeed: %v", err)
	}
	if res.Stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Stats.Failed)
	}

	res, err = r.Place(context.Background(), d, Options{Strict: true})
	if !bterrors.Is(err, bterrors.ErrCodeUnresolvedPosition) {
		t.Errorf("strict Place error = %v, want UNRESOLVED_POSITION", err)
	}
	if res == nil || res.Report == nil {
		t.Error("strict failure should still return the result")
	}
}

func TestPlaceBuildError(t *testing.T) {
	d := design.Design{Nodes: []design.Node{{Key: "a", Parent: "b"}, {Key: "b", Parent: "a"}}}
	_, err := NewRunner(nil, nil, nil).Place(context.Background(), d, Options{})
	if !bterrors.Is(err, bterrors.ErrCodeCycle) {
		t.Errorf("Place error = %v, want CYCLE", err)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	res, err := r.Place(ctx, testDesign(), Options{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	dot, err := r.Render(ctx, res, Options{Format: FormatDOT})
	if err != nil {
		t.Fatalf("Render dot: %v", err)
	}
	if !strings.Contains(string(dot), `"board" -> "reg";`) {
		t.Errorf("DOT missing edge:\n%s", dot)
	}

	hits := c.hits
	again, err := r.Render(ctx, res, Options{Format: FormatDOT})
	if err != nil {
		t.Fatalf("Render dot: %v", err)
	}
	if c.hits != hits+1 || string(again) != string(dot) {
		t.Error("second render should come from the cache")
	}

	js, err := r.Render(ctx, res, Options{Format: FormatJSON})
	if err != nil {
		t.Fatalf("Render json: %v", err)
	}
	rep, err := design.UnmarshalReport(js)
	if err != nil {
		t.Fatalf("UnmarshalReport: %v", err)
	}
	if len(rep.Placements) != 2 {
		t.Errorf("JSON report has %d placements, want 2", len(rep.Placements))
	}

	if _, err := r.Render(ctx, res, Options{Format: "png"}); !bterrors.Is(err, bterrors.ErrCodeInvalidFormat) {
		t.Errorf("Render png error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.json")
	if err := design.WriteFile(testDesign(), path); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(nil, nil, nil)
	d, err := r.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(testDesign(), d); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}

	if _, err := r.Load(filepath.Join(dir, "board.yaml")); !bterrors.Is(err, bterrors.ErrCodeInvalidFormat) {
		t.Errorf("Load yaml error = %v, want INVALID_FORMAT", err)
	}
	if _, err := r.Load(filepath.Join(dir, "missing.toml")); !bterrors.Is(err, bterrors.ErrCodeFileNotFound) {
		t.Errorf("Load missing error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Load(bad); !bterrors.Is(err, bterrors.ErrCodeInvalidFormat) {
		t.Errorf("Load malformed error = %v, want INVALID_FORMAT", err)
	}
}
