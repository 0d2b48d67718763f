package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPlacementHooks{}
	p.OnBuildStart(ctx, "demo", 10)
	p.OnBuildComplete(ctx, "demo", time.Second, nil)
	p.OnResolveStart(ctx, "demo", 10)
	p.OnResolveComplete(ctx, "demo", 9, 1, time.Second)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "placement")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)
	c.OnCacheError(ctx, "placement", errors.New("down"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Placement().(NoopPlacementHooks); !ok {
		t.Error("Placement() should return NoopPlacementHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPlacement := &testPlacementHooks{}
	SetPlacementHooks(customPlacement)
	if Placement() != customPlacement {
		t.Error("SetPlacementHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Placement().(NoopPlacementHooks); !ok {
		t.Error("Reset() should restore NoopPlacementHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPlacementHooks{}
	SetPlacementHooks(custom)
	SetPlacementHooks(nil)
	if Placement() != custom {
		t.Error("SetPlacementHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)

	h.OnResolveComplete(ctx, "demo", 3, 0, time.Millisecond)
	h.OnResolveComplete(ctx, "demo", 2, 1, time.Millisecond)
	h.OnCacheError(ctx, "placement", errors.New("connection refused"))

	out := buf.String()
	for _, want := range []string{"resolve complete", "resolve incomplete", "failed=1", "cache error", "connection refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPlacementHooks struct{ NoopPlacementHooks }
type testCacheHooks struct{ NoopCacheHooks }
