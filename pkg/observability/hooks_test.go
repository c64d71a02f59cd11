package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Exhibit hooks
	e := NoopExhibitHooks{}
	e.OnNavigate(2, "nighthawks")
	e.OnFocus("top-left", "auto")
	e.OnAutoPlay(false)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "catalog")
	c.OnCacheMiss(ctx, "catalog")
	c.OnCacheSet(ctx, "catalog", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "museum.example", "/catalog.json")
	h.OnResponse(ctx, "GET", "museum.example", "/catalog.json", 200, time.Second)
	h.OnError(ctx, "GET", "museum.example", "/catalog.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Exhibit().(NoopExhibitHooks); !ok {
		t.Error("Exhibit() should return NoopExhibitHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customExhibit := &testExhibitHooks{}
	SetExhibitHooks(customExhibit)
	if Exhibit() != customExhibit {
		t.Error("SetExhibitHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Exhibit().(NoopExhibitHooks); !ok {
		t.Error("Reset() should restore NoopExhibitHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testExhibitHooks{}
	SetExhibitHooks(custom)

	SetExhibitHooks(nil)
	if Exhibit() != custom {
		t.Error("SetExhibitHooks(nil) should be ignored")
	}
}

type testExhibitHooks struct{ NoopExhibitHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
