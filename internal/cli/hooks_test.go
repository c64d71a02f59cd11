package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exhibit/pkg/observability"
)

func TestSetLogLevel_InstallsDebugHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	if _, ok := observability.Cache().(observability.NoopCacheHooks); !ok {
		t.Fatal("info level should keep the no-op cache hooks")
	}

	c.SetLogLevel(LogDebug)
	observability.Exhibit().OnFocus("top-left", "manual")
	observability.Cache().OnCacheHit(context.Background(), "catalog")
	observability.HTTP().OnRequest(context.Background(), "GET", "example.org", "/catalog.toml")

	out := buf.String()
	for _, want := range []string{"focus", "top-left", "cache hit", "catalog", "http request", "example.org"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q: %s", want, out)
		}
	}
}

func TestDebugHooks_Quiet(t *testing.T) {
	var buf bytes.Buffer
	h := debugHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnCacheMiss(context.Background(), "catalog")
	if buf.Len() != 0 {
		t.Errorf("hooks logged at info level: %q", buf.String())
	}
}
