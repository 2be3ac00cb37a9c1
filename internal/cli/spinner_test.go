package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gsnview/pkg/observability"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Loading modules...")
	time.Sleep(200 * time.Millisecond)
	s.Update("Rendering main.svg...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	for _, want := range []string{"Loading modules...", "Rendering main.svg..."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line not cleared on stop: %q", got)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := startSpinner(ctx, &syncBuffer{}, "Rendering complete.svg...")
	select {
	case <-s.exited:
	case <-time.After(2 * time.Second):
		t.Fatal("spinner kept running after the context ended")
	}
	s.Stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "Loading modules...")
	s.Stop()
	s.Stop()

	var none *Spinner
	none.Update("ignored")
	none.Stop()
}

func TestSpinnerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	s := startSpinner(context.Background(), &syncBuffer{}, "Loading modules...")
	defer s.Stop()

	restore := trackSpinner(s)
	ctx := context.Background()
	hooks := observability.Pipeline()

	tests := []struct {
		event func()
		want  string
	}{
		{func() { hooks.OnLoadStart(ctx, 3) }, "Loading 3 module files..."},
		{func() { hooks.OnLayoutStart(ctx, "main", 7) }, "Laying out main (7 nodes)..."},
		{func() { hooks.OnRenderStart(ctx, "main.svg", "svg") }, "Rendering main.svg..."},
	}
	for _, tt := range tests {
		tt.event()
		if got := s.Message(); got != tt.want {
			t.Errorf("message = %q, want %q", got, tt.want)
		}
	}

	restore()
	if _, ok := observability.Pipeline().(observability.NoopPipelineHooks); !ok {
		t.Errorf("hooks not restored: %T", observability.Pipeline())
	}
}
