package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/gsnview/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line while the pipeline runs. The message can
// change between frames, so each rendered view shows up as it is drawn.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once

	mu      sync.Mutex
	message string
	width   int // widest line drawn, for clearing
}

// startSpinner draws msg to w until Stop is called or ctx ends.
func startSpinner(ctx context.Context, w io.Writer, msg string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &Spinner{w: w, ctx: sctx, cancel: cancel, exited: make(chan struct{}), message: msg}
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer close(s.exited)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	s.width = max(s.width, len(s.message)+2)
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Update replaces the message shown on the next frame.
func (s *Spinner) Update(msg string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// Message returns the current status line text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It is safe to call on a nil
// Spinner and more than once.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		<-s.exited
	})
}

// spinnerHooks forwards pipeline events to the registered hooks and names
// the current stage on the spinner.
type spinnerHooks struct {
	observability.PipelineHooks
	spinner *Spinner
}

func (h spinnerHooks) OnLoadStart(ctx context.Context, files int) {
	h.spinner.Update(fmt.Sprintf("Loading %d module files...", files))
	h.PipelineHooks.OnLoadStart(ctx, files)
}

func (h spinnerHooks) OnLayoutStart(ctx context.Context, view string, nodeCount int) {
	h.spinner.Update(fmt.Sprintf("Laying out %s (%d nodes)...", view, nodeCount))
	h.PipelineHooks.OnLayoutStart(ctx, view, nodeCount)
}

func (h spinnerHooks) OnRenderStart(ctx context.Context, view, format string) {
	h.spinner.Update(fmt.Sprintf("Rendering %s...", view))
	h.PipelineHooks.OnRenderStart(ctx, view, format)
}

// trackSpinner routes pipeline events to s until the returned func runs.
func trackSpinner(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	if s == nil {
		return func() {}
	}
	observability.SetPipelineHooks(spinnerHooks{PipelineHooks: prev, spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}
