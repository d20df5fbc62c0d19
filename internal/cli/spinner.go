package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/multiplex/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line while a render runs. The message follows
// the pipeline once its hooks are installed: layout, then each batch of
// formats, then cache hits.
type spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	message string
	widest  int
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		ctx:     sctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation. It stops on Stop or when the context ends.
func (s *spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.message) + 2; n > s.widest {
		s.widest = n
	}
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

// SetMessage replaces the status text shown on the next frame.
func (s *spinner) SetMessage(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = fmt.Sprintf(format, args...)
}

// Message returns the current status text.
func (s *spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop halts the animation and clears the line. Safe to call repeatedly.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		close(s.done)
		<-s.stopped
		s.clearLine()
	})
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.widest == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.widest))
	s.widest = 0
}

// StopWithError stops the spinner and reports the stage that failed.
func (s *spinner) StopWithError(message string) {
	stage := s.Message()
	s.Stop()
	printError("%s (%s)", message, strings.TrimSuffix(stage, "..."))
}

// Cancelled reports whether the spinner ended because its context did.
func (s *spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() != nil
	}
}

// follow routes pipeline and cache events through the spinner while fn
// runs, forwarding each one to the hooks registered before it.
func (s *spinner) follow(fn func()) {
	prevPipeline, prevCache := observability.Pipeline(), observability.Cache()
	observability.SetPipelineHooks(spinnerPipelineHooks{s: s, next: prevPipeline})
	observability.SetCacheHooks(spinnerCacheHooks{s: s, next: prevCache})
	defer func() {
		observability.SetPipelineHooks(prevPipeline)
		observability.SetCacheHooks(prevCache)
	}()
	fn()
}

type spinnerPipelineHooks struct {
	s    *spinner
	next observability.PipelineHooks
}

func (h spinnerPipelineHooks) OnLayoutStart(ctx context.Context, title string, sections int) {
	if title == "" {
		title = "chart"
	}
	h.s.SetMessage("Laying out %s (%d %s)...", title, sections, plural(sections, "section"))
	h.next.OnLayoutStart(ctx, title, sections)
}

func (h spinnerPipelineHooks) OnLayoutComplete(ctx context.Context, title string, items int, d time.Duration, err error) {
	h.next.OnLayoutComplete(ctx, title, items, d, err)
}

func (h spinnerPipelineHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.s.SetMessage("Rendering %s...", strings.Join(formats, ", "))
	h.next.OnRenderStart(ctx, formats)
}

func (h spinnerPipelineHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.next.OnRenderComplete(ctx, formats, d, err)
}

type spinnerCacheHooks struct {
	s    *spinner
	next observability.CacheHooks
}

func (h spinnerCacheHooks) OnCacheHit(ctx context.Context, format string) {
	h.s.SetMessage("Using cached %s...", format)
	h.next.OnCacheHit(ctx, format)
}

func (h spinnerCacheHooks) OnCacheMiss(ctx context.Context, format string) {
	h.next.OnCacheMiss(ctx, format)
}

func (h spinnerCacheHooks) OnCacheSet(ctx context.Context, format string, size int) {
	h.s.SetMessage("Caching %s (%d bytes)...", format, size)
	h.next.OnCacheSet(ctx, format, size)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
