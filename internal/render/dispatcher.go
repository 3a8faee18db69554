package render

import (
	"log"
	"sync"
	"time"

	"github.com/Zachkp/journey/internal/timeline"
	"golang.org/x/net/html"
)

// Breakpoint is the widest viewport, in CSS pixels, that still gets the
// mobile layout.
const Breakpoint = 768

// DefaultQuiet is how long resize events must stop before the dispatcher
// re-checks the mode.
const DefaultQuiet = 250 * time.Millisecond

type Mode int

const (
	Desktop Mode = iota
	Mobile
)

func (m Mode) String() string {
	if m == Mobile {
		return "mobile"
	}
	return "desktop"
}

// ModeFor picks the renderer for a viewport width.
func ModeFor(width int) Mode {
	if width <= Breakpoint {
		return Mobile
	}
	return Desktop
}

// Result describes one render pass.
type Result struct {
	Mode     Mode
	Cards    int
	Board    *Board // desktop only
	Rendered bool   // false when there was no container
}

// Generate clears container and renders entries with the renderer for width.
func Generate(container *html.Node, entries []timeline.Entry, width int, opts Options) Result {
	mode := ModeFor(width)
	if container == nil {
		return Result{Mode: mode}
	}
	if mode == Mobile {
		return Result{Mode: mode, Cards: RenderMobile(container, entries), Rendered: true}
	}
	board := RenderDesktop(container, entries, opts)
	return Result{Mode: mode, Cards: len(board.order), Board: board, Rendered: true}
}

// Dispatcher owns one timeline container inside a document and keeps it in
// the right mode as the viewport changes.
type Dispatcher struct {
	Quiet    time.Duration
	Logger   *log.Logger
	Marquee  *Registry
	OnRender func(Result)

	mu          sync.Mutex
	root        *html.Node
	containerID string
	entries     []timeline.Entry
	opts        Options

	timer  *time.Timer
	gen    int
	loaded bool
	last   Result
}

// NewDispatcher renders into the element with containerID under root.
func NewDispatcher(root *html.Node, containerID string, entries []timeline.Entry, opts Options) *Dispatcher {
	return &Dispatcher{
		Quiet:       DefaultQuiet,
		root:        root,
		containerID: containerID,
		entries:     entries,
		opts:        opts,
	}
}

// Load renders immediately for width, regardless of the current mode.
func (d *Dispatcher) Load(width int) Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderLocked(width)
}

// Resize schedules a mode check for width once resizing has been quiet for
// d.Quiet. A later call supersedes a pending one. The container is only
// rebuilt when width falls on the other side of the breakpoint.
func (d *Dispatcher) Resize(width int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.Quiet, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if gen != d.gen {
			return
		}
		d.timer = nil
		if d.loaded && ModeFor(width) == d.last.Mode {
			return
		}
		d.renderLocked(width)
	})
}

// Stop cancels any pending resize and tears down marquee effects.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.Marquee != nil {
		d.Marquee.Reset()
	}
}

// Last returns the result of the most recent render.
func (d *Dispatcher) Last() Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Dispatch forwards a card interaction to the current desktop board and
// pauses the card's marquee while it is collapsed.
func (d *Dispatcher) Dispatch(cardID string, ev timeline.CardEvent) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	board := d.last.Board
	if board == nil {
		return false
	}
	changed := board.Dispatch(cardID, ev)
	if changed && d.Marquee != nil {
		// a collapsed card hides its strip
		card, _ := board.Card(cardID)
		d.Marquee.Pause(board.Strip(cardID), card.State != timeline.Expanded)
	}
	return changed
}

func (d *Dispatcher) renderLocked(width int) Result {
	container := FindByID(d.root, d.containerID)
	if container == nil {
		d.logf("timeline container #%s not found, nothing to render", d.containerID)
		return Result{Mode: ModeFor(width)}
	}

	if d.Marquee != nil {
		d.Marquee.Reset()
	}
	opts := d.opts
	if d.Marquee != nil {
		marquee, hook := d.Marquee, d.opts.OnReveal
		opts.OnReveal = func(id string, strip *html.Node) {
			marquee.Attach(strip)
			if hook != nil {
				hook(id, strip)
			}
		}
	}

	res := Generate(container, d.entries, width, opts)
	d.last, d.loaded = res, true
	d.logf("timeline rendered in %s mode (%d cards, width %d)", res.Mode, res.Cards, width)
	if d.OnRender != nil {
		d.OnRender(res)
	}
	return res
}

func (d *Dispatcher) logf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}
