package render

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Registry owns the scrolling tag strips ("marquees") attached to timeline
// cards. Each strip is keyed by its wrapper node and torn down explicitly.
type Registry struct {
	Speed     float64 // pixels per step
	Width     float64 // visible width of a strip
	CharWidth float64 // estimated glyph width of a tag label
	TagExtra  float64 // padding plus gap around each tag

	mu     sync.Mutex
	strips map[*html.Node]*strip
	handle int
}

type strip struct {
	handle   int
	position float64
	paused   bool
	ctx      context.Context
	cancel   context.CancelFunc
	tags     *html.Node
}

// NewRegistry returns a registry sized for desktop timeline cards.
func NewRegistry() *Registry {
	return &Registry{
		Speed:     0.15,
		Width:     228,
		CharWidth: 7.2,
		TagExtra:  22.4,
		strips:    make(map[*html.Node]*strip),
	}
}

func (r *Registry) tagWidth(tag *html.Node) float64 {
	label := ""
	if tag.FirstChild != nil {
		label = tag.FirstChild.Data
	}
	return float64(utf8.RuneCountInString(label))*r.CharWidth + r.TagExtra
}

// Attach starts a marquee on wrapper. It returns false if wrapper already
// has one, has no tags, or its tags fit without scrolling.
func (r *Registry) Attach(wrapper *html.Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wrapper == nil {
		return false
	}
	if _, ok := r.strips[wrapper]; ok {
		return false
	}

	tags := FirstByClass(wrapper, ClassTags)
	if tags == nil {
		return false
	}
	var originals []*html.Node
	total := 0.0
	for c := tags.FirstChild; c != nil; c = c.NextSibling {
		if HasClass(c, ClassTag) && !HasClass(c, "tag-clone") {
			originals = append(originals, c)
			total += r.tagWidth(c)
		}
	}
	if len(originals) == 0 {
		return false
	}
	if total <= r.Width {
		SetAttr(wrapper, "style", style("mask-image", "none", "-webkit-mask-image", "none"))
		return false
	}

	// a second copy of the tags makes the loop seamless
	for _, orig := range originals {
		clone := element("span", "class", ClassTag+" tag-clone", "aria-hidden", "true")
		if orig.FirstChild != nil {
			clone.AppendChild(text(orig.FirstChild.Data))
		}
		tags.AppendChild(clone)
	}

	r.handle++
	ctx, cancel := context.WithCancel(context.Background())
	r.strips[wrapper] = &strip{handle: r.handle, ctx: ctx, cancel: cancel, tags: tags}
	return true
}

// Step advances every running, unpaused strip by Speed, rotating the first
// tag to the end once it has scrolled out of view.
func (r *Registry) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.strips {
		if s.paused || s.ctx.Err() != nil || s.tags.FirstChild == nil {
			continue
		}
		s.position += r.Speed
		if first := s.tags.FirstChild; s.position >= r.tagWidth(first) {
			s.position -= r.tagWidth(first)
			s.tags.RemoveChild(first)
			s.tags.AppendChild(first)
		}
		SetAttr(s.tags, "style", style("transform", fmt.Sprintf("translateX(-%spx)", num(s.position))))
	}
}

// Pause stops or resumes one strip.
func (r *Registry) Pause(wrapper *html.Node, paused bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.strips[wrapper]
	if ok {
		s.paused = paused
	}
	return ok
}

// Reset cancels and forgets every strip.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for w, s := range r.strips {
		s.cancel()
		delete(r.strips, w)
	}
}

// Len is the number of attached strips.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.strips)
}
