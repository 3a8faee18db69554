package render

import (
	"fmt"
	"time"

	"github.com/Zachkp/journey/internal/timeline"
	"golang.org/x/net/html"
)

// RevealFunc is called the first time a card's details become visible, with
// the card's tag strip wrapper.
type RevealFunc func(cardID string, strip *html.Node)

// Options configures a render pass.
type Options struct {
	Config timeline.Config
	Now    func() time.Time
	// OnReveal fires at most once per card per render pass.
	OnReveal RevealFunc
	// Interactive adds Alpine.js attributes mirroring the card state machine
	// so the browser can toggle cards without a round trip.
	Interactive bool
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) config() timeline.Config {
	if o.Config.PixelsPerMonth == 0 {
		return timeline.DefaultConfig()
	}
	return o.Config
}

type cardView struct {
	card    timeline.Card
	node    *html.Node
	preview *html.Node
	details *html.Node
	strip   *html.Node
}

// Board is the result of a desktop render: the layout it was drawn from and
// the per-card state machines. The DOM of each card is a projection of its
// state.
type Board struct {
	Layout   timeline.Layout
	cards    map[string]*cardView
	order    []string
	onReveal RevealFunc
}

// CardIDs lists the cards in placement order.
func (b *Board) CardIDs() []string {
	return append([]string(nil), b.order...)
}

// Card returns a snapshot of the card's state machine.
func (b *Board) Card(id string) (timeline.Card, bool) {
	cv, ok := b.cards[id]
	if !ok {
		return timeline.Card{}, false
	}
	return cv.card, true
}

// Strip returns the tag strip wrapper of a card.
func (b *Board) Strip(id string) *html.Node {
	if cv, ok := b.cards[id]; ok {
		return cv.strip
	}
	return nil
}

// Dispatch feeds an interaction to a card and re-projects it. It reports
// whether the card changed state.
func (b *Board) Dispatch(id string, ev timeline.CardEvent) bool {
	cv, ok := b.cards[id]
	if !ok {
		return false
	}
	changed, first := cv.card.Handle(ev)
	if changed {
		project(cv)
	}
	if first && b.onReveal != nil {
		b.onReveal(id, cv.strip)
	}
	return changed
}

// Alpine handlers mirroring timeline.Card: the first expansion attaches the
// tag marquee (static/journey.js), later ones resume it.
const (
	expandJS   = "expanded = true; if (window.journeyMarquee) { revealed ? journeyMarquee.pause($refs.tags, false) : journeyMarquee.attach($refs.tags); revealed = true }"
	collapseJS = "expanded = false; if (window.journeyMarquee) journeyMarquee.pause($refs.tags, true)"
)

func project(cv *cardView) {
	expanded := cv.card.State == timeline.Expanded
	SetAttr(cv.node, "data-state", cv.card.State.String())
	SetAttr(cv.node, "aria-expanded", fmt.Sprint(expanded))
	if expanded {
		SetAttr(cv.preview, "style", style("display", "none"))
		SetAttr(cv.details, "style", style("display", "block"))
	} else {
		SetAttr(cv.preview, "style", style("display", "block"))
		SetAttr(cv.details, "style", style("display", "none"))
	}
}

// RenderDesktop replaces the children of container with the branching
// diagram and its cards. A nil container renders nothing.
func RenderDesktop(container *html.Node, entries []timeline.Entry, opts Options) *Board {
	if container == nil {
		return nil
	}
	Clear(container)

	cfg := opts.config()
	layout := timeline.Build(entries, cfg, opts.now())
	board := &Board{Layout: layout, cards: make(map[string]*cardView), onReveal: opts.OnReveal}

	SetAttr(container, "data-mode", Desktop.String())
	appendChildren(container, legendNode("Work Experience"))
	if len(layout.Entries) == 0 {
		SetAttr(container, "style", "")
		appendChildren(container, element("div", "class", ClassNodes))
		return board
	}

	SetAttr(container, "style", style(
		"min-height", px(layout.MinHeight),
		"width", px(layout.Width),
		"margin", "0 auto",
		"position", "relative"))

	svg := svgElement("svg",
		"width", num(layout.Width),
		"height", num(layout.TimelineHeight),
		"style", style("position", "absolute", "left", "0", "top", px(cfg.LegendHeight), "overflow", "visible", "z-index", "1"))
	appendChildren(svg, defsNode(), mainLineNode(layout), ticksNode(layout))

	nodes := element("div", "class", ClassNodes, "style", style(
		"position", "absolute",
		"left", "0",
		"top", px(cfg.LegendHeight),
		"width", "100%",
		"height", px(layout.TimelineHeight),
		"z-index", "2",
		"pointer-events", "none"))

	for i, le := range layout.Entries {
		drawBranch(svg, layout, le, cfg)

		id := fmt.Sprintf("card-%d", i)
		cv := desktopCard(id, le, cfg, opts.Interactive)
		project(cv)
		board.cards[id] = cv
		board.order = append(board.order, id)
		nodes.AppendChild(cv.node)
	}

	appendChildren(container, svg, nodes)
	return board
}

func defsNode() *html.Node {
	gradient := func(id string, x2, y2 string, from, to string) *html.Node {
		return appendChildren(svgElement("linearGradient", "id", id, "x1", "0%", "y1", "0%", "x2", x2, "y2", y2),
			svgElement("stop", "offset", "0%", "stop-color", from),
			svgElement("stop", "offset", "100%", "stop-color", to))
	}
	glow := appendChildren(svgElement("filter", "id", "glow", "x", "-50%", "y", "-50%", "width", "200%", "height", "200%"),
		svgElement("feGaussianBlur", "stdDeviation", "2", "result", "coloredBlur"),
		appendChildren(svgElement("feMerge"),
			svgElement("feMergeNode", "in", "coloredBlur"),
			svgElement("feMergeNode", "in", "SourceGraphic")))
	return appendChildren(svgElement("defs"),
		gradient("workGradient", "100%", "0%", "#10b981", "#059669"),
		gradient("eduGradient", "100%", "0%", "#3b82f6", "#2563eb"),
		gradient("mainGradient", "0%", "100%", "#555", "#333"),
		glow)
}

func mainLineNode(layout timeline.Layout) *html.Node {
	return svgElement("line",
		"class", "main-line",
		"x1", num(layout.CenterX), "y1", num(layout.MainLineTop),
		"x2", num(layout.CenterX), "y2", num(layout.MainLineBottom),
		"stroke", "#444", "stroke-width", "4", "stroke-linecap", "round")
}

func ticksNode(layout timeline.Layout) *html.Node {
	g := svgElement("g", "class", "time-markers")
	x := layout.CenterX
	for _, tick := range layout.Ticks {
		appendChildren(g,
			svgElement("line",
				"x1", num(x-12), "y1", num(tick.Y), "x2", num(x), "y2", num(tick.Y),
				"stroke", "#666", "stroke-width", "2"),
			appendChildren(svgElement("text",
				"x", num(x-16), "y", num(tick.Y+4),
				"text-anchor", "end", "fill", "#888",
				"font-size", "11px", "font-weight", "600", "font-family", "Inter, sans-serif"),
				text(fmt.Sprint(tick.Year))))
	}
	return g
}

// drawBranch appends fork, branch, merge, start node, end node (or pulse)
// and the card connector for one entry.
func drawBranch(svg *html.Node, layout timeline.Layout, le timeline.LayoutEntry, cfg timeline.Config) {
	color := kindColor(le.Entry)
	stroke := func(n *html.Node) *html.Node {
		SetAttr(n, "stroke", color)
		SetAttr(n, "stroke-width", "2.5")
		SetAttr(n, "stroke-linecap", "round")
		return n
	}
	path := func(class, d string) *html.Node {
		n := stroke(svgElement("path", "class", class, "d", d, "fill", "none"))
		SetAttr(n, "stroke-linejoin", "round")
		return n
	}

	appendChildren(svg,
		path("branch-fork", le.ForkPath),
		stroke(svgElement("line", "class", "branch-line",
			"x1", num(le.BranchX), "y1", num(le.BranchLineStartY),
			"x2", num(le.BranchX), "y2", num(le.BranchLineEndY))))
	if !le.Ongoing() {
		svg.AppendChild(path("branch-merge", le.MergePath))
	}

	appendChildren(svg, svgElement("circle", "class", "commit-start",
		"cx", num(layout.CenterX), "cy", num(le.NodeStartY()),
		"r", num(cfg.NodeRadius+1),
		"fill", color, "stroke", "#0a0a0a", "stroke-width", "2",
		"style", style("filter", "url(#glow)")))

	if le.Ongoing() {
		r := cfg.NodeRadius
		ring := appendChildren(svgElement("circle", "class", "commit-pulse",
			"cx", num(le.BranchX), "cy", num(le.BranchLineEndY), "r", num(r+4),
			"fill", "none", "stroke", color, "stroke-width", "2", "opacity", "0.5"),
			svgElement("animate", "attributeName", "r",
				"values", fmt.Sprintf("%s;%s;%s", num(r+2), num(r+8), num(r+2)),
				"dur", "2s", "repeatCount", "indefinite"),
			svgElement("animate", "attributeName", "opacity",
				"values", "0.5;0.1;0.5", "dur", "2s", "repeatCount", "indefinite"))
		appendChildren(svg, ring, svgElement("circle", "class", "commit-head",
			"cx", num(le.BranchX), "cy", num(le.BranchLineEndY), "r", num(r-1),
			"fill", color, "stroke", color, "stroke-width", "2"))
	} else {
		svg.AppendChild(svgElement("circle", "class", "commit-end",
			"cx", num(layout.CenterX), "cy", num(le.NodeEndY()), "r", num(cfg.NodeRadius-1),
			"fill", color, "stroke", "#0a0a0a", "stroke-width", "2"))
	}

	connectorEnd := le.Card.Left
	if le.IsLeft() {
		connectorEnd = le.Card.Right
	}
	svg.AppendChild(svgElement("line", "class", "card-connector",
		"x1", num(le.BranchX), "y1", num(le.MidY),
		"x2", num(connectorEnd), "y2", num(le.MidY),
		"stroke", color, "stroke-width", "1", "stroke-dasharray", "3,3", "opacity", "0.6"))
}

func desktopCard(id string, le timeline.LayoutEntry, cfg timeline.Config, interactive bool) *cardView {
	e := le.Entry
	side := "right-side"
	position := style(
		"position", "absolute",
		"left", px(le.Card.Left),
		"top", px(le.MidY),
		"transform", "translateY(-50%)",
		"width", px(cfg.CardWidth),
		"z-index", "10",
		"pointer-events", "auto")
	if le.IsLeft() {
		// anchored on the right edge so the card grows away from its branch
		side = "left-side"
		position = style(
			"position", "absolute",
			"right", "calc(100% - "+px(le.Card.Right)+")",
			"top", px(le.MidY),
			"transform", "translateY(-50%)",
			"width", px(cfg.CardWidth),
			"z-index", "10",
			"pointer-events", "auto")
	}

	node := element("div",
		"class", ClassNode+" "+side,
		"data-card-id", id,
		"data-lane", fmt.Sprint(le.Lane),
		"style", position,
		"tabindex", "0",
		"role", "article",
		"aria-label", e.Title+" at "+e.Organization)

	preview := appendChildren(element("div", "class", ClassPreview), text("Hover for details..."))
	details, strip := detailsNode(e)

	if interactive {
		SetAttr(node, "x-data", "{ expanded: false, revealed: false }")
		SetAttr(node, "x-on:mouseenter", expandJS)
		SetAttr(node, "x-on:mouseleave", collapseJS)
		SetAttr(node, "x-on:focus", expandJS)
		SetAttr(node, "x-on:blur", collapseJS)
		SetAttr(preview, "x-show", "!expanded")
		SetAttr(details, "x-show", "expanded")
		SetAttr(strip, "x-ref", "tags")
	}

	appendChildren(node, appendChildren(element("div", "class", ClassCard+" "+cardClass(e)),
		appendChildren(element("div", "class", "node-header"), logoNode(e, 28), dateNode(e)),
		appendChildren(element("h3"), text(e.Title)),
		orgNode(e),
		preview,
		details))

	return &cardView{
		card:    timeline.Card{ID: id},
		node:    node,
		preview: preview,
		details: details,
		strip:   strip,
	}
}
