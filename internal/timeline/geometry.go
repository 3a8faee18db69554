package timeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// Scale maps dates onto the vertical time axis, most recent at the top.
type Scale struct {
	MinMonth int // padded earliest month, counted from year zero
	MaxMonth int // padded latest month
	cfg      Config
	now      time.Time
}

// NewScale spans every start and end date in entries, padded on both sides.
func NewScale(entries []Entry, cfg Config, now time.Time) Scale {
	s := Scale{cfg: cfg, now: now}
	if len(entries) == 0 {
		m := Ongoing.monthIndex(now)
		s.MinMonth, s.MaxMonth = m-cfg.PaddingMonths, m+cfg.PaddingMonths
		return s
	}
	s.MinMonth, s.MaxMonth = math.MaxInt, math.MinInt
	for _, e := range entries {
		for _, d := range [2]Date{e.Start, e.End} {
			m := d.monthIndex(now)
			s.MinMonth = min(s.MinMonth, m)
			s.MaxMonth = max(s.MaxMonth, m)
		}
	}
	s.MinMonth -= s.cfg.PaddingMonths
	s.MaxMonth += s.cfg.PaddingMonths
	return s
}

// Y is the pixel position of d.
func (s Scale) Y(d Date) float64 {
	return s.y(d.monthIndex(s.now))
}

func (s Scale) y(month int) float64 {
	return s.cfg.LegendOffset + float64(s.MaxMonth-month)*s.cfg.PixelsPerMonth
}

func (s Scale) Months() int {
	return s.MaxMonth - s.MinMonth
}

// Height is the height of the diagram layer below the legend.
func (s Scale) Height() float64 {
	return float64(s.Months())*s.cfg.PixelsPerMonth + s.cfg.LegendOffset + s.cfg.BottomPadding
}

type YearTick struct {
	Year int     `json:"year"`
	Y    float64 `json:"y"`
}

// LayoutEntry is the pixel geometry of one entry for a single render pass.
type LayoutEntry struct {
	Entry    Entry `json:"entry"`
	Lane     int   `json:"lane"`
	Overflow bool  `json:"overflow,omitempty"`

	StartY       float64 `json:"startY"`
	EndY         float64 `json:"endY"`
	StartYOffset float64 `json:"startYOffset"`
	EndYOffset   float64 `json:"endYOffset"`

	BranchX          float64 `json:"branchX"`
	CurveRadius      float64 `json:"curveRadius"`
	CurveDir         float64 `json:"curveDir"` // -1 when the branch runs up the screen
	BranchLineStartY float64 `json:"branchLineStartY"`
	BranchLineEndY   float64 `json:"branchLineEndY"`
	ForkPath         string  `json:"forkPath"`
	MergePath        string  `json:"mergePath,omitempty"` // empty for ongoing entries

	MidY   float64 `json:"midY"`
	Bounds Rect    `json:"bounds"` // box reserved during lane assignment
	Card   Rect    `json:"card"`
}

func (le LayoutEntry) IsLeft() bool { return le.Lane < 0 }

// NodeStartY is the start commit position after shared-date spreading.
func (le LayoutEntry) NodeStartY() float64 { return le.StartY + le.StartYOffset }

// NodeEndY is the end commit position after shared-date spreading.
func (le LayoutEntry) NodeEndY() float64 { return le.EndY + le.EndYOffset }

func (le LayoutEntry) Ongoing() bool { return le.Entry.End.Ongoing }

// Layout is the complete desktop geometry.
type Layout struct {
	Entries        []LayoutEntry `json:"entries"`
	CenterX        float64       `json:"centerX"`
	Width          float64       `json:"width"`
	TimelineHeight float64       `json:"timelineHeight"`
	MinHeight      float64       `json:"minHeight"`
	MainLineTop    float64       `json:"mainLineTop"`
	MainLineBottom float64       `json:"mainLineBottom"`
	Ticks          []YearTick    `json:"ticks"`
	Config         Config        `json:"-"`
}

// Build runs lane assignment and derives all pixel geometry. It is a pure
// function of its inputs.
func Build(entries []Entry, cfg Config, now time.Time) Layout {
	scale := NewScale(entries, cfg, now)
	placements := AssignLanes(entries, scale, cfg)

	maxRight, maxLeft := 0, 0
	for _, p := range placements {
		if p.Lane > 0 {
			maxRight = max(maxRight, p.Lane)
		} else {
			maxLeft = max(maxLeft, -p.Lane)
		}
	}
	leftExtent := float64(maxLeft+1)*cfg.BranchSpacing + cfg.CardWidth + cfg.SideMargin
	rightExtent := float64(maxRight+1)*cfg.BranchSpacing + cfg.CardWidth + cfg.SideMargin
	center := max(cfg.MainLineX, leftExtent)
	shift := center - cfg.MainLineX

	height := scale.Height()
	layout := Layout{
		Entries:        make([]LayoutEntry, len(placements)),
		CenterX:        center,
		Width:          center + rightExtent,
		TimelineHeight: height,
		MinHeight:      height + cfg.LegendHeight,
		MainLineTop:    cfg.LegendOffset - 20,
		MainLineBottom: height - 20,
		Config:         cfg,
	}

	for i, p := range placements {
		layout.Entries[i] = LayoutEntry{
			Entry:    p.Entry,
			Lane:     p.Lane,
			Overflow: p.Overflow,
			StartY:   p.StartY,
			EndY:     p.EndY,
			BranchX:  laneBranchX(center, p.Lane, cfg.BranchSpacing),
			Bounds:   p.Bounds.shiftX(shift),
		}
	}

	spreadSharedDates(layout.Entries, cfg.DateSpread)
	for i := range layout.Entries {
		routeBranch(&layout.Entries[i], center, cfg)
	}

	for year := scale.MaxMonth / 12; year >= scale.MinMonth/12; year-- {
		layout.Ticks = append(layout.Ticks, YearTick{Year: year, Y: scale.y(year * 12)})
	}
	return layout
}

// spreadSharedDates nudges entries sharing an identical start (or end) date
// apart by delta per item, centred on the shared anchor and ordered by lane.
func spreadSharedDates(entries []LayoutEntry, delta float64) {
	spread := func(key func(LayoutEntry) Date, set func(*LayoutEntry, float64)) {
		var order []Date
		groups := make(map[Date][]int)
		for i, le := range entries {
			k := key(le)
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], i)
		}
		for _, k := range order {
			idx := groups[k]
			if len(idx) < 2 {
				continue
			}
			sort.SliceStable(idx, func(a, b int) bool {
				return entries[idx[a]].Lane < entries[idx[b]].Lane
			})
			mid := float64(len(idx)-1) / 2
			for n, i := range idx {
				set(&entries[i], (float64(n)-mid)*delta)
			}
		}
	}
	spread(func(le LayoutEntry) Date { return le.Entry.Start },
		func(le *LayoutEntry, off float64) { le.StartYOffset = off })
	spread(func(le LayoutEntry) Date { return le.Entry.End },
		func(le *LayoutEntry, off float64) { le.EndYOffset = off })
}

// routeBranch computes the fork, branch and merge geometry of one entry.
func routeBranch(le *LayoutEntry, center float64, cfg Config) {
	startY, endY := le.NodeStartY(), le.NodeEndY()
	x := le.BranchX

	r := math.Min(cfg.MaxCurveRadius, math.Abs(endY-startY)/3)
	dir := 1.0
	if endY < startY {
		dir = -1
	}
	// the elbow sits on the main-line side of the branch
	elbow := x - r
	if le.IsLeft() {
		elbow = x + r
	}
	le.CurveRadius, le.CurveDir = r, dir

	le.ForkPath = fmt.Sprintf("M %s %s L %s %s Q %s %s %s %s",
		num(center), num(startY),
		num(elbow), num(startY),
		num(x), num(startY), num(x), num(startY+dir*r))

	le.BranchLineStartY = startY + dir*r
	if le.Ongoing() {
		le.BranchLineEndY = endY + dir*r
	} else {
		le.BranchLineEndY = endY - dir*r
		le.MergePath = fmt.Sprintf("M %s %s Q %s %s %s %s L %s %s",
			num(x), num(endY-dir*r),
			num(x), num(endY), num(elbow), num(endY),
			num(center), num(endY))
	}

	lo := math.Min(le.BranchLineStartY, le.BranchLineEndY)
	hi := math.Max(le.BranchLineStartY, le.BranchLineEndY)
	le.MidY = lo + (hi-lo)/2

	left := cardLeft(x, le.Lane, cfg)
	le.Card = Rect{
		Left:   left,
		Right:  left + cfg.CardWidth,
		Top:    le.MidY - cfg.CardHeight/2,
		Bottom: le.MidY + cfg.CardHeight/2,
	}
}

// num formats a pixel value for SVG attributes.
func num(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPx is num exported for renderers.
func FormatPx(v float64) string { return num(v) }
