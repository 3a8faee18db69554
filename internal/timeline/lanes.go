package timeline

// Rect is an axis-aligned box in diagram pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Overlaps reports whether r and o, each inflated by pad, intersect on both
// axes. Overlap on a single axis is not a conflict.
func (r Rect) Overlaps(o Rect, pad float64) bool {
	horizontal := !(r.Right < o.Left-pad || r.Left > o.Right+pad)
	vertical := !(r.Bottom < o.Top-pad || r.Top > o.Bottom+pad)
	return horizontal && vertical
}

func (r Rect) shiftX(dx float64) Rect {
	r.Left += dx
	r.Right += dx
	return r
}

// Placement is the outcome of lane assignment for one entry.
type Placement struct {
	Entry    Entry
	Lane     int     // sign is the side (negative = left), magnitude the tier
	Overflow bool    // lane came from the fallback, not the tiered search
	StartY   float64 // before shared-date spreading
	EndY     float64
	Bounds   Rect // card box used for overlap checks
}

// laneBranchX is center ± |lane|*spacing, on the lane's side.
func laneBranchX(center float64, lane int, spacing float64) float64 {
	return center + float64(lane)*spacing
}

func cardLeft(branchX float64, lane int, cfg Config) float64 {
	if lane < 0 {
		return branchX - cfg.CardWidth - cfg.CardGap
	}
	return branchX + cfg.CardGap
}

// AssignLanes gives every entry a nonzero lane such that no two cards placed
// within the tiered budget overlap. Entries are processed most recent start
// first, and the result is returned in that order.
func AssignLanes(entries []Entry, scale Scale, cfg Config) []Placement {
	sorted := SortByStartDesc(entries)
	placed := make([]Rect, 0, len(sorted))
	out := make([]Placement, 0, len(sorted))

	for _, e := range sorted {
		startY := scale.Y(e.Start)
		endY := scale.Y(e.End)
		midY := startY + (endY-startY)/2
		top, bottom := midY-cfg.CardHeight/2, midY+cfg.CardHeight/2

		p := Placement{Entry: e, StartY: startY, EndY: endY}
		found := false
	search:
		for tier := 1; tier <= cfg.MaxLanes; tier++ {
			for _, lane := range [2]int{tier, -tier} {
				left := cardLeft(laneBranchX(cfg.MainLineX, lane, cfg.BranchSpacing), lane, cfg)
				box := Rect{Left: left, Right: left + cfg.CardWidth, Top: top, Bottom: bottom}
				if conflicts(box, placed, cfg.CardPadding) {
					continue
				}
				p.Lane, p.Bounds = lane, box
				found = true
				break search
			}
		}

		if !found {
			p.Lane = overflowLane(len(placed)+1, cfg.MaxLanes)
			p.Overflow = true
			left := cardLeft(laneBranchX(cfg.MainLineX, p.Lane, cfg.BranchSpacing), p.Lane, cfg)
			p.Bounds = Rect{Left: left, Right: left + cfg.CardWidth, Top: top, Bottom: bottom}
		}

		placed = append(placed, p.Bounds)
		out = append(out, p)
	}
	return out
}

func conflicts(box Rect, placed []Rect, pad float64) bool {
	for _, other := range placed {
		if box.Overlaps(other, pad) {
			return true
		}
	}
	return false
}

// overflowLane maps the n-th placed card (1-based) to a lane beyond the
// tiered budget. Even n goes left, odd n right; magnitudes never repeat on
// the same side, so every overflow lane is unique.
func overflowLane(n, maxLanes int) int {
	magnitude := maxLanes + (n+1)/2
	if n%2 == 0 {
		return -magnitude
	}
	return magnitude
}
