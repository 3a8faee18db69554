package timeline

import "testing"

func TestCardStateNext(t *testing.T) {
	tests := []struct {
		from CardState
		ev   CardEvent
		want CardState
	}{
		{Collapsed, PointerEnter, Expanded},
		{Collapsed, Focus, Expanded},
		{Collapsed, PointerLeave, Collapsed},
		{Collapsed, Blur, Collapsed},
		{Expanded, PointerLeave, Collapsed},
		{Expanded, Blur, Collapsed},
		{Expanded, PointerEnter, Expanded},
		{Expanded, Focus, Expanded},
	}
	for _, tt := range tests {
		if got := tt.from.Next(tt.ev); got != tt.want {
			t.Errorf("%v.Next(%d) = %v, want %v", tt.from, tt.ev, got, tt.want)
		}
	}
}

func TestCardHandle_FirstRevealOnce(t *testing.T) {
	c := &Card{ID: "card-0"}

	changed, first := c.Handle(PointerEnter)
	if !changed || !first {
		t.Fatalf("first expand: changed=%v first=%v, want true true", changed, first)
	}
	changed, first = c.Handle(PointerEnter)
	if changed || first {
		t.Errorf("repeat enter: changed=%v first=%v, want false false", changed, first)
	}
	c.Handle(PointerLeave)
	if c.State != Collapsed {
		t.Errorf("after leave state = %v, want collapsed", c.State)
	}
	_, first = c.Handle(Focus)
	if first {
		t.Error("second expand must not report a first reveal")
	}
	if !c.Revealed() {
		t.Error("Revealed() should stay true")
	}
}

func TestParseCardEvent(t *testing.T) {
	for name, want := range map[string]CardEvent{
		"mouseenter": PointerEnter,
		"mouseleave": PointerLeave,
		"focus":      Focus,
		"blur":       Blur,
	} {
		got, ok := ParseCardEvent(name)
		if !ok || got != want {
			t.Errorf("ParseCardEvent(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseCardEvent("click"); ok {
		t.Error("click should not be a card event")
	}
}
