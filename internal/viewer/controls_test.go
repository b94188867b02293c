package viewer

import "testing"

func TestControlsPressRelease(t *testing.T) {
	var c Controls
	c.Press(KeyForward)
	c.Press(KeyTurnRight)
	if c.Move != 1 || c.Turn != 1 {
		t.Fatalf("after presses got turn=%d move=%d", c.Turn, c.Move)
	}
	c.Release(KeyForward)
	c.Release(KeyTurnRight)
	if c.Move != 0 || c.Turn != 0 {
		t.Fatalf("after releases got turn=%d move=%d", c.Turn, c.Move)
	}
}

func TestControlsStaleReleaseIgnored(t *testing.T) {
	cases := []struct {
		name     string
		first    Key
		second   Key
		wantTurn int
		wantMove int
	}{
		{"forward then back, release forward", KeyForward, KeyBack, 0, -1},
		{"back then forward, release back", KeyBack, KeyForward, 0, 1},
		{"left then right, release left", KeyTurnLeft, KeyTurnRight, 1, 0},
		{"right then left, release right", KeyTurnRight, KeyTurnLeft, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Controls
			c.Press(tc.first)
			c.Press(tc.second)
			c.Release(tc.first)
			if c.Turn != tc.wantTurn || c.Move != tc.wantMove {
				t.Errorf("turn=%d move=%d; want turn=%d move=%d", c.Turn, c.Move, tc.wantTurn, tc.wantMove)
			}
		})
	}
}

func TestControlsApply(t *testing.T) {
	c := Controls{Turn: -1, Move: 1}
	v := &Viewer{}
	c.Apply(v)
	if v.TurnIntent != -1 || v.MoveIntent != 1 {
		t.Errorf("intents = (%d,%d)", v.TurnIntent, v.MoveIntent)
	}
	c.Reset()
	c.Apply(v)
	if v.TurnIntent != 0 || v.MoveIntent != 0 {
		t.Errorf("intents after reset = (%d,%d)", v.TurnIntent, v.MoveIntent)
	}
}

func TestParseKey(t *testing.T) {
	cases := map[string]Key{
		"forward": KeyForward,
		"up":      KeyForward,
		"back":    KeyBack,
		"down":    KeyBack,
		"left":    KeyTurnLeft,
		"right":   KeyTurnRight,
		"jump":    KeyNone,
	}
	for name, want := range cases {
		if got := ParseKey(name); got != want {
			t.Errorf("ParseKey(%q) = %v; want %v", name, got, want)
		}
	}
}
