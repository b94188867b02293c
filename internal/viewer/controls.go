package viewer

// Key is a logical control key.
type Key uint8

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeyTurnLeft
	KeyTurnRight
)

// ParseKey maps a key name ("forward", "back", "left", "right") to a Key.
func ParseKey(name string) Key {
	switch name {
	case "forward", "up":
		return KeyForward
	case "back", "down":
		return KeyBack
	case "left":
		return KeyTurnLeft
	case "right":
		return KeyTurnRight
	}
	return KeyNone
}

// Controls latches press/release events into turn and move intents. A
// release only clears an intent if that key is still the one driving it,
// so releasing a stale key never cancels a newer press.
type Controls struct {
	Turn int
	Move int
}

// Press applies a key-down event.
func (c *Controls) Press(k Key) {
	switch k {
	case KeyForward:
		c.Move = 1
	case KeyBack:
		c.Move = -1
	case KeyTurnRight:
		c.Turn = 1
	case KeyTurnLeft:
		c.Turn = -1
	}
}

// Release applies a key-up event.
func (c *Controls) Release(k Key) {
	switch k {
	case KeyForward:
		if c.Move == 1 {
			c.Move = 0
		}
	case KeyBack:
		if c.Move == -1 {
			c.Move = 0
		}
	case KeyTurnRight:
		if c.Turn == 1 {
			c.Turn = 0
		}
	case KeyTurnLeft:
		if c.Turn == -1 {
			c.Turn = 0
		}
	}
}

// Reset clears both intents.
func (c *Controls) Reset() { c.Turn, c.Move = 0, 0 }

// Apply copies the latched intents onto v.
func (c *Controls) Apply(v *Viewer) { v.SetIntents(c.Turn, c.Move) }
