package viz

import (
	"fmt"
	"strings"
)

// Mode selects how a trajectory is displayed.
type Mode int

const (
	ModeStatic Mode = iota
	ModeAnimation
	ModeSpiral
	ModeTree
)

var modeNames = []string{"static", "animation", "spiral", "tree"}

// Modes returns every display mode in menu order.
func Modes() []Mode {
	return []Mode{ModeStatic, ModeAnimation, ModeSpiral, ModeTree}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Description is the menu text for the mode.
func (m Mode) Description() string {
	switch m {
	case ModeStatic:
		return "static plots (linear and log scale)"
	case ModeAnimation:
		return "step-by-step animation"
	case ModeSpiral:
		return "spiral projection"
	case ModeTree:
		return "parity tree"
	}
	return m.String()
}

// ParseMode accepts a mode name, its 1-based menu number, or "animate".
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "1", "static":
		return ModeStatic, nil
	case "2", "animation", "animate":
		return ModeAnimation, nil
	case "3", "spiral":
		return ModeSpiral, nil
	case "4", "tree":
		return ModeTree, nil
	}
	return ModeStatic, fmt.Errorf("unknown mode %q (available: %s)", s, strings.Join(modeNames, ", "))
}
