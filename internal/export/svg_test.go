package export

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/collatzlab/internal/collatz"
	"github.com/san-kum/collatzlab/internal/viz"
)

func TestWriteTrajectory(t *testing.T) {
	traj, err := collatz.Generate(big.NewInt(6))
	if err != nil {
		t.Fatal(err)
	}
	theme := viz.GetTheme("ocean")

	for _, m := range viz.Modes() {
		var buf bytes.Buffer
		if err := WriteTrajectory(&buf, m, traj, Options{Theme: theme}); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
			t.Errorf("%s: not a complete SVG document", m)
		}
		if got := strings.Count(out, "<circle"); got != 9 {
			t.Errorf("%s: expected 9 dots, got %d", m, got)
		}
		// 6 even values and 3 odd in [6 3 10 5 16 8 4 2 1]
		if got := strings.Count(out, `fill="`+string(theme.Even)+`"`); got != 6 {
			t.Errorf("%s: expected 6 even dots, got %d", m, got)
		}
		if !strings.Contains(out, "n = 6") {
			t.Errorf("%s: missing title", m)
		}
	}
}

func TestWritePointsSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePoints(&buf, []viz.Point{{X: 1, Y: 1}}, "one", Options{Width: 100, Height: 100}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `cx="50.0" cy="50.0"`) {
		t.Errorf("single point should be centred:\n%s", buf.String())
	}
}

func TestWriteRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrajectory(&buf, viz.ModeStatic, nil, Options{}); !errors.Is(err, collatz.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := WritePoints(&buf, nil, "", Options{}); !errors.Is(err, collatz.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSaveTrajectory(t *testing.T) {
	traj, _ := collatz.Generate(big.NewInt(27))
	path := filepath.Join(t.TempDir(), "27.svg")
	if err := SaveTrajectory(path, viz.ModeSpiral, traj, Options{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "<circle") != 112 {
		t.Error("expected one dot per value")
	}

	if err := SaveTrajectory(filepath.Join(t.TempDir(), "missing", "x.svg"), viz.ModeTree, traj, Options{}); err == nil {
		t.Error("expected error for missing directory")
	}
}
