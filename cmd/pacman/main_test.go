package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/levels"
)

func TestParseMoves(t *testing.T) {
	tests := []struct {
		script  string
		want    []core.Direction
		wantErr bool
	}{
		{"", nil, false},
		{"UDLR", []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}, false},
		{"l . r", []core.Direction{core.DirLeft, core.DirNone, core.DirRight}, false},
		{"LX", nil, true},
	}

	for _, tt := range tests {
		got, err := parseMoves(tt.script)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMoves(%q) error = %v, wantErr %v", tt.script, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseMoves(%q) = %v, expected %v", tt.script, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseMoves(%q)[%d] = %v, expected %v", tt.script, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	lvl, err := levels.BuiltinByID("classic")
	if err != nil {
		t.Fatalf("BuiltinByID() failed: %v", err)
	}
	moves, err := parseMoves("LLLLUUUURRRRDDDD")
	if err != nil {
		t.Fatalf("parseMoves() failed: %v", err)
	}

	a, err := simulate(lvl, core.DefaultRules(), 99, moves, 80, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(lvl, core.DefaultRules(), 99, moves, 80, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("same seed and moves diverged:\n%s\nvs\n%s", a, b)
	}
	if a.Score < 10 {
		t.Errorf("Score = %d, expected the first dots to be eaten", a.Score)
	}
}

func TestSimulateFirstMove(t *testing.T) {
	lvl, err := levels.BuiltinByID("classic")
	if err != nil {
		t.Fatalf("BuiltinByID() failed: %v", err)
	}

	var events []core.Event
	snap, err := simulate(lvl, core.DefaultRules(), 1, []core.Direction{core.DirLeft, core.DirNone}, 0,
		func(_ uint64, ev core.Event) { events = append(events, ev) })
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if snap.Tick != 2 || snap.Score != 10 {
		t.Errorf("tick=%d score=%d, expected tick=2 score=10", snap.Tick, snap.Score)
	}
	if snap.Player.Pos != (core.Position{Row: 15, Col: 7}) {
		t.Errorf("player at %v, expected (15,7)", snap.Player.Pos)
	}
	if len(events) == 0 {
		t.Error("trace should receive events")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.txt")
	rows := []string{
		"WWWWWWWWWW",
		"WPSSSSSSSW",
		"WSWWWWWWSW",
		"WSSSSSSSSW",
		"WSWWWWWWSW",
		"WSSSSSSSSW",
		"WSWWWWWWSW",
		"WSSSSSSSSW",
		"WSSSSSSSGW",
		"WWWWWWWWWW",
	}
	if err := os.WriteFile(good, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("WWW\nWPW\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if line, ok := validateFile(good); !ok || !strings.Contains(line, "10x10") {
		t.Errorf("validateFile(good) = %q, %v", line, ok)
	}
	if line, ok := validateFile(bad); ok || !strings.Contains(line, "TOO_SHORT") {
		t.Errorf("validateFile(bad) = %q, %v", line, ok)
	}
}

func TestLookupGame(t *testing.T) {
	appConfig = config.DefaultPacmanConfig()

	for _, name := range []string{"classic", "pacman-classic"} {
		id, err := lookupGame(name)
		if err != nil || id != "pacman-classic" {
			t.Errorf("lookupGame(%q) = %q, %v", name, id, err)
		}
	}
	if _, err := lookupGame("no-such-level"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestResolveLevel(t *testing.T) {
	appConfig = config.DefaultPacmanConfig()

	for _, arg := range []string{"tunnels", "pacman-tunnels"} {
		lvl, err := resolveLevel(arg)
		if err != nil || lvl.ID != "tunnels" {
			t.Errorf("resolveLevel(%q) = %q, %v", arg, lvl.ID, err)
		}
	}
	if _, err := resolveLevel("missing"); err == nil {
		t.Error("unknown level should fail")
	}
}
