package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
		want    string
	}{
		{in: "50%", want: "50%"},
		{in: "100%", want: "100%"},
		{in: "0%", want: "0%"},
		{in: "320u", want: "320u"},
		{in: "320", want: "320u"},
		{in: " 25% ", want: "25%"},
		{in: "", wantErr: true},
		{in: "150%", wantErr: true},
		{in: "-10%", wantErr: true},
		{in: "-5u", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		pt, err := ParsePoint(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePoint(%q) expected error, got %v", tt.in, pt)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePoint(%q): %v", tt.in, err)
			continue
		}
		if got := pt.String(); got != tt.want {
			t.Errorf("ParsePoint(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := cfg.Preset("default"); !ok {
		t.Error("default preset missing")
	}
	if _, ok := cfg.Preset("snap"); !ok {
		t.Error("snap preset missing")
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
presets:
  default:
    height: 70%
  tall:
    snap_points: ["30%", "90%"]
    fade_from: 1
    dismissible: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p, ok := cfg.Preset("default")
	if !ok {
		t.Fatal("default preset missing")
	}
	if p.Height != "70%" {
		t.Errorf("default height = %q, want 70%% from file", p.Height)
	}

	tall, ok := cfg.Preset("tall")
	if !ok {
		t.Fatal("tall preset missing")
	}
	if len(tall.SnapPoints) != 2 || tall.SnapPoints[0] != "30%" {
		t.Errorf("tall snap points = %v", tall.SnapPoints)
	}
	if tall.FadeFrom == nil || *tall.FadeFrom != 1 {
		t.Error("tall fade_from not parsed")
	}
	if tall.Dismissible == nil || *tall.Dismissible {
		t.Error("tall dismissible not parsed as false")
	}

	// Built-in presets not named in the file survive.
	if _, ok := cfg.Preset("pinned"); !ok {
		t.Error("pinned preset lost in merge")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("presets: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestPresetOptions(t *testing.T) {
	fadeFrom := 2
	p := Preset{
		SnapPoints:     []string{"20%", "50%", "100%"},
		FadeFrom:       &fadeFrom,
		CloseThreshold: 0.3,
	}
	opts, err := p.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	// Snap points, default snap point, fade-from, close threshold.
	if len(opts) != 4 {
		t.Errorf("got %d options, want 4", len(opts))
	}

	bad := Preset{SnapPoints: []string{"nope"}}
	if _, err := bad.Options(); err == nil {
		t.Error("expected error for invalid snap point")
	}

	badHeight := Preset{Height: "300%"}
	if _, err := badHeight.Options(); err == nil {
		t.Error("expected error for invalid height")
	}
}
