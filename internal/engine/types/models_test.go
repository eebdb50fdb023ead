package types

import "testing"

func TestSnapshot_PositionDisplay(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"known total", Snapshot{Position: "07:30", Total: "15:00"}, "07:30 / 15:00"},
		{"unknown total", Snapshot{Position: "07:30", Total: PlaceholderTotal}, "07:30"},
		{"empty total", Snapshot{Position: "00:10"}, "00:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.PositionDisplay(); got != tt.want {
				t.Errorf("PositionDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitialSnapshot(t *testing.T) {
	s := InitialSnapshot("")
	if s.Total != PlaceholderTotal {
		t.Errorf("Total = %q, want %q", s.Total, PlaceholderTotal)
	}
	if s.ETA != PlaceholderETA || s.Speed != PlaceholderSpeed || s.Rate != PlaceholderRate {
		t.Errorf("unexpected placeholders: %+v", s)
	}
	if s.Percent != 0 || s.Finished {
		t.Errorf("initial snapshot should be empty progress, got %+v", s)
	}
}
