package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"leading and trailing spaces", "  Maria Petrova  ", "Maria Petrova"},
		{"internal runs collapse", "Maria   \t Petrova", "Maria Petrova"},
		{"already normalized", "Maria Petrova", "Maria Petrova"},
		{"unicode preserved", "  Мария  Петрова ", "Мария Петрова"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  a  b  c ", "Suite", " Double   Room "}
	for _, in := range inputs {
		once := TrimAndNormalize(in)
		twice := TrimAndNormalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeRoomType(t *testing.T) {
	if got := NormalizeRoomType(" Suite  "); got != "Suite" {
		t.Errorf("NormalizeRoomType = %q, want %q", got, "Suite")
	}
	// Casing is preserved: room types are exact catalog keys.
	if got := NormalizeRoomType("delux"); got != "delux" {
		t.Errorf("NormalizeRoomType should not change case, got %q", got)
	}
}
