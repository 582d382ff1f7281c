package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"already e164", "+359887123456", "+359887123456"},
		{"e164 with whitespace", "  +359887123456 ", "+359887123456"},
		{"us number in e164", "+14155552671", "+14155552671"},
		{"garbage", "not-a-phone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoomTypes(t *testing.T) {
	got := NormalizeRoomTypes([]string{" Suite", "Suite ", "", "Delux", "  "})
	want := []string{"Suite", "Delux"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %q, want %q", i, got[i], want[i])
		}
	}
}
