package dates

import (
	"testing"
	"time"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "one night stay",
			checkIn:  Day(2026, 5, 1),
			checkOut: Day(2026, 5, 2),
			want:     1,
		},
		{
			name:     "week long stay",
			checkIn:  Day(2026, 3, 1),
			checkOut: Day(2026, 3, 8),
			want:     7,
		},
		{
			name:     "stay across month boundary",
			checkIn:  Day(2026, 6, 28),
			checkOut: Day(2026, 7, 3),
			want:     5,
		},
		{
			name:     "non-midnight inputs are normalized first",
			checkIn:  time.Date(2026, 5, 1, 14, 30, 0, 0, time.UTC),
			checkOut: time.Date(2026, 5, 2, 11, 0, 0, 0, time.UTC),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 time.Time
		want                       bool
	}{
		{
			name:   "identical intervals overlap",
			start1: Day(2026, 3, 1), end1: Day(2026, 3, 8),
			start2: Day(2026, 3, 1), end2: Day(2026, 3, 8),
			want: true,
		},
		{
			name:   "single shared night",
			start1: Day(2026, 3, 1), end1: Day(2026, 3, 3),
			start2: Day(2026, 3, 2), end2: Day(2026, 3, 5),
			want: true,
		},
		{
			name:   "back to back stays do not overlap",
			start1: Day(2026, 3, 1), end1: Day(2026, 3, 3),
			start2: Day(2026, 3, 3), end2: Day(2026, 3, 5),
			want: false,
		},
		{
			name:   "contained interval overlaps",
			start1: Day(2026, 3, 1), end1: Day(2026, 3, 8),
			start2: Day(2026, 3, 2), end2: Day(2026, 3, 3),
			want: true,
		},
		{
			name:   "disjoint intervals",
			start1: Day(2026, 3, 1), end1: Day(2026, 3, 3),
			start2: Day(2026, 4, 1), end2: Day(2026, 4, 3),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.start2, tt.end2, tt.start1, tt.end1); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCovers(t *testing.T) {
	start, end := Day(2026, 7, 1), Day(2026, 7, 10)

	if !Covers(start, end, Day(2026, 7, 1)) {
		t.Error("start day should be covered")
	}
	if !Covers(start, end, Day(2026, 7, 9)) {
		t.Error("last night should be covered")
	}
	if Covers(start, end, Day(2026, 7, 10)) {
		t.Error("end day is exclusive and must not be covered")
	}
	if Covers(start, end, Day(2026, 6, 30)) {
		t.Error("day before start must not be covered")
	}
}

func TestWithin(t *testing.T) {
	outerStart, outerEnd := Day(2026, 3, 1), Day(2026, 3, 8)

	if !Within(outerStart, outerEnd, outerStart, outerEnd) {
		t.Error("an interval is within itself")
	}
	if !Within(Day(2026, 3, 2), Day(2026, 3, 3), outerStart, outerEnd) {
		t.Error("strict sub-interval should be within")
	}
	if Within(Day(2026, 2, 28), Day(2026, 3, 3), outerStart, outerEnd) {
		t.Error("interval starting earlier is not within")
	}
	if Within(Day(2026, 3, 5), Day(2026, 3, 9), outerStart, outerEnd) {
		t.Error("interval ending later is not within")
	}
}

func TestEachNight(t *testing.T) {
	var nights []time.Time
	EachNight(Day(2026, 6, 28), Day(2026, 7, 1), func(night time.Time) {
		nights = append(nights, night)
	})

	want := []time.Time{Day(2026, 6, 28), Day(2026, 6, 29), Day(2026, 6, 30)}
	if len(nights) != len(want) {
		t.Fatalf("expected %d nights, got %d", len(want), len(nights))
	}
	for i := range want {
		if !nights[i].Equal(want[i]) {
			t.Errorf("night %d = %v, want %v", i, nights[i], want[i])
		}
	}
}
