package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "whole units", input: "150", want: 15000},
		{name: "two decimals", input: "150.00", want: 15000},
		{name: "one decimal", input: "150.5", want: 15050},
		{name: "cents only", input: "0.99", want: 99},
		{name: "negative", input: "-12.50", want: -1250},
		{name: "surrounding whitespace", input: " 100.00 ", want: 10000},
		{name: "too many decimals", input: "1.234", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{15000, "150.00"},
		{15050, "150.50"},
		{99, "0.99"},
		{-1250, "-12.50"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Amount(%d).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestMulNightsNoDrift(t *testing.T) {
	// 3 nights at 100.00 plus 2 nights at 150.00 must be exactly 600.00.
	total := FromUnits(100).MulNights(3) + FromUnits(150).MulNights(2)
	if total != FromUnits(600) {
		t.Errorf("total = %s, want 600.00", total)
	}
}

func TestDivRound(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		nights int
		want   Amount
	}{
		{"exact division", FromUnits(600), 5, FromUnits(120)},
		{"rounds half up", Amount(1001), 2, Amount(501)},
		{"zero nights", FromUnits(100), 0, 0},
		{"negative rounds away from zero", Amount(-1001), 2, Amount(-501)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.DivRound(tt.nights); got != tt.want {
				t.Errorf("DivRound = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Price Amount `json:"price"`
	}

	out, err := json.Marshal(payload{Price: 15050})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"price":"150.50"}` {
		t.Errorf("marshal = %s", out)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"price":"150.50"}`), &decoded); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if decoded.Price != 15050 {
		t.Errorf("decoded string price = %d", decoded.Price)
	}

	if err := json.Unmarshal([]byte(`{"price":99.5}`), &decoded); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if decoded.Price != 9950 {
		t.Errorf("decoded numeric price = %d", decoded.Price)
	}
}
