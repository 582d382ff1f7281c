package pricing

import (
	"context"
	"reflect"
	"testing"
	"time"

	pkgerrors "innkeep/internal/packages/errors"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/money"
)

type stubPeriodSource struct {
	periods []*model.RoomPricePeriod
}

func (s *stubPeriodSource) FindCovering(ctx context.Context, roomTypes []string, start, end time.Time) ([]*model.RoomPricePeriod, error) {
	var out []*model.RoomPricePeriod
	for _, p := range s.periods {
		for _, rt := range roomTypes {
			if p.RoomType == rt && dates.Overlaps(p.StartDate, p.EndDate, start, end) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type stubPackageLookup struct {
	packages map[string]*model.HolidayPackage
}

func (s *stubPackageLookup) FindByID(ctx context.Context, id string) (*model.HolidayPackage, error) {
	pkg, ok := s.packages[id]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	return pkg, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func testRoom() *model.Room {
	return &model.Room{
		ID:                "650000000000000000000010",
		RoomType:          "Delux",
		BasePricePerNight: money.FromUnits(100),
	}
}

func newTestCalculator(periods []*model.RoomPricePeriod, packages ...*model.HolidayPackage) *Calculator {
	byID := make(map[string]*model.HolidayPackage, len(packages))
	for _, p := range packages {
		byID[p.ID] = p
	}
	return NewCalculator(&stubPeriodSource{periods: periods}, &stubPackageLookup{packages: byID}, testLogger())
}

func TestQuote_BasePriceOnly(t *testing.T) {
	c := newTestCalculator(nil)

	quote, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 1), dates.Day(2026, 7, 5), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Nights != 4 {
		t.Errorf("expected 4 nights, got %d", quote.Nights)
	}
	if quote.TotalPrice != money.FromUnits(400) {
		t.Errorf("expected total 400.00, got %s", quote.TotalPrice)
	}
	if quote.AveragePerNight != money.FromUnits(100) {
		t.Errorf("expected average 100.00, got %s", quote.AveragePerNight)
	}
	if quote.PackagePricing || quote.PeriodPricing {
		t.Error("expected plain base-rate quote")
	}
}

// Three nights at the 100 base rate, then two nights under a 150 period:
// 3*100 + 2*150 = 600.
func TestQuote_PeriodOverridesCoveredNightsOnly(t *testing.T) {
	c := newTestCalculator([]*model.RoomPricePeriod{
		{
			ID:        "650000000000000000000040",
			RoomType:  "Delux",
			StartDate: dates.Day(2026, 7, 4),
			EndDate:   dates.Day(2026, 7, 20),
			Price:     money.FromUnits(150),
		},
	})

	quote, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 1), dates.Day(2026, 7, 6), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Nights != 5 {
		t.Errorf("expected 5 nights, got %d", quote.Nights)
	}
	if quote.TotalPrice != money.FromUnits(600) {
		t.Errorf("expected total 600.00, got %s", quote.TotalPrice)
	}
	if !quote.PeriodPricing {
		t.Error("expected period pricing flag")
	}

	wantNightly := []money.Amount{
		money.FromUnits(100),
		money.FromUnits(100),
		money.FromUnits(100),
		money.FromUnits(150),
		money.FromUnits(150),
	}
	if len(quote.PerNight) != len(wantNightly) {
		t.Fatalf("expected %d nightly prices, got %d", len(wantNightly), len(quote.PerNight))
	}
	for i, want := range wantNightly {
		if quote.PerNight[i].Price != want {
			t.Errorf("night %d: expected %s, got %s", i, want, quote.PerNight[i].Price)
		}
	}

	if len(quote.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(quote.Segments))
	}
	if quote.Segments[0].Nights != 3 || quote.Segments[0].Total != money.FromUnits(300) {
		t.Errorf("unexpected first segment: %+v", quote.Segments[0])
	}
	if quote.Segments[1].Nights != 2 || quote.Segments[1].Total != money.FromUnits(300) {
		t.Errorf("unexpected second segment: %+v", quote.Segments[1])
	}
}

func TestQuote_OneNightStayAtPeriodBoundary(t *testing.T) {
	c := newTestCalculator([]*model.RoomPricePeriod{
		{
			ID:        "650000000000000000000040",
			RoomType:  "Delux",
			StartDate: dates.Day(2026, 7, 5),
			EndDate:   dates.Day(2026, 7, 10),
			Price:     money.FromUnits(150),
		},
	})

	// The night of the 4th ends the morning the period starts, so the base
	// rate applies.
	quote, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 4), dates.Day(2026, 7, 5), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Nights != 1 {
		t.Errorf("expected 1 night, got %d", quote.Nights)
	}
	if quote.TotalPrice != money.FromUnits(100) {
		t.Errorf("expected total 100.00, got %s", quote.TotalPrice)
	}

	// The night of the 5th is the period's first night.
	quote, err = c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 5), dates.Day(2026, 7, 6), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalPrice != money.FromUnits(150) {
		t.Errorf("expected total 150.00, got %s", quote.TotalPrice)
	}
}

func TestQuote_RejectsInvalidRange(t *testing.T) {
	c := newTestCalculator(nil)

	for _, nights := range []int{0, -3} {
		checkIn := dates.Day(2026, 7, 10)
		_, err := c.Quote(context.Background(), testRoom(), checkIn, checkIn.AddDate(0, 0, nights), "")
		if err == nil {
			t.Fatalf("expected error for %d-night stay", nights)
		}
		if !apperrors.IsCode(err, apperrors.CodeInvalidDateRange) {
			t.Errorf("expected code %s, got %v", apperrors.CodeInvalidDateRange, err)
		}
	}
}

func TestQuote_PackageFlatPriceIgnoresNightCount(t *testing.T) {
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000030",
		Name:      "Midsummer Escape",
		StartDate: dates.Day(2026, 6, 20),
		EndDate:   dates.Day(2026, 6, 27),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(900),
		},
		IsActive: true,
	}
	c := newTestCalculator(nil, pkg)

	quote, err := c.Quote(context.Background(), testRoom(), pkg.StartDate, pkg.EndDate, pkg.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalPrice != money.FromUnits(900) {
		t.Errorf("expected flat package total 900.00, got %s", quote.TotalPrice)
	}
	if !quote.PackagePricing {
		t.Error("expected package pricing flag")
	}
	if quote.Nights != 7 {
		t.Errorf("expected 7 nights, got %d", quote.Nights)
	}
	// Display average reflects the accumulated total, not a naive sum of
	// distinct rates.
	wantAvg := money.FromUnits(900).DivRound(7)
	if quote.AveragePerNight != wantAvg {
		t.Errorf("expected average %s, got %s", wantAvg, quote.AveragePerNight)
	}
}

func TestQuote_PackagePriceMissingForRoomType(t *testing.T) {
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000030",
		Name:      "Midsummer Escape",
		StartDate: dates.Day(2026, 6, 20),
		EndDate:   dates.Day(2026, 6, 27),
		RoomTypePrices: map[string]money.Amount{
			"Suite": money.FromUnits(1400),
		},
		IsActive: true,
	}
	c := newTestCalculator(nil, pkg)

	_, err := c.Quote(context.Background(), testRoom(), pkg.StartDate, pkg.EndDate, pkg.ID)
	if err == nil {
		t.Fatal("expected error for unpriced room type")
	}
	if !apperrors.IsCode(err, apperrors.CodePackagePriceMissing) {
		t.Errorf("expected code %s, got %v", apperrors.CodePackagePriceMissing, err)
	}
}

func TestQuote_UnknownPackageFails(t *testing.T) {
	c := newTestCalculator(nil)

	_, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 1), dates.Day(2026, 7, 5), "650000000000000000000099")
	if err == nil {
		t.Fatal("expected error for unknown package")
	}
	if !apperrors.IsCode(err, apperrors.CodePackageNotAvailable) {
		t.Errorf("expected code %s, got %v", apperrors.CodePackageNotAvailable, err)
	}
}

func TestQuote_StayOutsidePackageWindowPricesNightly(t *testing.T) {
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000030",
		Name:      "Midsummer Escape",
		StartDate: dates.Day(2026, 6, 20),
		EndDate:   dates.Day(2026, 6, 27),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(900),
		},
		IsActive: true,
	}
	c := newTestCalculator(nil, pkg)

	quote, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 1), dates.Day(2026, 7, 3), pkg.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.PackagePricing {
		t.Error("expected nightly pricing for a stay outside the package window")
	}
	if quote.TotalPrice != money.FromUnits(200) {
		t.Errorf("expected total 200.00, got %s", quote.TotalPrice)
	}
}

func TestQuote_InactivePackagePricesNightly(t *testing.T) {
	pkg := &model.HolidayPackage{
		ID:        "650000000000000000000030",
		Name:      "Midsummer Escape",
		StartDate: dates.Day(2026, 6, 20),
		EndDate:   dates.Day(2026, 6, 27),
		RoomTypePrices: map[string]money.Amount{
			"Delux": money.FromUnits(900),
		},
		IsActive: false,
	}
	c := newTestCalculator(nil, pkg)

	quote, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 6, 21), dates.Day(2026, 6, 23), pkg.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.PackagePricing {
		t.Error("expected an inactive package to be ignored for pricing")
	}
	if quote.TotalPrice != money.FromUnits(200) {
		t.Errorf("expected total 200.00, got %s", quote.TotalPrice)
	}
}

func TestQuote_Deterministic(t *testing.T) {
	c := newTestCalculator([]*model.RoomPricePeriod{
		{
			ID:        "650000000000000000000040",
			RoomType:  "Delux",
			StartDate: dates.Day(2026, 7, 2),
			EndDate:   dates.Day(2026, 7, 4),
			Price:     money.FromUnits(175),
		},
	})

	first, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 1), dates.Day(2026, 7, 6), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Quote(context.Background(), testRoom(), dates.Day(2026, 7, 1), dates.Day(2026, 7, 6), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("quote not deterministic: %+v vs %+v", first, again)
		}
	}
}
