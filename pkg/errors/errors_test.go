package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestBookingDomainConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"invalid date range", InvalidDateRange("check-out must be after check-in"), CodeInvalidDateRange, http.StatusBadRequest},
		{"room not available", RoomNotAvailable("room-1", "overlapping booking"), CodeRoomNotAvailable, http.StatusConflict},
		{"package not available", PackageNotAvailable("pkg-1"), CodePackageNotAvailable, http.StatusConflict},
		{"package price missing", PackagePriceMissing("pkg-1", "Suite"), CodePackagePriceMissing, http.StatusUnprocessableEntity},
		{"booking conflict", BookingConflict("room-1"), CodeBookingConflict, http.StatusConflict},
		{"period overlap", PeriodOverlap("Delux"), CodePeriodOverlap, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := RoomNotAvailable("room-9", "exclusive package window")
	if !IsCode(err, CodeRoomNotAvailable) {
		t.Error("IsCode should match the carried code")
	}
	if IsCode(err, CodeBookingConflict) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), CodeRoomNotAvailable) {
		t.Error("IsCode should be false for non-AppError values")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFoundWithID("Room", "abc")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same AppError")
	}

	plain := errors.New("boom")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected %s for plain errors, got %s", CodeInternal, converted.Code)
	}
	if !errors.Is(converted, plain) {
		t.Error("converted error should wrap the original")
	}
}
