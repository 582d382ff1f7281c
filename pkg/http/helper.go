package http

import (
	"net/http"
	"strconv"
	"time"

	"innkeep/pkg/config"
	"innkeep/pkg/dates"
	apperrors "innkeep/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDate parses a required YYYY-MM-DD query parameter as a UTC calendar day.
func ExtractDate(r *http.Request, param string) (time.Time, error) {
	s := r.URL.Query().Get(param)
	if s == "" {
		return time.Time{}, apperrors.InvalidInput("missing required parameter: " + param)
	}
	return ParseDate(param, s)
}

// ParseDate parses a YYYY-MM-DD value as a UTC calendar day.
func ParseDate(param, s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + param + ": must be YYYY-MM-DD, got " + s)
	}
	return dates.Normalize(t), nil
}
