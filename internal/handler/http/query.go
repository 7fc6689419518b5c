package http

import (
	"net/http"
	"strconv"

	"github.com/chandra447/dk-stores/internal/domain/register"
)

// dayQueryFrom reads the business-day selection from query parameters:
// day_start and day_end as Unix milliseconds, or tz_offset_minutes.
func dayQueryFrom(r *http.Request) register.DayQuery {
	var day register.DayQuery

	if v := r.URL.Query().Get("day_start"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			day.DayStartMs = &ms
		}
	}
	if v := r.URL.Query().Get("day_end"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			day.DayEndMs = &ms
		}
	}
	if v := r.URL.Query().Get("tz_offset_minutes"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			day.TzOffsetMinutes = &offset
		}
	}
	return day
}

func int64Query(r *http.Request, key string) (int64, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
