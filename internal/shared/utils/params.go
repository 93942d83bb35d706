package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aidlink/aidlink/internal/shared/biztime"
	"github.com/aidlink/aidlink/internal/shared/errors"
)

// ParseDateQuery reads a YYYY-MM-DD query parameter. endOfDay moves the
// result to the last instant of that day so "to" filters are inclusive.
func ParseDateQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+name+" date", "expected "+biztime.DateLayout)
	}
	if endOfDay {
		t = biztime.EndOfDayUTC(t)
	} else {
		t = biztime.StartOfDayUTC(t)
	}
	return &t, nil
}

// ParseIntQuery reads a non-negative integer query parameter, returning 0 when absent.
func ParseIntQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.NewValidationError("invalid "+name, name+" must be a non-negative integer")
	}
	return n, nil
}
