package tournaments

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rinkline/server/internal/domain/ids"
	"github.com/rinkline/server/internal/domain/schedule"
)

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ParseFilters reads list query parameters.
func ParseFilters(values url.Values) (Filters, Pagination, error) {
	filters := Filters{}
	pagination := Pagination{Limit: 50}

	filters.State = strings.TrimSpace(values.Get("state"))

	fromDate, err := parseDayParam("from", values.Get("from"))
	if err != nil {
		return filters, pagination, err
	}
	toDate, err := parseDayParam("to", values.Get("to"))
	if err != nil {
		return filters, pagination, err
	}
	if fromDate != "" && toDate != "" && toDate < fromDate {
		return filters, pagination, FilterError{Field: "to", Message: "must be on or after from"}
	}
	filters.FromDate = fromDate
	filters.ToDate = toDate

	filters.Source = strings.TrimSpace(values.Get("source"))

	rawLimit := strings.TrimSpace(values.Get("limit"))
	if rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			return filters, pagination, FilterError{Field: "limit", Message: "must be a number"}
		}
		if parsed < 1 || parsed > 200 {
			return filters, pagination, FilterError{Field: "limit", Message: "must be between 1 and 200"}
		}
		pagination.Limit = parsed
	}

	after := strings.TrimSpace(values.Get("after"))
	if after != "" {
		if err := ids.ValidateULID(after); err != nil {
			return filters, pagination, FilterError{Field: "after", Message: "must be a valid ULID"}
		}
	}
	pagination.After = after

	return filters, pagination, nil
}

func parseDayParam(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	day, ok := schedule.ParseDay(value)
	if !ok || len(value) != len(day) {
		return "", FilterError{Field: field, Message: "must be ISO8601 date"}
	}
	return day, nil
}
