package dto

import (
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

var invalidSortDir = &failure.Failure{Code: http.StatusBadRequest, Message: "sort_dir must be ASC or DESC"}

// QueryParams carries paging and sorting for list endpoints.
type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Absent values fall back to the defaults, malformed ones are rejected and
// the limit is capped at constant.MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	page, err := positive(query.Get(constant.RequestParamPage), constant.DefaultValuePage)
	if err != nil {
		return failure.InvalidPageParam
	}

	limit, err := positive(query.Get(constant.RequestParamLimit), constant.DefaultValueLimit)
	if err != nil {
		return failure.InvalidLimitParam
	}

	q.Page = page
	q.Limit = min(limit, constant.MaxValueLimit)
	q.SortBy = query.Get(constant.RequestParamSortBy)

	switch dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir {
	case "", SortDirAsc, SortDirDesc:
		q.SortDir = dir
	default:
		return invalidSortDir
	}

	return nil
}

// Offset is the number of rows before the requested page.
func (q QueryParams) Offset() int {
	if q.Page < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// RestrictSort drops a sort column that is not in allowed, since SortBy is written into the
// query verbatim, and falls back to the given defaults when no valid sort remains.
func (q *QueryParams) RestrictSort(allowed []string, defaultBy, defaultDir string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = defaultBy
	}

	if q.SortDir == "" {
		q.SortDir = defaultDir
	}
}

func positive(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, strconv.ErrSyntax
	}

	return value, nil
}
