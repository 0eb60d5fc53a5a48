package dto_test

import (
	"courtbook/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equal with table",
			filter:    dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorEq, Table: "reservations"},
			wantWhere: "reservations.status = :status",
			wantArgs:  map[string]any{"status": "active"},
		},
		{
			name:      "greater with arg name",
			filter:    dto.Filter{ArgName: "now_hour", Field: "end_hour", Value: 18, Operator: dto.FilterOperatorGreater},
			wantWhere: "end_hour > :now_hour",
			wantArgs:  map[string]any{"now_hour": 18},
		},
		{
			name:      "less",
			filter:    dto.Filter{Field: "start_hour", Value: 20, Operator: dto.FilterOperatorLess},
			wantWhere: "start_hour < :start_hour",
			wantArgs:  map[string]any{"start_hour": 20},
		},
		{
			name:      "any element of array column",
			filter:    dto.Filter{ArgName: "court", Field: "court_numbers", Value: 3, Operator: dto.FilterOperatorAny, Table: "blocks"},
			wantWhere: ":court = ANY(blocks.court_numbers)",
			wantArgs:  map[string]any{"court": 3},
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "court_number", Value: []int{1, 2}, Operator: dto.FilterOperatorIn},
			wantWhere: "court_number IN (:court_number_0, :court_number_1)",
			wantArgs:  map[string]any{"court_number_0": 1, "court_number_1": 2},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "court_number", Value: []int{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with scalar is not interpolated",
			filter:    dto.Filter{Field: "court_number", Value: "1) OR (1=1", Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "case insensitive like",
			filter:    dto.Filter{Field: "name", Value: "rain", Operator: dto.FilterOperatorLike, Table: "block_reasons"},
			wantWhere: "LOWER(block_reasons.name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%rain%"},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "regex"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "suspended_by", Operator: dto.FilterIsNull},
			wantWhere: "suspended_by IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "today", Field: "booking_date", Value: "2024-06-01", Operator: dto.FilterOperatorGreater},
					dto.Filter{ArgName: "hour", Field: "end_hour", Value: 10, Operator: dto.FilterOperatorGreater},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (booking_date > :today OR end_hour > :hour))", where)
	assert.Len(t, args, 3)

	skipped := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "name", Operator: "regex"},
		dto.Filter{Field: "removed_at", Operator: dto.FilterIsNull},
		"not a filter",
	}}
	where, _ = skipped.GetWhereClause()
	assert.Equal(t, "(removed_at IS NULL)", where)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
