package shared

import (
	"context"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	"courtbook/shared/dto"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BoolParam reads an optional boolean query parameter. An absent parameter is nil.
func BoolParam(query url.Values, name string) (*bool, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, failure.BadRequestFromString(name + " must be a boolean") // nolint:wrapcheck
	}

	return &value, nil
}

// CalculateTotalPage is never below one, so an empty listing still has a page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields collects the non-zero db-tagged fields of an update request
// and stamps the modification columns.
func TransformFields(data any, username string) map[string]any {
	value := reflect.ValueOf(data)
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	for i := range value.NumField() {
		column := value.Type().Field(i).Tag.Get("db")
		if column == "" || value.Field(i).IsZero() {
			continue
		}

		fields[column] = value.Field(i).Interface()
	}

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery keys a list query by its paging and a hash of its
// filter. encoding/json sorts map keys, so equal filters hash equally.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	encoded, err := json.Marshal(args)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to encode cache key args")
	}

	hash := fnv.New64a()
	_, _ = hash.Write([]byte(where))
	_, _ = hash.Write(encoded)

	return BuildCacheKey(prefix,
		strconv.Itoa(params.Page), strconv.Itoa(params.Limit), params.SortBy, params.SortDir,
		fmt.Sprintf("%x", hash.Sum64()))
}

var detached sync.WaitGroup

// Detach runs fn in the background with ctx's values but without its cancellation, so
// work such as cache invalidation outlives the request.
func Detach(ctx context.Context, fn func(ctx context.Context)) {
	c := context.WithoutCancel(ctx)

	detached.Add(1)

	go func() {
		defer detached.Done()

		fn(c)
	}()
}

// WaitDetached blocks until every function started by Detach has returned.
func WaitDetached() {
	detached.Wait()
}

// InvalidateCaches drops every entry under prefix. Failures are logged only;
// the entries expire on their own.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
