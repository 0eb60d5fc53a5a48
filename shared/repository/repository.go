package repository

import (
	"context"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/shared/constant"
	"courtbook/shared/dto"
	"courtbook/shared/logger"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	setArgPrefix = "set_"
	argLimit     = "limit"
	argOffset    = "offset"
)

var errRequiredFilter = errors.New("refusing to touch every row without a filter")

// executor is satisfied by both *sqlx.DB and *sqlx.Tx.
type executor interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository maps T onto one table through its db tags. Fields of embedded
// structs are flattened, so shared metadata columns come along.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	primary string
	columns []string
	insert  string
}

func NewRepository[T any](entity, table, primary string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	columns := dbColumns(reflect.TypeFor[T]())

	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:      db,
		otel:    otl,
		table:   table,
		entity:  entity,
		primary: primary,
		columns: columns,
		insert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(columns, ", "), strings.Join(placeholders, ", ")),
	}
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert", repo.insert)
	defer scope.End()

	return repo.exec(ctx, scope, "insert", repo.insert, model)
}

// Exist reports whether any row matches filter.
func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(%s)", statement("SELECT 1 FROM "+repo.table, where))

	ctx, scope := repo.scope(ctx, "Exist", query)
	defer scope.End()

	var exist bool
	err := repo.fetch(ctx, scope, "check existence of", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first row matching filter, or the zero T when none does.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := repo.BuildWhereClause(filter)
	query := statement(repo.selectFrom(columns), where)

	ctx, scope := repo.scope(ctx, "Get", query)
	defer scope.End()

	var model T
	err := repo.fetch(ctx, scope, "get", query, func(stmt *sqlx.NamedStmt) error {
		err := stmt.GetContext(ctx, &model, args)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return err
	})

	return model, err
}

// GetAll returns one page of rows matching filter. SortBy must already be
// restricted to known columns because it is written into the statement.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(filter)

	clauses := []string{repo.selectFrom(columns), where}

	if params.SortBy != "" && params.SortDir != "" {
		clauses = append(clauses, fmt.Sprintf("ORDER BY %s.%s %s, %s.%s", repo.table, params.SortBy, params.SortDir, repo.table, repo.primary))
	}

	if params.Limit > 0 {
		args[argLimit] = params.Limit
		args[argOffset] = params.Offset()
		clauses = append(clauses, "LIMIT :limit OFFSET :offset")
	}

	query := statement(clauses...)

	ctx, scope := repo.scope(ctx, "GetAll", query)
	defer scope.End()

	models := []T{}
	err := repo.fetch(ctx, scope, "list", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(filter)
	query := statement(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primary, repo.table), where)

	ctx, scope := repo.scope(ctx, "Count", query)
	defer scope.End()

	var count int
	err := repo.fetch(ctx, scope, "count", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := statement("DELETE FROM "+repo.table, where)

	ctx, scope := repo.scope(ctx, "Delete", query)
	defer scope.End()

	return repo.exec(ctx, scope, "delete", query, args)
}

// Update sets the given columns on every row matching filter. Set values are bound
// under a "set_" prefix so a column can appear in both the SET list and the filter.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s%s", col, setArgPrefix, col))
		args[setArgPrefix+col] = fields[col]
	}

	query := statement(fmt.Sprintf("UPDATE %s SET %s", repo.table, strings.Join(assignments, ", ")), where)

	ctx, scope := repo.scope(ctx, "Update", query)
	defer scope.End()

	return repo.exec(ctx, scope, "update", query, args)
}

// BuildWhereClause renders filter as a WHERE clause, or "" when it is empty.
func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func (repo *Repository[T]) scope(ctx context.Context, op, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return ctx, scope
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, action, query string, arg any) error {
	if _, err := repo.writer(ctx).NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) fetch(ctx context.Context, scope otel.Scope, action, query string, read func(*sqlx.NamedStmt) error) error {
	stmt, err := repo.reader(ctx).PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare "+action, err)
	}
	defer stmt.Close()

	if err = read(stmt); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s %s: %w", action, repo.entity, err)
}

// reader returns the transaction carried by ctx, or the read replica.
func (repo *Repository[T]) reader(ctx context.Context) executor {
	if tx, ok := postgres.TxFrom(ctx); ok {
		return tx
	}

	return repo.db.Read
}

// writer returns the transaction carried by ctx, or the primary.
func (repo *Repository[T]) writer(ctx context.Context) executor {
	if tx, ok := postgres.TxFrom(ctx); ok {
		return tx
	}

	return repo.db.Write
}

// selectFrom qualifies the requested columns, or all mapped columns, with the table.
func (repo *Repository[T]) selectFrom(only []string) string {
	out := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		out = append(out, repo.table+"."+col)
	}

	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(out, ", "), repo.table)
}

// statement joins the non-empty clauses with single spaces.
func statement(clauses ...string) string {
	return strings.Join(slices.DeleteFunc(clauses, func(c string) bool { return c == "" }), " ")
}

func dbColumns(typ reflect.Type) []string {
	var columns []string

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
