package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/block/model"
	"courtbook/internal/schedule"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	gRepo "courtbook/shared/repository"
	"fmt"
)

const (
	argCourt     = "court"
	argHour      = "hour"
	argHourEnd   = "hour_end"
	argExcludeID = "exclude_id"
)

type Block interface {
	Insert(ctx context.Context, model model.Block) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Block, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Block, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindCovering(ctx context.Context, slot schedule.Slot, excludeID string) (model.Block, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Block]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Block {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Block](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindCovering returns a block still in force over slot, or the zero Block. Destructive
// blocks are preferred so callers see the terminal restriction first.
func (r *repositoryImpl) FindCovering(ctx context.Context, slot schedule.Slot, excludeID string) (model.Block, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".block.FindCovering")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRemovedAt, Operator: gDto.FilterIsNull, Table: model.TableName},
			gDto.Filter{Field: model.FieldBlockDate, Value: slot.DateString(), Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argCourt, Field: model.FieldCourtNumbers, Value: slot.Court, Operator: gDto.FilterOperatorAny, Table: model.TableName},
			gDto.Filter{ArgName: argHour, Field: model.FieldStartHour, Value: slot.Hour, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{ArgName: argHourEnd, Field: model.FieldEndHour, Value: slot.Hour, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		},
	}

	if excludeID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  argExcludeID,
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{Limit: 1, SortBy: model.FieldTemporary, SortDir: gDto.SortDirAsc}

	blocks, err := r.GetAll(ctx, params, filter)
	if err != nil {
		return model.Block{}, fmt.Errorf("failed to find block covering %s: %w", slot, err)
	}

	if len(blocks) == 0 {
		return model.Block{}, nil
	}

	return blocks[0], nil
}
