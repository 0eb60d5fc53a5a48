package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/member/model"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	gRepo "courtbook/shared/repository"
)

type Member interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Member, error)
	GetByID(ctx context.Context, id string) (model.Member, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Member]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Member {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Member](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetByID returns the zero Member when the id is unknown.
func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Member, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".member.GetByID")
	defer scope.End()

	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}
