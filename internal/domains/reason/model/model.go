package model

import "courtbook/shared/model"

const (
	TableName  = "block_reasons"
	EntityName = "reason"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldActive      = "active"
)

type Reason struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Active      bool   `db:"active"`
	model.Metadata
}
