package model

import "courtbook/shared/model"

const (
	TableName  = "members"
	EntityName = "member"

	FieldID     = "id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldActive = "active"
)

type Member struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Active bool   `db:"active"`
	model.Metadata
}
