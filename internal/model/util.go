package model

// MigrateAble is array of model instance, use for bootstrapping database tables
var MigrateAble []interface{}

func init() {
	MigrateAble = append(
		MigrateAble,
		&JobRecord{},
		&ApplicationRecord{},
	)
}
