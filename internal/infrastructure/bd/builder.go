package db

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// WhereEqIfSet добавляет условие равенства только если значение задано.
func WhereEqIfSet[T any](builder sq.SelectBuilder, column string, value *T) sq.SelectBuilder {
	if value == nil {
		return builder
	}
	return builder.Where(sq.Eq{column: *value})
}

// WhereHasAnyLink оставляет только строки, у которых есть хотя бы одна связь
// из linkTable с linkColumn IN ids. Пустой ids не ограничивает выборку.
// EXISTS не размножает строки, в отличие от JOIN.
func WhereHasAnyLink(builder sq.SelectBuilder, linkTable, ownerColumn, parentColumn, linkColumn string, ids []int64) sq.SelectBuilder {
	if len(ids) == 0 {
		return builder
	}

	sub := sq.Select("1").
		From(linkTable + " lnk").
		Where(fmt.Sprintf("lnk.%s = %s", ownerColumn, parentColumn)).
		Where(sq.Eq{"lnk." + linkColumn: ids})

	return builder.Where(sq.Expr("EXISTS (?)", sub))
}
