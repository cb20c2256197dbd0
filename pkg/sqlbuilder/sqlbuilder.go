package sqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// New возвращает squirrel builder с форматом плейсхолдеров для драйвера
// postgres использует $1, $2...; sqlite использует ?
func New(driver string) (squirrel.StatementBuilderType, error) {
	switch driver {
	case DriverPostgres:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar), nil
	case DriverSQLite:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question), nil
	default:
		return squirrel.StatementBuilderType{}, fmt.Errorf("sqlbuilder: unsupported driver %q", driver)
	}
}

// Upsert добавляет к INSERT суффикс ON CONFLICT ... DO UPDATE
// Синтаксис одинаков для postgres и sqlite (>= 3.24)
func Upsert(insert squirrel.InsertBuilder, conflictColumn string, updateColumns ...string) squirrel.InsertBuilder {
	if len(updateColumns) == 0 {
		return insert.Suffix(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", conflictColumn))
	}
	set := ""
	for i, col := range updateColumns {
		if i > 0 {
			set += ", "
		}
		set += fmt.Sprintf("%s = excluded.%s", col, col)
	}
	return insert.Suffix(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflictColumn, set))
}
