package db

import (
	"fmt"
	"strings"
)

// listing describes how one entity type is searched and sorted. Instances are
// package-level configuration validated by reading, not reflection: the
// column expressions below are the complete set a client can reach.
type listing struct {
	table      string
	searchCols []string
	sortKeys   map[string]string
}

// filterClause builds the WHERE fragment for the given search terms. Each
// term is trimmed, wrapped as a case-insensitive substring match and OR-ed
// across the search columns; separate terms are AND-ed together. No terms
// means no filter.
func (l listing) filterClause(search []string) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	for _, term := range search {
		ors := make([]string, 0, len(l.searchCols))
		for _, col := range l.searchCols {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, argIndex))
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
		args = append(args, "%"+strings.TrimSpace(term)+"%")
		argIndex++
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause resolves the sorting parameter. A leading '-' requests
// descending order; the remainder is looked up in the sort-key map. Unknown
// or empty sort fields fall back to ascending id rather than erroring.
func (l listing) orderClause(sorting string) string {
	dir := "ASC"
	field := sorting
	if strings.HasPrefix(field, "-") {
		dir = "DESC"
		field = field[1:]
	}

	expr, ok := l.sortKeys[field]
	if !ok {
		return " ORDER BY id ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", expr, dir)
}

// countSQL returns the unwindowed total query for the given filter
func (l listing) countSQL(where string) string {
	return "SELECT COUNT(*) FROM " + l.table + where
}

// selectSQL returns the windowed select. nextArg is the first free
// placeholder index after the filter arguments; LIMIT and OFFSET take the
// next two.
func (l listing) selectSQL(columns, where, order string, nextArg int) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT $%d OFFSET $%d",
		columns, l.table, where, order, nextArg, nextArg+1,
	)
}

// window converts page/size into LIMIT/OFFSET values
func window(size, page int) (limit, offset int) {
	return size, size * page
}
