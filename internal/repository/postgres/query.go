package postgres

import (
	"sort"
	"strconv"
)

// buildUpdateQuery renders "UPDATE <table> SET col = $n, ... WHERE id = $n"
// with a deterministic column order.
func buildUpdateQuery(table string, updates map[string]interface{}, id int64) (string, []interface{}) {
	columns := make([]string, 0, len(updates))
	for column := range updates {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	query := "UPDATE " + table + " SET "
	args := make([]interface{}, 0, len(updates)+1)
	i := 1

	for _, column := range columns {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, updates[column])
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	return query, args
}

// buildProfileSearch renders "SELECT id FROM profile WHERE a = $1 <op> b = $2"
// from whitelisted criteria. op is "AND" or "OR".
func buildProfileSearch(op string, criteria map[string]string) (string, []interface{}, bool) {
	allowed := map[string]struct{}{"username": {}, "first_name": {}, "last_name": {}}
	for column := range criteria {
		if _, ok := allowed[column]; !ok {
			return "", nil, false
		}
	}
	if op != "AND" && op != "OR" {
		return "", nil, false
	}

	columns := make([]string, 0, len(criteria))
	for column := range criteria {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	query := "SELECT id FROM profile"
	args := make([]interface{}, 0, len(criteria))

	for i, column := range columns {
		if i == 0 {
			query += " WHERE "
		} else {
			query += " " + op + " "
		}
		query += column + " = $" + strconv.Itoa(i+1)
		args = append(args, criteria[column])
	}

	return query, args, true
}
