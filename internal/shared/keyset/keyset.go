// Package keyset implements composite-key keyset pagination over GORM queries.
//
// Keyset pagination resumes from the sort-key values of the last seen row
// instead of a numeric offset, so concurrent inserts and updates cannot make
// a multi-page read skip or repeat rows. The composite key must end in
// columns that make the order total (a unique tie-break), and every column
// is sorted in the same direction.
package keyset

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Direction is the sort direction applied uniformly to all key columns.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) operator() string {
	if d == Desc {
		return "<"
	}
	return ">"
}

func (d Direction) keyword() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// OrderBy applies the composite sort key in the given direction. Column names
// must be package-internal constants, never caller input.
func OrderBy(tx *gorm.DB, cols []string, dir Direction) *gorm.DB {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " " + dir.keyword()
	}
	return tx.Order(strings.Join(parts, ", "))
}

// Continue appends the continuation predicate for a cursor boundary:
//
//	c1 op v1 OR (c1 = v1 AND (c2 op v2 OR (c2 = v2 AND c3 op v3)))
//
// where op is > for ascending and < for descending continuation. vals are the
// boundary values from the decoded cursor, one per column.
func Continue(tx *gorm.DB, cols []string, dir Direction, vals []any) *gorm.DB {
	if len(cols) == 0 || len(cols) != len(vals) {
		_ = tx.AddError(fmt.Errorf("keyset: column/value count mismatch (%d vs %d)", len(cols), len(vals)))
		return tx
	}
	expr, args := boundary(cols, vals, dir.operator())
	return tx.Where(expr, args...)
}

func boundary(cols []string, vals []any, op string) (string, []any) {
	if len(cols) == 1 {
		return fmt.Sprintf("%s %s ?", cols[0], op), []any{vals[0]}
	}
	restExpr, restArgs := boundary(cols[1:], vals[1:], op)
	expr := fmt.Sprintf("%s %s ? OR (%s = ? AND (%s))", cols[0], op, cols[0], restExpr)
	args := make([]any, 0, 2+len(restArgs))
	args = append(args, vals[0], vals[0])
	args = append(args, restArgs...)
	return expr, args
}

// Page fetches limit+1 rows to detect whether another page follows, then
// truncates to limit. Exactly limit rows fetched means no next page: the next
// cursor is derived by the caller from the last returned row only when
// hasMore is true.
func Page[T any](tx *gorm.DB, limit int) (items []T, hasMore bool, err error) {
	var rows []T
	if err := tx.Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, false, err
	}
	if len(rows) > limit {
		return rows[:limit], true, nil
	}
	return rows, false, nil
}
