// Package dbtest provides an in-memory db.Querier for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call is one statement received by a StubDB.
type Call struct {
	SQL  string
	Args []any
}

// StubDB answers every statement with the configured result and records it.
// Rows feeds Query, Row and RowErr feed QueryRow, Tag and Err feed Exec.
// Err is also returned by Query.
type StubDB struct {
	Rows   [][]any
	Row    []any
	RowErr error
	Tag    string
	Err    error
	Calls  []Call
}

func (s *StubDB) record(sql string, args []any) {
	s.Calls = append(s.Calls, Call{SQL: sql, Args: args})
}

// Last returns the most recent statement.
func (s *StubDB) Last() Call {
	if len(s.Calls) == 0 {
		return Call{}
	}
	return s.Calls[len(s.Calls)-1]
}

func (s *StubDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.record(sql, args)
	if s.Err != nil {
		return pgconn.CommandTag{}, s.Err
	}
	return pgconn.NewCommandTag(s.Tag), nil
}

func (s *StubDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.record(sql, args)
	if s.Err != nil {
		return nil, s.Err
	}
	return &stubRows{values: s.Rows, index: -1}, nil
}

func (s *StubDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.record(sql, args)
	return &stubRow{values: s.Row, err: s.RowErr}
}

type stubRows struct {
	values [][]any
	index  int
}

func (r *stubRows) Close() {
	r.index = len(r.values)
}

func (r *stubRows) Err() error {
	return nil
}

func (r *stubRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.values)))
}

func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (r *stubRows) Next() bool {
	if r.index+1 >= len(r.values) {
		r.index = len(r.values)
		return false
	}
	r.index++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.index < 0 || r.index >= len(r.values) {
		return fmt.Errorf("no row available")
	}
	return assign(r.values[r.index], dest)
}

func (r *stubRows) Values() ([]any, error) {
	if r.index < 0 || r.index >= len(r.values) {
		return nil, fmt.Errorf("no row available")
	}
	return r.values[r.index], nil
}

func (r *stubRows) RawValues() [][]byte {
	return nil
}

func (r *stubRows) Conn() *pgx.Conn {
	return nil
}

type stubRow struct {
	values []any
	err    error
}

func (r *stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		return pgx.ErrNoRows
	}
	return assign(r.values, dest)
}

// assign copies values into dest pointers, failing when the column count or
// a column type does not match the scan targets.
func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d columns into %d destinations", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("scan: destination %d is %T", i, d)
		}
		value := reflect.ValueOf(values[i])
		if !value.Type().AssignableTo(target.Elem().Type()) {
			return fmt.Errorf("scan: column %d is %T, destination is %T", i, values[i], d)
		}
		target.Elem().Set(value)
	}
	return nil
}
