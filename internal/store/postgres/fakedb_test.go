package postgres

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fake database/sql driver so repository queries can be exercised without a
// running Postgres. Each test registers its own driver instance.

var fakeDriverSeq atomic.Int64

type queryHandler func(query string, args []driver.Value) (driver.Rows, error)
type execHandler func(query string, args []driver.Value) (driver.Result, error)

type fakeDriver struct{ conn *fakeConn }

type fakeConn struct {
	onQuery queryHandler
	onExec  execHandler
}

type fakeTx struct{}

func (d *fakeDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{conn: c, query: query}, nil
}
func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return &fakeTx{}, nil }

func (tx *fakeTx) Commit() error   { return nil }
func (tx *fakeTx) Rollback() error { return nil }

type fakeStmt struct {
	conn  *fakeConn
	query string
}

func (s *fakeStmt) Close() error  { return nil }
func (s *fakeStmt) NumInput() int { return -1 }

func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	if s.conn.onExec != nil {
		return s.conn.onExec(s.query, args)
	}
	return driver.RowsAffected(0), nil
}

func (s *fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	if s.conn.onQuery != nil {
		return s.conn.onQuery(s.query, args)
	}
	return &emptyRows{}, nil
}

type emptyRows struct{}

func (r *emptyRows) Columns() []string         { return []string{} }
func (r *emptyRows) Close() error              { return nil }
func (r *emptyRows) Next([]driver.Value) error { return io.EOF }

type dataRows struct {
	columns []string
	data    [][]driver.Value
	idx     int
}

func (r *dataRows) Columns() []string { return r.columns }
func (r *dataRows) Close() error      { return nil }
func (r *dataRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}

func openFakeDB(t *testing.T, onQuery queryHandler, onExec execHandler) *DB {
	t.Helper()
	name := fmt.Sprintf("fake_pg_%d", fakeDriverSeq.Add(1))
	sql.Register(name, &fakeDriver{conn: &fakeConn{onQuery: onQuery, onExec: onExec}})
	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &DB{db}
}
