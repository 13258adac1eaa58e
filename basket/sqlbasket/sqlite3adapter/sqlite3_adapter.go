/*
Package sqlite3adapter provides a sqlbasket.Adapter backed by an
SQLite3 database file.
*/
package sqlite3adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/basketlab/fpgrowth/basket/sqlbasket"
)

const transactionTableCreateStmt = `CREATE TABLE IF NOT EXISTS transaction_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice TEXT NOT NULL,
	item TEXT NOT NULL)`

const transactionIndexCreateStmt = `CREATE INDEX IF NOT EXISTS transaction_items_invoice
	ON transaction_items (invoice)`

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a limit for the
number of open connections (0 meaning no limit) and returns an
Adapter that works on the file's database or an error if it fails to
open as an sqlite3 database.
*/
func New(path string, maxConns int) (sqlbasket.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) CreateTransactionTable(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, transactionTableCreateStmt)
	if err != nil {
		return fmt.Errorf("ensuring transaction_items table exists: %v", err)
	}
	_, err = a.db.ExecContext(ctx, transactionIndexCreateStmt)
	if err != nil {
		return fmt.Errorf("ensuring transaction_items invoice index exists: %v", err)
	}
	return nil
}

func (a *adapter) AddRows(ctx context.Context, invoice string, items []string) error {
	if len(items) == 0 {
		return nil
	}
	var stmtBuf bytes.Buffer
	stmtBuf.WriteString("INSERT INTO transaction_items (invoice, item) VALUES (?, ?)")
	for i := 1; i < len(items); i++ {
		stmtBuf.WriteString(", (?, ?)")
	}
	args := make([]interface{}, 0, 2*len(items))
	for _, item := range items {
		args = append(args, invoice, item)
	}
	_, err := a.db.ExecContext(ctx, stmtBuf.String(), args...)
	if err != nil {
		return fmt.Errorf("inserting %d rows for invoice %s: %v", len(items), invoice, err)
	}
	return nil
}

func (a *adapter) ReadRows(ctx context.Context, lambda func(invoice, item string) (bool, error)) error {
	rows, err := a.db.QueryContext(ctx, "SELECT invoice, item FROM transaction_items ORDER BY invoice, id")
	if err != nil {
		return fmt.Errorf("querying transaction rows: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var invoice, item string
		err = rows.Scan(&invoice, &item)
		if err != nil {
			return fmt.Errorf("scanning transaction row: %v", err)
		}
		ok, err := lambda(invoice, item)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountTransactions(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT invoice) FROM transaction_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %v", err)
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
