/*
Package sqlbasket provides an implementation of basket.Dataset that
uses a SQL database as backend, through an Adapter interface with
implementations for PostgreSQL and SQLite3 in subpackages.

Transactions are stored in long format: one row per purchased item,
rows sharing an invoice identifier forming one transaction.
*/
package sqlbasket

import (
	"context"
	"fmt"

	"github.com/basketlab/fpgrowth/basket"
)

/*
Adapter abstracts the SQL dialect and connection handling of a
specific database backend.

Its ReadRows method must yield rows grouped by invoice (all rows of
one invoice contiguous, in insertion order) so that callers can
assemble transactions in a single streaming pass.
*/
type Adapter interface {
	// CreateTransactionTable ensures the backing table for
	// transaction rows exists.
	CreateTransactionTable(ctx context.Context) error
	// AddRows inserts one row per item for the given invoice.
	AddRows(ctx context.Context, invoice string, items []string) error
	// ReadRows calls the lambda for every stored row. If the
	// lambda returns false the iteration stops without error.
	ReadRows(ctx context.Context, lambda func(invoice, item string) (bool, error)) error
	// CountTransactions returns the number of distinct invoices.
	CountTransactions(ctx context.Context) (int, error)
	// Close frees the adapter's connections.
	Close() error
}

/*
Dataset is a basket.Dataset to which transactions can be added and
from which transactions can be sequentially read.
*/
type Dataset interface {
	basket.Dataset
	Write(ctx context.Context, invoice string, t basket.Transaction) error
	Read(ctx context.Context) (<-chan basket.Transaction, <-chan error)
	Close() error
}

type sqlDataset struct {
	db    Adapter
	count *int
}

/*
Open takes an Adapter to a db backend and returns a Dataset backed by
it. This function expects the transaction table to already exist on
the database.
*/
func Open(ctx context.Context, dbAdapter Adapter) (Dataset, error) {
	return &sqlDataset{db: dbAdapter}, nil
}

/*
Create takes an Adapter to a db backend and returns a Dataset backed
by it, ensuring the transaction table exists on the database first.
*/
func Create(ctx context.Context, dbAdapter Adapter) (Dataset, error) {
	err := dbAdapter.CreateTransactionTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating transaction dataset: %v", err)
	}
	return &sqlDataset{db: dbAdapter}, nil
}

func (sd *sqlDataset) Transactions(ctx context.Context) ([]basket.Transaction, error) {
	var transactions []basket.Transaction
	stream, errs := sd.Read(ctx)
	for t := range stream {
		transactions = append(transactions, t)
	}
	err := <-errs
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (sd *sqlDataset) Count(ctx context.Context) (int, error) {
	if sd.count != nil {
		return *sd.count, nil
	}
	result, err := sd.db.CountTransactions(ctx)
	if err == nil {
		sd.count = &result
	}
	return result, err
}

func (sd *sqlDataset) ItemCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	stream, errs := sd.Read(ctx)
	for t := range stream {
		for _, item := range t.Dedupe() {
			counts[item]++
		}
	}
	err := <-errs
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (sd *sqlDataset) Write(ctx context.Context, invoice string, t basket.Transaction) error {
	err := sd.db.AddRows(ctx, invoice, t.Dedupe())
	if err != nil {
		return fmt.Errorf("writing transaction %s: %v", invoice, err)
	}
	sd.count = nil
	return nil
}

/*
Read returns a channel on which every stored transaction is sent and
an error channel on which at most one error is sent before both
channels are closed. Rows are assembled into transactions relying on
the adapter yielding them grouped by invoice.
*/
func (sd *sqlDataset) Read(ctx context.Context) (<-chan basket.Transaction, <-chan error) {
	transactions := make(chan basket.Transaction)
	errs := make(chan error, 1)
	go func() {
		var invoice string
		var current basket.Transaction
		send := func(t basket.Transaction) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case transactions <- t:
				return nil
			}
		}
		err := sd.db.ReadRows(ctx, func(rowInvoice, item string) (bool, error) {
			if rowInvoice != invoice && current != nil {
				if err := send(current); err != nil {
					return false, err
				}
				current = nil
			}
			invoice = rowInvoice
			current = append(current, item)
			return true, nil
		})
		if err == nil && current != nil {
			err = send(current)
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(transactions)
	}()
	return transactions, errs
}

func (sd *sqlDataset) Close() error {
	return sd.db.Close()
}
