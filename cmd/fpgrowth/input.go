package main

import (
	"context"
	"fmt"
	"strings"

	mgo "gopkg.in/mgo.v2"

	"github.com/basketlab/fpgrowth/basket"
	"github.com/basketlab/fpgrowth/basket/csv"
	"github.com/basketlab/fpgrowth/basket/mongobasket"
	"github.com/basketlab/fpgrowth/basket/sqlbasket"
	"github.com/basketlab/fpgrowth/basket/sqlbasket/pgadapter"
	"github.com/basketlab/fpgrowth/basket/sqlbasket/sqlite3adapter"
)

/*
readInputTransactions takes an input string pointing to a transaction
database and returns the transactions read from it. The input is
interpreted as a PostgreSQL DB connection URL if it starts with
postgresql://, as a MongoDB connection URL if it starts with
mongodb://, as a SQLite3 database if it ends in .db and as the path to
a CSV file otherwise; an empty input reads CSV from STDIN.
*/
func readInputTransactions(ctx context.Context, input string, maxDBConns int, log *rootCmdConfig) ([]basket.Transaction, error) {
	if strings.HasPrefix(input, "postgresql://") {
		log.Logf("Creating PostgreSQL adapter for url %s to read transactions...", input)
		adapter, err := pgadapter.New(input, maxDBConns)
		if err != nil {
			return nil, err
		}
		return sqlTransactions(ctx, adapter, input, log)
	}
	if strings.HasPrefix(input, "mongodb://") {
		return mongoTransactions(ctx, input, log)
	}
	if strings.HasSuffix(input, ".db") {
		log.Logf("Creating SQLite3 adapter for file %s to read transactions...", input)
		adapter, err := sqlite3adapter.New(input, maxDBConns)
		if err != nil {
			return nil, err
		}
		return sqlTransactions(ctx, adapter, input, log)
	}
	if input == "" {
		log.Logf("Reading transactions from STDIN...")
	} else {
		log.Logf("Reading transactions from CSV file %s...", input)
	}
	return csv.ReadTransactionsFromFilePath(input)
}

func sqlTransactions(ctx context.Context, adapter sqlbasket.Adapter, input string, log *rootCmdConfig) ([]basket.Transaction, error) {
	log.Logf("Opening transaction dataset over SQL adapter for %s...", input)
	ds, err := sqlbasket.Open(ctx, adapter)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	return ds.Transactions(ctx)
}

func mongoTransactions(ctx context.Context, input string, log *rootCmdConfig) ([]basket.Transaction, error) {
	log.Logf("Connecting to MongoDB at %s to read transactions...", input)
	session, err := mgo.Dial(input)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", input, err)
	}
	defer session.Close()
	ds, err := mongobasket.Open(ctx, session)
	if err != nil {
		return nil, err
	}
	return ds.Transactions(ctx)
}
