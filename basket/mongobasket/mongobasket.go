/*
Package mongobasket provides an implementation of basket.Dataset that
uses a MongoDB database as backend. Every transaction is one document
in the transactions collection, holding its invoice identifier and
its deduplicated item labels.
*/
package mongobasket

import (
	"context"
	"fmt"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/basketlab/fpgrowth/basket"
)

/*
Dataset is a basket.Dataset to which transactions can be added and
from which transactions can be sequentially read.
*/
type Dataset interface {
	basket.Dataset
	Write(ctx context.Context, invoice string, t basket.Transaction) error
	Read(ctx context.Context) (<-chan basket.Transaction, <-chan error)
}

type mongoDataset struct {
	session *mgo.Session
}

const transactionsCollectionName = "transactions"

/*
Open takes a MongoDB database session and returns a Dataset that
works on the transactions collection of the default database for that
session, or an error if its indexes cannot be ensured.
*/
func Open(ctx context.Context, session *mgo.Session) (Dataset, error) {
	mds := &mongoDataset{session}
	index := mgo.Index{
		Key:        []string{"invoice"},
		Background: true,
	}
	err := mds.collection().EnsureIndex(index)
	if err != nil {
		return nil, fmt.Errorf("ensuring invoice index: %v", err)
	}
	return mds, nil
}

func (mds *mongoDataset) Transactions(ctx context.Context) ([]basket.Transaction, error) {
	var transactions []basket.Transaction
	count, err := mds.Count(ctx)
	if err == nil {
		transactions = make([]basket.Transaction, 0, count)
	}
	stream, errs := mds.Read(ctx)
	for t := range stream {
		transactions = append(transactions, t)
	}
	err = <-errs
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (mds *mongoDataset) Count(ctx context.Context) (int, error) {
	return mds.collection().Count()
}

/*
ItemCounts unwinds the stored item arrays and groups them by label on
the database side. Documents hold deduplicated items (Write dedupes),
so each transaction counts once per item.
*/
func (mds *mongoDataset) ItemCounts(ctx context.Context) (map[string]int, error) {
	iter := mds.collection().Pipe([]bson.M{
		{"$unwind": "$items"},
		{"$group": bson.M{"_id": "$items", "count": bson.M{"$sum": 1}}},
	}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting items: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		result[fmt.Sprintf("%v", doc["_id"])] = count
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (mds *mongoDataset) Write(ctx context.Context, invoice string, t basket.Transaction) error {
	doc := bson.M{"invoice": invoice, "items": []string(t.Dedupe())}
	err := mds.collection().Insert(doc)
	if err != nil {
		return fmt.Errorf("writing transaction %s: %v", invoice, err)
	}
	return nil
}

func (mds *mongoDataset) Read(ctx context.Context) (<-chan basket.Transaction, <-chan error) {
	transactions := make(chan basket.Transaction)
	errs := make(chan error, 1)
	go func() {
		var doc struct {
			Items []string `bson:"items"`
		}
		var err error
		iter := mds.collection().Find(nil).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			t := basket.Transaction(doc.Items)
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case transactions <- t:
			}
			if err != nil {
				break
			}
		}
		if err == nil {
			err = iter.Err()
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(transactions)
	}()
	return transactions, errs
}

func (mds *mongoDataset) collection() *mgo.Collection {
	return mds.session.DB("").C(transactionsCollectionName)
}
