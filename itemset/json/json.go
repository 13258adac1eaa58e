/*
Package json serializes mining results to and from JSON documents.

A result document is a JSON object with the following fields:
  - "transactions": the number of transactions mined
  - "supportFloor": the resolved absolute support floor
  - "patterns": an array of objects with "items" and "support"
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/basketlab/fpgrowth/itemset"
)

/*
WritePatterns takes a context.Context, a pattern table with the
transaction count and support floor it was mined under, and an
io.Writer, and serializes the table as a result document onto the
writer. Patterns are streamed in the table's deterministic order. An
error is returned if the table cannot be serialized or written.
*/
func WritePatterns(ctx context.Context, t *itemset.Table, transactions, supportFloor int, w io.Writer) error {
	header := fmt.Sprintf(`{"transactions":%d,"supportFloor":%d,"patterns":[`, transactions, supportFloor)
	_, err := w.Write([]byte(header))
	if err != nil {
		return err
	}
	for i, p := range t.Patterns() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i != 0 {
			_, err = w.Write([]byte(","))
			if err != nil {
				return err
			}
		}
		jp, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = w.Write(jp)
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadPatterns takes an io.Reader with a result document and returns
the pattern table parsed from it together with the transaction count
and support floor it was mined under, or an error if the document
cannot be decoded.
*/
func ReadPatterns(r io.Reader) (*itemset.Table, int, int, error) {
	dec := json.NewDecoder(r)
	doc := &struct {
		Transactions int                `json:"transactions"`
		SupportFloor int                `json:"supportFloor"`
		Patterns     []*itemset.Pattern `json:"patterns"`
	}{}
	err := dec.Decode(doc)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding result document: %v", err)
	}
	t := itemset.NewTable()
	for _, p := range doc.Patterns {
		if len(p.Items) == 0 {
			return nil, 0, 0, fmt.Errorf("decoding result document: pattern with no items")
		}
		t.Add(p.Items, p.Support)
	}
	return t, doc.Transactions, doc.SupportFloor, nil
}
