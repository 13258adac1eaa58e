/*
Package csv reads and writes transaction databases as CSV streams in
long format: a header row "invoice,item" followed by one row per
purchased item. Rows sharing an invoice identifier form one
transaction, in order of first appearance.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/basketlab/fpgrowth/basket"
)

/*
ReadTransactions takes an io.Reader for a CSV stream and returns the
transactions parsed from it, grouped by invoice identifier, or an
error. Transactions are ordered by the first appearance of their
invoice; items keep their row order within each transaction.
*/
func ReadTransactions(reader io.Reader) ([]basket.Transaction, error) {
	var transactions []basket.Transaction
	indexes := make(map[string]int)
	err := ReadTransactionsByRow(reader, func(_ int, invoice, item string) (bool, error) {
		i, ok := indexes[invoice]
		if !ok {
			i = len(transactions)
			indexes[invoice] = i
			transactions = append(transactions, nil)
		}
		transactions[i] = append(transactions[i], item)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

/*
ReadTransactionsByRow takes an io.Reader for a CSV stream and a
lambda function on a row index, an invoice identifier and an item
label. It parses the rows from the reader and calls the lambda for
each. If the lambda returns true it will continue with the next row,
otherwise it will stop. An error is returned if something goes wrong
reading the stream or parsing a row.

The header or first row of the CSV content is expected to be
"invoice,item"; every other row must hold a non-empty invoice and
item.
*/
func ReadTransactionsByRow(reader io.Reader, lambda func(int, string, string) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	if len(header) < 2 || header[0] != "invoice" || header[1] != "item" {
		return fmt.Errorf("parsing header: expected %q, got %v", "invoice,item", header)
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		if row[0] == "" || row[1] == "" {
			return fmt.Errorf("parsing line %d: empty invoice or item", l)
		}
		ok, err := lambda(l-2, row[0], row[1])
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadTransactionsFromFilePath takes a filepath string, opens the file
it points to and uses ReadTransactions to parse it. An empty filepath
reads from STDIN instead. It returns an error if the file cannot be
opened or parsed.
*/
func ReadTransactionsFromFilePath(filepath string) ([]basket.Transaction, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading transactions: %v", err)
		}
	}
	defer f.Close()
	transactions, err := ReadTransactions(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return transactions, err
}

/*
Writer writes transactions onto a CSV stream, one row per item,
invoicing them with the identifiers given by the caller.
*/
type Writer struct {
	count int
	w     *csv.Writer
}

/*
NewWriter takes an io.Writer, writes the CSV header onto it and
returns a Writer that will write transactions on it, or an error if
the header cannot be written.
*/
func NewWriter(writer io.Writer) (*Writer, error) {
	w := csv.NewWriter(writer)
	err := w.Write([]string{"invoice", "item"})
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &Writer{w: w}, nil
}

/*
Write takes an invoice identifier and a transaction and writes one
row per item of the transaction, or returns an error.
*/
func (tw *Writer) Write(invoice string, t basket.Transaction) error {
	for _, item := range t {
		err := tw.w.Write([]string{invoice, item})
		if err != nil {
			return fmt.Errorf("writing CSV row for transaction %s: %v", invoice, err)
		}
	}
	tw.count++
	return nil
}

// Count returns the number of transactions written so far.
func (tw *Writer) Count() int {
	return tw.count
}

// Flush ensures any pending writes finish before returning.
func (tw *Writer) Flush() error {
	tw.w.Flush()
	return tw.w.Error()
}

/*
WriteTransactions takes an io.Writer and a slice of transactions and
dumps them in CSV format, generating sequential invoice identifiers.
It returns an error if something goes wrong writing the stream.
*/
func WriteTransactions(writer io.Writer, transactions []basket.Transaction) error {
	tw, err := NewWriter(writer)
	if err != nil {
		return err
	}
	for i, t := range transactions {
		err = tw.Write(fmt.Sprintf("INV%06d", i+1), t)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
