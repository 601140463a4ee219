package invest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// moneyCmd is a specialized struct to read a monetary value persisted as an
// amount/currency object.
type moneyCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a moneyCmd) Money() (Money, error) {
	return NewMoney(a.Amount, a.Currency)
}

// optional converts a possibly-absent money object, mapping absence to the
// zero Money value.
func (a *moneyCmd) optional() (Money, error) {
	if a == nil {
		return Money{}, nil
	}
	return a.Money()
}

// DecodeLedger reads transactions from a stream of JSONL data, decodes each
// line through the transaction factories (re-deriving every net total rather
// than trusting a cached one), and returns a sorted Ledger. Insertion
// sequences are assigned from file order, so same-day entries keep the order
// they were written in.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		tx, err := decodeTransaction(lineBytes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ledger.Append(tx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

func decodeTransaction(lineBytes []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(lineBytes, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in %q: %w", string(lineBytes), err)
	}

	switch identifier.Command {
	case CmdBuy, CmdSell:
		var temp struct {
			scopeCmd
			Quantity Quantity  `json:"quantity"`
			Price    moneyCmd  `json:"price"`
			Fees     *moneyCmd `json:"fees"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		price, err := temp.Price.Money()
		if err != nil {
			return nil, err
		}
		fees, err := temp.Fees.optional()
		if err != nil {
			return nil, err
		}
		if identifier.Command == CmdBuy {
			return NewBuy(temp.Date, temp.Memo, temp.Portfolio, temp.Asset, temp.Quantity, price, fees)
		}
		return NewSell(temp.Date, temp.Memo, temp.Portfolio, temp.Asset, temp.Quantity, price, fees)

	case CmdDividend:
		var temp struct {
			scopeCmd
			Income moneyCmd  `json:"income"`
			Fees   *moneyCmd `json:"fees"`
			Price  *moneyCmd `json:"price"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		income, err := temp.Income.Money()
		if err != nil {
			return nil, err
		}
		fees, err := temp.Fees.optional()
		if err != nil {
			return nil, err
		}
		price, err := temp.Price.optional()
		if err != nil {
			return nil, err
		}
		return NewDividend(temp.Date, temp.Memo, temp.Portfolio, temp.Asset, income, fees, price)

	default:
		return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
	}
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists a ledger to an io.Writer in JSONL format, one
// transaction per line in chronological order, so that decoding the stream
// reproduces the same ordering.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
