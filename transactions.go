package invest

import (
	"fmt"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
	CmdDividend CommandType = "dividend"
)

// Transaction is the common interface for the ledger events of one
// (portfolio, asset) pair. Implementations are immutable once created:
// correcting a transaction means recording a corrected one and replaying,
// never patching a derived position in place.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	Seq() int64        // Seq returns the insertion sequence used to break same-day ordering ties.
	PortfolioID() string
	AssetID() string
	Total() Amount // Total returns the signed net amount, derived once at construction.
	Equal(Transaction) bool

	// withSeq returns a copy with the insertion sequence set. Unexported to
	// keep the transaction set closed: ledgers and repositories assign it.
	withSeq(seq int64) Transaction
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "buy", "sell").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.

	// Sequence breaks ordering ties between same-day transactions. It is
	// captured when the transaction enters a ledger or repository, not
	// persisted: decoding a ledger re-derives it from file order.
	Sequence int64 `json:"-"`
}

// What returns the command name for the transaction, which is used to identify the type of transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// Seq returns the insertion sequence captured when the transaction entered the ledger.
func (t baseCmd) Seq() int64 { return t.Sequence }

// Rationale returns the memo associated with the transaction.
func (t baseCmd) Rationale() string { return t.Memo }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// scopeCmd is a component for transactions scoped to one (portfolio, asset) pair.
type scopeCmd struct {
	baseCmd
	Portfolio string `json:"portfolio"` // Portfolio is the identifier of the owning portfolio.
	Asset     string `json:"asset"`     // Asset is the identifier of the traded asset.
}

func (t scopeCmd) PortfolioID() string { return t.Portfolio }
func (t scopeCmd) AssetID() string     { return t.Asset }

// sameScope compares everything but the insertion sequence, which is ledger
// bookkeeping rather than transaction identity.
func (t scopeCmd) sameScope(o scopeCmd) bool {
	return t.Command == o.Command && t.Date == o.Date && t.Memo == o.Memo &&
		t.Portfolio == o.Portfolio && t.Asset == o.Asset
}

func (t scopeCmd) validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is missing", ErrNotAllowed)
	}
	if t.Portfolio == "" {
		return fmt.Errorf("%w: portfolio id is missing", ErrNotAllowed)
	}
	if t.Asset == "" {
		return fmt.Errorf("%w: asset id is missing", ErrNotAllowed)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for scopeCmd.
func (t scopeCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("portfolio", t.Portfolio)
	w.Append("asset", t.Asset)
	return w.MarshalJSON()
}

// netOfFees computes price*quantity-fees, the gross trade value net of fees.
// Fees exceeding the gross value are rejected rather than producing a
// negative magnitude.
func netOfFees(price Money, quantity Quantity, fees Money) (Money, error) {
	gross := price.Mul(quantity)
	net, err := gross.Sub(fees)
	if err != nil {
		return Money{}, fmt.Errorf("fees %s exceed gross value %s: %w", fees, gross, err)
	}
	return net, nil
}

// Buy represents a transaction where a quantity of an asset is purchased at a
// unit price, with optional fees.
type Buy struct {
	scopeCmd
	Quantity Quantity // Quantity is the number of shares or units bought.
	Price    Money    // Price is the unit price paid.
	Fees     Money    // Fees is the brokerage cost of the purchase.

	total Amount // derived at construction: +(price*quantity - fees)
}

// NewBuy creates a new Buy transaction, computing its net total once.
func NewBuy(day Date, memo, portfolio, asset string, quantity Quantity, price, fees Money) (Buy, error) {
	if fees.Currency() == "" {
		// absent fees count as zero in the trade currency
		fees = Money{cur: price.Currency()}
	}
	t := Buy{
		scopeCmd: scopeCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Portfolio: portfolio, Asset: asset},
		Quantity: quantity,
		Price:    price,
		Fees:     fees,
	}
	if err := t.scopeCmd.validate(); err != nil {
		return Buy{}, err
	}
	if !quantity.IsPositive() {
		return Buy{}, fmt.Errorf("%w: buy quantity must be positive, got %s", ErrNotAllowed, quantity)
	}
	if !price.IsPositive() {
		return Buy{}, fmt.Errorf("%w: buy price must be positive, got %s", ErrNotAllowed, price)
	}
	net, err := netOfFees(price, quantity, fees)
	if err != nil {
		return Buy{}, err
	}
	t.total = asAmount(net)
	return t, nil
}

func (t Buy) Total() Amount { return t.total }

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.sameScope(o.scopeCmd) && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Fees.Equal(o.Fees)
}

func (t Buy) withSeq(seq int64) Transaction {
	t.Sequence = seq
	return t
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.scopeCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees)
	}
	return w.MarshalJSON()
}

// Sell represents a transaction where a quantity of an asset is sold at a
// unit price, with optional fees. A Sell does not check the available
// quantity itself; only the replay over the full history can.
type Sell struct {
	scopeCmd
	Quantity Quantity // Quantity is the number of shares or units sold.
	Price    Money    // Price is the unit price obtained.
	Fees     Money    // Fees is the brokerage cost of the sale.

	total Amount // derived at construction: -(price*quantity - fees)
}

// NewSell creates a new Sell transaction, computing its net total once.
func NewSell(day Date, memo, portfolio, asset string, quantity Quantity, price, fees Money) (Sell, error) {
	if fees.Currency() == "" {
		fees = Money{cur: price.Currency()}
	}
	t := Sell{
		scopeCmd: scopeCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Portfolio: portfolio, Asset: asset},
		Quantity: quantity,
		Price:    price,
		Fees:     fees,
	}
	if err := t.scopeCmd.validate(); err != nil {
		return Sell{}, err
	}
	if !quantity.IsPositive() {
		return Sell{}, fmt.Errorf("%w: sell quantity must be positive, got %s", ErrNotAllowed, quantity)
	}
	if !price.IsPositive() {
		return Sell{}, fmt.Errorf("%w: sell price must be positive, got %s", ErrNotAllowed, price)
	}
	net, err := netOfFees(price, quantity, fees)
	if err != nil {
		return Sell{}, err
	}
	t.total = asAmount(net).Neg()
	return t, nil
}

func (t Sell) Total() Amount { return t.total }

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.sameScope(o.scopeCmd) && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Fees.Equal(o.Fees)
}

func (t Sell) withSeq(seq int64) Transaction {
	t.Sequence = seq
	return t
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.scopeCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees)
	}
	return w.MarshalJSON()
}

// Dividend represents income received from holding an asset. It moves no
// units: its quantity is always zero. It may carry the market price observed
// at payment time, which refreshes the position's current price on replay.
type Dividend struct {
	scopeCmd
	Income Money // Income is the cash received.
	Fees   Money // Fees is any cost withheld from the payment.
	Price  Money // Price optionally carries the unit price observed at payment; zero value means absent.

	total Amount // derived at construction: +(income - fees)
}

// NewDividend creates a new Dividend transaction. Pass the zero Money value
// as price when no market price was observed.
func NewDividend(day Date, memo, portfolio, asset string, income, fees, price Money) (Dividend, error) {
	if fees.Currency() == "" {
		fees = Money{cur: income.Currency()}
	}
	t := Dividend{
		scopeCmd: scopeCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Portfolio: portfolio, Asset: asset},
		Income:   income,
		Fees:     fees,
		Price:    price,
	}
	if err := t.scopeCmd.validate(); err != nil {
		return Dividend{}, err
	}
	if !income.IsPositive() {
		return Dividend{}, fmt.Errorf("%w: dividend income must be positive, got %s", ErrNotAllowed, income)
	}
	if t.HasPrice() && !price.IsPositive() {
		return Dividend{}, fmt.Errorf("%w: dividend price must be positive when given, got %s", ErrNotAllowed, price)
	}
	net, err := income.Sub(fees)
	if err != nil {
		return Dividend{}, fmt.Errorf("fees %s exceed dividend income %s: %w", fees, income, err)
	}
	t.total = asAmount(net)
	return t, nil
}

// Quantity returns the number of units moved by a dividend: always zero.
func (t Dividend) Quantity() Quantity { return Quantity{} }

// HasPrice reports whether the dividend carries an observed market price.
func (t Dividend) HasPrice() bool { return t.Price.Currency() != "" }

func (t Dividend) Total() Amount { return t.total }

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.sameScope(o.scopeCmd) && t.Income.Equal(o.Income) &&
		t.Fees.Equal(o.Fees) && t.HasPrice() == o.HasPrice() &&
		(!t.HasPrice() || t.Price.Equal(o.Price))
}

func (t Dividend) withSeq(seq int64) Transaction {
	t.Sequence = seq
	return t
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.scopeCmd)
	w.Append("income", t.Income)
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees)
	}
	if t.HasPrice() {
		w.Append("price", t.Price)
	}
	return w.MarshalJSON()
}
