// =============================================================================
// ORAE Bridge - Retail Event Model
// =============================================================================
//
// Typed representation of an ORAE v2.0.0 RetailEvent as it arrives on the
// wire. The model carries no behavior beyond decoding; every optional object
// is a pointer so callers can tell "absent" from "zero".
//
// =============================================================================

package orae

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SchemaVersion is the only ORAE schema version this bridge accepts.
const SchemaVersion = "2.0.0"

// MessageType is the expected messageType literal.
const MessageType = "RetailEvent"

// ErrDecode is returned (wrapped) when the input bytes are not a RetailEvent.
var ErrDecode = errors.New("malformed retail event")

// =============================================================================
// ROOT
// =============================================================================

// RetailEvent is one ORAE message.
type RetailEvent struct {
	SchemaVersion   string            `json:"schemaVersion,omitempty"`
	MessageType     string            `json:"messageType,omitempty"`
	EventID         string            `json:"eventId,omitempty"`
	EventType       string            `json:"eventType,omitempty"`
	EventCategory   string            `json:"eventCategory,omitempty"`
	EventSubType    string            `json:"eventSubType,omitempty"`
	OccurredAt      time.Time         `json:"occurredAt"`
	IngestedAt      time.Time         `json:"ingestedAt"`
	BusinessContext *BusinessContext  `json:"businessContext,omitempty"`
	Transaction     *Transaction      `json:"transaction,omitempty"`
	References      *References       `json:"references,omitempty"`
	Actor           *Actor            `json:"actor,omitempty"`
	Promotions      []json.RawMessage `json:"promotions,omitempty"`
}

// BusinessContext describes where and when the event happened.
type BusinessContext struct {
	// BusinessDay is an ISO date (yyyy-MM-dd).
	BusinessDay string       `json:"businessDay,omitempty"`
	Channel     string       `json:"channel,omitempty"`
	Fulfillment string       `json:"fulfillment,omitempty"`
	Store       *Store       `json:"store,omitempty"`
	Workstation *Workstation `json:"workstation,omitempty"`
}

// Store identifies the selling location.
type Store struct {
	StoreID  string `json:"storeId,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
	Currency string `json:"currency,omitempty"`
	TaxArea  string `json:"taxArea,omitempty"`
}

// Workstation identifies the register.
type Workstation struct {
	RegisterID     string `json:"registerId,omitempty"`
	Type           string `json:"type,omitempty"`
	SequenceNumber *int64 `json:"sequenceNumber,omitempty"`
}

// References links the event to earlier transactions.
type References struct {
	SourceTransactionID string `json:"sourceTransactionId,omitempty"`
}

// Actor carries the cashier and customer identities.
type Actor struct {
	Cashier  *Cashier  `json:"cashier,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

// Cashier is the operator logged into the register.
type Cashier struct {
	LoginID string `json:"loginId,omitempty"`
}

// Customer is the identified shopper, if any.
type Customer struct {
	CustomerIDToken string `json:"customerIdToken,omitempty"`
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction is the TRANSACTION-category payload.
type Transaction struct {
	TransactionType string            `json:"transactionType,omitempty"`
	Items           []TransactionItem `json:"items,omitempty"`
	Tenders         []Tender          `json:"tenders,omitempty"`
	Totals          *Totals           `json:"totals,omitempty"`
}

// Totals are the transaction-level money amounts.
type Totals struct {
	Gross        *Money `json:"gross,omitempty"`
	Discounts    *Money `json:"discounts,omitempty"`
	Tax          *Money `json:"tax,omitempty"`
	Net          *Money `json:"net,omitempty"`
	Tendered     *Money `json:"tendered,omitempty"`
	ChangeDue    *Money `json:"changeDue,omitempty"`
	CashRounding *Money `json:"cashRounding,omitempty"`
}

// Money is an ORAE amount. Value stays a string so the validator can check
// its exact wire format.
type Money struct {
	Currency string `json:"currency,omitempty"`
	Value    string `json:"value,omitempty"`
}

// TransactionItem is one line of the basket.
type TransactionItem struct {
	LineID       string            `json:"lineId,omitempty"`
	ParentLineID string            `json:"parentLineId,omitempty"`
	Item         *Item             `json:"item,omitempty"`
	Quantity     *Quantity         `json:"quantity,omitempty"`
	Pricing      *Pricing          `json:"pricing,omitempty"`
	Taxes        []Tax             `json:"taxes,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// Item identifies the product sold.
type Item struct {
	SKU         string `json:"sku,omitempty"`
	GTIN        string `json:"gtin,omitempty"`
	Description string `json:"description,omitempty"`
}

// Quantity is the number of units (or weight) on the line.
type Quantity struct {
	Value        decimal.Decimal  `json:"value"`
	UOM          string           `json:"uom,omitempty"`
	RandomWeight *bool            `json:"randomWeight,omitempty"`
	TareWeight   *decimal.Decimal `json:"tareWeight,omitempty"`
}

// Pricing holds every price attached to a line.
type Pricing struct {
	UnitPrice         *Money         `json:"unitPrice,omitempty"`
	ExtendedPrice     *Money         `json:"extendedPrice,omitempty"`
	OriginalUnitPrice *Money         `json:"originalUnitPrice,omitempty"`
	Override          *Money         `json:"override,omitempty"`
	PriceVehicle      string         `json:"priceVehicle,omitempty"`
	PriceOverride     *PriceOverride `json:"priceOverride,omitempty"`
}

// PriceOverride records a manual price change at the register.
type PriceOverride struct {
	ApprovedBy        string `json:"approvedBy,omitempty"`
	Overridden        *bool  `json:"overridden,omitempty"`
	OverrideUnitPrice *Money `json:"overrideUnitPrice,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// Tax is one tax component charged on a line.
type Tax struct {
	Jurisdiction  *Jurisdiction    `json:"jurisdiction,omitempty"`
	TaxType       string           `json:"taxType,omitempty"`
	TaxCategory   string           `json:"taxCategory,omitempty"`
	TaxCode       string           `json:"taxCode,omitempty"`
	TaxAuthority  string           `json:"taxAuthority,omitempty"`
	TaxRate       *decimal.Decimal `json:"taxRate,omitempty"`
	RatePercent   string           `json:"ratePercent,omitempty"`
	Amount        *Money           `json:"amount,omitempty"`
	TaxableAmount *Money           `json:"taxableAmount,omitempty"`
	TaxExempt     *bool            `json:"taxExempt,omitempty"`
	ExemptReason  string           `json:"exemptReason,omitempty"`
}

// Jurisdiction names the authority levying a tax.
type Jurisdiction struct {
	Country       string `json:"country,omitempty"`
	Region        string `json:"region,omitempty"`
	Locality      string `json:"locality,omitempty"`
	AuthorityID   string `json:"authorityId,omitempty"`
	AuthorityName string `json:"authorityName,omitempty"`
}

// Tender is one payment applied to the transaction.
type Tender struct {
	TenderID string `json:"tenderId,omitempty"`
	Method   string `json:"method,omitempty"`
	Amount   *Money `json:"amount,omitempty"`
	Card     *Card  `json:"card,omitempty"`
}

// Card holds the card details of an electronic tender.
type Card struct {
	Scheme       string `json:"scheme,omitempty"`
	Last4        string `json:"last4,omitempty"`
	AuthCode     string `json:"authCode,omitempty"`
	ResponseCode string `json:"responseCode,omitempty"`
	EMV          *EMV   `json:"emv,omitempty"`
}

// EMV carries chip data.
type EMV struct {
	Tags *EMVTags `json:"tags,omitempty"`
}

// EMVTags is the subset of EMV tags the bridge reads.
type EMVTags struct {
	MagStrip string `json:"magStrip,omitempty"`
}

// =============================================================================
// DECODING
// =============================================================================

// Decode parses a RetailEvent from JSON bytes.
//
// RETURNS:
//   - The decoded event.
//   - An error wrapping ErrDecode when the bytes are not a JSON object of the
//     expected shape.
func Decode(data []byte) (*RetailEvent, error) {
	var event RetailEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &event, nil
}

// =============================================================================
// NIL-SAFE ACCESSORS
// =============================================================================

// Store returns the store block or nil.
func (e *RetailEvent) Store() *Store {
	if e == nil || e.BusinessContext == nil {
		return nil
	}
	return e.BusinessContext.Store
}

// Workstation returns the workstation block or nil.
func (e *RetailEvent) Workstation() *Workstation {
	if e == nil || e.BusinessContext == nil {
		return nil
	}
	return e.BusinessContext.Workstation
}

// Items returns the transaction lines, or nil when there is no transaction.
func (e *RetailEvent) Items() []TransactionItem {
	if e == nil || e.Transaction == nil {
		return nil
	}
	return e.Transaction.Items
}

// Tenders returns the transaction tenders, or nil when there is no transaction.
func (e *RetailEvent) Tenders() []Tender {
	if e == nil || e.Transaction == nil {
		return nil
	}
	return e.Transaction.Tenders
}

// Totals returns the transaction totals or nil.
func (e *RetailEvent) Totals() *Totals {
	if e == nil || e.Transaction == nil {
		return nil
	}
	return e.Transaction.Totals
}

// TransactionType returns the transaction type, or "" when there is no transaction.
func (e *RetailEvent) TransactionType() string {
	if e == nil || e.Transaction == nil {
		return ""
	}
	return e.Transaction.TransactionType
}

// ID returns the store id, or "".
func (s *Store) ID() string {
	if s == nil {
		return ""
	}
	return s.StoreID
}

// Register returns the register id, or "".
func (w *Workstation) Register() string {
	if w == nil {
		return ""
	}
	return w.RegisterID
}

// ValueOrEmpty returns the money value, or "" for a nil amount.
func (m *Money) ValueOrEmpty() string {
	if m == nil {
		return ""
	}
	return m.Value
}

// Attribute returns an item attribute and whether the key was present.
func (i *TransactionItem) Attribute(key string) (string, bool) {
	if i == nil || i.Attributes == nil {
		return "", false
	}
	v, ok := i.Attributes[key]
	return v, ok
}
