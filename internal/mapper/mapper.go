// =============================================================================
// ORAE Bridge - Mapping Engine
// =============================================================================
//
// Map turns one ORAE RetailEvent into a RIMS RecordSet.
//
// MAPPING STAGES:
//   1. Detect transaction flags (employee discount, gift card, customer)
//   2. Resolve the transaction and line codes
//   3. Resolve the store's local time
//   4. Build one order record per item
//   5. Move coverage lines behind their parent line
//   6. Synthesize tax lines using the province's strategy
//   7. Number order records 1..N
//   8. Build tender records, continuing the numbering
//
// The engine never rejects input. Missing objects degrade to blank or zero
// fields and unparseable numbers are logged as warnings.
//
// CONCURRENCY:
//   A Mapper holds no per-call state. One Mapper may serve concurrent calls.
//
// =============================================================================

package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Logger receives non-fatal data quality warnings. Messages are printf style.
type Logger interface {
	Warn(msg string, args ...interface{})
}

// ZoneLoader resolves an IANA time zone name.
type ZoneLoader func(name string) (*time.Location, error)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

// =============================================================================
// MAPPER
// =============================================================================

// Mapper converts retail events to legacy record sets.
type Mapper struct {
	logger   Logger
	loadZone ZoneLoader
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the warning sink. A nil logger discards warnings.
func WithLogger(l Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithZoneLoader replaces time.LoadLocation.
func WithZoneLoader(z ZoneLoader) Option {
	return func(m *Mapper) {
		if z != nil {
			m.loadZone = z
		}
	}
}

// New creates a Mapper.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		logger:   nopLogger{},
		loadZone: time.LoadLocation,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map converts event into a RecordSet.
//
// PARAMETERS:
//   - event: A decoded retail event. It is only read.
//
// RETURNS:
//   - The records for the event. A nil event gives an empty set.
//
// Map depends only on event. Mapping the same event twice yields equal
// output.
func (m *Mapper) Map(event *orae.RetailEvent) *rims.RecordSet {
	set := &rims.RecordSet{}
	if event == nil {
		return set
	}

	tc := m.newTxContext(event)

	// STEP 4-6: Order records.
	items := event.Items()
	var orderRecords []rims.OrderRecord
	if len(items) > 0 {
		itemRecords := make([]rims.OrderRecord, 0, len(items))
		lastRateCode := ""
		for i := range items {
			rec, rateCode := m.itemRecord(tc, &items[i])
			itemRecords = append(itemRecords, rec)
			lastRateCode = rateCode
		}

		orderRecords = orderCoverage(items, itemRecords)
		strategy := selectTaxStrategy(tc.province)
		orderRecords = append(orderRecords, strategy(tc, lastRateCode)...)
	}

	// STEP 7: Sequence numbers continue from order into tender records.
	seq := 1
	for i := range orderRecords {
		orderRecords[i].TransSeq = sequenceNumber(seq)
		seq++
	}

	// STEP 8: Tenders.
	tenderRecords := m.tenderRecords(tc)
	for i := range tenderRecords {
		tenderRecords[i].TransactionSeq = sequenceNumber(seq)
		seq++
	}

	set.OrderRecords = orderRecords
	set.TenderRecords = tenderRecords
	return set
}

var defaultMapper = New()

// Map converts event with a Mapper that discards warnings and resolves time
// zones with time.LoadLocation.
func Map(event *orae.RetailEvent) *rims.RecordSet {
	return defaultMapper.Map(event)
}

func sequenceNumber(n int) string {
	return padLeft(strconv.Itoa(n), 5, '0')
}

// =============================================================================
// TRANSACTION CONTEXT
// =============================================================================

// txContext holds the values every record of one transaction shares.
type txContext struct {
	event  *orae.RetailEvent
	logger Logger

	flags     Flags
	txType    string
	transCode string
	lineCode  string
	province  string

	local       time.Time
	transDate   string
	transTime   string
	transNumber string
	registerID  string
	storeID     string
	polledStore *int
	pollDate    int
	createTime  int
	salesPerson string
}

// newTxContext runs the flag, code and local time stages.
func (m *Mapper) newTxContext(event *orae.RetailEvent) *txContext {
	tc := &txContext{
		event:      event,
		logger:     m.logger,
		flags:      detectFlags(event),
		txType:     event.TransactionType(),
		registerID: event.Workstation().Register(),
		storeID:    event.Store().ID(),
	}

	tc.transCode, tc.lineCode = DefaultCode, DefaultCode
	if tc.txType != "" {
		var ok bool
		tc.transCode, tc.lineCode, ok = TransactionCodes(tc.txType, tc.flags)
		if !ok {
			m.logger.Warn("unrecognised transactionType %q, defaulting to %q", tc.txType, DefaultCode)
		}
	}

	if n, err := strconv.Atoi(tc.storeID); err == nil {
		tc.polledStore = &n
	}

	zone := ""
	if s := event.Store(); s != nil {
		zone = s.TimeZone
		tc.province = Province(s.TaxArea)
	}
	tc.local = m.localTime(event.OccurredAt, zone, tc.storeID)
	tc.transDate = tc.local.Format("060102")
	tc.transTime = tc.local.Format("150405")
	tc.pollDate, _ = strconv.Atoi(tc.transDate)
	tc.createTime, _ = strconv.Atoi(tc.transTime)

	if ws := event.Workstation(); ws != nil && ws.SequenceNumber != nil {
		tc.transNumber = padNumeric(strconv.FormatInt(*ws.SequenceNumber, 10), 5)
	}

	// Self-checkout registers start with 8 and report themselves as the
	// sales person; assisted lanes report the cashier.
	if strings.HasPrefix(tc.registerID, "8") {
		tc.salesPerson = padNumeric(tc.registerID, 5)
	} else {
		login := ""
		if a := event.Actor; a != nil && a.Cashier != nil {
			login = a.Cashier.LoginID
		}
		tc.salesPerson = padNumeric(login, 5)
	}

	return tc
}

func detectFlags(event *orae.RetailEvent) Flags {
	var f Flags
	for _, item := range event.Items() {
		if item.Pricing != nil && strings.Contains(strings.ToUpper(item.Pricing.PriceVehicle), "EMP") {
			f.EmployeeDiscount = true
			break
		}
	}
	for _, t := range event.Tenders() {
		if t.Method == "GIFT_CARD" {
			f.GiftCardTender = true
			break
		}
	}
	f.CustomerID = customerToken(event) != ""
	return f
}

func customerToken(event *orae.RetailEvent) string {
	if event.Actor == nil || event.Actor.Customer == nil {
		return ""
	}
	return event.Actor.Customer.CustomerIDToken
}

// totals never returns nil.
func (tc *txContext) totals() *orae.Totals {
	if t := tc.event.Totals(); t != nil {
		return t
	}
	return &orae.Totals{}
}

// stampOrder fills the identification and date fields shared by every
// order record of the transaction.
func (tc *txContext) stampOrder(rec *rims.OrderRecord) {
	rec.TransDate = tc.transDate
	rec.TransTime = tc.transTime
	rec.TransNumber = tc.transNumber
	rec.TransSeq = "00000"
	rec.RegisterID = padNumeric(tc.registerID, 3)
	rec.PolledStore = tc.polledStore
	rec.PollCen = 1
	rec.PollDate = tc.pollDate
	rec.CreateCen = 1
	rec.CreateDate = tc.pollDate
	rec.CreateTime = tc.createTime
	rec.Status = " "
	rec.Clerk = padNumeric(tc.registerID, 5)
	rec.SalesPerson = tc.salesPerson
}

// stampOriginalTx fills the original-transaction group. Sales carry zeros;
// returns and voids point back at this transaction.
func (tc *txContext) stampOriginalTx(rec *rims.OrderRecord) {
	switch tc.transCode {
	case "01", "04", "43":
		rec.OriginalTxStore = "00000"
		rec.OriginalTxDate = "000000"
		rec.OriginalTxRegister = "000"
		rec.OriginalTxNumber = "00000"
	case "11", "87", "88":
		rec.OriginalTxStore = padOrTruncate(tc.storeID, 5)
		rec.OriginalTxDate = tc.transDate
		rec.OriginalTxRegister = padOrTruncate(tc.registerID, 3)
		rec.OriginalTxNumber = tc.transNumber
		if ref := tc.event.References; tc.transCode == "11" && ref != nil && ref.SourceTransactionID != "" {
			rec.OriginalTxNumber = padOrTruncate(ref.SourceTransactionID, 5)
		}
	}
}
