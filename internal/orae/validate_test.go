package orae

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSaleEvent(t *testing.T) *RetailEvent {
	t.Helper()

	data, err := os.ReadFile("testdata/sale_event.json")
	require.NoError(t, err)

	event, err := Decode(data)
	require.NoError(t, err)
	return event
}

func TestDecode(t *testing.T) {
	event := loadSaleEvent(t)

	assert.Equal(t, "2.0.0", event.SchemaVersion)
	assert.Equal(t, "1234", event.Store().ID())
	assert.Equal(t, "12", event.Workstation().Register())
	require.NotNil(t, event.Workstation().SequenceNumber)
	assert.Equal(t, int64(4567), *event.Workstation().SequenceNumber)
	require.Len(t, event.Items(), 1)
	assert.Equal(t, "1", event.Items()[0].Quantity.Value.String())
	require.NotNil(t, event.Items()[0].Taxes[0].TaxRate)
	assert.Equal(t, "0.13", event.Items()[0].Taxes[0].TaxRate.String())
	assert.Equal(t, "22.59", event.Totals().Net.ValueOrEmpty())
	assert.Equal(t, 17, event.OccurredAt.Hour())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"schemaVersion": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = Decode([]byte(`[]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestValidate_CompliantEvent(t *testing.T) {
	event := loadSaleEvent(t)

	violations := Validate(event)
	assert.NotNil(t, violations)
	assert.Empty(t, violations)
}

func TestValidate_NilEvent(t *testing.T) {
	assert.Equal(t, []string{"RetailEvent is null"}, Validate(nil))
}

func TestValidate_EmptyEvent(t *testing.T) {
	violations := Validate(&RetailEvent{})

	assert.Equal(t, []string{
		"Missing required field: schemaVersion",
		"Missing required field: messageType",
		"Missing required field: eventType",
		"Missing required field: eventCategory",
		"Missing required field: eventId",
		"Missing required field: occurredAt",
		"Missing required field: ingestedAt",
		"Missing required object: businessContext",
	}, violations)
}

func TestValidate_RootEnumerations(t *testing.T) {
	event := loadSaleEvent(t)
	event.SchemaVersion = "1.0.0"
	event.MessageType = "Other"
	event.EventType = "DRAFT"
	event.EventCategory = "NOPE"

	violations := Validate(event)

	assert.Contains(t, violations, "Invalid schemaVersion: 1.0.0. Expected '2.0.0'")
	assert.Contains(t, violations, "Invalid messageType: Other. Expected 'RetailEvent'")
	assert.Contains(t, violations, "Invalid eventType: DRAFT. Must be one of: ORIGINAL, CORRECTION, CANCELLATION, SNAPSHOT")
	assert.Contains(t, violations, "Invalid eventCategory: NOPE")
}

func TestValidate_BusinessContext(t *testing.T) {
	event := loadSaleEvent(t)
	seq := int64(-1)
	event.BusinessContext.BusinessDay = ""
	event.BusinessContext.Channel = ""
	event.BusinessContext.Store.StoreID = ""
	event.BusinessContext.Store.Currency = "cad"
	event.BusinessContext.Workstation.RegisterID = ""
	event.BusinessContext.Workstation.SequenceNumber = &seq

	violations := Validate(event)

	assert.Equal(t, []string{
		"Missing required field: businessContext.businessDay",
		"Missing required field: businessContext.store.storeId",
		"Invalid businessContext.store.currency: 'cad'. Must be ISO-4217 (3 uppercase letters)",
		"Missing required field: businessContext.workstation.registerId",
		"Invalid businessContext.workstation.sequenceNumber: must be >= 0",
		"Missing required field: businessContext.channel",
	}, violations)
}

func TestValidate_MissingStoreAndWorkstation(t *testing.T) {
	event := loadSaleEvent(t)
	event.BusinessContext.Store = nil
	event.BusinessContext.Workstation = nil

	violations := Validate(event)

	assert.Equal(t, []string{
		"Missing required object: businessContext.store",
		"Missing required object: businessContext.workstation",
	}, violations)
}

func TestValidate_TransactionCategoryRequiresPayload(t *testing.T) {
	event := loadSaleEvent(t)
	event.Transaction = nil

	assert.Equal(t, []string{"eventCategory 'TRANSACTION' requires transaction object"}, Validate(event))

	event.EventCategory = "TILL"
	assert.Empty(t, Validate(event))
}

func TestValidate_Totals(t *testing.T) {
	event := loadSaleEvent(t)
	event.Transaction.Totals.Gross = nil
	event.Transaction.Totals.Tax = &Money{Currency: "CA", Value: "2.6"}
	event.Transaction.Totals.Net = &Money{Value: "abc"}
	event.Transaction.Totals.ChangeDue = &Money{Currency: "CAD", Value: "1.23456"}

	violations := Validate(event)

	assert.Equal(t, []string{
		"Missing required field: transaction.totals.gross",
		"Invalid transaction.totals.tax.currency: 'CA'. Must be ISO-4217 (3 uppercase letters)",
		"Missing required field: transaction.totals.net.currency",
		"Invalid transaction.totals.net.value: 'abc'. Must be signed decimal string (e.g., '12.34', '-5.00')",
		"Invalid transaction.totals.changeDue.value: '1.23456'. Must be signed decimal string (e.g., '12.34', '-5.00')",
	}, violations)
}

func TestValidate_MissingTotals(t *testing.T) {
	event := loadSaleEvent(t)
	event.Transaction.Totals = nil

	assert.Equal(t, []string{"Missing required object: transaction.totals"}, Validate(event))
}

func TestValidate_TransactionType(t *testing.T) {
	event := loadSaleEvent(t)
	event.Transaction.TransactionType = "LAYAWAY"

	assert.Equal(t, []string{
		"Invalid transaction.transactionType: LAYAWAY. Must be one of: SALE, RETURN, EXCHANGE, VOID, CANCEL, ADJUSTMENT, NONMERCH, SERVICE",
	}, Validate(event))
}

func TestValidate_ItemsRequiredUnlessCancelOrVoid(t *testing.T) {
	tests := []struct {
		txType string
		want   bool
	}{
		{"SALE", true},
		{"RETURN", true},
		{"CANCEL", false},
		{"VOID", false},
	}

	for _, tt := range tests {
		t.Run(tt.txType, func(t *testing.T) {
			event := loadSaleEvent(t)
			event.Transaction.TransactionType = tt.txType
			event.Transaction.Items = nil

			violations := Validate(event)
			msg := "transaction.items[] must have at least one item for non-CANCEL/VOID transactions"
			if tt.want {
				assert.Contains(t, violations, msg)
			} else {
				assert.NotContains(t, violations, msg)
			}
		})
	}
}

func TestValidate_ItemFields(t *testing.T) {
	event := loadSaleEvent(t)
	event.Transaction.Items = append(event.Transaction.Items, TransactionItem{
		Item:     &Item{},
		Quantity: &Quantity{},
		Pricing:  &Pricing{UnitPrice: &Money{Currency: "CAD", Value: "1.00"}},
		Taxes:    []Tax{{TaxType: "HST"}},
	}, TransactionItem{LineID: "3"})

	violations := Validate(event)

	assert.Equal(t, []string{
		"Missing required field: transaction.items[1].lineId",
		"Missing required field: transaction.items[1].item.sku",
		"Missing required field: transaction.items[1].item.description",
		"Missing required field: transaction.items[1].quantity.uom",
		"Missing required field: transaction.items[1].pricing.extendedPrice",
		"Missing required field: transaction.items[1].taxes[0].amount",
		"Missing required object: transaction.items[2].item",
		"Missing required object: transaction.items[2].quantity",
		"Missing required object: transaction.items[2].pricing",
	}, violations)
}

func TestValidate_TenderFields(t *testing.T) {
	event := loadSaleEvent(t)
	event.Transaction.Tenders = []Tender{
		{},
		{TenderID: "02", Method: "CREDIT", Amount: &Money{Currency: "CAD", Value: "-5.00"}},
	}

	violations := Validate(event)

	assert.Equal(t, []string{
		"Missing required field: transaction.tenders[0].tenderId",
		"Missing required field: transaction.tenders[0].method",
		"Missing required field: transaction.tenders[0].amount",
	}, violations)
}
