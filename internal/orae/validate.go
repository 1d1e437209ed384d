// =============================================================================
// ORAE Bridge - Input Validator
// =============================================================================
//
// Validate checks a decoded RetailEvent against the ORAE v2.0.0 contract:
// required root fields and enumerations, the business context, the
// category-specific payload, transaction totals, line items and tenders.
//
// Every check runs. The result lists every violation found, in document
// order, and is empty for a compliant event.
//
// =============================================================================

package orae

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/orae-rims-bridge/internal/validation"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

var (
	eventTypes = []string{"ORIGINAL", "CORRECTION", "CANCELLATION", "SNAPSHOT"}

	eventCategories = []string{
		"TRANSACTION", "TILL", "STORE", "SESSION", "BANKING", "ORDER",
		"INVENTORY", "MAINTENANCE", "CALIBRATION", "AUDIT", "STATUS",
		"LOYALTY", "TOPUP", "PROMOTION", "OTHER",
	}

	transactionTypes = []string{
		"SALE", "RETURN", "EXCHANGE", "VOID", "CANCEL", "ADJUSTMENT", "NONMERCH", "SERVICE",
	}
)

// =============================================================================
// VALIDATE
// =============================================================================

// Validate returns every ORAE compliance violation found in event.
//
// PARAMETERS:
//   - event: The decoded event. A nil event is itself a violation.
//
// RETURNS:
//   - The violation messages. Never nil; empty when the event is compliant.
func Validate(event *RetailEvent) []string {
	var v validation.Violations
	if event == nil {
		v.Add("RetailEvent is null")
		return v.List()
	}

	validateRoot(&v, event)
	validateBusinessContext(&v, event.BusinessContext)

	if event.EventCategory == "TRANSACTION" && event.Transaction == nil {
		v.Add("eventCategory 'TRANSACTION' requires transaction object")
	}
	if event.Transaction != nil {
		validateTransaction(&v, event.Transaction)
	}

	return v.List()
}

func validateRoot(v *validation.Violations, e *RetailEvent) {
	if v.RequireString("schemaVersion", e.SchemaVersion) && e.SchemaVersion != SchemaVersion {
		v.Addf("Invalid schemaVersion: %s. Expected '%s'", e.SchemaVersion, SchemaVersion)
	}

	if v.RequireString("messageType", e.MessageType) && e.MessageType != MessageType {
		v.Addf("Invalid messageType: %s. Expected '%s'", e.MessageType, MessageType)
	}

	if v.RequireString("eventType", e.EventType) && !validation.OneOf(e.EventType, eventTypes) {
		v.Addf("Invalid eventType: %s. Must be one of: %s", e.EventType, strings.Join(eventTypes, ", "))
	}

	if v.RequireString("eventCategory", e.EventCategory) && !validation.OneOf(e.EventCategory, eventCategories) {
		v.Addf("Invalid eventCategory: %s", e.EventCategory)
	}

	v.RequireString("eventId", e.EventID)

	if e.OccurredAt.IsZero() {
		v.Add("Missing required field: occurredAt")
	}
	if e.IngestedAt.IsZero() {
		v.Add("Missing required field: ingestedAt")
	}
}

func validateBusinessContext(v *validation.Violations, bc *BusinessContext) {
	if !v.RequireObject("businessContext", bc != nil) {
		return
	}

	v.RequireString("businessContext.businessDay", bc.BusinessDay)

	if v.RequireObject("businessContext.store", bc.Store != nil) {
		v.RequireString("businessContext.store.storeId", bc.Store.StoreID)
		if bc.Store.Currency != "" && !validation.CurrencyPattern.MatchString(bc.Store.Currency) {
			v.Addf("Invalid businessContext.store.currency: '%s'. Must be ISO-4217 (3 uppercase letters)", bc.Store.Currency)
		}
	}

	if v.RequireObject("businessContext.workstation", bc.Workstation != nil) {
		v.RequireString("businessContext.workstation.registerId", bc.Workstation.RegisterID)
		if seq := bc.Workstation.SequenceNumber; seq != nil && *seq < 0 {
			v.Add("Invalid businessContext.workstation.sequenceNumber: must be >= 0")
		}
	}

	v.RequireString("businessContext.channel", bc.Channel)
}

func validateTransaction(v *validation.Violations, tx *Transaction) {
	if v.RequireString("transaction.transactionType", tx.TransactionType) &&
		!validation.OneOf(tx.TransactionType, transactionTypes) {
		v.Addf("Invalid transaction.transactionType: %s. Must be one of: %s",
			tx.TransactionType, strings.Join(transactionTypes, ", "))
	}

	if v.RequireObject("transaction.totals", tx.Totals != nil) {
		requireMoney(v, "transaction.totals.gross", tx.Totals.Gross)
		requireMoney(v, "transaction.totals.discounts", tx.Totals.Discounts)
		requireMoney(v, "transaction.totals.tax", tx.Totals.Tax)
		requireMoney(v, "transaction.totals.net", tx.Totals.Net)
		if tx.Totals.ChangeDue != nil {
			validateMoney(v, "transaction.totals.changeDue", tx.Totals.ChangeDue)
		}
		if tx.Totals.CashRounding != nil {
			validateMoney(v, "transaction.totals.cashRounding", tx.Totals.CashRounding)
		}
	}

	if tx.TransactionType != "CANCEL" && tx.TransactionType != "VOID" && len(tx.Items) == 0 {
		v.Add("transaction.items[] must have at least one item for non-CANCEL/VOID transactions")
	}

	for i := range tx.Items {
		validateItem(v, fmt.Sprintf("transaction.items[%d]", i), &tx.Items[i])
	}

	for i, tender := range tx.Tenders {
		prefix := fmt.Sprintf("transaction.tenders[%d]", i)
		v.RequireString(prefix+".tenderId", tender.TenderID)
		v.RequireString(prefix+".method", tender.Method)
		requireMoney(v, prefix+".amount", tender.Amount)
	}
}

func validateItem(v *validation.Violations, prefix string, item *TransactionItem) {
	v.RequireString(prefix+".lineId", item.LineID)

	if v.RequireObject(prefix+".item", item.Item != nil) {
		v.RequireString(prefix+".item.sku", item.Item.SKU)
		v.RequireString(prefix+".item.description", item.Item.Description)
	}

	if v.RequireObject(prefix+".quantity", item.Quantity != nil) {
		v.RequireString(prefix+".quantity.uom", item.Quantity.UOM)
	}

	if v.RequireObject(prefix+".pricing", item.Pricing != nil) {
		requireMoney(v, prefix+".pricing.unitPrice", item.Pricing.UnitPrice)
		requireMoney(v, prefix+".pricing.extendedPrice", item.Pricing.ExtendedPrice)
	}

	for t, tax := range item.Taxes {
		requireMoney(v, fmt.Sprintf("%s.taxes[%d].amount", prefix, t), tax.Amount)
	}
}

// =============================================================================
// MONEY
// =============================================================================

// requireMoney reports a missing amount, or validates a present one.
func requireMoney(v *validation.Violations, path string, m *Money) {
	if m == nil {
		v.Addf("Missing required field: %s", path)
		return
	}
	validateMoney(v, path, m)
}

// validateMoney checks both halves of an ORAE Money object.
func validateMoney(v *validation.Violations, path string, m *Money) {
	if v.RequireString(path+".currency", m.Currency) && !validation.CurrencyPattern.MatchString(m.Currency) {
		v.Addf("Invalid %s.currency: '%s'. Must be ISO-4217 (3 uppercase letters)", path, m.Currency)
	}

	if v.RequireString(path+".value", m.Value) && !validation.DecimalPattern.MatchString(m.Value) {
		v.Addf("Invalid %s.value: '%s'. Must be signed decimal string (e.g., '12.34', '-5.00')", path, m.Value)
	}
}
