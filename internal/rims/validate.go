// =============================================================================
// ORAE Bridge - Record Set Validator
// =============================================================================
//
// ValidateOutput checks a produced RecordSet against the legacy layout:
//   1. Per-record required fields and century ranges
//   2. A generic length pass driven by the Layout table
//
// LENGTH RULE:
//   A blank value (empty or whitespace only) is always accepted. Any other
//   value must be exactly the declared length.
//
// =============================================================================

package rims

import (
	"fmt"

	"github.com/ginjaninja78/orae-rims-bridge/internal/validation"
)

// ValidateOutput validates set against the built-in layout.
func ValidateOutput(set *RecordSet) []string {
	return ValidateOutputWithLayout(set, nil)
}

// ValidateOutputWithLayout validates set against layout. A nil layout means
// the built-in one.
//
// RETURNS:
//   - The violation messages, in record order. Never nil.
func ValidateOutputWithLayout(set *RecordSet, layout *Layout) []string {
	var v validation.Violations
	if set == nil {
		v.Add("RecordSet is null")
		return v.List()
	}
	if layout == nil {
		layout = DefaultLayout()
	}

	orderLengths := layout.Lengths(FamilyOrder)
	for i := range set.OrderRecords {
		rec := &set.OrderRecords[i]
		prefix := fmt.Sprintf("%s[%d]", FamilyOrder, i)
		validateOrderRequired(&v, prefix, rec)
		checkLengths(&v, prefix, layout.Order, orderLengths, rec.Values())
	}

	tenderLengths := layout.Lengths(FamilyTender)
	for i := range set.TenderRecords {
		rec := &set.TenderRecords[i]
		prefix := fmt.Sprintf("%s[%d]", FamilyTender, i)
		validateTenderRequired(&v, prefix, rec)
		checkLengths(&v, prefix, layout.Tender, tenderLengths, rec.Values())
	}

	if set.Empty() {
		v.Add("RecordSet contains no OrderRecords or TenderRecords")
	}

	return v.List()
}

// =============================================================================
// REQUIRED FIELDS
// =============================================================================

type requiredField struct {
	code  string
	name  string
	value string
}

func requireAll(v *validation.Violations, prefix string, fields []requiredField) {
	for _, f := range fields {
		if f.value == "" {
			v.Addf("%s: %s (%s) is required", prefix, f.code, f.name)
		}
	}
}

func requireDates(v *validation.Violations, prefix, family string, polled *int, pollCen, pollDate, createCen, createDate, createTime int) {
	if polled == nil || *polled == 0 {
		v.Addf("%s: %sPST (PolledStore) is required", prefix, family)
	}
	// Century digits: 0 is valid for 2000-2099.
	if pollCen < 0 || pollCen > 9 {
		v.Addf("%s: %sPCN (PollCen) must be 0-9", prefix, family)
	}
	if pollDate == 0 {
		v.Addf("%s: %sPDT (PollDate) is required", prefix, family)
	}
	if createCen < 0 || createCen > 9 {
		v.Addf("%s: %sCCN (CreateCen) must be 0-9", prefix, family)
	}
	if createDate == 0 {
		v.Addf("%s: %sCDT (CreateDate) is required", prefix, family)
	}
	if createTime == 0 {
		v.Addf("%s: %sCTM (CreateTime) is required", prefix, family)
	}
}

func validateOrderRequired(v *validation.Violations, prefix string, r *OrderRecord) {
	requireAll(v, prefix, []requiredField{
		{"SLFTTP", "TransType", r.TransType},
		{"SLFLNT", "LineType", r.LineType},
		{"SLFTDT", "TransDate", r.TransDate},
		{"SLFTTM", "TransTime", r.TransTime},
		{"SLFTTX", "TransNumber", r.TransNumber},
		{"SLFTSQ", "TransSeq", r.TransSeq},
		{"SLFREG", "RegisterID", r.RegisterID},
		{"SLFSKU", "SKUNumber", r.SKUNumber},
	})
	requireDates(v, prefix, "SLF", r.PolledStore, r.PollCen, r.PollDate, r.CreateCen, r.CreateDate, r.CreateTime)
	requireAll(v, prefix, []requiredField{
		{"SLFQTY", "Quantity", r.Quantity},
		{"SLFSEL", "ItemSellPrice", r.ItemSellPrice},
		{"SLFEXT", "ExtendedValue", r.ExtendedValue},
	})
}

func validateTenderRequired(v *validation.Violations, prefix string, r *TenderRecord) {
	requireAll(v, prefix, []requiredField{
		{"TNFTTP", "TransactionType", r.TransactionType},
		{"TNFTDT", "TransactionDate", r.TransactionDate},
		{"TNFTTM", "TransactionTime", r.TransactionTime},
		{"TNFTTX", "TransactionNumber", r.TransactionNumber},
		{"TNFTSQ", "TransactionSeq", r.TransactionSeq},
		{"TNFREG", "RegisterID", r.RegisterID},
		{"TNFFCD", "FundCode", r.FundCode},
		{"TNFAMT", "Amount", r.Amount},
	})
	requireDates(v, prefix, "TNF", r.PolledStore, r.PollCen, r.PollDate, r.CreateCen, r.CreateDate, r.CreateTime)
}

// =============================================================================
// LENGTH PASS
// =============================================================================

// checkLengths walks fields in layout order and compares every non-blank
// value against its declared length.
func checkLengths(v *validation.Violations, prefix string, fields []Field, lengths map[string]int, values map[string]string) {
	for _, f := range fields {
		want, ok := lengths[f.Code]
		if !ok {
			continue
		}
		value := values[f.Code]
		if validation.IsBlank(value) {
			continue
		}
		got := len([]rune(value))
		switch {
		case got < want:
			v.Addf("%s: %s (%s) length is %d, but minimum is %d", prefix, f.Code, f.Name, got, want)
		case got > want:
			v.Addf("%s: %s (%s) length is %d, but maximum is %d", prefix, f.Code, f.Name, got, want)
		}
	}
}
