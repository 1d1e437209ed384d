// =============================================================================
// ORAE Bridge - Code Tables
// =============================================================================
//
// Lookup tables translating ORAE vocabulary into legacy codes:
//
//   TRANSACTION CODES
//     transactionType + flags -> (SLFTTP, SLFLNT)
//
//   TAX LINE TYPES
//     tax authority code -> SLFLNT for synthesized tax lines
//
// =============================================================================

package mapper

import "strings"

// Flags are the transaction-wide facts that influence code selection.
type Flags struct {
	// EmployeeDiscount is set when any item's price vehicle mentions EMP.
	EmployeeDiscount bool

	// GiftCardTender is set when any tender has method GIFT_CARD.
	GiftCardTender bool

	// CustomerID is set when the actor carries a customer token.
	CustomerID bool
}

// DefaultCode is used for unknown transaction types.
const DefaultCode = "01"

// CoverageCode replaces both codes on coverage (EPP) lines.
const CoverageCode = "21"

// codeRule resolves one transaction type. The first matching entry wins;
// a rule with a nil condition always matches.
type codeRule struct {
	when  func(Flags) bool
	trans string
	line  string
}

func employee(f Flags) bool   { return f.EmployeeDiscount }
func giftCard(f Flags) bool   { return f.GiftCardTender }
func customerID(f Flags) bool { return f.CustomerID }

var transactionCodes = map[string][]codeRule{
	"SALE": {
		{when: employee, trans: "04", line: "04"},
		{when: giftCard, trans: "01", line: "45"},
		{when: customerID, trans: "01", line: "02"},
		{trans: "01", line: "01"},
	},
	"RETURN": {
		{when: giftCard, trans: "11", line: "45"},
		{when: customerID, trans: "11", line: "12"},
		{trans: "11", line: "11"},
	},
	"AR_PAYMENT": {{trans: "43", line: DefaultCode}},
	"VOID":       {{trans: "87", line: "87"}},
	"POST_VOID":  {{trans: "88", line: DefaultCode}},
}

// TransactionCodes returns the transaction code (SLFTTP) and line code
// (SLFLNT) for txType. ok is false when txType is not recognised and both
// codes fell back to DefaultCode.
func TransactionCodes(txType string, flags Flags) (trans, line string, ok bool) {
	for _, rule := range transactionCodes[txType] {
		if rule.when == nil || rule.when(flags) {
			return rule.trans, rule.line, true
		}
	}
	return DefaultCode, DefaultCode, false
}

// DefaultTaxLineType is used for authorities missing from the table.
const DefaultTaxLineType = "XH"

var taxLineTypes = map[string]string{
	"BC":   "XR",
	"FED":  "XG",
	"HNB":  "XN",
	"HNF":  "XF",
	"HNS":  "XV",
	"HON":  "XH",
	"HON1": "XI",
	"HPE":  "XP",
	"MB":   "XM",
	"PQ":   "XQ",
	"SK":   "XS",
}

// TaxLineType maps a tax authority code to the line type of its tax record.
// The code is matched trimmed and case-insensitively.
func TaxLineType(authority string) string {
	if lt, ok := taxLineTypes[strings.ToUpper(strings.TrimSpace(authority))]; ok {
		return lt
	}
	return DefaultTaxLineType
}
