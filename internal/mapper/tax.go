// =============================================================================
// ORAE Bridge - Tax Handling
// =============================================================================
//
// Tax is written twice: as charge flags (SLFTX1-4) on each item record, and
// as synthesized tax lines after the items. The province derived from the
// store's tax area selects one of three strategies for the tax lines:
//
//   ONTARIO       Two consolidated lines: HST (XH) and partial HST (XI)
//   GST+PST       Two consolidated lines: federal (XG) and provincial
//                 (XR, XM, XS or XQ) for BC, MB, SK and QC
//   PER ITEM      One line per taxed item, authority picked by rate
//
// =============================================================================

package mapper

import (
	"strings"

	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PROVINCE CLASSIFICATION
// =============================================================================

var provinceCodes = map[string]bool{
	"ON": true, "QC": true, "BC": true, "AB": true, "MB": true, "SK": true,
	"NS": true, "NB": true, "PE": true, "NL": true, "YT": true, "NT": true, "NU": true,
}

// Province derives a two letter province code from a store tax area.
// It returns "" when nothing matches.
func Province(taxArea string) string {
	if taxArea == "" {
		return ""
	}
	upper := strings.ToUpper(taxArea)
	if len(upper) >= 2 && provinceCodes[upper[:2]] {
		return upper[:2]
	}

	switch {
	case strings.Contains(upper, "ONTARIO"), strings.Contains(upper, "HON"):
		return "ON"
	case strings.Contains(upper, "QUEBEC"):
		return "QC"
	case strings.Contains(upper, "BRITISH"), strings.Contains(upper, "BC"):
		return "BC"
	}
	return ""
}

var gstPstProvinces = map[string]bool{"BC": true, "MB": true, "SK": true, "QC": true}

// taxStrategy produces the synthesized tax lines for a transaction.
type taxStrategy func(tc *txContext, lastRateCode string) []rims.OrderRecord

func selectTaxStrategy(province string) taxStrategy {
	switch {
	case province == "ON":
		return ontarioTaxLines
	case gstPstProvinces[province]:
		return gstPstTaxLines
	}
	return perItemTaxLines
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

var (
	tenPercent  = decimal.RequireFromString("0.10")
	fourPercent = decimal.RequireFromString("0.04")
	sixPercent  = decimal.RequireFromString("0.06")
	hstRate     = decimal.RequireFromString("0.13")
	gstRate     = decimal.RequireFromString("0.05")
	exactTol    = decimal.RequireFromString("0.001")
	effTol      = decimal.RequireFromString("0.01")
)

// taxKind returns the tax type, falling back to the category.
func taxKind(tax *orae.Tax) string {
	if tax.TaxType != "" {
		return strings.ToUpper(tax.TaxType)
	}
	return strings.ToUpper(tax.TaxCategory)
}

// taxAmount parses the tax amount. A present but unparseable amount is
// logged and skipped.
func (tc *txContext) taxAmount(tax *orae.Tax) (decimal.Decimal, bool) {
	value := tax.Amount.ValueOrEmpty()
	amt, ok := parseDecimal(value)
	if !ok && strings.TrimSpace(value) != "" && tc.logger != nil {
		tc.logger.Warn("unable to parse tax amount %q, skipping", value)
	}
	return amt, ok
}

// isFullHST classifies an Ontario tax as full HST (13%) or partial (5%)
// using, in order, ratePercent, taxRate and the jurisdiction region. def is
// returned when none of them is present.
func isFullHST(tax *orae.Tax, def bool) bool {
	if pct, ok := parseDecimal(tax.RatePercent); ok {
		return pct.GreaterThanOrEqual(decimal.NewFromInt(10))
	}
	if tax.TaxRate != nil {
		return tax.TaxRate.GreaterThanOrEqual(tenPercent)
	}
	if tax.Jurisdiction != nil && tax.Jurisdiction.Region != "" {
		region := strings.ToUpper(tax.Jurisdiction.Region)
		if region == "HON1" {
			return false
		}
		return region == "HON" || strings.Contains(region, "HST")
	}
	return def
}

// isFederal splits GST+PST province taxes. Unknown types are classified
// by rate, with roughly 5% meaning federal. Without any rate the tax is
// federal.
func isFederal(tax *orae.Tax) bool {
	switch taxKind(tax) {
	case "GST", "FEDERAL", "VAT", "NATIONAL":
		return true
	case "PST", "QST", "PROVINCIAL", "STATE", "QUEBEC":
		return false
	}
	if pct, ok := parseDecimal(tax.RatePercent); ok {
		return pct.GreaterThanOrEqual(decimal.NewFromInt(4)) && pct.LessThanOrEqual(decimal.NewFromInt(6))
	}
	if tax.TaxRate != nil {
		return tax.TaxRate.GreaterThanOrEqual(fourPercent) && tax.TaxRate.LessThanOrEqual(sixPercent)
	}
	return true
}

func near(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(tol)
}

// =============================================================================
// ITEM TAX FLAGS
// =============================================================================

// applyItemTaxFlags sets SLFTX1-4 on rec and returns the rate code of the
// first tax that has a jurisdiction, for use on tax lines. Tax authority and
// rate codes on item records are always blank.
func (tc *txContext) applyItemTaxFlags(item *orae.TransactionItem, rec *rims.OrderRecord) string {
	rec.ChargedTax1, rec.ChargedTax2, rec.ChargedTax3, rec.ChargedTax4 = "N", "N", "N", "N"
	ontario := tc.province == "ON"

	if len(item.Taxes) > 0 {
		for i := range item.Taxes {
			tax := &item.Taxes[i]
			if tax.TaxExempt != nil && *tax.TaxExempt {
				continue
			}
			amt, _ := tc.taxAmount(tax)
			if !amt.IsPositive() {
				continue
			}

			if ontario {
				if isFullHST(tax, true) {
					rec.ChargedTax3, rec.ChargedTax4 = "Y", "N"
				} else {
					rec.ChargedTax3, rec.ChargedTax4 = "N", "Y"
				}
				continue
			}

			switch taxKind(tax) {
			case "PST", "PROVINCIAL", "STATE", "QST", "QUEBEC":
				rec.ChargedTax1 = "Y"
			case "HST", "HARMONIZED":
				rec.ChargedTax1, rec.ChargedTax2 = "Y", "Y"
			case "MUNICIPAL", "LOCAL", "CITY":
				rec.ChargedTax4 = "Y"
			default:
				rec.ChargedTax2 = "Y"
			}
		}
	} else if total, ok := parseDecimal(tc.totals().Tax.ValueOrEmpty()); ok && total.IsPositive() {
		if ontario {
			rec.ChargedTax2, rec.ChargedTax3 = "N", "Y"
		} else {
			rec.ChargedTax2 = "Y"
		}
	}

	rec.TaxAuthCode = ""
	rec.TaxRateCode = ""

	for i := range item.Taxes {
		if item.Taxes[i].Jurisdiction != nil && item.Taxes[i].TaxCode != "" {
			return padOrTruncate(item.Taxes[i].TaxCode, 6)
		}
	}
	return ""
}

// =============================================================================
// TAX LINE TEMPLATE
// =============================================================================

// taxLine builds a synthesized tax record carrying total as both sell price
// and extended value. The magnitude is written unsigned and the sign goes to
// the sign fields.
func (tc *txContext) taxLine(lineType, authority, rateCode string, total decimal.Decimal) rims.OrderRecord {
	rec := rims.OrderRecord{
		TransType: tc.transCode,
		LineType:  lineType,
	}
	tc.stampOrder(&rec)

	rec.ChargedTax1, rec.ChargedTax2, rec.ChargedTax3, rec.ChargedTax4 = "N", "N", "N", "N"
	rec.TaxAuthCode = padOrTruncate(authority, 6)
	rec.TaxRateCode = padOrTruncate(rateCode, 6)

	sign := ""
	if total.IsNegative() {
		sign = "-"
	}
	rec.ExtendedValue, _ = EncodeAmount(total.Round(2), 11)
	rec.ItemSellPrice, _ = EncodeAmount(total.Round(2), 9)
	rec.ExtendedValueNegativeSign, rec.SellPriceNegativeSign = sign, sign

	rec.SKUNumber = zeros9
	rec.Quantity = "000000100"
	if tc.txType == "RETURN" {
		rec.QuantityNegativeSign = "-"
	}
	rec.OriginalPrice = zeros9
	rec.OverridePrice = zeros9
	rec.OriginalRetail = zeros9
	tc.stampOriginalTx(&rec)

	rec.ZipCode = "         0"
	rec.UPCCode = zeros13
	rec.AdCode = "0000"
	rec.AdPrice = zeros9
	rec.OriginalSalesperson = "00000"
	rec.OriginalStore = "00000"
	rec.GroupDiscAmount = zeros9
	rec.DiscountAmount = zeros9
	rec.GroupDiscReason = "00"
	rec.RegDiscReason = "00"
	return rec
}

// bucket accumulates tax amounts and remembers the first tax code seen.
type bucket struct {
	total decimal.Decimal
	code  string
}

func (b *bucket) add(amount decimal.Decimal, code string) {
	b.total = b.total.Add(amount)
	if b.code == "" && code != "" {
		b.code = code
	}
}

func (b *bucket) rateCode(fallback string) string {
	if b.code != "" {
		return b.code
	}
	return fallback
}

// =============================================================================
// STRATEGIES
// =============================================================================

// ontarioTaxLines emits up to two lines: HON (XH) for HST and HON1 (XI) for
// partial HST.
func ontarioTaxLines(tc *txContext, lastRateCode string) []rims.OrderRecord {
	var full, partial bucket
	for _, item := range tc.event.Items() {
		for i := range item.Taxes {
			tax := &item.Taxes[i]
			amt, ok := tc.taxAmount(tax)
			if !ok {
				continue
			}
			if isFullHST(tax, false) {
				full.add(amt, tax.TaxCode)
			} else {
				partial.add(amt, tax.TaxCode)
			}
		}
	}

	var lines []rims.OrderRecord
	if !full.total.IsZero() {
		lines = append(lines, tc.taxLine(TaxLineType("HON"), "HON", full.rateCode(lastRateCode), full.total))
	}
	if !partial.total.IsZero() {
		lines = append(lines, tc.taxLine(TaxLineType("HON1"), "HON1", partial.rateCode(lastRateCode), partial.total))
	}
	return lines
}

// gstPstTaxLines emits up to two lines: FED (XG) and the province's own
// authority. Quebec's authority code is PQ.
func gstPstTaxLines(tc *txContext, lastRateCode string) []rims.OrderRecord {
	var federal, provincial bucket
	for _, item := range tc.event.Items() {
		for i := range item.Taxes {
			tax := &item.Taxes[i]
			amt, ok := tc.taxAmount(tax)
			if !ok {
				continue
			}
			if isFederal(tax) {
				federal.add(amt, tax.TaxCode)
			} else {
				provincial.add(amt, tax.TaxCode)
			}
		}
	}

	authority := tc.province
	if authority == "QC" {
		authority = "PQ"
	}

	var lines []rims.OrderRecord
	if !federal.total.IsZero() {
		lines = append(lines, tc.taxLine(TaxLineType("FED"), "FED", federal.rateCode(lastRateCode), federal.total))
	}
	if !provincial.total.IsZero() {
		lines = append(lines, tc.taxLine(TaxLineType(authority), authority, provincial.rateCode(lastRateCode), provincial.total))
	}
	return lines
}

// perItemTaxLines emits one line per item with non-zero tax. The authority
// code is the item's first jurisdiction region; the line type comes from
// taxAuthority.
func perItemTaxLines(tc *txContext, lastRateCode string) []rims.OrderRecord {
	var lines []rims.OrderRecord
	for _, item := range tc.event.Items() {
		total := decimal.Zero
		for i := range item.Taxes {
			if amt, ok := tc.taxAmount(&item.Taxes[i]); ok {
				total = total.Add(amt)
			}
		}
		if total.IsZero() {
			continue
		}

		region := ""
		for _, tax := range item.Taxes {
			if tax.Jurisdiction != nil && tax.Jurisdiction.Region != "" {
				region = tax.Jurisdiction.Region
				break
			}
		}

		lineType := TaxLineType(tc.taxAuthority(total))
		lines = append(lines, tc.taxLine(lineType, region, lastRateCode, total))
	}
	return lines
}

// taxAuthority picks an authority code for a per-item tax line.
//
// RULES (first match wins):
//  1. Any tax in the transaction with a rate of exactly 13% (HON) or 5%
//     (HON1), within 0.1%, or an explicit taxAuthority
//  2. The effective rate of totalTax over net minus totalTax, or when net
//     is unusable over gross minus discounts: ~13% is HON, ~5% is HON1,
//     within 1%
//  3. HON
func (tc *txContext) taxAuthority(totalTax decimal.Decimal) string {
	for _, item := range tc.event.Items() {
		for _, tax := range item.Taxes {
			if tax.TaxRate != nil {
				if near(*tax.TaxRate, hstRate, exactTol) {
					return "HON"
				}
				if near(*tax.TaxRate, gstRate, exactTol) {
					return "HON1"
				}
			}
			if tax.TaxAuthority != "" {
				return padOrTruncate(tax.TaxAuthority, 6)
			}
		}
	}

	totals := tc.totals()
	var subtotal decimal.Decimal
	var haveSubtotal bool
	if net, ok := parseDecimal(totals.Net.ValueOrEmpty()); ok {
		subtotal, haveSubtotal = net.Sub(totalTax), true
	} else if gross, ok := parseDecimal(totals.Gross.ValueOrEmpty()); ok {
		discounts, _ := parseDecimal(totals.Discounts.ValueOrEmpty())
		subtotal, haveSubtotal = gross.Sub(discounts), true
	}

	if haveSubtotal && subtotal.IsPositive() {
		effective := totalTax.Div(subtotal)
		switch {
		case near(effective, hstRate, effTol):
			return "HON"
		case near(effective, gstRate, effTol):
			return "HON1"
		}
	}

	return "HON"
}
