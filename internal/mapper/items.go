package mapper

import (
	"strings"

	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
	"github.com/shopspring/decimal"
)

// CoverageAttribute marks an item as coverage (EPP). The value "9" means
// the line is the coverage itself.
const CoverageAttribute = "x-epp-coverage-identifier"

const (
	zeros9  = "000000000"
	zeros13 = "0000000000000"
	blank16 = "                "
)

func isCoverageLine(item *orae.TransactionItem) bool {
	v, ok := item.Attribute(CoverageAttribute)
	return ok && v == "9"
}

// itemRecord builds the order record for one line item. It also returns
// the rate code later tax lines fall back to.
func (m *Mapper) itemRecord(tc *txContext, item *orae.TransactionItem) (rims.OrderRecord, string) {
	rec := rims.OrderRecord{
		TransType:          tc.transCode,
		LineType:           tc.lineCode,
		SourceLineID:       item.LineID,
		SourceParentLineID: item.ParentLineID,
	}
	if isCoverageLine(item) {
		rec.TransType, rec.LineType = CoverageCode, CoverageCode
	}
	tc.stampOrder(&rec)

	var sku, gtin string
	if item.Item != nil {
		sku, gtin = item.Item.SKU, item.Item.GTIN
	}
	pricing := item.Pricing
	if pricing == nil {
		pricing = &orae.Pricing{}
	}

	rec.SKUNumber = padNumeric(sku, 9)

	// ---------------------------------------------------------------------
	// Quantity
	// ---------------------------------------------------------------------
	if item.Quantity != nil {
		cents := item.Quantity.Value.Abs().Mul(hundred).Round(0).IntPart()
		rec.Quantity = padLeft(decimal.NewFromInt(cents).String(), 9, '0')
		if tc.txType == "RETURN" {
			rec.QuantityNegativeSign = "-"
		}
	}

	// ---------------------------------------------------------------------
	// Prices
	// ---------------------------------------------------------------------
	if orig := pricing.OriginalUnitPrice.ValueOrEmpty(); orig != "" {
		rec.OriginalPrice, rec.OriginalPriceNegativeSign = m.formatCurrency(orig, 9)
		rec.OriginalRetail, rec.OriginalRetailNegativeSign = rec.OriginalPrice, rec.OriginalPriceNegativeSign
	}

	override, overrideValue := effectiveOverride(pricing)
	hasOverride := !override.IsZero()

	sellSource := pricing.UnitPrice.ValueOrEmpty()
	if hasOverride {
		sellSource = overrideValue
	}
	rec.ItemSellPrice, rec.SellPriceNegativeSign = m.formatCurrency(sellSource, 9)

	extended := decimal.Zero
	if item.Quantity != nil {
		if hasOverride {
			extended = item.Quantity.Value.Mul(override)
		} else if unit, ok := parseDecimal(pricing.UnitPrice.ValueOrEmpty()); ok {
			extended = item.Quantity.Value.Mul(unit)
		}
	}
	rec.ExtendedValue, rec.ExtendedValueNegativeSign = EncodeAmount(extended.Round(2), 11)
	rec.OverridePrice, rec.OverridePriceNegativeSign = EncodeAmount(override.Round(2), 9)

	rec.DiscountAmount = zeros9
	rec.DiscountType = ""
	rec.DiscountAmountNegativeSign = ""

	rec.ItemScanned = "N"
	if g, ok := parseDecimal(gtin); ok && g.IsPositive() {
		rec.ItemScanned = "Y"
	}

	// ---------------------------------------------------------------------
	// Price vehicle and ad pricing
	// ---------------------------------------------------------------------
	rec.PriceVehicleCode, rec.PriceVehicleReference = splitPriceVehicle(pricing.PriceVehicle, tc.flags.EmployeeDiscount)
	pvCode := strings.TrimSpace(rec.PriceVehicleCode)

	rec.AdCode = "0000"
	orig, okOrig := parseDecimal(pricing.OriginalUnitPrice.ValueOrEmpty())
	unit, okUnit := parseDecimal(pricing.UnitPrice.ValueOrEmpty())
	if okOrig && okUnit && !orig.Equal(unit) {
		rec.AdCode = "####"
	}

	rec.AdPrice, rec.AdPriceNegativeSign = zeros9, ""
	if pvCode != "REG" && pvCode != "MAN" && pricing.UnitPrice != nil {
		rec.AdPrice, rec.AdPriceNegativeSign = m.formatCurrency(pricing.UnitPrice.Value, 9)
	}

	// ---------------------------------------------------------------------
	// Tax flags
	// ---------------------------------------------------------------------
	rateCode := tc.applyItemTaxFlags(item, &rec)

	rec.ReferenceCode = ""
	rec.ReferenceDesc = ""
	tc.stampOriginalTx(&rec)

	// ---------------------------------------------------------------------
	// Customer, clerk and fixed fields
	// ---------------------------------------------------------------------
	rec.CustomerName = ""
	if token := customerToken(tc.event); token != "" {
		rec.CustomerNumber = padLeft(token, 10, '0')
	}

	coverageDigit := "0"
	if _, ok := item.Attribute(CoverageAttribute); ok {
		coverageDigit = "9"
	}
	rec.ZipCode = "         " + coverageDigit

	rec.EmployeeCardNumber = 0
	rec.UPCCode = zeros13
	if gtin != "" {
		rec.UPCCode = padLeft(lastRunes(gtin, 13), 13, '0')
	}
	rec.EReceiptEmail = ""
	rec.ReasonCode = padRight(reasonCode(tc.txType, pricing, pvCode), 16, ' ')

	rec.TaxExemptID1 = ""
	rec.TaxExemptID2 = ""
	rec.TaxExemptionName = ""

	rec.OriginalSalesperson = "00000"
	rec.OriginalStore = "00000"
	rec.GroupDiscAmount = zeros9
	rec.GroupDiscSign = ""
	rec.GroupDiscReason = "00"
	rec.RegDiscReason = "00"
	if pvCode == "MAN" {
		rec.RegDiscReason = "I2"
	}

	rec.OrderNumber = ""
	rec.ProjectNumber = ""
	rec.SalesStore = 0
	rec.InvStore = 0

	return rec, rateCode
}

// effectiveOverride returns the first parseable non-zero override price,
// checking priceOverride.overrideUnitPrice before pricing.override. The
// zero value means no override.
func effectiveOverride(p *orae.Pricing) (decimal.Decimal, string) {
	if p.PriceOverride != nil {
		v := p.PriceOverride.OverrideUnitPrice.ValueOrEmpty()
		if d, ok := parseDecimal(v); ok && !d.IsZero() {
			return d, v
		}
	}
	v := p.Override.ValueOrEmpty()
	if d, ok := parseDecimal(v); ok && !d.IsZero() {
		return d, v
	}
	return decimal.Zero, ""
}

// splitPriceVehicle splits "CODE:REFERENCE" into a 4 character code and a
// 12 character reference.
func splitPriceVehicle(vehicle string, employee bool) (string, string) {
	if vehicle == "" {
		if employee {
			return padOrTruncate("EMP", 4), ""
		}
		return "", ""
	}
	parts := strings.Split(vehicle, ":")
	if len(parts) == 2 {
		return padOrTruncate(parts[0], 4), padOrTruncate(parts[1], 12)
	}
	return padOrTruncate(vehicle, 4), ""
}

// reasonCode picks SLFRSN before padding.
func reasonCode(txType string, p *orae.Pricing, pvCode string) string {
	switch {
	case txType == "RETURN":
		return "RRT0"
	case txType == "VOID":
		return "VOD0"
	case p.PriceVehicle == "OVD:OVR":
		reason := ""
		if p.PriceOverride != nil {
			reason = p.PriceOverride.Reason
		}
		return "POV0" + reason
	case pvCode == "MAN":
		return "IDS0"
	}
	return blank16
}
