// =============================================================================
// ORAE Bridge - RIMS Field Layout
// =============================================================================
//
// The declared layout of both record families: every field in wire order,
// with its legacy code, Go field name and exact fixed width. Numeric fields
// carry Length 0 and are not length-checked.
//
// The layout drives the output validator's length pass and the column order
// of XLSX reports. A site can replace it with an XLSX template (see
// internal/xlsxparser).
//
// =============================================================================

package rims

import "strconv"

// Family names, used as sheet names and layout keys.
const (
	FamilyOrder  = "RIMSLF"
	FamilyTender = "RIMTNF"
)

// Field describes one column of a record family.
type Field struct {
	Code   string
	Name   string
	Length int
}

// Numeric reports whether the field holds an integer rather than a fixed-width string.
func (f Field) Numeric() bool {
	return f.Length == 0
}

// Layout is the full field table for both families.
type Layout struct {
	Order  []Field
	Tender []Field
}

// DefaultLayout returns the built-in layout. The returned value is a fresh
// copy the caller may modify.
func DefaultLayout() *Layout {
	l := &Layout{
		Order:  make([]Field, len(orderFields)),
		Tender: make([]Field, len(tenderFields)),
	}
	copy(l.Order, orderFields)
	copy(l.Tender, tenderFields)
	return l
}

// Lengths returns {code -> exact length} for the string fields of a family.
func (l *Layout) Lengths(family string) map[string]int {
	fields := l.Order
	if family == FamilyTender {
		fields = l.Tender
	}
	out := make(map[string]int, len(fields))
	for _, f := range fields {
		if !f.Numeric() {
			out[f.Code] = f.Length
		}
	}
	return out
}

// =============================================================================
// FIELD TABLES
// =============================================================================

var orderFields = []Field{
	{"SLFTTP", "TransType", 2},
	{"SLFLNT", "LineType", 2},
	{"SLFTDT", "TransDate", 6},
	{"SLFTTM", "TransTime", 6},
	{"SLFCLK", "Clerk", 5},
	{"SLFREG", "RegisterID", 3},
	{"SLFTTX", "TransNumber", 5},
	{"SLFTSQ", "TransSeq", 5},
	{"SLFSKU", "SKUNumber", 9},
	{"SLFQTY", "Quantity", 9},
	{"SLFQTN", "QuantityNegativeSign", 1},
	{"SLFORG", "OriginalPrice", 9},
	{"SLFORN", "OriginalPriceNegativeSign", 1},
	{"SLFADC", "AdCode", 4},
	{"SLFADP", "AdPrice", 9},
	{"SLFADN", "AdPriceNegativeSign", 1},
	{"SLFOVR", "OverridePrice", 9},
	{"SLFOVN", "OverridePriceNegativeSign", 1},
	{"SLFDST", "DiscountType", 2},
	{"SLFDSA", "DiscountAmount", 9},
	{"SLFDSN", "DiscountAmountNegativeSign", 1},
	{"SLFSEL", "ItemSellPrice", 9},
	{"SLFSLN", "SellPriceNegativeSign", 1},
	{"SLFEXT", "ExtendedValue", 11},
	{"SLFEXN", "ExtendedValueNegativeSign", 1},
	{"SLFTX1", "ChargedTax1", 1},
	{"SLFTX2", "ChargedTax2", 1},
	{"SLFTX3", "ChargedTax3", 1},
	{"SLFTX4", "ChargedTax4", 1},
	{"SLFRFC", "ReferenceCode", 1},
	{"SLFRFD", "ReferenceDesc", 16},
	{"SLFUPC", "UPCCode", 13},
	{"SLFSPS", "SalesPerson", 5},
	{"SLFSTS", "Status", 1},
	{"SLFZIP", "ZipCode", 10},
	{"SLFCNM", "CustomerName", 35},
	{"SLFNUM", "CustomerNumber", 10},
	{"SLFRSN", "ReasonCode", 16},
	{"SLFOSP", "OriginalSalesperson", 5},
	{"SLFOST", "OriginalStore", 5},
	{"SLFGDA", "GroupDiscAmount", 9},
	{"SLFGDS", "GroupDiscSign", 1},
	{"SLFGDR", "GroupDiscReason", 2},
	{"SLFRDR", "RegDiscReason", 2},
	{"SLFSCN", "ItemScanned", 1},
	{"SLFACD", "TaxAuthCode", 6},
	{"SLFTCD", "TaxRateCode", 6},
	{"SLFTE1", "TaxExemptID1", 20},
	{"SLFTE2", "TaxExemptID2", 20},
	{"SLFTEN", "TaxExemptionName", 35},
	{"SLFPVC", "PriceVehicleCode", 4},
	{"SLFREF", "PriceVehicleReference", 12},
	{"SLFORT", "OriginalRetail", 9},
	{"SLFOPN", "OriginalRetailNegativeSign", 1},
	{"SLFOTS", "OriginalTxStore", 5},
	{"SLFOTD", "OriginalTxDate", 6},
	{"SLFOTR", "OriginalTxRegister", 3},
	{"SLFOTT", "OriginalTxNumber", 5},
	{"SLFPLC", "PolledStore", 0},
	{"SLFPCN", "PollCen", 0},
	{"SLFPDT", "PollDate", 0},
	{"SLFCCN", "CreateCen", 0},
	{"SLFCDT", "CreateDate", 0},
	{"SLFCTM", "CreateTime", 0},
	{"SLFORD", "OrderNumber", 8},
	{"SLFSIL", "SmartLocation", 0},
	{"ASFPRO", "ProjectNumber", 5},
	{"ASFCST", "OriginalCost", 9},
	{"ASFSST", "SalesStore", 0},
	{"ASFIST", "InvStore", 0},
	{"ASFSTY", "SalesType", 1},
	{"ASFISP", "InsideSalesPerson", 5},
	{"ASFOSP", "OutsideSalesPerson", 5},
	{"ASFOTX", "OriginalTransNumber", 5},
	{"ASFMBT", "CustomerType", 1},
	{"SLFEML", "EReceiptEmail", 60},
	{"SLFECN", "EmployeeCardNumber", 0},
}

var tenderFields = []Field{
	{"TNFTTP", "TransactionType", 2},
	{"TNFTDT", "TransactionDate", 6},
	{"TNFTTM", "TransactionTime", 6},
	{"TNFCLK", "Clerk", 5},
	{"TNFREG", "RegisterID", 3},
	{"TNFTTX", "TransactionNumber", 5},
	{"TNFTSQ", "TransactionSeq", 5},
	{"TNFFCD", "FundCode", 2},
	{"TNFAMT", "Amount", 11},
	{"TNFAMN", "AmountNegativeSign", 1},
	{"TNFCCD", "CreditCardNumber", 19},
	{"TNFEXP", "CardExpirationDate", 4},
	{"TNFAUT", "AuthNumber", 6},
	{"TNFRFC", "ReferenceCode", 1},
	{"TNFRDS", "ReferenceDesc", 16},
	{"TNFMBR", "CustomerMember", 8},
	{"TNFSTS", "Status", 1},
	{"TNFESI", "EmployeeSaleID", 5},
	{"TNFZIP", "PostalCode", 10},
	{"TNFMSR", "MagStripeFlag", 1},
	{"TNFEML", "EReceiptEmail", 60},
	{"TNFHSH", "PaymentHashValue", 64},
	{"TNFPLC", "PolledStore", 0},
	{"TNFPCN", "PollCen", 0},
	{"TNFPDT", "PollDate", 0},
	{"TNFCCN", "CreateCen", 0},
	{"TNFCDT", "CreateDate", 0},
	{"TNFCTM", "CreateTime", 0},
	{"ATFSST", "SalesStore", 0},
	{"ATFIST", "InvStore", 0},
	{"ATFOTX", "OriginalTransNumber", 5},
	{"ATFMBT", "CustomerType", 1},
	{"ATFORD", "OrderNumber", 8},
	{"ATFPRO", "ProjectNumber", 5},
}

// =============================================================================
// FIELD VALUES
// =============================================================================

// Values returns every field of the record keyed by legacy code, with
// integers rendered in decimal and nil integers as "".
func (r *OrderRecord) Values() map[string]string {
	return map[string]string{
		"SLFTTP": r.TransType,
		"SLFLNT": r.LineType,
		"SLFTDT": r.TransDate,
		"SLFTTM": r.TransTime,
		"SLFCLK": r.Clerk,
		"SLFREG": r.RegisterID,
		"SLFTTX": r.TransNumber,
		"SLFTSQ": r.TransSeq,
		"SLFSKU": r.SKUNumber,
		"SLFQTY": r.Quantity,
		"SLFQTN": r.QuantityNegativeSign,
		"SLFORG": r.OriginalPrice,
		"SLFORN": r.OriginalPriceNegativeSign,
		"SLFADC": r.AdCode,
		"SLFADP": r.AdPrice,
		"SLFADN": r.AdPriceNegativeSign,
		"SLFOVR": r.OverridePrice,
		"SLFOVN": r.OverridePriceNegativeSign,
		"SLFDST": r.DiscountType,
		"SLFDSA": r.DiscountAmount,
		"SLFDSN": r.DiscountAmountNegativeSign,
		"SLFSEL": r.ItemSellPrice,
		"SLFSLN": r.SellPriceNegativeSign,
		"SLFEXT": r.ExtendedValue,
		"SLFEXN": r.ExtendedValueNegativeSign,
		"SLFTX1": r.ChargedTax1,
		"SLFTX2": r.ChargedTax2,
		"SLFTX3": r.ChargedTax3,
		"SLFTX4": r.ChargedTax4,
		"SLFRFC": r.ReferenceCode,
		"SLFRFD": r.ReferenceDesc,
		"SLFUPC": r.UPCCode,
		"SLFSPS": r.SalesPerson,
		"SLFSTS": r.Status,
		"SLFZIP": r.ZipCode,
		"SLFCNM": r.CustomerName,
		"SLFNUM": r.CustomerNumber,
		"SLFRSN": r.ReasonCode,
		"SLFOSP": r.OriginalSalesperson,
		"SLFOST": r.OriginalStore,
		"SLFGDA": r.GroupDiscAmount,
		"SLFGDS": r.GroupDiscSign,
		"SLFGDR": r.GroupDiscReason,
		"SLFRDR": r.RegDiscReason,
		"SLFSCN": r.ItemScanned,
		"SLFACD": r.TaxAuthCode,
		"SLFTCD": r.TaxRateCode,
		"SLFTE1": r.TaxExemptID1,
		"SLFTE2": r.TaxExemptID2,
		"SLFTEN": r.TaxExemptionName,
		"SLFPVC": r.PriceVehicleCode,
		"SLFREF": r.PriceVehicleReference,
		"SLFORT": r.OriginalRetail,
		"SLFOPN": r.OriginalRetailNegativeSign,
		"SLFOTS": r.OriginalTxStore,
		"SLFOTD": r.OriginalTxDate,
		"SLFOTR": r.OriginalTxRegister,
		"SLFOTT": r.OriginalTxNumber,
		"SLFPLC": optInt(r.PolledStore),
		"SLFPCN": strconv.Itoa(r.PollCen),
		"SLFPDT": strconv.Itoa(r.PollDate),
		"SLFCCN": strconv.Itoa(r.CreateCen),
		"SLFCDT": strconv.Itoa(r.CreateDate),
		"SLFCTM": strconv.Itoa(r.CreateTime),
		"SLFORD": r.OrderNumber,
		"SLFSIL": optInt(r.SmartLocation),
		"ASFPRO": r.ProjectNumber,
		"ASFCST": r.OriginalCost,
		"ASFSST": strconv.Itoa(r.SalesStore),
		"ASFIST": strconv.Itoa(r.InvStore),
		"ASFSTY": r.SalesType,
		"ASFISP": r.InsideSalesPerson,
		"ASFOSP": r.OutsideSalesPerson,
		"ASFOTX": r.OriginalTransNumber,
		"ASFMBT": r.CustomerType,
		"SLFEML": r.EReceiptEmail,
		"SLFECN": strconv.FormatInt(r.EmployeeCardNumber, 10),
	}
}

// Values returns every field of the record keyed by legacy code, with
// integers rendered in decimal and nil integers as "".
func (r *TenderRecord) Values() map[string]string {
	return map[string]string{
		"TNFTTP": r.TransactionType,
		"TNFTDT": r.TransactionDate,
		"TNFTTM": r.TransactionTime,
		"TNFCLK": r.Clerk,
		"TNFREG": r.RegisterID,
		"TNFTTX": r.TransactionNumber,
		"TNFTSQ": r.TransactionSeq,
		"TNFFCD": r.FundCode,
		"TNFAMT": r.Amount,
		"TNFAMN": r.AmountNegativeSign,
		"TNFCCD": r.CreditCardNumber,
		"TNFEXP": r.CardExpirationDate,
		"TNFAUT": r.AuthNumber,
		"TNFRFC": r.ReferenceCode,
		"TNFRDS": r.ReferenceDesc,
		"TNFMBR": r.CustomerMember,
		"TNFSTS": r.Status,
		"TNFESI": r.EmployeeSaleID,
		"TNFZIP": r.PostalCode,
		"TNFMSR": r.MagStripeFlag,
		"TNFEML": r.EReceiptEmail,
		"TNFHSH": r.PaymentHashValue,
		"TNFPLC": optInt(r.PolledStore),
		"TNFPCN": strconv.Itoa(r.PollCen),
		"TNFPDT": strconv.Itoa(r.PollDate),
		"TNFCCN": strconv.Itoa(r.CreateCen),
		"TNFCDT": strconv.Itoa(r.CreateDate),
		"TNFCTM": strconv.Itoa(r.CreateTime),
		"ATFSST": strconv.Itoa(r.SalesStore),
		"ATFIST": strconv.Itoa(r.InvStore),
		"ATFOTX": r.OriginalTransNumber,
		"ATFMBT": r.CustomerType,
		"ATFORD": r.OrderNumber,
		"ATFPRO": r.ProjectNumber,
	}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
