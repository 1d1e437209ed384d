// =============================================================================
// ORAE Bridge - RIMS Record Model
// =============================================================================
//
// The legacy RIMS layouts this bridge produces:
//
//   RIMSLF  - order lines (merchandise and synthesized tax lines)
//   RIMTNF  - tender lines (payments, change due, cash rounding)
//
// JSON keys are the legacy field codes. Monetary and quantity fields are an
// unsigned zero-padded magnitude plus a separate sign field ("-" or "").
//
// =============================================================================

package rims

// =============================================================================
// RECORD SET
// =============================================================================

// RecordSet is the complete output for one retail event: order records
// followed by tender records, sharing one sequence counter.
type RecordSet struct {
	OrderRecords  []OrderRecord  `json:"RIMSLF,omitempty"`
	TenderRecords []TenderRecord `json:"RIMTNF,omitempty"`
}

// Empty reports whether the set holds no records at all.
func (rs *RecordSet) Empty() bool {
	return rs == nil || (len(rs.OrderRecords) == 0 && len(rs.TenderRecords) == 0)
}

// =============================================================================
// ORDER RECORD (RIMSLF)
// =============================================================================

// OrderRecord is one RIMSLF line. Fields tagged omitempty belong to groups
// the bridge leaves unset (original-transaction fields on sale lines, and the
// ASF extension fields it has no source for).
type OrderRecord struct {
	TransType                  string `json:"SLFTTP"`
	LineType                   string `json:"SLFLNT"`
	TransDate                  string `json:"SLFTDT"`
	TransTime                  string `json:"SLFTTM"`
	Clerk                      string `json:"SLFCLK"`
	RegisterID                 string `json:"SLFREG"`
	TransNumber                string `json:"SLFTTX"`
	TransSeq                   string `json:"SLFTSQ"`
	SKUNumber                  string `json:"SLFSKU"`
	Quantity                   string `json:"SLFQTY"`
	QuantityNegativeSign       string `json:"SLFQTN"`
	OriginalPrice              string `json:"SLFORG"`
	OriginalPriceNegativeSign  string `json:"SLFORN"`
	AdCode                     string `json:"SLFADC"`
	AdPrice                    string `json:"SLFADP"`
	AdPriceNegativeSign        string `json:"SLFADN"`
	OverridePrice              string `json:"SLFOVR"`
	OverridePriceNegativeSign  string `json:"SLFOVN"`
	DiscountType               string `json:"SLFDST"`
	DiscountAmount             string `json:"SLFDSA"`
	DiscountAmountNegativeSign string `json:"SLFDSN"`
	ItemSellPrice              string `json:"SLFSEL"`
	SellPriceNegativeSign      string `json:"SLFSLN"`
	ExtendedValue              string `json:"SLFEXT"`
	ExtendedValueNegativeSign  string `json:"SLFEXN"`
	ChargedTax1                string `json:"SLFTX1"`
	ChargedTax2                string `json:"SLFTX2"`
	ChargedTax3                string `json:"SLFTX3"`
	ChargedTax4                string `json:"SLFTX4"`
	ReferenceCode              string `json:"SLFRFC"`
	ReferenceDesc              string `json:"SLFRFD"`
	UPCCode                    string `json:"SLFUPC"`
	SalesPerson                string `json:"SLFSPS"`
	Status                     string `json:"SLFSTS"`
	ZipCode                    string `json:"SLFZIP"`
	CustomerName               string `json:"SLFCNM"`
	CustomerNumber             string `json:"SLFNUM"`
	ReasonCode                 string `json:"SLFRSN"`
	OriginalSalesperson        string `json:"SLFOSP"`
	OriginalStore              string `json:"SLFOST"`
	GroupDiscAmount            string `json:"SLFGDA"`
	GroupDiscSign              string `json:"SLFGDS"`
	GroupDiscReason            string `json:"SLFGDR"`
	RegDiscReason              string `json:"SLFRDR"`
	ItemScanned                string `json:"SLFSCN"`
	TaxAuthCode                string `json:"SLFACD"`
	TaxRateCode                string `json:"SLFTCD"`
	TaxExemptID1               string `json:"SLFTE1"`
	TaxExemptID2               string `json:"SLFTE2"`
	TaxExemptionName           string `json:"SLFTEN"`
	PriceVehicleCode           string `json:"SLFPVC"`
	PriceVehicleReference      string `json:"SLFREF"`
	OriginalRetail             string `json:"SLFORT"`
	OriginalRetailNegativeSign string `json:"SLFOPN"`
	OriginalTxStore            string `json:"SLFOTS,omitempty"`
	OriginalTxDate             string `json:"SLFOTD,omitempty"`
	OriginalTxRegister         string `json:"SLFOTR,omitempty"`
	OriginalTxNumber           string `json:"SLFOTT,omitempty"`
	PolledStore                *int   `json:"SLFPLC"`
	PollCen                    int    `json:"SLFPCN"`
	PollDate                   int    `json:"SLFPDT"`
	CreateCen                  int    `json:"SLFCCN"`
	CreateDate                 int    `json:"SLFCDT"`
	CreateTime                 int    `json:"SLFCTM"`
	OrderNumber                string `json:"SLFORD"`
	SmartLocation              *int   `json:"SLFSIL,omitempty"`
	ProjectNumber              string `json:"ASFPRO"`
	OriginalCost               string `json:"ASFCST,omitempty"`
	SalesStore                 int    `json:"ASFSST"`
	InvStore                   int    `json:"ASFIST"`
	SalesType                  string `json:"ASFSTY,omitempty"`
	InsideSalesPerson          string `json:"ASFISP,omitempty"`
	OutsideSalesPerson         string `json:"ASFOSP,omitempty"`
	OriginalTransNumber        string `json:"ASFOTX,omitempty"`
	CustomerType               string `json:"ASFMBT,omitempty"`
	EReceiptEmail              string `json:"SLFEML"`
	EmployeeCardNumber         int64  `json:"SLFECN"`

	// Source line linkage used while ordering coverage lines. Not part of
	// the legacy layout.
	SourceLineID       string `json:"-"`
	SourceParentLineID string `json:"-"`
}

// =============================================================================
// TENDER RECORD (RIMTNF)
// =============================================================================

// TenderRecord is one RIMTNF line.
type TenderRecord struct {
	TransactionType     string `json:"TNFTTP"`
	TransactionDate     string `json:"TNFTDT"`
	TransactionTime     string `json:"TNFTTM"`
	Clerk               string `json:"TNFCLK"`
	RegisterID          string `json:"TNFREG"`
	TransactionNumber   string `json:"TNFTTX"`
	TransactionSeq      string `json:"TNFTSQ"`
	FundCode            string `json:"TNFFCD"`
	Amount              string `json:"TNFAMT"`
	AmountNegativeSign  string `json:"TNFAMN"`
	CreditCardNumber    string `json:"TNFCCD"`
	CardExpirationDate  string `json:"TNFEXP"`
	AuthNumber          string `json:"TNFAUT"`
	ReferenceCode       string `json:"TNFRFC"`
	ReferenceDesc       string `json:"TNFRDS"`
	CustomerMember      string `json:"TNFMBR"`
	Status              string `json:"TNFSTS"`
	EmployeeSaleID      string `json:"TNFESI"`
	PostalCode          string `json:"TNFZIP"`
	MagStripeFlag       string `json:"TNFMSR"`
	EReceiptEmail       string `json:"TNFEML"`
	PaymentHashValue    string `json:"TNFHSH"`
	PolledStore         *int   `json:"TNFPLC"`
	PollCen             int    `json:"TNFPCN"`
	PollDate            int    `json:"TNFPDT"`
	CreateCen           int    `json:"TNFCCN"`
	CreateDate          int    `json:"TNFCDT"`
	CreateTime          int    `json:"TNFCTM"`
	SalesStore          int    `json:"ATFSST"`
	InvStore            int    `json:"ATFIST"`
	OriginalTransNumber string `json:"ATFOTX"`
	CustomerType        string `json:"ATFMBT"`
	OrderNumber         string `json:"ATFORD"`
	ProjectNumber       string `json:"ATFPRO"`
}
