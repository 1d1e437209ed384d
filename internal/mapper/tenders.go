package mapper

import (
	"strings"

	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

// Fund codes for synthesized tender lines.
const (
	FundCash         = "CA"
	FundCashRounding = "PR"
)

// baseTender fills the fields every tender record of the transaction shares.
func (tc *txContext) baseTender() rims.TenderRecord {
	rec := rims.TenderRecord{
		TransactionDate:    tc.transDate,
		TransactionTime:    tc.transTime,
		TransactionType:    tc.transCode,
		TransactionNumber:  tc.transNumber,
		TransactionSeq:     "00000",
		RegisterID:         padNumeric(tc.registerID, 3),
		PolledStore:        tc.polledStore,
		PollCen:            1,
		PollDate:           tc.pollDate,
		CreateCen:          1,
		CreateDate:         tc.pollDate,
		CreateTime:         tc.createTime,
		Status:             " ",
		MagStripeFlag:      " ",
		CardExpirationDate: "0000",
		Clerk:              padNumeric(tc.registerID, 5),
		CustomerType:       " ",
	}
	if tc.transCode == "04" {
		rec.EmployeeSaleID = "#####"
	}
	return rec
}

// tenderRecords maps the transaction's tenders.
//
// The first CASH tender may add two lines: change due (CA, always negative)
// and cash rounding (PR, sign inverted). A transaction without tenders gets
// one cash line for its net total.
func (m *Mapper) tenderRecords(tc *txContext) []rims.TenderRecord {
	tenders := tc.event.Tenders()
	totals := tc.totals()

	if len(tenders) == 0 {
		if totals.Net == nil || totals.Net.Value == "" {
			return nil
		}
		rec := tc.baseTender()
		rec.FundCode = FundCash
		rec.Amount, rec.AmountNegativeSign = m.formatCurrency(totals.Net.Value, 11)
		return []rims.TenderRecord{rec}
	}

	records := make([]rims.TenderRecord, 0, len(tenders))
	cashDone := false
	for _, tender := range tenders {
		rec := tc.baseTender()
		rec.FundCode = tender.TenderID
		if tender.Amount != nil {
			rec.Amount, rec.AmountNegativeSign = m.formatCurrency(tender.Amount.Value, 11)
		}

		isCash := strings.ToUpper(tender.Method) == "CASH"
		if card := tender.Card; card != nil && !isCash {
			rec.CreditCardNumber = padLeft(card.Last4, 19, '*')
			rec.AuthNumber = padOrTruncate(card.AuthCode, 6)
			magStrip := " "
			if card.EMV != nil && card.EMV.Tags != nil && card.EMV.Tags.MagStrip != "" {
				magStrip = card.EMV.Tags.MagStrip
			}
			rec.MagStripeFlag = padOrTruncate(magStrip, 1)
		}
		records = append(records, rec)

		if !isCash || cashDone {
			continue
		}
		cashDone = true

		if v := totals.ChangeDue.ValueOrEmpty(); !m.isZeroOrEmpty(v) {
			change := tc.baseTender()
			change.FundCode = FundCash
			change.Amount, _ = m.formatCurrency(v, 11)
			change.AmountNegativeSign = "-"
			records = append(records, change)
		}

		if v := totals.CashRounding.ValueOrEmpty(); !m.isZeroOrEmpty(v) {
			rounding := tc.baseTender()
			rounding.FundCode = FundCashRounding
			var sign string
			rounding.Amount, sign = m.formatCurrency(v, 11)
			rounding.AmountNegativeSign = "-"
			if sign == "-" {
				rounding.AmountNegativeSign = ""
			}
			records = append(records, rounding)
		}
	}
	return records
}
