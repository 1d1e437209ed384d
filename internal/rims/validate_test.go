package rims

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validOrder() OrderRecord {
	return OrderRecord{
		TransType:       "01",
		LineType:        "01",
		TransDate:       "250314",
		TransTime:       "130509",
		Clerk:           "00012",
		RegisterID:      "012",
		TransNumber:     "04567",
		TransSeq:        "00001",
		SKUNumber:       "000123456",
		Quantity:        "000000100",
		ItemSellPrice:   "000001999",
		ExtendedValue:   "00000001999",
		ChargedTax1:     "N",
		Status:          " ",
		ZipCode:         "         0",
		ReasonCode:      "                ",
		UPCCode:         "0062000000123",
		PolledStore:     intPtr(1234),
		PollCen:         1,
		PollDate:        250314,
		CreateCen:       1,
		CreateDate:      250314,
		CreateTime:      130509,
		GroupDiscReason: "00",
	}
}

func validTender() TenderRecord {
	return TenderRecord{
		TransactionType:    "01",
		TransactionDate:    "250314",
		TransactionTime:    "130509",
		Clerk:              "00012",
		RegisterID:         "012",
		TransactionNumber:  "04567",
		TransactionSeq:     "00002",
		FundCode:           "CA",
		Amount:             "00000002259",
		CardExpirationDate: "0000",
		MagStripeFlag:      " ",
		CustomerType:       " ",
		PolledStore:        intPtr(1234),
		PollCen:            1,
		PollDate:           250314,
		CreateCen:          1,
		CreateDate:         250314,
		CreateTime:         130509,
	}
}

func TestValidateOutput_Valid(t *testing.T) {
	set := &RecordSet{
		OrderRecords:  []OrderRecord{validOrder()},
		TenderRecords: []TenderRecord{validTender()},
	}

	violations := ValidateOutput(set)
	assert.NotNil(t, violations)
	assert.Empty(t, violations)
}

func TestValidateOutput_NilAndEmpty(t *testing.T) {
	assert.Equal(t, []string{"RecordSet is null"}, ValidateOutput(nil))
	assert.Equal(t, []string{"RecordSet contains no OrderRecords or TenderRecords"}, ValidateOutput(&RecordSet{}))
}

func TestValidateOutput_OrderRequired(t *testing.T) {
	violations := ValidateOutput(&RecordSet{OrderRecords: []OrderRecord{{PollCen: 12, CreateCen: -1}}})

	assert.Equal(t, []string{
		"RIMSLF[0]: SLFTTP (TransType) is required",
		"RIMSLF[0]: SLFLNT (LineType) is required",
		"RIMSLF[0]: SLFTDT (TransDate) is required",
		"RIMSLF[0]: SLFTTM (TransTime) is required",
		"RIMSLF[0]: SLFTTX (TransNumber) is required",
		"RIMSLF[0]: SLFTSQ (TransSeq) is required",
		"RIMSLF[0]: SLFREG (RegisterID) is required",
		"RIMSLF[0]: SLFSKU (SKUNumber) is required",
		"RIMSLF[0]: SLFPST (PolledStore) is required",
		"RIMSLF[0]: SLFPCN (PollCen) must be 0-9",
		"RIMSLF[0]: SLFPDT (PollDate) is required",
		"RIMSLF[0]: SLFCCN (CreateCen) must be 0-9",
		"RIMSLF[0]: SLFCDT (CreateDate) is required",
		"RIMSLF[0]: SLFCTM (CreateTime) is required",
		"RIMSLF[0]: SLFQTY (Quantity) is required",
		"RIMSLF[0]: SLFSEL (ItemSellPrice) is required",
		"RIMSLF[0]: SLFEXT (ExtendedValue) is required",
	}, violations)
}

func TestValidateOutput_TenderRequired(t *testing.T) {
	tender := validTender()
	tender.FundCode = ""
	tender.Amount = ""
	tender.PolledStore = nil

	violations := ValidateOutput(&RecordSet{TenderRecords: []TenderRecord{tender}})

	assert.Equal(t, []string{
		"RIMTNF[0]: TNFFCD (FundCode) is required",
		"RIMTNF[0]: TNFAMT (Amount) is required",
		"RIMTNF[0]: TNFPST (PolledStore) is required",
	}, violations)
}

func TestValidateOutput_LengthMismatch(t *testing.T) {
	order := validOrder()
	order.SKUNumber = "12345"
	order.ExtendedValue = "000000001999"

	tender := validTender()
	tender.Amount = "000000002259"

	violations := ValidateOutput(&RecordSet{
		OrderRecords:  []OrderRecord{order},
		TenderRecords: []TenderRecord{tender},
	})

	assert.Equal(t, []string{
		"RIMSLF[0]: SLFSKU (SKUNumber) length is 5, but minimum is 9",
		"RIMSLF[0]: SLFEXT (ExtendedValue) length is 12, but maximum is 11",
		"RIMTNF[0]: TNFAMT (Amount) length is 12, but maximum is 11",
	}, violations)
}

func TestValidateOutput_BlankAcceptedAtAnyLength(t *testing.T) {
	order := validOrder()
	order.CustomerName = ""
	order.ReferenceDesc = "   "
	order.TaxExemptionName = "  "
	order.EReceiptEmail = " "

	assert.Empty(t, ValidateOutput(&RecordSet{OrderRecords: []OrderRecord{order}}))
}

func TestValidateOutputWithLayout_Override(t *testing.T) {
	layout := DefaultLayout()
	for i := range layout.Order {
		if layout.Order[i].Code == "SLFSKU" {
			layout.Order[i].Length = 6
		}
	}

	violations := ValidateOutputWithLayout(&RecordSet{OrderRecords: []OrderRecord{validOrder()}}, layout)
	assert.Equal(t, []string{"RIMSLF[0]: SLFSKU (SKUNumber) length is 9, but maximum is 6"}, violations)

	// The built-in layout is untouched.
	assert.Empty(t, ValidateOutput(&RecordSet{OrderRecords: []OrderRecord{validOrder()}}))
}

func TestLayout_CoversEveryJSONKey(t *testing.T) {
	tests := []struct {
		name   string
		record interface{}
		fields []Field
		values map[string]string
	}{
		{FamilyOrder, validOrder(), orderFields, func() map[string]string { r := validOrder(); return r.Values() }()},
		{FamilyTender, validTender(), tenderFields, func() map[string]string { r := validTender(); return r.Values() }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.record)
			require.NoError(t, err)

			var keys map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &keys))

			declared := make(map[string]bool, len(tt.fields))
			for _, f := range tt.fields {
				declared[f.Code] = true
				_, ok := tt.values[f.Code]
				assert.True(t, ok, "no value accessor for %s", f.Code)
			}
			for key := range keys {
				assert.True(t, declared[key], "json key %s missing from layout", key)
			}
			assert.Len(t, tt.values, len(tt.fields))
		})
	}
}

func TestRecordSet_JSONOmitsEmptyFamilies(t *testing.T) {
	data, err := json.Marshal(&RecordSet{TenderRecords: []TenderRecord{validTender()}})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "RIMSLF")
	assert.Contains(t, string(data), `"RIMTNF"`)
	assert.Contains(t, string(data), `"TNFAMT":"00000002259"`)
}
