package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/orae-rims-bridge/internal/mapper"
	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

func columnOf(t *testing.T, header []string, code string) int {
	t.Helper()
	for i, h := range header {
		if h == code {
			return i
		}
	}
	t.Fatalf("column %s not found", code)
	return -1
}

func TestWriteRecordSet(t *testing.T) {
	data, err := os.ReadFile("../orae/testdata/sale_event.json")
	require.NoError(t, err)
	event, err := orae.Decode(data)
	require.NoError(t, err)
	set := mapper.Map(event)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteRecordSet(path, set, nil, []string{"RIMSLF[0].SLFSKU: example"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{rims.FamilyOrder, rims.FamilyTender, ViolationsSheet}, f.GetSheetList())

	orders, err := f.GetRows(rims.FamilyOrder)
	require.NoError(t, err)
	require.Len(t, orders, 1+len(set.OrderRecords))
	sku := columnOf(t, orders[0], "SLFSKU")
	assert.Equal(t, set.OrderRecords[0].SKUNumber, orders[1][sku])
	assert.Equal(t, "RIMSLF", f.GetSheetName(0))

	tenders, err := f.GetRows(rims.FamilyTender)
	require.NoError(t, err)
	require.Len(t, tenders, 2)
	amount := columnOf(t, tenders[0], "TNFAMT")
	assert.Equal(t, "00000002259", tenders[1][amount])

	violations, err := f.GetRows(ViolationsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"RIMSLF[0].SLFSKU: example"}}, violations)
}

func TestWriteRecordSet_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteRecordSet(path, nil, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{rims.FamilyOrder, rims.FamilyTender}, f.GetSheetList())
	rows, err := f.GetRows(rims.FamilyTender)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
