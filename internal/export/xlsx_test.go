package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/testutil"
)

func TestWriteDeclarationReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	orders := []*model.Order{
		testutil.SampleOrder("IW-1001"),
		{
			Reference: "IW-1002",
			DeclarationLines: []model.DeclarationLine{
				{
					Description:   "Decorative self-adhesive paper tape",
					Code:          "4811412100",
					OriginCountry: "JP",
					SKU:           "WSH-3PK",
					Quantity:      1,
					Value:         testutil.Money("9.00"),
				},
			},
		},
	}

	require.NoError(t, WriteDeclarationReport(path, orders))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per declaration line")

	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"IW-1001", "Planner", "4820.10.2099", "", "DPL-A5-HC", "1", "42.00"}, rows[1])
	assert.Equal(t, "IW-1002", rows[3][0])
	assert.Equal(t, []string{"IW-1002", "Decorative self-adhesive paper tape", "4811412100", "JP", "WSH-3PK", "1", "9.00"}, rows[3])
}

func TestWriteDeclarationReport_NoOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteDeclarationReport(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, header, rows[0])
}
