// internal/services/export_service_test.go
package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/javajoker/perfume-store/internal/models"
)

func TestOrdersWorkbook(t *testing.T) {
	order := sampleOrder()
	order.OrderedAt = time.Date(2024, 3, 8, 10, 30, 0, 0, time.UTC)
	comment := "Gift wrap"
	order.Commentary = &comment

	file, err := NewExportService().OrdersWorkbook([]models.Order{*order})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	reopened, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, reopened.Sheets, 1)

	sheet := reopened.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0]
	require.Len(t, header.Cells, len(orderExportHeaders))
	assert.Equal(t, "Order ID", header.Cells[0].String())

	first := sheet.Rows[1]
	assert.Equal(t, "17", first.Cells[0].String())
	assert.Equal(t, "2024-03-08 10:30:00", first.Cells[1].String())
	assert.Equal(t, "Gift wrap", first.Cells[5].String())
	assert.Equal(t, "Chanel No 5", first.Cells[8].String())
	assert.Equal(t, "180.00", first.Cells[11].String())
	assert.Equal(t, "217.50", first.Cells[12].String())

	second := sheet.Rows[2]
	assert.Equal(t, "Chanel Bleu", second.Cells[8].String())
	assert.Equal(t, "37.50", second.Cells[11].String())
}
