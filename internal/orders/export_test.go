package orders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportArchived(t *testing.T) {
	created := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	history := History{
		Archived: []gateway.Order{
			order(2, "completed", created),
			order(4, "cancelled", created.Add(-time.Hour)),
		},
	}

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, ExportArchived(history, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "completed", rows[1][2])
	assert.Equal(t, "650", rows[1][5])
	assert.Equal(t, "dish 7 x2", rows[1][6])
	assert.Equal(t, "4", rows[2][0])
	assert.Equal(t, "cancelled", rows[2][2])
}

func TestExportArchivedEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, ExportArchived(History{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
