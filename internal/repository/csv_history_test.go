package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadHistoryCSVSkipsHeader(t *testing.T) {
	path := writeCSV(t, "date,price\n2024-01-01,42000\n2024-01-02,43000\n")

	points, err := LoadHistoryCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 42000.0, points[0].Price)
	assert.False(t, points[0].HasOnChain)
}

func TestLoadHistoryCSVSortsAscending(t *testing.T) {
	path := writeCSV(t, "2024-01-03,44000\n2024-01-01,42000\n2024-01-02,43000\n")

	points, err := LoadHistoryCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Date.Before(points[i].Date))
	}
}

func TestLoadHistoryCSVOnChainColumns(t *testing.T) {
	path := writeCSV(t, "2024-01-01,42000,2.1,55.2,950000,19600000\n")

	points, err := LoadHistoryCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].HasOnChain)
	assert.Equal(t, 2.1, points[0].MVRV)
	assert.Equal(t, 19600000.0, points[0].SupplyActive)
}

func TestLoadHistoryCSVRejectsMalformedRow(t *testing.T) {
	path := writeCSV(t, "2024-01-01,42000\nnot-a-date,43000\n")

	_, err := LoadHistoryCSV(path)
	require.Error(t, err)
}

func TestLoadHistoryCSVRejectsNonPositivePrice(t *testing.T) {
	path := writeCSV(t, "date,price\n2024-01-01,0\n")

	_, err := LoadHistoryCSV(path)
	require.Error(t, err)
}

func TestCSVPriceStoreRangeAndLatest(t *testing.T) {
	path := writeCSV(t, "2024-01-01,42000\n2024-01-02,43000\n2024-01-03,44000\n")
	store, err := NewCSVPriceStore(path)
	require.NoError(t, err)

	ctx := context.Background()

	all, err := store.GetDailyHistory(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	ranged, err := store.GetDailyHistory(ctx, from, time.Time{})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	latest, err := store.LatestPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, 44000.0, latest)

	lastTwo, err := store.GetLatestN(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lastTwo, 2)
	assert.Equal(t, 43000.0, lastTwo[0].Price)
}
