package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
)

// LoadHistoryCSV parses a daily price history file. Expected columns:
// date, price[, mvrv, nvt, active_addrs, supply_active]. The first row is
// skipped when it does not parse as data. Rows with non-positive prices
// are dropped.
func LoadHistoryCSV(path string) ([]models.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []models.PricePoint
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history csv line %d: %w", line+1, err)
		}
		line++
		p, ok := parseHistoryRow(rec)
		if !ok {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("malformed history csv line %d", line)
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func parseHistoryRow(rec []string) (models.PricePoint, bool) {
	var p models.PricePoint
	if len(rec) < 2 {
		return p, false
	}

	d, err := parseDate(rec[0])
	if err != nil {
		return p, false
	}
	price, err := strconv.ParseFloat(rec[1], 64)
	if err != nil || price <= 0 {
		return p, false
	}
	p.Date = d
	p.Price = price

	if len(rec) >= 6 {
		mvrv, e1 := strconv.ParseFloat(rec[2], 64)
		nvt, e2 := strconv.ParseFloat(rec[3], 64)
		addrs, e3 := strconv.ParseFloat(rec[4], 64)
		supply, e4 := strconv.ParseFloat(rec[5], 64)
		if e1 == nil && e2 == nil && e3 == nil && e4 == nil {
			p.MVRV = mvrv
			p.NVT = nvt
			p.ActiveAddrs = addrs
			p.SupplyActive = supply
			p.HasOnChain = true
		}
	}
	return p, true
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// CSVPriceStore is a file-backed PriceStore for offline runs and tests.
// The file is loaded once; StoreDaily appends in memory only.
type CSVPriceStore struct {
	mu     sync.RWMutex
	points []models.PricePoint
}

func NewCSVPriceStore(path string) (*CSVPriceStore, error) {
	points, err := LoadHistoryCSV(path)
	if err != nil {
		return nil, err
	}
	return &CSVPriceStore{points: points}, nil
}

var _ domrepo.PriceStore = (*CSVPriceStore)(nil)

func (s *CSVPriceStore) GetDailyHistory(ctx context.Context, from, to time.Time) ([]models.PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PricePoint, 0, len(s.points))
	for _, p := range s.points {
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		if !to.IsZero() && p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *CSVPriceStore) GetLatestN(ctx context.Context, n int) ([]models.PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n >= len(s.points) {
		n = len(s.points)
	}
	out := make([]models.PricePoint, n)
	copy(out, s.points[len(s.points)-n:])
	return out, nil
}

func (s *CSVPriceStore) LatestPrice(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.points) == 0 {
		return 0, fmt.Errorf("empty history")
	}
	return s.points[len(s.points)-1].Price, nil
}

func (s *CSVPriceStore) StoreDaily(ctx context.Context, points []models.PricePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = append(s.points, points...)
	sort.Slice(s.points, func(i, j int) bool { return s.points[i].Date.Before(s.points[j].Date) })
	return nil
}
