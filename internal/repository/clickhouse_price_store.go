package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
	pkgch "github.com/ciphernom/rektcast/pkg/clickhouse"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
)

const (
	dailyTable = "rektcast.btc_daily"
	ticksTable = "rektcast.btc_ticks"
)

// CHPriceStore implements PriceStore backed by ClickHouse. The daily table
// is the training history; the latest price comes from the raw tick table
// when fresher than the last daily close.
type CHPriceStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHPriceStore(ch *pkgch.Client) *CHPriceStore {
	return &CHPriceStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHPriceStore) SetLogger(l *applogger.Logger) { s.l = l }

var _ domrepo.PriceStore = (*CHPriceStore)(nil)

func (s *CHPriceStore) GetDailyHistory(ctx context.Context, from, to time.Time) ([]models.PricePoint, error) {
	start := time.Now()
	const qtpl = `
        SELECT day, price, mvrv, nvt, active_addrs, supply_active, has_onchain
        FROM %s
        WHERE day >= ? AND day <= ?
        ORDER BY day ASC
    `
	q := fmt.Sprintf(qtpl, dailyTable)
	rows, err := s.db.QueryContext(ctx, q, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse daily_history query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("get daily history: %w", err)
	}
	defer rows.Close()

	out := make([]models.PricePoint, 0, 4096)
	for rows.Next() {
		var p models.PricePoint
		var hasOnChain uint8
		if err := rows.Scan(&p.Date, &p.Price, &p.MVRV, &p.NVT, &p.ActiveAddrs, &p.SupplyActive, &hasOnChain); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse daily_history scan error", applogger.Error(err))
			}
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		p.HasOnChain = hasOnChain == 1
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse daily_history ok",
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHPriceStore) GetLatestN(ctx context.Context, n int) ([]models.PricePoint, error) {
	const qtpl = `
        SELECT day, price, mvrv, nvt, active_addrs, supply_active, has_onchain
        FROM %s
        ORDER BY day DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, dailyTable)
	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("get latest daily: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.PricePoint, 0, n)
	for rows.Next() {
		var p models.PricePoint
		var hasOnChain uint8
		if err := rows.Scan(&p.Date, &p.Price, &p.MVRV, &p.NVT, &p.ActiveAddrs, &p.SupplyActive, &hasOnChain); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		p.HasOnChain = hasOnChain == 1
		tmp = append(tmp, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp, nil
}

func (s *CHPriceStore) LatestPrice(ctx context.Context) (float64, error) {
	q := fmt.Sprintf("SELECT price FROM %s ORDER BY ts DESC LIMIT 1", ticksTable)
	var price float64
	if err := s.db.QueryRowContext(ctx, q).Scan(&price); err == nil && price > 0 {
		return price, nil
	}
	// fall back to the last daily close when no ticks have arrived yet
	q = fmt.Sprintf("SELECT price FROM %s ORDER BY day DESC LIMIT 1", dailyTable)
	if err := s.db.QueryRowContext(ctx, q).Scan(&price); err != nil {
		return 0, fmt.Errorf("latest price: %w", err)
	}
	return price, nil
}

func (s *CHPriceStore) StoreDaily(ctx context.Context, points []models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	values := make([]string, 0, len(points))
	args := make([]interface{}, 0, len(points)*7)
	for _, p := range points {
		if p.Price <= 0 {
			continue
		}
		hasOnChain := uint8(0)
		if p.HasOnChain {
			hasOnChain = 1
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, p.Date, p.Price, p.MVRV, p.NVT, p.ActiveAddrs, p.SupplyActive, hasOnChain)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s (day, price, mvrv, nvt, active_addrs, supply_active, has_onchain) VALUES %s",
		dailyTable, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store daily: %w", err)
	}
	return nil
}
