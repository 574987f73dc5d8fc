package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"KisanSense/internal/domain/models"
	"KisanSense/internal/domain/repository"
	"KisanSense/pkg/util"
)

// ClickHousePriceStore implements PriceStore on ClickHouse. The table
// is a ReplacingMergeTree keyed by (commodity, market, day) so repeated
// syncs of the same day collapse to the newest row.
type ClickHousePriceStore struct {
	db    *sql.DB
	table string
}

// NewClickHousePriceStore creates a ClickHouse price store.
func NewClickHousePriceStore(db *sql.DB, table string) repository.PriceStore {
	return &ClickHousePriceStore{db: db, table: table}
}

func (s *ClickHousePriceStore) Init(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		day Date,
		state LowCardinality(String),
		district LowCardinality(String),
		market LowCardinality(String),
		commodity LowCardinality(String),
		variety String,
		min_price Float64,
		max_price Float64,
		modal_price Float64,
		arrival_qty Nullable(Float64),
		ingested_at DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(ingested_at)
	ORDER BY (commodity, market, day)`, s.table)

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create price table: %w", err)
	}
	return nil
}

func (s *ClickHousePriceStore) Store(ctx context.Context, r *models.PriceRecord) error {
	return s.StoreBatch(ctx, []*models.PriceRecord{r})
}

func (s *ClickHousePriceStore) StoreBatch(ctx context.Context, records []*models.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}

	const chunkSize = 2000
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*10)
		for _, r := range records[start:end] {
			if r == nil || r.Commodity == "" || r.Market == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				util.DayKey(r.ArrivalDate),
				r.State,
				r.District,
				r.Market,
				r.Commodity,
				r.Variety,
				r.MinPrice,
				r.MaxPrice,
				r.ModalPrice,
				r.ArrivalQty,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (day, state, district, market, commodity, variety, min_price, max_price, modal_price, arrival_qty) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert price batch: %w", err)
		}
	}
	return nil
}

// Series returns the daily modal price series for a pair, ascending by
// day. FINAL collapses ReplacingMergeTree duplicates at read time.
func (s *ClickHousePriceStore) Series(ctx context.Context, commodity, market string, from, to time.Time) ([]models.PricePoint, error) {
	q := fmt.Sprintf(
		`SELECT day, modal_price, min_price, max_price, arrival_qty FROM %s FINAL
		 WHERE commodity = ? AND market = ? AND day >= ? AND day <= ?
		 ORDER BY day ASC`, s.table)
	rows, err := s.db.QueryContext(ctx, q, commodity, market, util.DayKey(from), util.DayKey(to))
	if err != nil {
		return nil, fmt.Errorf("query price series: %w", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		var qty sql.NullFloat64
		if err := rows.Scan(&p.Date, &p.ModalPrice, &p.MinPrice, &p.MaxPrice, &qty); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		if qty.Valid {
			p.ArrivalQty = &qty.Float64
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *ClickHousePriceStore) Commodities(ctx context.Context) ([]string, error) {
	q := fmt.Sprintf("SELECT DISTINCT commodity FROM %s ORDER BY commodity", s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query commodities: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *ClickHousePriceStore) Markets(ctx context.Context, commodity string) ([]models.Mandi, error) {
	q := fmt.Sprintf(
		"SELECT DISTINCT market, district, state FROM %s WHERE commodity = ? ORDER BY market", s.table)
	rows, err := s.db.QueryContext(ctx, q, commodity)
	if err != nil {
		return nil, fmt.Errorf("query markets: %w", err)
	}
	defer rows.Close()

	var out []models.Mandi
	for rows.Next() {
		var m models.Mandi
		if err := rows.Scan(&m.Name, &m.District, &m.State); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Summaries returns per-pair latest price and day-over-day change for
// the market overview, using data up to the given day.
func (s *ClickHousePriceStore) Summaries(ctx context.Context, day time.Time) ([]models.CommoditySummary, error) {
	q := fmt.Sprintf(
		`SELECT commodity, market, any(district) AS district, any(state) AS state,
			argMax(modal_price, day) AS latest_price,
			max(day) AS latest_day,
			count() AS series_length
		 FROM %s FINAL
		 WHERE day <= ?
		 GROUP BY commodity, market
		 ORDER BY commodity, market`, s.table)
	rows, err := s.db.QueryContext(ctx, q, util.DayKey(day))
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []models.CommoditySummary
	for rows.Next() {
		var cs models.CommoditySummary
		if err := rows.Scan(&cs.Commodity, &cs.Market, &cs.District, &cs.State,
			&cs.LatestPrice, &cs.LatestDate, &cs.SeriesLength); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (s *ClickHousePriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHousePriceStore) Close() error {
	return nil // pool lifecycle owned by pkg/clickhouse
}
