package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/syntrade-lab/syntrade/internal/engine"
	"github.com/syntrade-lab/syntrade/internal/logger"
	"github.com/syntrade-lab/syntrade/internal/types"
	"go.uber.org/zap"
)

// ResultStore keeps run artifacts in an in-memory DuckDB so the CLI can
// query and export them. The pipeline itself never touches the store; this
// is the inspection surface around it.
type ResultStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewResultStore opens an in-memory database and creates the tables.
func NewResultStore(log *logger.Logger) (*ResultStore, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &ResultStore{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *ResultStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS bars (
			run_id TEXT,
			symbol TEXT,
			date TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create bars table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS equity (
			run_id TEXT,
			symbol TEXT,
			date TIMESTAMP,
			equity DOUBLE,
			cash DOUBLE,
			returns DOUBLE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create equity table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			run_id TEXT,
			symbol TEXT,
			date TIMESTAMP,
			side TEXT,
			quantity DOUBLE,
			entry_price DOUBLE,
			exit_price DOUBLE,
			pnl DOUBLE,
			commission DOUBLE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}

	return nil
}

// SaveResult inserts all artifacts of one run inside a transaction.
func (s *ResultStore) SaveResult(result *engine.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, bar := range result.Bars {
		insert := s.sq.
			Insert("bars").
			Columns("run_id", "symbol", "date", "open", "high", "low", "close", "volume").
			Values(result.ID, result.Symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume).
			RunWith(tx)

		if _, err := insert.Exec(); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert bar: %w", err)
		}
	}

	for _, point := range result.Equity {
		insert := s.sq.
			Insert("equity").
			Columns("run_id", "symbol", "date", "equity", "cash", "returns").
			Values(result.ID, result.Symbol, point.Date, point.Equity, point.Cash, point.Returns).
			RunWith(tx)

		if _, err := insert.Exec(); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert equity point: %w", err)
		}
	}

	for _, trade := range result.Trades {
		insert := s.sq.
			Insert("trades").
			Columns("run_id", "symbol", "date", "side", "quantity", "entry_price", "exit_price", "pnl", "commission").
			Values(result.ID, result.Symbol, trade.Date, string(trade.Side), trade.Quantity,
				trade.EntryPrice, trade.ExitPrice, trade.PnL, trade.Commission).
			RunWith(tx)

		if _, err := insert.Exec(); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("saved run artifacts",
		zap.String("run_id", result.ID),
		zap.String("symbol", result.Symbol),
		zap.Int("bars", len(result.Bars)),
		zap.Int("trades", len(result.Trades)),
	)

	return nil
}

// Trades returns the trade log of one run in date order.
func (s *ResultStore) Trades(runID string) ([]types.Trade, error) {
	query := s.sq.
		Select("symbol", "date", "side", "quantity", "entry_price", "exit_price", "pnl", "commission").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("date ASC").
		RunWith(s.db)

	rows, err := query.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var trade types.Trade

		var side string

		if err := rows.Scan(&trade.Symbol, &trade.Date, &side, &trade.Quantity,
			&trade.EntryPrice, &trade.ExitPrice, &trade.PnL, &trade.Commission); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		trade.Side = types.TradeSide(side)
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

// EquityCurve returns the equity points of one run in date order.
func (s *ResultStore) EquityCurve(runID string) ([]types.EquityPoint, error) {
	query := s.sq.
		Select("date", "equity", "cash", "returns").
		From("equity").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("date ASC").
		RunWith(s.db)

	rows, err := query.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query equity curve: %w", err)
	}
	defer rows.Close()

	var points []types.EquityPoint

	for rows.Next() {
		var point types.EquityPoint

		if err := rows.Scan(&point.Date, &point.Equity, &point.Cash, &point.Returns); err != nil {
			return nil, fmt.Errorf("failed to scan equity point: %w", err)
		}

		points = append(points, point)
	}

	return points, rows.Err()
}

// TradePnLBounds returns the best and worst realized trade PnL of one run.
func (s *ResultStore) TradePnLBounds(runID string) (best float64, worst float64, err error) {
	query := s.sq.
		Select("COALESCE(MAX(pnl), 0)", "COALESCE(MIN(pnl), 0)").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		RunWith(s.db)

	if err := query.QueryRow().Scan(&best, &worst); err != nil {
		return 0, 0, fmt.Errorf("failed to query trade pnl bounds: %w", err)
	}

	return best, worst, nil
}

// ExportParquet copies one artifact table to a parquet file.
func (s *ResultStore) ExportParquet(table string, outputPath string) error {
	switch table {
	case "bars", "equity", "trades":
	default:
		return fmt.Errorf("unknown artifact table %q", table)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	_, err := s.db.Exec(fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, outputPath))
	if err != nil {
		return fmt.Errorf("failed to export to parquet: %w", err)
	}

	return nil
}

// Close releases the database.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
