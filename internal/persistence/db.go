// Package persistence provides SQLite-based archiving of simulation results.
// Each run gets a UUID; daily snapshots and sales are written under it so
// plotting tools can read time series back without parsing logs.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-market/internal/agents"
	"github.com/talgya/mini-market/internal/engine"
)

// DB wraps a SQLite connection for result storage.
type DB struct {
	conn *sqlx.DB
}

// RunInfo describes one simulation run.
type RunInfo struct {
	ID        string    `db:"id"`
	StartedAt time.Time `db:"started_at"`
	Seed      int64     `db:"seed"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	Clients   int       `db:"clients"`
	Shops     int       `db:"shops"`
	Days      int       `db:"days"`
}

// Point is one value of an entity's time series.
type Point struct {
	EntityID agents.AgentID `db:"entity_id"`
	Day      int            `db:"day"`
	Value    float64        `db:"value"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		clients INTEGER NOT NULL,
		shops INTEGER NOT NULL,
		days INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shop_days (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		shop_id INTEGER NOT NULL,
		money REAL NOT NULL,
		total_stock INTEGER NOT NULL,
		sales INTEGER NOT NULL,
		PRIMARY KEY (run_id, day, shop_id)
	);

	CREATE TABLE IF NOT EXISTS shop_products (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		shop_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (run_id, day, shop_id, product_id)
	);

	CREATE TABLE IF NOT EXISTS client_days (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		client_id INTEGER NOT NULL,
		money REAL NOT NULL,
		inventory TEXT NOT NULL,
		PRIMARY KEY (run_id, day, client_id)
	);

	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		shop_id INTEGER NOT NULL,
		client_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		quality REAL NOT NULL,
		scammed INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_run ON sales(run_id, shop_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun registers a new run and returns its ID.
func (db *DB) BeginRun(info RunInfo) (uuid.UUID, error) {
	id := uuid.New()
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now().UTC()
	}
	info.ID = id.String()

	_, err := db.conn.NamedExec(`INSERT INTO runs
		(id, started_at, seed, width, height, clients, shops, days)
		VALUES (:id, :started_at, :seed, :width, :height, :clients, :shops, :days)`, info)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	slog.Info("run registered", "run", id, "seed", info.Seed)
	return id, nil
}

// Runs lists all archived runs, newest first.
func (db *DB) Runs() ([]RunInfo, error) {
	var runs []RunInfo
	err := db.conn.Select(&runs,
		"SELECT id, started_at, seed, width, height, clients, shops, days FROM runs ORDER BY started_at DESC")
	return runs, err
}

// SaveDay writes one day's snapshot.
func (db *DB) SaveDay(runID uuid.UUID, snap engine.DaySnapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	shopStmt, err := tx.Preparex(`INSERT INTO shop_days
		(run_id, day, shop_id, money, total_stock, sales) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer shopStmt.Close()

	productStmt, err := tx.Preparex(`INSERT INTO shop_products
		(run_id, day, shop_id, product_id, name, price, quantity) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer productStmt.Close()

	clientStmt, err := tx.Preparex(`INSERT INTO client_days
		(run_id, day, client_id, money, inventory) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer clientStmt.Close()

	run := runID.String()
	for _, s := range snap.Shops {
		if _, err := shopStmt.Exec(run, snap.Day, s.ShopID, s.Money, s.TotalStock, s.Sales); err != nil {
			return fmt.Errorf("insert shop %d day %d: %w", s.ShopID, snap.Day, err)
		}
		for _, p := range s.Products {
			if _, err := productStmt.Exec(run, snap.Day, s.ShopID, p.ProductID, p.Name, p.Price, p.Quantity); err != nil {
				return fmt.Errorf("insert shop %d product %d: %w", s.ShopID, p.ProductID, err)
			}
		}
	}
	for _, c := range snap.Clients {
		if _, err := clientStmt.Exec(run, snap.Day, c.ClientID, c.Money, c.Summary); err != nil {
			return fmt.Errorf("insert client %d day %d: %w", c.ClientID, snap.Day, err)
		}
	}

	return tx.Commit()
}

// SaveSales appends a shop's transactions.
func (db *DB) SaveSales(runID uuid.UUID, shopID agents.AgentID, sales []agents.Transaction) error {
	if len(sales) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range sales {
		scammed := 0
		if s.Scammed {
			scammed = 1
		}
		_, err := tx.Exec(`INSERT INTO sales
			(run_id, day, shop_id, client_id, product_id, quantity, price, quality, scammed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID.String(), s.Day, shopID, s.ClientID, s.ProductID, s.Quantity, s.Price, s.Quality, scammed,
		)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
	}

	return tx.Commit()
}

// SaleCount returns how many sales were archived for a run.
func (db *DB) SaleCount(runID uuid.UUID) (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM sales WHERE run_id = ?", runID.String())
	return n, err
}

// ShopMoneySeries returns each shop's money by day.
func (db *DB) ShopMoneySeries(runID uuid.UUID) (map[agents.AgentID][]float64, error) {
	return db.series(`SELECT shop_id AS entity_id, day, money AS value
		FROM shop_days WHERE run_id = ? ORDER BY shop_id, day`, runID)
}

// ClientMoneySeries returns each client's money by day.
func (db *DB) ClientMoneySeries(runID uuid.UUID) (map[agents.AgentID][]float64, error) {
	return db.series(`SELECT client_id AS entity_id, day, money AS value
		FROM client_days WHERE run_id = ? ORDER BY client_id, day`, runID)
}

func (db *DB) series(query string, runID uuid.UUID) (map[agents.AgentID][]float64, error) {
	var points []Point
	if err := db.conn.Select(&points, query, runID.String()); err != nil {
		return nil, err
	}
	out := make(map[agents.AgentID][]float64)
	for _, p := range points {
		out[p.EntityID] = append(out[p.EntityID], p.Value)
	}
	return out, nil
}
