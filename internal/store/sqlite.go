package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dkotenko/shopbot/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS shops (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip TEXT NOT NULL,
		type TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_shops_type ON shops(type);

	CREATE TABLE IF NOT EXISTS zips (
		zip TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InsertShop appends a new shop record, generating an ID when absent.
func (s *SQLiteStore) InsertShop(ctx context.Context, shop *domain.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}

	query := `
	INSERT INTO shops (id, name, street, city, state, zip, type, lat, lon)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		shop.ID, shop.Name, shop.Street, shop.City, shop.State,
		shop.Zip, shop.Type, shop.Lat, shop.Lon,
	)
	if err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// ShopsByType returns all shops with an exact type match, in insertion order.
func (s *SQLiteStore) ShopsByType(ctx context.Context, shopType string) ([]domain.Shop, error) {
	query := `
		SELECT id, name, street, city, state, zip, type, lat, lon
		FROM shops WHERE type = ? ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, shopType)
	if err != nil {
		return nil, fmt.Errorf("query shops by type: %w", err)
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		var shop domain.Shop
		if err := rows.Scan(
			&shop.ID, &shop.Name, &shop.Street, &shop.City, &shop.State,
			&shop.Zip, &shop.Type, &shop.Lat, &shop.Lon,
		); err != nil {
			return nil, fmt.Errorf("scan shop row: %w", err)
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shop rows: %w", err)
	}

	return shops, nil
}

// ZipCoordinate retrieves the cached coordinate for a ZIP code.
func (s *SQLiteStore) ZipCoordinate(ctx context.Context, zip string) (*domain.Coordinate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT lat, lon FROM zips WHERE zip = ?`, zip)

	var coord domain.Coordinate
	err := row.Scan(&coord.Lat, &coord.Lon)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan zip row: %w", err)
	}

	return &coord, nil
}

// SaveZipCoordinate caches a coordinate for a ZIP code. First write wins.
func (s *SQLiteStore) SaveZipCoordinate(ctx context.Context, zip string, coord domain.Coordinate) error {
	query := `INSERT INTO zips (zip, lat, lon) VALUES (?, ?, ?) ON CONFLICT(zip) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, zip, coord.Lat, coord.Lon); err != nil {
		return fmt.Errorf("save zip coordinate: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
