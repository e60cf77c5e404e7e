package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jgoulah/seoulenergy/pkg/models"
	_ "modernc.org/sqlite"
)

// DB wraps the report archive connection
type DB struct {
	conn *sql.DB
}

// New opens the archive at dbPath, applying migrations first
func New(dbPath string) (*DB, error) {
	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveReport stores a report and its aggregate rows in one transaction
func (db *DB) SaveReport(r *models.Report) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
	INSERT INTO reports (id, created_at, start_month, end_month, row_count, published)
	VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Start.String(), r.End.String(), r.RowCount, r.Published)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	for _, y := range r.Yearly {
		_, err := tx.Exec(`
		INSERT INTO yearly_totals (report_id, year, eus, gus, wus, hus, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.ID, y.Year, y.EUS, y.GUS, y.WUS, y.HUS, y.Total)
		if err != nil {
			return fmt.Errorf("inserting yearly total %d: %w", y.Year, err)
		}
	}

	for _, s := range r.Seasonal {
		_, err := tx.Exec(`
		INSERT INTO seasonal_averages (report_id, season, position, avg_gus, row_count)
		VALUES (?, ?, ?, ?, ?)
		`, r.ID, string(s.Season), s.Season.Rank(), s.AvgGUS, s.Count)
		if err != nil {
			return fmt.Errorf("inserting seasonal average %s: %w", s.Season.English(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// GetReport retrieves a report with its rows, or nil if it does not exist
func (db *DB) GetReport(id string) (*models.Report, error) {
	row := db.conn.QueryRow(`
	SELECT id, created_at, start_month, end_month, row_count, published
	FROM reports
	WHERE id = ?
	`, id)

	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying report: %w", err)
	}

	if err := db.loadRows(r); err != nil {
		return nil, err
	}
	return r, nil
}

// LatestReport retrieves the most recently created report, or nil if none exist
func (db *DB) LatestReport() (*models.Report, error) {
	var id string
	err := db.conn.QueryRow(`SELECT id FROM reports ORDER BY created_at DESC, rowid DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest report: %w", err)
	}
	return db.GetReport(id)
}

// ListReports returns report headers (without rows), newest first
func (db *DB) ListReports() ([]models.Report, error) {
	rows, err := db.conn.Query(`
	SELECT id, created_at, start_month, end_month, row_count, published
	FROM reports
	ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var results []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, *r)
	}

	return results, rows.Err()
}

// MarkPublished marks a report as published
func (db *DB) MarkPublished(id string) error {
	_, err := db.conn.Exec(`UPDATE reports SET published = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking report as published: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*models.Report, error) {
	var r models.Report
	var createdAt, start, end string

	if err := s.Scan(&r.ID, &createdAt, &start, &end, &r.RowCount, &r.Published); err != nil {
		return nil, err
	}

	var err error
	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if r.Start, err = models.ParseYearMonth(start); err != nil {
		return nil, fmt.Errorf("parsing start_month: %w", err)
	}
	if r.End, err = models.ParseYearMonth(end); err != nil {
		return nil, fmt.Errorf("parsing end_month: %w", err)
	}

	return &r, nil
}

func (db *DB) loadRows(r *models.Report) error {
	yearly, err := db.conn.Query(`
	SELECT year, eus, gus, wus, hus, total
	FROM yearly_totals
	WHERE report_id = ?
	ORDER BY year
	`, r.ID)
	if err != nil {
		return fmt.Errorf("querying yearly totals: %w", err)
	}
	defer yearly.Close()

	for yearly.Next() {
		var y models.YearlyTotal
		if err := yearly.Scan(&y.Year, &y.EUS, &y.GUS, &y.WUS, &y.HUS, &y.Total); err != nil {
			return fmt.Errorf("scanning yearly total: %w", err)
		}
		r.Yearly = append(r.Yearly, y)
	}
	if err := yearly.Err(); err != nil {
		return err
	}

	seasonal, err := db.conn.Query(`
	SELECT season, avg_gus, row_count
	FROM seasonal_averages
	WHERE report_id = ?
	ORDER BY position
	`, r.ID)
	if err != nil {
		return fmt.Errorf("querying seasonal averages: %w", err)
	}
	defer seasonal.Close()

	for seasonal.Next() {
		var s models.SeasonAverage
		var season string
		if err := seasonal.Scan(&season, &s.AvgGUS, &s.Count); err != nil {
			return fmt.Errorf("scanning seasonal average: %w", err)
		}
		s.Season = models.Season(season)
		r.Seasonal = append(r.Seasonal, s)
	}
	return seasonal.Err()
}
