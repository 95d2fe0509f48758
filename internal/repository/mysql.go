// Package repository persists flushed correction batches to MySQL and
// queues the source file for revalidation.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/config"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
)

// Repository manages the connection pool to the corrections database. It
// implements ledger.Persister.
type Repository struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Repository, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open corrections database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)

	return &Repository{db: db}, nil
}

// EnsureSchema creates the corrections tables when they do not exist.
// row_index -1 marks a file-level correction; NULL would break the unique
// key that makes re-flushing a batch idempotent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS corrections (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			report_id VARCHAR(128) NOT NULL,
			generation CHAR(36) NOT NULL,
			row_index INT NOT NULL,
			file_level TINYINT(1) NOT NULL,
			column_name VARCHAR(256) NOT NULL,
			old_value JSON,
			new_value JSON,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_cell (report_id, generation, row_index, column_name)
		)`,
		`CREATE TABLE IF NOT EXISTS revalidation_queue (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			report_id VARCHAR(128) NOT NULL,
			generation CHAR(36) NOT NULL,
			corrections INT NOT NULL,
			queued_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveCorrections stores one flushed batch in a single transaction and
// enqueues the report for revalidation. Either every correction lands or
// none do.
func (r *Repository) SaveCorrections(ctx context.Context, reportID, generation string, corrections []report.Correction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO corrections
		(report_id, generation, row_index, file_level, column_name, old_value, new_value)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE old_value = VALUES(old_value), new_value = VALUES(new_value)`

	for _, c := range corrections {
		rowIndex := -1
		fileLevel := true
		if idx, ok := c.Location.Index(); ok {
			rowIndex = idx
			fileLevel = false
		}
		oldValue, err := json.Marshal(c.OldValue)
		if err != nil {
			return fmt.Errorf("failed to encode old value: %w", err)
		}
		newValue, err := json.Marshal(c.NewValue)
		if err != nil {
			return fmt.Errorf("failed to encode new value: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upsert,
			reportID, generation, rowIndex, fileLevel, c.Column, oldValue, newValue); err != nil {
			return fmt.Errorf("failed to store correction: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revalidation_queue (report_id, generation, corrections) VALUES (?, ?, ?)`,
		reportID, generation, len(corrections)); err != nil {
		return fmt.Errorf("failed to enqueue revalidation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corrections: %w", err)
	}
	return nil
}

func (r *Repository) Close() {
	r.db.Close()
}
