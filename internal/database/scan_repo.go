package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kdimtricp/specpair/internal/models"
)

var ErrScanNotFound = errors.New("scan not found")

type ScanRepository struct {
	db *DB
}

func NewScanRepository(db *DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// InsertScan stores a scan and both of its image sequences in one
// transaction.
func (r *ScanRepository) InsertScan(ctx context.Context, scan *models.Scan) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, directory, camera1_id, camera2_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		scan.ID, scan.Directory, scan.Camera1ID, scan.Camera2ID, scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scan_images (scan_id, camera, position, filepath, header_path, camera_id, labels) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare image insert: %w", err)
	}
	defer stmt.Close()

	for camera, records := range map[int][]models.ImageRecord{1: scan.Camera1, 2: scan.Camera2} {
		for _, rec := range records {
			labels := rec.Labels
			if labels == nil {
				labels = []string{}
			}
			labelsJSON, err := json.Marshal(labels)
			if err != nil {
				return fmt.Errorf("failed to marshal labels: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, scan.ID, camera, rec.Position, rec.Path, rec.HeaderPath, rec.Camera, string(labelsJSON)); err != nil {
				return fmt.Errorf("failed to insert image %s: %w", rec.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scan: %w", err)
	}
	scan.ImageCount = len(scan.Camera1) + len(scan.Camera2)
	return nil
}

// GetScan loads a scan with both image sequences in their stored order.
func (r *ScanRepository) GetScan(ctx context.Context, id string) (*models.Scan, error) {
	scan := &models.Scan{}
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, directory, camera1_id, camera2_id, created_at FROM scans WHERE id = ?`, id,
	).Scan(&scan.ID, &scan.Directory, &scan.Camera1ID, &scan.Camera2ID, &scan.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrScanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT camera, position, filepath, header_path, camera_id, labels
		FROM scan_images
		WHERE scan_id = ?
		ORDER BY camera, position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var camera int
		var labelsStr string
		var rec models.ImageRecord
		if err := rows.Scan(&camera, &rec.Position, &rec.Path, &rec.HeaderPath, &rec.Camera, &labelsStr); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		if err := json.Unmarshal([]byte(labelsStr), &rec.Labels); err != nil {
			return nil, fmt.Errorf("failed to decode labels of %s: %w", rec.Path, err)
		}

		switch camera {
		case 1:
			scan.Camera1 = append(scan.Camera1, rec)
		case 2:
			scan.Camera2 = append(scan.Camera2, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scan images: %w", err)
	}

	scan.ImageCount = len(scan.Camera1) + len(scan.Camera2)
	return scan, nil
}

// ListScans returns scan summaries, newest first. Image sequences are not
// loaded.
func (r *ScanRepository) ListScans(ctx context.Context) ([]models.Scan, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT s.id, s.directory, s.camera1_id, s.camera2_id, s.created_at,
			(SELECT COUNT(*) FROM scan_images i WHERE i.scan_id = s.id)
		FROM scans s
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	scans := []models.Scan{}
	for rows.Next() {
		var s models.Scan
		if err := rows.Scan(&s.ID, &s.Directory, &s.Camera1ID, &s.Camera2ID, &s.CreatedAt, &s.ImageCount); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return scans, nil
}

func (r *ScanRepository) DeleteScan(ctx context.Context, id string) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scan_images WHERE scan_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete scan images: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrScanNotFound
	}

	return tx.Commit()
}
