package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/brewlytics/cupping/internal/model"
)

// SaveRatings replaces the stored dataset with the given cleaned rows and
// records the import run. The replace is transactional: a failed import
// never leaves a half-written dataset behind.
func (s *SQLiteStorage) SaveRatings(ctx context.Context, run model.ImportRun, ratings []model.Rating) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if ratings == nil {
		return fmt.Errorf("%w: ratings", ErrNilSlice)
	}
	if err := validateString(run.Source, "run.Source"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ratings`); err != nil {
		return fmt.Errorf("failed to clear ratings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ratings (
		species, country_of_origin, region, grading_date, expiration_date,
		days_to_expiration, aroma, flavor, aftertaste, acidity, body, balance,
		uniformity, clean_cup, sweetness, cupper_points, moisture, color,
		altitude_mean_meters, total_cup_points, variety, processing_method
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare rating insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := range ratings {
		r := &ratings[i]
		if _, err := stmt.ExecContext(ctx,
			nullString(r.Species),
			nullString(r.CountryOfOrigin),
			nullString(r.Region),
			nullTime(r.GradingDate),
			nullTime(r.ExpirationDate),
			nullInt(r.DaysToExpiration),
			nullFloat(r.Aroma),
			nullFloat(r.Flavor),
			nullFloat(r.Aftertaste),
			nullFloat(r.Acidity),
			nullFloat(r.Body),
			nullFloat(r.Balance),
			nullFloat(r.Uniformity),
			nullFloat(r.CleanCup),
			nullFloat(r.Sweetness),
			nullFloat(r.CupperPoints),
			nullFloat(r.Moisture),
			nullString(r.Color),
			nullFloat(r.AltitudeMeanMeters),
			nullFloat(r.TotalCupPoints),
			nullString(r.Variety),
			nullString(r.ProcessingMethod),
		); err != nil {
			return fmt.Errorf("failed to insert rating %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_runs (source, rows_read, rows_kept, rows_dropped) VALUES (?, ?, ?, ?)`,
		run.Source, run.RowsRead, run.RowsKept, run.RowsDropped,
	); err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// GetRatings returns every stored rating in insertion order.
func (s *SQLiteStorage) GetRatings(ctx context.Context) ([]model.Rating, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		species, country_of_origin, region, grading_date, expiration_date,
		days_to_expiration, aroma, flavor, aftertaste, acidity, body, balance,
		uniformity, clean_cup, sweetness, cupper_points, moisture, color,
		altitude_mean_meters, total_cup_points, variety, processing_method
	FROM ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ratings []model.Rating
	for rows.Next() {
		var (
			r                                   model.Rating
			species, country, region            sql.NullString
			color, variety, processing          sql.NullString
			graded, expires                     sql.NullTime
			days                                sql.NullInt64
			aroma, flavor, aftertaste, acidity  sql.NullFloat64
			body, balance, uniformity, cleanCup sql.NullFloat64
			sweetness, cupperPoints, moisture   sql.NullFloat64
			altitude, totalCupPoints            sql.NullFloat64
		)

		if err := rows.Scan(
			&species, &country, &region, &graded, &expires, &days,
			&aroma, &flavor, &aftertaste, &acidity, &body, &balance,
			&uniformity, &cleanCup, &sweetness, &cupperPoints, &moisture,
			&color, &altitude, &totalCupPoints, &variety, &processing,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}

		r.Species = species.String
		r.CountryOfOrigin = country.String
		r.Region = region.String
		r.Color = color.String
		r.Variety = variety.String
		r.ProcessingMethod = processing.String
		if graded.Valid {
			r.GradingDate = graded.Time
		}
		if expires.Valid {
			r.ExpirationDate = expires.Time
		}
		if days.Valid {
			d := int(days.Int64)
			r.DaysToExpiration = &d
		}
		r.Aroma = floatOrNaN(aroma)
		r.Flavor = floatOrNaN(flavor)
		r.Aftertaste = floatOrNaN(aftertaste)
		r.Acidity = floatOrNaN(acidity)
		r.Body = floatOrNaN(body)
		r.Balance = floatOrNaN(balance)
		r.Uniformity = floatOrNaN(uniformity)
		r.CleanCup = floatOrNaN(cleanCup)
		r.Sweetness = floatOrNaN(sweetness)
		r.CupperPoints = floatOrNaN(cupperPoints)
		r.Moisture = floatOrNaN(moisture)
		r.AltitudeMeanMeters = floatOrNaN(altitude)
		r.TotalCupPoints = floatOrNaN(totalCupPoints)

		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, nil
}

// ListImportRuns returns past imports, most recent first.
func (s *SQLiteStorage) ListImportRuns(ctx context.Context) ([]model.ImportRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, source, rows_read, rows_kept, rows_dropped, imported_at
	FROM import_runs ORDER BY imported_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []model.ImportRun
	for rows.Next() {
		var run model.ImportRun
		if err := rows.Scan(&run.ID, &run.Source, &run.RowsRead,
			&run.RowsKept, &run.RowsDropped, &run.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import runs: %w", err)
	}

	return runs, nil
}

// NaN and empty values round-trip through SQLite as NULL.

func nullFloat(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
