package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
)

// FeatureRepository caches catalog audio features by track ID.
// It implements catalog.FeatureCache. Only collaborator data is cached;
// recommendation output is never persisted.
type FeatureRepository struct {
	pool *pgxpool.Pool
}

// Schema is the DDL for the audio feature cache table.
const Schema = `
CREATE TABLE IF NOT EXISTS audio_features (
	track_id         TEXT PRIMARY KEY,
	valence          DOUBLE PRECISION,
	energy           DOUBLE PRECISION,
	instrumentalness DOUBLE PRECISION,
	acousticness     DOUBLE PRECISION,
	fetched_at       TIMESTAMPTZ NOT NULL
)`

// Migrate creates the cache table if it does not exist.
func (r *FeatureRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("creating audio_features table: %w", err)
	}
	return nil
}

// Get returns the cached features for the given track IDs.
// Tracks without a cache entry are absent from the result.
func (r *FeatureRepository) Get(ctx context.Context, ids []string) (map[string]catalog.Features, error) {
	if len(ids) == 0 {
		return map[string]catalog.Features{}, nil
	}

	query := `
		SELECT track_id, valence, energy, instrumentalness, acousticness
		FROM audio_features
		WHERE track_id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("querying cached features: %w", err)
	}
	defer rows.Close()

	result := make(map[string]catalog.Features)
	for rows.Next() {
		var id string
		var f catalog.Features
		if err := rows.Scan(&id, &f.Valence, &f.Energy, &f.Instrumentalness, &f.Acousticness); err != nil {
			return nil, fmt.Errorf("scanning cached features: %w", err)
		}
		result[id] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cached features: %w", err)
	}

	return result, nil
}

// Put upserts features for multiple tracks.
func (r *FeatureRepository) Put(ctx context.Context, features map[string]catalog.Features) error {
	if len(features) == 0 {
		return nil
	}

	query := `
		INSERT INTO audio_features (track_id, valence, energy, instrumentalness, acousticness, fetched_at)
		SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[], $4::float8[], $5::float8[], $6::timestamptz[])
		ON CONFLICT (track_id) DO UPDATE SET
			valence = EXCLUDED.valence,
			energy = EXCLUDED.energy,
			instrumentalness = EXCLUDED.instrumentalness,
			acousticness = EXCLUDED.acousticness,
			fetched_at = EXCLUDED.fetched_at
	`

	ids := make([]string, 0, len(features))
	valences := make([]*float64, 0, len(features))
	energies := make([]*float64, 0, len(features))
	instrumentals := make([]*float64, 0, len(features))
	acoustics := make([]*float64, 0, len(features))
	fetchedAts := make([]time.Time, 0, len(features))

	now := time.Now()
	for id, f := range features {
		ids = append(ids, id)
		valences = append(valences, f.Valence)
		energies = append(energies, f.Energy)
		instrumentals = append(instrumentals, f.Instrumentalness)
		acoustics = append(acoustics, f.Acousticness)
		fetchedAts = append(fetchedAts, now)
	}

	if _, err := r.pool.Exec(ctx, query, ids, valences, energies, instrumentals, acoustics, fetchedAts); err != nil {
		return fmt.Errorf("upserting cached features: %w", err)
	}
	return nil
}
