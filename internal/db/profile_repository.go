package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/fragbots/internal/model"
)

// ProfileRepository manages bot profiles in the database.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// LoadEnabled loads all enabled bot profiles ordered by name.
func (r *ProfileRepository) LoadEnabled(ctx context.Context) ([]model.BotProfile, error) {
	query := `
		SELECT name, skill, move_mask, enabled
		FROM bot_profiles
		WHERE enabled
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying bot profiles: %w", err)
	}
	defer rows.Close()

	result := make([]model.BotProfile, 0, 16)
	for rows.Next() {
		var (
			p    model.BotProfile
			mask int32
		)
		if err := rows.Scan(&p.Name, &p.Skill, &mask, &p.Enabled); err != nil {
			return nil, fmt.Errorf("scanning bot profile row: %w", err)
		}
		p.MoveMask = model.MoveMask(mask)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bot profile rows: %w", err)
	}

	return result, nil
}

// Upsert inserts or updates a profile by name.
func (r *ProfileRepository) Upsert(ctx context.Context, p model.BotProfile) error {
	query := `
		INSERT INTO bot_profiles (name, skill, move_mask, enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET skill = EXCLUDED.skill,
		    move_mask = EXCLUDED.move_mask,
		    enabled = EXCLUDED.enabled,
		    updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, p.Name, p.Skill, int32(p.MoveMask), p.Enabled); err != nil {
		return fmt.Errorf("upserting bot profile %q: %w", p.Name, err)
	}
	slog.Debug("bot profile saved", "name", p.Name, "skill", p.Skill)
	return nil
}

// SetEnabled toggles a profile. Returns false if the profile does not exist.
func (r *ProfileRepository) SetEnabled(ctx context.Context, name string, enabled bool) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE bot_profiles SET enabled = $1, updated_at = now() WHERE name = $2`,
		enabled, name,
	)
	if err != nil {
		return false, fmt.Errorf("updating bot profile %q: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}
