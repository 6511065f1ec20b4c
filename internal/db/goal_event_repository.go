package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/fragbots/internal/model"
)

// GoalEventRepository stores goal decision telemetry.
type GoalEventRepository struct {
	db *pgxpool.Pool
}

// NewGoalEventRepository creates a new GoalEventRepository.
func NewGoalEventRepository(db *pgxpool.Pool) *GoalEventRepository {
	return &GoalEventRepository{db: db}
}

// InsertBatch copies events into goal_events.
func (r *GoalEventRepository) InsertBatch(ctx context.Context, events []model.GoalEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []any{
			ev.MatchID,
			ev.Bot,
			int32(ev.Entity),
			int16(ev.Kind),
			ev.Score,
			ev.LevelTime,
			ev.CreatedAt,
		})
	}

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"goal_events"},
		[]string{"match_id", "bot", "entity", "kind", "score", "level_time", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting %d goal events: %w", len(events), err)
	}
	return nil
}

// LoadByMatch loads the events of a match ordered by level time.
func (r *GoalEventRepository) LoadByMatch(ctx context.Context, matchID uuid.UUID) ([]model.GoalEvent, error) {
	query := `
		SELECT match_id, bot, entity, kind, score, level_time, created_at
		FROM goal_events
		WHERE match_id = $1
		ORDER BY level_time, id
	`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying goal events of match %s: %w", matchID, err)
	}
	defer rows.Close()

	var result []model.GoalEvent
	for rows.Next() {
		var (
			ev     model.GoalEvent
			entity int32
			kind   int16
		)
		if err := rows.Scan(&ev.MatchID, &ev.Bot, &entity, &kind, &ev.Score, &ev.LevelTime, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal event row: %w", err)
		}
		ev.Entity = model.EntityID(entity)
		ev.Kind = model.GoalEventKind(kind)
		result = append(result, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal event rows: %w", err)
	}

	return result, nil
}

// CountByKind returns per-kind event counts of a match.
func (r *GoalEventRepository) CountByKind(ctx context.Context, matchID uuid.UUID) (map[model.GoalEventKind]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT kind, count(*) FROM goal_events WHERE match_id = $1 GROUP BY kind`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("counting goal events of match %s: %w", matchID, err)
	}
	defer rows.Close()

	counts := make(map[model.GoalEventKind]int)
	for rows.Next() {
		var (
			kind  int16
			count int64
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scanning goal event count: %w", err)
		}
		counts[model.GoalEventKind(kind)] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal event counts: %w", err)
	}
	return counts, nil
}
