package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/navcore/internal/model"
	"github.com/udisondev/navcore/internal/world"
)

// ObstacleRepository handles map obstacle persistence.
type ObstacleRepository struct {
	pool *pgxpool.Pool
}

// NewObstacleRepository creates a new obstacle repository.
func NewObstacleRepository(pool *pgxpool.Pool) *ObstacleRepository {
	return &ObstacleRepository{pool: pool}
}

// LoadByMap loads all obstacles for a map.
func (r *ObstacleRepository) LoadByMap(ctx context.Context, mapID int32) ([]model.Obstacle, error) {
	query := `
		SELECT id, map_id, shape, x1, z1, x2, z2, radius
		FROM map_obstacles
		WHERE map_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("loading obstacles for map %d: %w", mapID, err)
	}
	defer rows.Close()

	obstacles := make([]model.Obstacle, 0, 64) // pre-allocate for typical count

	for rows.Next() {
		var o model.Obstacle
		if err := rows.Scan(&o.ID, &o.MapID, &o.Shape, &o.X1, &o.Z1, &o.X2, &o.Z2, &o.Radius); err != nil {
			return nil, fmt.Errorf("scanning obstacle row: %w", err)
		}
		obstacles = append(obstacles, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating obstacle rows: %w", err)
	}

	return obstacles, nil
}

// Insert persists a new obstacle and returns its assigned ID.
func (r *ObstacleRepository) Insert(ctx context.Context, o model.Obstacle) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, fmt.Errorf("validating obstacle: %w", err)
	}

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO map_obstacles (map_id, shape, x1, z1, x2, z2, radius)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		o.MapID, o.Shape, o.X1, o.Z1, o.X2, o.Z2, o.Radius,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting obstacle: %w", err)
	}
	return id, nil
}

// Delete removes an obstacle by ID.
func (r *ObstacleRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM map_obstacles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting obstacle %d: %w", id, err)
	}
	return nil
}

// ApplyObstacles stamps stored obstacles onto the region manager's grids.
// Unknown shapes are skipped; the row constraint should make them
// impossible, but stale data must not break world loading.
func ApplyObstacles(m *world.Manager, obstacles []model.Obstacle) int {
	applied := 0
	for _, o := range obstacles {
		switch o.Shape {
		case model.ObstacleRect:
			m.BlockRect(o.X1, o.Z1, o.X2, o.Z2)
			applied++
		case model.ObstacleCircle:
			m.BlockCircle(o.X1, o.Z1, o.Radius)
			applied++
		}
	}
	return applied
}
