package materials

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
	"github.com/gestionpet/gestionpet/internal/platform/db"
)

// Repository is the persistence collaborator for materials. Save inserts
// when ID is zero and updates otherwise.
type Repository interface {
	FindAll(ctx context.Context) ([]Material, error)
	FindByID(ctx context.Context, id int64) (Material, error)
	FindByName(ctx context.Context, name string) (Material, error)
	Save(ctx context.Context, material Material) (Material, error)
	Delete(ctx context.Context, material Material) error
}

type repository struct {
	db db.Querier
}

// NewRepository returns a Repository backed by q, normally a *pgxpool.Pool.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const selectColumns = `SELECT id, nombre, COALESCE(descripcion, '') FROM materiales`

func (r *repository) FindAll(ctx context.Context) ([]Material, error) {
	rows, err := r.db.Query(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("materials: list: %w", err)
	}
	defer rows.Close()

	materials := make([]Material, 0)
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("materials: scan: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *repository) FindByID(ctx context.Context, id int64) (Material, error) {
	var m Material
	err := r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id).Scan(&m.ID, &m.Name, &m.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, fmt.Errorf("%w: material %d", shared.ErrNotFound, id)
		}
		return Material{}, fmt.Errorf("materials: get %d: %w", id, err)
	}
	return m, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (Material, error) {
	var m Material
	err := r.db.QueryRow(ctx, selectColumns+` WHERE nombre = $1`, name).Scan(&m.ID, &m.Name, &m.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, fmt.Errorf("%w: material %q", shared.ErrNotFound, name)
		}
		return Material{}, fmt.Errorf("materials: get by name: %w", err)
	}
	return m, nil
}

func (r *repository) Save(ctx context.Context, material Material) (Material, error) {
	if material.ID == 0 {
		query := `INSERT INTO materiales (nombre, descripcion) VALUES ($1, $2) RETURNING id`
		if err := r.db.QueryRow(ctx, query, material.Name, material.Description).Scan(&material.ID); err != nil {
			return Material{}, mapWriteError("insert", material, err)
		}
		return material, nil
	}

	query := `UPDATE materiales SET nombre = $1, descripcion = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, material.Name, material.Description, material.ID)
	if err != nil {
		return Material{}, mapWriteError("update", material, err)
	}
	if tag.RowsAffected() == 0 {
		return Material{}, fmt.Errorf("%w: material %d", shared.ErrNotFound, material.ID)
	}
	return material, nil
}

func (r *repository) Delete(ctx context.Context, material Material) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM materiales WHERE id = $1`, material.ID)
	if err != nil {
		return fmt.Errorf("materials: delete %d: %w", material.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: material %d", shared.ErrNotFound, material.ID)
	}
	return nil
}

func mapWriteError(op string, material Material, err error) error {
	if db.IsUniqueViolation(err) {
		return conflict(material.Name)
	}
	return fmt.Errorf("materials: %s: %w", op, err)
}

func conflict(name string) error {
	return fmt.Errorf("%w: material %q already exists", shared.ErrConflict, name)
}
