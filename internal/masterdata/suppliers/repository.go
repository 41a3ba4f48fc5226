package suppliers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
	"github.com/gestionpet/gestionpet/internal/platform/db"
)

// Repository is the persistence collaborator for suppliers. Save inserts
// when ID is zero and updates otherwise.
type Repository interface {
	FindAll(ctx context.Context) ([]Supplier, error)
	FindByID(ctx context.Context, id int64) (Supplier, error)
	Save(ctx context.Context, supplier Supplier) (Supplier, error)
	Delete(ctx context.Context, supplier Supplier) error
}

type repository struct {
	db db.Querier
}

// NewRepository returns a Repository backed by q, normally a *pgxpool.Pool.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) FindAll(ctx context.Context) ([]Supplier, error) {
	query := `SELECT id, nombre, contacto, telefono, correo, direccion FROM proveedores ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list: %w", err)
	}
	defer rows.Close()

	suppliers := make([]Supplier, 0)
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address); err != nil {
			return nil, fmt.Errorf("suppliers: scan: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *repository) FindByID(ctx context.Context, id int64) (Supplier, error) {
	query := `SELECT id, nombre, contacto, telefono, correo, direccion FROM proveedores WHERE id = $1`
	var s Supplier
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, fmt.Errorf("%w: supplier %d", shared.ErrNotFound, id)
		}
		return Supplier{}, fmt.Errorf("suppliers: get %d: %w", id, err)
	}
	return s, nil
}

func (r *repository) Save(ctx context.Context, supplier Supplier) (Supplier, error) {
	if supplier.ID == 0 {
		query := `INSERT INTO proveedores (nombre, contacto, telefono, correo, direccion) VALUES ($1, $2, $3, $4, $5) RETURNING id`
		err := r.db.QueryRow(ctx, query, supplier.Name, supplier.Contact, supplier.Phone, supplier.Email, supplier.Address).Scan(&supplier.ID)
		if err != nil {
			return Supplier{}, mapWriteError("insert", supplier, err)
		}
		return supplier, nil
	}

	query := `UPDATE proveedores SET nombre = $1, contacto = $2, telefono = $3, correo = $4, direccion = $5 WHERE id = $6`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.Contact, supplier.Phone, supplier.Email, supplier.Address, supplier.ID)
	if err != nil {
		return Supplier{}, mapWriteError("update", supplier, err)
	}
	if tag.RowsAffected() == 0 {
		return Supplier{}, fmt.Errorf("%w: supplier %d", shared.ErrNotFound, supplier.ID)
	}
	return supplier, nil
}

func (r *repository) Delete(ctx context.Context, supplier Supplier) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM proveedores WHERE id = $1`, supplier.ID)
	if err != nil {
		return fmt.Errorf("suppliers: delete %d: %w", supplier.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %d", shared.ErrNotFound, supplier.ID)
	}
	return nil
}

func mapWriteError(op string, supplier Supplier, err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: supplier email %q is already registered", shared.ErrConflict, supplier.Email)
	}
	return fmt.Errorf("suppliers: %s: %w", op, err)
}
