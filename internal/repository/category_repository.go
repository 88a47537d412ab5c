package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mentorhub/backend/internal/model"
)

// CategoryRepo manages the category catalog. Mutation is superuser-only at
// the policy layer; the repository only guarantees name uniqueness and the
// delete cascade over join rows.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByName fetches a category by its unique name.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM categories WHERE name=? LIMIT 1", strings.TrimSpace(name)).
		Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, ErrNotFound
	}
	return c, err
}

// Create inserts a category and returns it. Duplicate names fail with
// ErrCategoryExists.
func (r *CategoryRepo) Create(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Category{}, ErrCategoryExists
		}
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: uint64(id), Name: name}, nil
}

// Rename changes a category's name. The old name must exist and the new one
// must be free.
func (r *CategoryRepo) Rename(ctx context.Context, oldName, newName string) (model.Category, error) {
	c, err := r.GetByName(ctx, oldName)
	if err != nil {
		return model.Category{}, err
	}
	newName = strings.TrimSpace(newName)
	if _, err := r.DB.ExecContext(ctx, "UPDATE categories SET name=? WHERE id=?", newName, c.ID); err != nil {
		if isDuplicateKey(err) {
			return model.Category{}, ErrCategoryExists
		}
		return model.Category{}, err
	}
	c.Name = newName
	return c, nil
}

// Delete removes a category along with its event and skill join rows. The
// tagged events and mentor profiles themselves are untouched.
func (r *CategoryRepo) Delete(ctx context.Context, name string) error {
	c, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM event_categories WHERE category_id=?", c.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM mentor_skills WHERE category_id=?", c.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id=?", c.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// querier is satisfied by both *sql.DB and *sql.Tx so category resolution
// can run inside or outside a transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// categoryIDsByName resolves category names to ids, preserving input order.
// Any unknown name fails the whole resolution with ErrUnknownCategory.
func categoryIDsByName(ctx context.Context, q querier, names []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		var id uint64
		err := q.QueryRowContext(ctx, "SELECT id FROM categories WHERE name=? LIMIT 1", strings.TrimSpace(name)).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownCategory
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
