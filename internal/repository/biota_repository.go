package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/entities"
	"aquabio-be/internal/models"
)

// BiotaPatch is a partial update: nil fields are left untouched.
type BiotaPatch struct {
	Name        *string
	Location    *string
	Category    *string
	Description *string
	Image       *string
}

// IsEmpty reports whether the patch would change nothing.
func (p BiotaPatch) IsEmpty() bool {
	return p.Name == nil && p.Location == nil && p.Category == nil &&
		p.Description == nil && p.Image == nil
}

// BiotaRepository defines the interface for catalog database operations
type BiotaRepository interface {
	Create(ctx context.Context, entry *entities.BiotaEntry) (*entities.BiotaEntry, error)
	FindByID(ctx context.Context, id int64) (*entities.BiotaEntry, error)
	List(ctx context.Context, filters models.BiotaFilters) ([]*entities.BiotaEntry, error)
	Update(ctx context.Context, id int64, patch BiotaPatch) error
	Delete(ctx context.Context, id int64) error
}

type biotaRepository struct {
	db *sql.DB
}

// NewBiotaRepository creates a new biota repository
func NewBiotaRepository(db *sql.DB) BiotaRepository {
	return &biotaRepository{db: db}
}

const biotaColumns = "id, name, location, category, description, image, photographer, user_id, created_at"

func scanBiota(row *sql.Row) (*entities.BiotaEntry, error) {
	var entry entities.BiotaEntry
	err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Location,
		&entry.Category,
		&entry.Description,
		&entry.Image,
		&entry.Photographer,
		&entry.UserID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new catalog entry and returns the stored row.
func (r *biotaRepository) Create(ctx context.Context, entry *entities.BiotaEntry) (*entities.BiotaEntry, error) {
	query := `
		INSERT INTO biota (name, location, category, description, image, photographer, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + biotaColumns

	created, err := scanBiota(r.db.QueryRowContext(ctx, query,
		entry.Name,
		entry.Location,
		entry.Category,
		entry.Description,
		entry.Image,
		entry.Photographer,
		entry.UserID,
	))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create biota: %v", apperrors.ErrStorage, err)
	}
	return created, nil
}

// FindByID returns a single entry or ErrNotFound.
func (r *biotaRepository) FindByID(ctx context.Context, id int64) (*entities.BiotaEntry, error) {
	query := `
		SELECT ` + biotaColumns + `
		FROM biota
		WHERE id = $1`

	entry, err := scanBiota(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("biota %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find biota: %v", apperrors.ErrStorage, err)
	}
	return entry, nil
}

// List returns the entries matching every supplied filter, newest first.
// Search is a substring match over name, description, and location;
// category and location filters require exact equality. The predicates
// are independent and combined with AND.
func (r *biotaRepository) List(ctx context.Context, filters models.BiotaFilters) ([]*entities.BiotaEntry, error) {
	query := "SELECT " + biotaColumns + " FROM biota WHERE 1=1"
	var args []interface{}
	paramIndex := 1

	if filters.Search != "" {
		query += fmt.Sprintf(" AND (name LIKE $%d OR description LIKE $%d OR location LIKE $%d)",
			paramIndex, paramIndex+1, paramIndex+2)
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern, pattern)
		paramIndex += 3
	}
	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", paramIndex)
		args = append(args, filters.Category)
		paramIndex++
	}
	if filters.Location != "" {
		query += fmt.Sprintf(" AND location = $%d", paramIndex)
		args = append(args, filters.Location)
		paramIndex++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list biota: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	entries := []*entities.BiotaEntry{}
	for rows.Next() {
		var entry entities.BiotaEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Location,
			&entry.Category,
			&entry.Description,
			&entry.Image,
			&entry.Photographer,
			&entry.UserID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan biota: %v", apperrors.ErrStorage, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to list biota: %v", apperrors.ErrStorage, err)
	}
	return entries, nil
}

// Update applies the non-nil patch fields with a dynamically built SET
// clause.
func (r *biotaRepository) Update(ctx context.Context, id int64, patch BiotaPatch) error {
	var setClauses []string
	var args []interface{}
	paramIndex := 1

	add := func(column string, value *string) {
		if value != nil {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, paramIndex))
			args = append(args, *value)
			paramIndex++
		}
	}
	add("name", patch.Name)
	add("location", patch.Location)
	add("category", patch.Category)
	add("description", patch.Description)
	add("image", patch.Image)

	if len(setClauses) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	query := fmt.Sprintf("UPDATE biota SET %s WHERE id = $%d", strings.Join(setClauses, ", "), paramIndex)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: failed to update biota: %v", apperrors.ErrStorage, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("biota %w", apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes an entry, reporting ErrNotFound when no row matched.
func (r *biotaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM biota WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete biota: %v", apperrors.ErrStorage, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("biota %w", apperrors.ErrNotFound)
	}
	return nil
}
