package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/medlink/doctor-dispatch/internal/model"
)

var (
	// ErrDirectoryUnavailable marks a directory store I/O failure, so
	// callers can tell "directory down" apart from "no candidates".
	ErrDirectoryUnavailable = errors.New("doctor directory unavailable")

	// ErrDoctorNotFound means the id has no directory record.
	ErrDoctorNotFound = errors.New("doctor not found")
)

// Repository provides read access to the doctors directory table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new doctor directory repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// FindEligibleByLanguage returns active doctors with a push token whose
// language set contains lang, in stable store order. An empty result is
// not an error; an I/O failure wraps ErrDirectoryUnavailable.
func (r *Repository) FindEligibleByLanguage(ctx context.Context, lang string) ([]model.Doctor, error) {
	query := `
		SELECT id, name, languages, push_token
		FROM doctors
		WHERE is_active = TRUE
		  AND push_token IS NOT NULL
		  AND push_token <> ''
		  AND $1 = ANY(languages)
		ORDER BY id;
    `

	rows, err := r.db.QueryContext(ctx, query, lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	defer rows.Close()

	var doctors []model.Doctor
	for rows.Next() {
		d := model.Doctor{IsActive: true}
		if err := rows.Scan(&d.ID, &d.Name, pq.Array(&d.Languages), &d.PushToken); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	return doctors, nil
}

// GetByID returns a single directory record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.Doctor, error) {
	query := `
		SELECT id, name, languages, is_active, COALESCE(push_token, '')
		FROM doctors
		WHERE id = $1;
    `

	var d model.Doctor
	err := r.db.Master.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.Name, pq.Array(&d.Languages), &d.IsActive, &d.PushToken)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Doctor{}, ErrDoctorNotFound
	}
	if err != nil {
		return model.Doctor{}, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	return d, nil
}
