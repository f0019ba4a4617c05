package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
)

type ProfileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

const userColumns = `id, email, password_hash, name, role, phone, image, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Phone, &u.Image,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *ProfileStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, phone, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		newID(), u.Email, u.PasswordHash, u.Name, u.Role, u.Phone, u.Image)
	return scanUser(row)
}

func (s *ProfileStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanUser(row)
}

func (s *ProfileStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
	return scanUser(row)
}

func (s *ProfileStore) UpdateUserPhone(ctx context.Context, id uuid.UUID, phone string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET phone = $2, updated_at = now() WHERE id = $1`, id, phone)
	if err != nil {
		return fmt.Errorf("update phone: %w", err)
	}
	return nil
}

func (s *ProfileStore) UpdateUserImage(ctx context.Context, id uuid.UUID, image string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET image = $2, updated_at = now() WHERE id = $1`, id, image)
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Doctor profiles
// ---------------------------------------------------------------------------

const doctorColumns = `id, user_id, display_name, specialization, bio, image, available_hours, is_accepting, created_at, updated_at`

func scanDoctor(row pgx.Row) (*model.DoctorProfile, error) {
	var d model.DoctorProfile
	err := row.Scan(&d.ID, &d.UserID, &d.DisplayName, &d.Specialization, &d.Bio, &d.Image,
		&d.AvailableHours, &d.IsAccepting, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan doctor: %w", err)
	}
	return &d, nil
}

func (s *ProfileStore) CreateDoctor(ctx context.Context, d *model.DoctorProfile) (*model.DoctorProfile, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO doctors (id, user_id, display_name, specialization, bio, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+doctorColumns,
		newID(), d.UserID, d.DisplayName, d.Specialization, d.Bio, d.Image)
	return scanDoctor(row)
}

func (s *ProfileStore) GetDoctorByID(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	return scanDoctor(row)
}

func (s *ProfileStore) GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE user_id = $1`, userID)
	return scanDoctor(row)
}

// ListDoctors returns accepting doctors for the booking flow.
func (s *ProfileStore) ListDoctors(ctx context.Context, acceptingOnly bool) ([]*model.DoctorProfile, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors`
	if acceptingOnly {
		query += ` WHERE is_accepting`
	}
	query += ` ORDER BY display_name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var out []*model.DoctorProfile
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *ProfileStore) UpdateDoctor(ctx context.Context, d *model.DoctorProfile) (*model.DoctorProfile, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE doctors
		SET display_name = $2, specialization = $3, bio = $4, image = $5,
		    is_accepting = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+doctorColumns,
		d.ID, d.DisplayName, d.Specialization, d.Bio, d.Image, d.IsAccepting)
	return scanDoctor(row)
}
