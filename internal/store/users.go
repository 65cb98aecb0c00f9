package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrNotFound is returned by lookups that match no user.
var ErrNotFound = errors.New("user not found")

type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FamilyFile   string    `json:"family_file"`
	StateJSON    string    `json:"state_json"`
	PublicSlug   string    `json:"public_slug"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
}

// Users persists accounts in Postgres.
type Users struct {
	conn pgxConn
}

func NewUsers(conn pgxConn) *Users {
	return &Users{conn: conn}
}

const userColumns = "id, email, password_hash, family_file, state_json, public_slug, is_public, created_at"

// DefaultState is the UI state a fresh account starts with: the viewer
// pointed at the user's own family.
const DefaultState = `{"family_id": "me"}`

func scanUser(row pgxv5.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FamilyFile, &u.StateJSON, &u.PublicSlug, &u.IsPublic, &u.CreatedAt)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

func (s *Users) Create(ctx context.Context, email, passwordHash string) (User, error) {
	row := s.conn.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, state_json)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, passwordHash, DefaultState,
	)

	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (s *Users) GetByID(ctx context.Context, id int64) (User, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (s *Users) GetByEmail(ctx context.Context, email string) (User, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

// GetPublicBySlug only matches users who explicitly made their tree public.
// A private user with the same slug looks identical to a missing one.
func (s *Users) GetPublicBySlug(ctx context.Context, slug string) (User, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE public_slug = $1 AND is_public = TRUE`,
		slug,
	)
	return scanUser(row)
}

func (s *Users) SetFamilyFile(ctx context.Context, id int64, path string) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE users SET family_file = $2 WHERE id = $1`,
		id, path,
	)
	if err != nil {
		return fmt.Errorf("failed to set family file: %w", err)
	}
	return nil
}

func (s *Users) SetPublicSlug(ctx context.Context, id int64, slug string, isPublic bool) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE users SET public_slug = $2, is_public = $3 WHERE id = $1`,
		id, slug, isPublic,
	)
	if err != nil {
		return fmt.Errorf("failed to set public slug: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
