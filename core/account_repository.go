package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRecord is the identity row stored in persistence. PasswordHash
// never leaves the auth service / hasher boundary.
type AccountRecord struct {
	ID           int64
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	Type         Role
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, firstname, lastname, email, passwordHash string) (AccountRecord, error)
	GetByEmail(ctx context.Context, email string) (AccountRecord, error)
	GetByID(ctx context.Context, id int64) (AccountRecord, error)
	UpdateProfile(ctx context.Context, firstname, lastname, email string, id int64) (AccountRecord, error)
	UpdatePassword(ctx context.Context, passwordHash string, id int64) (AccountRecord, error)
}

// PgAccountRepository implements AccountRepository using pgxpool.
type PgAccountRepository struct {
	db *pgxpool.Pool
}

func NewPgAccountRepository(db *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

func (r *PgAccountRepository) Create(ctx context.Context, firstname, lastname, email, passwordHash string) (AccountRecord, error) {
	const q = `INSERT INTO account (account_firstname, account_lastname, account_email, account_password)
		VALUES ($1,$2,$3,$4)
		RETURNING account_id, account_firstname, account_lastname, account_email, account_password, account_type`
	a, err := scanAccount(r.db.QueryRow(ctx, q, firstname, lastname, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AccountRecord{}, ErrDuplicateEmail
		}
		return AccountRecord{}, err
	}
	return a, nil
}

func (r *PgAccountRepository) GetByEmail(ctx context.Context, email string) (AccountRecord, error) {
	const q = `SELECT account_id, account_firstname, account_lastname, account_email, account_password, account_type
		FROM account WHERE account_email=$1`
	return r.one(ctx, q, email)
}

func (r *PgAccountRepository) GetByID(ctx context.Context, id int64) (AccountRecord, error) {
	const q = `SELECT account_id, account_firstname, account_lastname, account_email, account_password, account_type
		FROM account WHERE account_id=$1`
	return r.one(ctx, q, id)
}

func (r *PgAccountRepository) UpdateProfile(ctx context.Context, firstname, lastname, email string, id int64) (AccountRecord, error) {
	const q = `UPDATE account SET account_firstname=$1, account_lastname=$2, account_email=$3 WHERE account_id=$4
		RETURNING account_id, account_firstname, account_lastname, account_email, account_password, account_type`
	return r.one(ctx, q, firstname, lastname, email, id)
}

func (r *PgAccountRepository) UpdatePassword(ctx context.Context, passwordHash string, id int64) (AccountRecord, error) {
	const q = `UPDATE account SET account_password=$1 WHERE account_id=$2
		RETURNING account_id, account_firstname, account_lastname, account_email, account_password, account_type`
	return r.one(ctx, q, passwordHash, id)
}

func (r *PgAccountRepository) one(ctx context.Context, q string, args ...any) (AccountRecord, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccountRecord{}, ErrAccountNotFound
		}
		return AccountRecord{}, err
	}
	return a, nil
}

func scanAccount(row pgx.Row) (AccountRecord, error) {
	var a AccountRecord
	var role string
	if err := row.Scan(&a.ID, &a.Firstname, &a.Lastname, &a.Email, &a.PasswordHash, &role); err != nil {
		return AccountRecord{}, err
	}
	a.Type = ParseRole(role)
	return a, nil
}
