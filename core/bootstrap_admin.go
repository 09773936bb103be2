package core

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BootstrapAdmin creates the initial admin account when none exists.
// It is idempotent: if the configured admin email is already registered, it
// does nothing.
func BootstrapAdmin(ctx context.Context, db *pgxpool.Pool, accounts AccountRepository, cfg Config) error {
	if !cfg.BootstrapAdminEnabled {
		return nil
	}

	if _, err := accounts.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	password, err := generatePassword(32)
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	account, err := accounts.Create(ctx, "Site", "Admin", cfg.AdminEmail, hash)
	if err != nil {
		return err
	}
	// Accounts are created as Customer; promote the bootstrap one.
	const q = `UPDATE account SET account_type='Admin' WHERE account_id=$1`
	if _, err := db.Exec(ctx, q, account.ID); err != nil {
		return err
	}

	if cfg.InitialAdminPasswordPath != "" {
		if err := os.WriteFile(cfg.InitialAdminPasswordPath, []byte(password+"\n"), 0o600); err != nil {
			return err
		}
		log.Printf("initial admin created; credentials written to %s", cfg.InitialAdminPasswordPath)
	} else {
		log.Printf("initial admin created email=%s password=%s", cfg.AdminEmail, password)
	}

	return nil
}

func generatePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	// base64 encoding: need 3/4 overhead; ensure enough bytes
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
