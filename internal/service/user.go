package service

import (
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jandersaraiva/nutrivida/internal/model"
)

// dummyHash is compared against when a login username is unknown, keeping
// response time constant and preventing username enumeration by timing.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("nutrivida-dummy"), bcrypt.DefaultCost)

func CreateClinicUser(db *sql.DB, username, password, displayName string) (int64, error) {
	username = normalizeName(username)
	if username == "" {
		return 0, fmt.Errorf("username is required")
	}
	if len(password) < 8 {
		return 0, fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	res, err := db.Exec(`
INSERT INTO clinic_users(username, password_hash, display_name)
VALUES(?, ?, ?)
`, username, string(hash), strings.TrimSpace(displayName))
	if err != nil {
		return 0, fmt.Errorf("insert clinic user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted user id: %w", err)
	}
	return id, nil
}

// AuthenticateClinicUser verifies credentials. The bcrypt comparison always
// runs, even for unknown usernames.
func AuthenticateClinicUser(db *sql.DB, username, password string) (*model.ClinicUser, error) {
	username = normalizeName(username)
	var u model.ClinicUser
	lookupErr := db.QueryRow(`
SELECT id, username, password_hash, display_name, created_at
FROM clinic_users
WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.CreatedAt)

	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(password))

	if lookupErr != nil || compareErr != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &u, nil
}
