package service_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func TestClinicUserAuthentication(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateClinicUser(db, "Ana", "sup3r-secret", "Ana Silva"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Username matching is case-insensitive.
	user, err := service.AuthenticateClinicUser(db, "ana", "sup3r-secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "ana" || user.DisplayName != "Ana Silva" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := service.AuthenticateClinicUser(db, "ana", "wrong-password"); err == nil {
		t.Fatalf("expected bad password to fail")
	}
	if _, err := service.AuthenticateClinicUser(db, "nobody", "sup3r-secret"); err == nil {
		t.Fatalf("expected unknown user to fail")
	}
}

func TestClinicUserPasswordPolicy(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateClinicUser(db, "ana", "short", ""); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
	if _, err := service.CreateClinicUser(db, "", "sup3r-secret", ""); err == nil {
		t.Fatalf("expected empty username to be rejected")
	}
}

func TestClinicUserUniqueUsername(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreateClinicUser(db, "ana", "sup3r-secret", ""); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := service.CreateClinicUser(db, "ANA", "another-secret", ""); err == nil {
		t.Fatalf("expected duplicate username to be rejected")
	}
}
