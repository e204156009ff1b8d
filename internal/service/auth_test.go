package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-service/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username, password, role string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{Username: username, PasswordHash: string(hash), Role: role, IsActive: active}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewAuthService(db, "test-secret", time.Hour)
	seedUser(t, db, "alice", "s3cret", models.RoleAdmin, true)

	token, user, err := s.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || user.Username != "alice" {
		t.Fatalf("token=%q user=%+v", token, user)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleAdmin || claims.Subject != "alice" {
		t.Errorf("claims = %+v", claims)
	}

	// Login leaves an audit trail.
	var count int64
	db.Model(&models.OperationLog{}).Where("operation_type = ?", models.OperationLogin).Count(&count)
	if count != 1 {
		t.Errorf("login oplog entries = %d, want 1", count)
	}
}

func TestLoginRejections(t *testing.T) {
	db := newTestDB(t)
	s := NewAuthService(db, "test-secret", time.Hour)
	seedUser(t, db, "bob", "pw", models.RoleOperator, true)
	seedUser(t, db, "carol", "pw", models.RoleOperator, false)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "bob", "nope"},
		{"unknown user", "nobody", "pw"},
		{"inactive account", "carol", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Login(context.Background(), tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "dave", "pw", models.RoleOperator, true)

	issuer := NewAuthService(db, "secret-a", time.Hour)
	token, _, err := issuer.Login(context.Background(), "dave", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	verifier := NewAuthService(db, "secret-b", time.Hour)
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}

	if _, err := issuer.ValidateToken(token + "x"); err == nil {
		t.Error("corrupted token was accepted")
	}
	if _, err := issuer.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token was accepted")
	}
}

func TestExpiredToken(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "erin", "pw", models.RoleOperator, true)

	s := NewAuthService(db, "test-secret", -time.Minute)
	token, _, err := s.Login(context.Background(), "erin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := s.ValidateToken(token); err == nil {
		t.Error("expired token was accepted")
	}
}
