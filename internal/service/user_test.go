package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-service/pkg/models"
)

func TestUserCreateAndLogin(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	auth := NewAuthService(db, "test-secret", time.Hour)

	u, err := users.Create(context.Background(), &models.UserRequest{
		Username: "frank", Password: "pw123", FullName: "Frank F", Role: models.RoleOperator,
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.PasswordHash == "pw123" || u.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if !u.IsActive {
		t.Error("new users default to active")
	}

	if _, _, err := auth.Login(context.Background(), "frank", "pw123"); err != nil {
		t.Errorf("created user cannot log in: %v", err)
	}
}

func TestUserCreatedInactiveStaysInactive(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	auth := NewAuthService(db, "test-secret", time.Hour)

	inactive := false
	u, err := users.Create(context.Background(), &models.UserRequest{
		Username: "ivan", Password: "pw123", IsActive: &inactive,
	}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var stored models.User
	if err := db.First(&stored, u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IsActive {
		t.Error("user created inactive was persisted active")
	}
	if _, _, err := auth.Login(context.Background(), "ivan", "pw123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user login = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserCreateValidation(t *testing.T) {
	users := NewUserService(newTestDB(t))

	if _, err := users.Create(context.Background(), &models.UserRequest{Username: "x"}, testOp); !errors.Is(err, ErrValidation) {
		t.Errorf("missing password = %v, want ErrValidation", err)
	}
	if _, err := users.Create(context.Background(), &models.UserRequest{
		Username: "x", Password: "pw", Role: "superuser",
	}, testOp); !errors.Is(err, ErrValidation) {
		t.Errorf("bad role = %v, want ErrValidation", err)
	}
}

func TestUserUpdatePasswordAndDeactivate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	auth := NewAuthService(db, "test-secret", time.Hour)

	u, err := users.Create(context.Background(), &models.UserRequest{Username: "grace", Password: "old"}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := users.Update(context.Background(), u.ID, &models.UserRequest{Password: "new"}, testOp); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, _, err := auth.Login(context.Background(), "grace", "old"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still works")
	}
	if _, _, err := auth.Login(context.Background(), "grace", "new"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	inactive := false
	if _, err := users.Update(context.Background(), u.ID, &models.UserRequest{IsActive: &inactive}, testOp); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, _, err := auth.Login(context.Background(), "grace", "new"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("deactivated user can still log in")
	}
}

func TestUserCannotDeleteOwnAccount(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	u, err := users.Create(context.Background(), &models.UserRequest{Username: "heidi", Password: "pw"}, testOp)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	self := Operator{ID: u.ID, Name: u.Username}
	if err := users.Delete(context.Background(), u.ID, self); !errors.Is(err, ErrValidation) {
		t.Errorf("self delete = %v, want ErrValidation", err)
	}
	if err := users.Delete(context.Background(), u.ID, testOp); err != nil {
		t.Errorf("delete by another operator: %v", err)
	}
	if _, err := users.Get(context.Background(), u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted user still resolvable: %v", err)
	}
}
