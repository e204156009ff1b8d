// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.User{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := q.Order("username ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, req *models.UserRequest, op Operator) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, invalidf("username and password are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleOperator
	}
	if role != models.RoleAdmin && role != models.RoleOperator {
		return nil, invalidf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         role,
		IsActive:     true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationCreate, "user", fmt.Sprint(user.ID), user.Username, nil, user, op)
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req *models.UserRequest, op Operator) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *user

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if req.Role != models.RoleAdmin && req.Role != models.RoleOperator {
			return nil, invalidf("unknown role %q", req.Role)
		}
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}

	logOperation(ctx, s.db, models.OperationUpdate, "user", fmt.Sprint(user.ID), user.Username, before, user, op)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint, op Operator) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == op.ID {
		return invalidf("cannot delete your own account")
	}
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return err
	}
	logOperation(ctx, s.db, models.OperationDelete, "user", fmt.Sprint(user.ID), user.Username, user, nil, op)
	return nil
}
