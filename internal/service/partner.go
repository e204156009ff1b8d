// internal/service/partner.go
package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/cozesync"
	"inventory-service/pkg/models"

	"gorm.io/gorm"
)

// SupplierService and CustomerService are deliberately parallel: the two
// entities are FK targets of different order tables and must stay separate.

type SupplierService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
}

func NewSupplierService(db *gorm.DB, dispatcher *cozesync.Dispatcher) *SupplierService {
	return &SupplierService{db: db, dispatcher: dispatcher}
}

func (s *SupplierService) List(ctx context.Context, keyword string, limit, offset int) ([]models.Supplier, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Supplier{})
	if keyword != "" {
		q = q.Where("name LIKE ?", "%"+keyword+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var suppliers []models.Supplier
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&suppliers).Error
	return suppliers, total, err
}

func (s *SupplierService) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (s *SupplierService) Create(ctx context.Context, req *models.PartnerRequest, op Operator) (*models.Supplier, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	supplier := models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Remark:        req.Remark,
	}
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationCreate, "supplier", fmt.Sprint(supplier.ID), supplier.Name, nil, supplier, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "suppliers", supplier.ID, models.SyncOpInsert)
	}
	return &supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, req *models.PartnerRequest, op Operator) (*models.Supplier, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *supplier
	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.Remark = req.Remark
	if err := s.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationUpdate, "supplier", fmt.Sprint(supplier.ID), supplier.Name, before, supplier, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "suppliers", supplier.ID, models.SyncOpUpdate)
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uint, op Operator) error {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(supplier).Error; err != nil {
		return err
	}
	logOperation(ctx, s.db, models.OperationDelete, "supplier", fmt.Sprint(supplier.ID), supplier.Name, supplier, nil, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "suppliers", supplier.ID, models.SyncOpDelete)
	}
	return nil
}

type CustomerService struct {
	db         *gorm.DB
	dispatcher *cozesync.Dispatcher
}

func NewCustomerService(db *gorm.DB, dispatcher *cozesync.Dispatcher) *CustomerService {
	return &CustomerService{db: db, dispatcher: dispatcher}
}

func (s *CustomerService) List(ctx context.Context, keyword string, limit, offset int) ([]models.Customer, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Customer{})
	if keyword != "" {
		q = q.Where("name LIKE ?", "%"+keyword+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var customers []models.Customer
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&customers).Error
	return customers, total, err
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Create(ctx context.Context, req *models.PartnerRequest, op Operator) (*models.Customer, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	customer := models.Customer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Remark:        req.Remark,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationCreate, "customer", fmt.Sprint(customer.ID), customer.Name, nil, customer, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "customers", customer.ID, models.SyncOpInsert)
	}
	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, req *models.PartnerRequest, op Operator) (*models.Customer, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *customer
	customer.Name = req.Name
	customer.ContactPerson = req.ContactPerson
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.Remark = req.Remark
	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	logOperation(ctx, s.db, models.OperationUpdate, "customer", fmt.Sprint(customer.ID), customer.Name, before, customer, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "customers", customer.ID, models.SyncOpUpdate)
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint, op Operator) error {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(customer).Error; err != nil {
		return err
	}
	logOperation(ctx, s.db, models.OperationDelete, "customer", fmt.Sprint(customer.ID), customer.Name, customer, nil, op)
	if s.dispatcher != nil {
		s.dispatcher.NotifyChange(ctx, "customers", customer.ID, models.SyncOpDelete)
	}
	return nil
}
