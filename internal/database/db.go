// internal/database/db.go
package database

import (
	"fmt"
	"log"

	"inventory-service/internal/config"
	"inventory-service/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	// Auto-migrate (safe in dev; use migrations in prod)
	err = Migrate(db)
	if err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ Inventory DB connected & migrated")

	if err := seedAdminUser(db, cfg); err != nil {
		log.Printf("⚠️ Failed to seed admin user: %v", err)
	}
}

// Migrate runs schema migration for every model. Exported so tests can reuse
// it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ProductCategory{},
		&models.ProductModel{},
		&models.Product{},
		&models.Supplier{},
		&models.Customer{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.InventoryRecord{},
		&models.CozeSyncConfig{},
		&models.OperationLog{},
		&models.DataChangeLog{},
	)
}

func GetDB() *gorm.DB {
	return db
}
