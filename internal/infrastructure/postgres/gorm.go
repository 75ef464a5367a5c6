package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// NewGorm abre GORM sobre el mismo pool pgx: una sola fuente de conexiones
// para los repositorios ORM y las consultas SQL de reportes.
func NewGorm(pool *pgxpool.Pool) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir gorm: %w", err)
	}
	return db, nil
}

// Migrate crea o actualiza las tablas products, invoices, invoice_items y transactions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Product{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Transaction{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
