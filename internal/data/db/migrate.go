package db

import (
	"fmt"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + auth
		// =========================
		&types.User{},
		&types.UserToken{},

		// =========================
		// Suppliers
		// =========================
		&types.Supplier{},
		&types.SupplierContact{},
		&types.SupplierDocument{},

		// =========================
		// Qualification
		// =========================
		&types.QuestionnaireModel{},
		&types.QualificationRecord{},

		// =========================
		// Procurement
		// =========================
		&types.Requisition{},
		&types.RequisitionItem{},
		&types.Quotation{},
		&types.QuotationItem{},
	)
}

// EnsureSupplierIndexes creates the indexes AutoMigrate cannot express.
// The document uniqueness is partial: rows that went through the explicit
// duplicate-allowed flow are exempt, and soft-deleted rows do not block
// re-registration.
func EnsureSupplierIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_supplier_document_unique
		ON suppliers(document_number)
		WHERE deleted_at IS NULL AND duplicate_allowed = false;
	`).Error; err != nil {
		return fmt.Errorf("create idx_supplier_document_unique: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_supplier_documents_expiry
		ON supplier_documents(expires_at)
		WHERE expires_at IS NOT NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_supplier_documents_expiry: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating database tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureSupplierIndexes(s.db); err != nil {
		s.log.Error("Supplier index migration failed", "error", err)
		return err
	}
	return nil
}
