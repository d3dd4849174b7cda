package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/config"
	"github.com/cleanora-services/cleany-scheduler/internal/logger"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"go.uber.org/zap"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tax{},
		&models.Service{},
		&models.Package{},
		&models.Item{},
		&models.Extra{},
		&models.User{},
		&models.ContactInfo{},
		&models.RecurrenceRule{},
		&models.ServiceLocation{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderExtra{},
		&models.Appointment{},
		&models.AppointmentItem{},
		&models.AppointmentExtra{},
		&models.Schedule{},
		&models.Sale{},
		&models.PaymentSale{},
		&models.PaymentCustomer{},
		&models.Notification{},
		&models.EmailLog{},
		&models.Attachment{},
		&models.AuditLog{},
	)
}
