package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ademilsodream/tcponto-app-sub002/models"
)

var DB *gorm.DB

func Init(dsn string, log zerolog.Logger) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewLogger(log),
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.Employee{},
		&models.WorkShift{},
		&models.TimeRecord{},
		&models.EditRequest{},
		&models.AllowedLocation{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	if err := seedDefaultAdmin(log); err != nil {
		return fmt.Errorf("seeding default admin: %w", err)
	}

	return nil
}

func seedDefaultAdmin(log zerolog.Logger) error {
	var count int64
	DB.Model(&models.Employee{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Employee{
		Name:               "Administrator",
		Email:              "admin@tcponto.local",
		PasswordHash:       string(hashedPassword),
		Role:               models.RoleAdmin,
		Active:             true,
		MustChangePassword: true,
	}

	if result := DB.Create(&admin); result.Error != nil {
		return result.Error
	}

	log.Info().Str("email", admin.Email).Msg("default admin created (password: admin)")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
