// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"errors"
	"fmt"
	"strings"

	"go-blog-backend/config" // Project config
	"go-blog-backend/logger" // Leveled logging
	"go-blog-backend/models" // Blog models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/postgres"    // Postgres driver for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB // Global variable to hold the database connection (pointer to gorm.DB)

// Connect opens the configured database, runs migrations and seeds the admin
// account when asked to.
func Connect(cfg *config.Config) error {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true, // Unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return err
	}

	if cfg.DBDriver == "" || cfg.DBDriver == "sqlite" {
		// SQLite allows one writer; funnel everything through one connection
		// so concurrent requests queue instead of failing with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// Auto-migrate the blog models (create tables and indexes if needed)
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}, &models.Comment{}); err != nil {
		return err
	}

	DB = db
	return createDefaultAdmin(cfg)
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "sqlite":
		return sqlite.Open(sqliteDSN(cfg.DBPath)), nil
	case "postgres":
		return postgres.Open(cfg.DBDSN), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off by
// default, and makes concurrent writers wait for the lock instead of failing.
func sqliteDSN(path string) string {
	const opts = "_foreign_keys=on&_busy_timeout=5000"
	if strings.Contains(path, "?") {
		return path + "&" + opts
	}
	return path + "?" + opts
}

// createDefaultAdmin - Creates a default admin user if configured and none exists
// This uses environment variables for security instead of hardcoded credentials
func createDefaultAdmin(cfg *config.Config) error {
	// Only create admin if explicitly configured
	if !cfg.CreateAdmin {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("CREATE_ADMIN is set but ADMIN_PASSWORD is empty")
	}

	var existing models.User
	err := DB.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil // Already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := models.User{
		Email:    cfg.AdminEmail,
		Name:     "Administrator",
		Password: string(hash),
		Roles:    []string{models.RoleAdmin, models.RoleUser},
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		return err
	}
	logger.Infof("seeded admin account %s", adminUser.Email)
	return nil
}
