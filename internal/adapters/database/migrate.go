package database

import (
	"fmt"

	"sns/internal/core/post"
	"sns/internal/core/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the users and posts tables.
func Migrate(db *gorm.DB) error {
	// اعمال مایگریشن برای مدل‌ها
	if err := db.AutoMigrate(&user.User{}, &post.Post{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// MySQL compares strings case-insensitively under its default collation;
	// usernames must be unique byte for byte.
	if db.Dialector.Name() == "mysql" {
		if err := db.Exec("ALTER TABLE users MODIFY username varchar(150) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error; err != nil {
			return fmt.Errorf("set username collation: %w", err)
		}
	}
	return nil
}
