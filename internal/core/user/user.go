package user

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	// MaxUsernameLength is counted in characters and matches the column size.
	MaxUsernameLength = 150
	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72
)

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Username  string    `gorm:"size:150;uniqueIndex;not null"`
	Password  string    `gorm:"not null"` // bcrypt hash
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
