package post

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"sns/internal/core/errs"
	"sns/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// MaxContentLength is counted in characters, not bytes.
const MaxContentLength = 1000

type Post struct {
	ID        string    `gorm:"primaryKey;type:char(64)"`
	AccountID uuid.UUID `gorm:"type:char(36);not null;index"`
	Account   user.User `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Time      int64     `gorm:"not null;index"` // unix seconds
	Content   string    `gorm:"type:text;not null"`
	Liked     int64     `gorm:"not null;default:0"`
	RelatedID *string   `gorm:"type:char(64);index"`
	Related   *Post     `gorm:"foreignKey:RelatedID;constraint:OnDelete:CASCADE"` // post being replied to
}

// DeriveID returns the hex SHA-256 of the account id followed by the decimal
// timestamp. Two posts by one account within the same second get the same id.
func DeriveID(accountID string, unix int64) string {
	sum := sha256.Sum256([]byte(accountID + strconv.FormatInt(unix, 10)))
	return hex.EncodeToString(sum[:])
}

// BeforeCreate assigns Time and ID on first save. An ID that is already set
// is kept as is.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Time == 0 {
		p.Time = time.Now().Unix()
	}
	if p.ID == "" {
		p.ID = DeriveID(p.AccountID.String(), p.Time)
	}
	return nil
}

// NormalizeContent trims surrounding whitespace and checks the length bounds.
func NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errs.Validation("Content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", errs.Validation("Content too long (max 1000 characters)")
	}
	return content, nil
}
