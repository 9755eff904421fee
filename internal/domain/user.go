package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the authentication identity. Shop-specific data lives on the
// Profile, linked 1:1 and created together with the user.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	Email        string    `gorm:"size:140;index"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User      User      `gorm:"foreignKey:UserID"`
	FirstName string    `gorm:"size:150"`
	LastName  string    `gorm:"size:150"`
	Phone     string    `gorm:"size:30"`
	Address   string    `gorm:"size:255"`
	City      string    `gorm:"size:150"`
	BirthDate *time.Time
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
