package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:text" json:"-"`

	// Profile fields shown next to every chat message
	ProfileName    string `gorm:"type:varchar(15)" json:"profileName"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`

	// Gaming preferences driving recommendations
	FavoriteGenres pq.StringArray `gorm:"type:text[]" json:"favoriteGenres"`

	// Presence
	IsOnline   bool       `gorm:"default:false" json:"isOnline"`
	LastOnline *time.Time `json:"lastOnline"`
	Timezone   string     `gorm:"type:text" json:"timezone"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// DisplayName prefers the profile name, falling back to the username.
func (u *User) DisplayName() string {
	if u.ProfileName != "" {
		return u.ProfileName
	}
	return u.Username
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
