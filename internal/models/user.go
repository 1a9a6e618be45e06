// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string   `json:"email" gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string   `json:"-" gorm:"size:1024;not null"`
	Username     string   `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Company      string   `json:"company,omitempty" gorm:"size:40"`
	Position     string   `json:"position,omitempty" gorm:"size:40"`
	UserType     UserType `json:"usertype" gorm:"type:varchar(5);not null;default:'buyer'"`
	IsActive     bool     `json:"is_active" gorm:"not null;default:true"`
	IsSuperuser  bool     `json:"is_superuser" gorm:"not null;default:false"`
	IsVerified   bool     `json:"is_verified" gorm:"not null;default:false"`

	// Relationships
	Shop     *Shop     `json:"shop,omitempty" gorm:"foreignKey:UserID"`
	Contacts []Contact `json:"contacts,omitempty" gorm:"foreignKey:UserID"`
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// AccessToken backs the cookie transport: one row per live session, looked
// up by its opaque token value and aged out by the configured TTL.
type AccessToken struct {
	Token     string    `json:"token" gorm:"primaryKey;size:64"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

type Contact struct {
	BaseModel
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	User      *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	City      string `json:"city" gorm:"size:50"`
	Street    string `json:"street" gorm:"size:100"`
	House     string `json:"house" gorm:"size:15"`
	Structure string `json:"structure,omitempty" gorm:"size:15"`
	Building  string `json:"building,omitempty" gorm:"size:15"`
	Apartment string `json:"apartment,omitempty" gorm:"size:15"`
	Phone     string `json:"phone" gorm:"size:50"`
}
