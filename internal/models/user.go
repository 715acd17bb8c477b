package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account owner. Profiles, details and the subscription hang off it.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username  string         `gorm:"not null;size:60;uniqueIndex" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserDetail holds account-wide personal data. It is created together with the
// user and only ever read back as a convenience default when building a blank
// PERSONAL section form.
type UserDetail struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName      string    `gorm:"size:255" json:"full_name"`
	Phone         string    `gorm:"size:30" json:"phone"`
	DOB           string    `gorm:"size:10" json:"dob"`
	Gender        string    `gorm:"size:20" json:"gender"`
	MaritalStatus string    `gorm:"size:20" json:"marital_status"`
	Nationality   string    `gorm:"size:100" json:"nationality"`
	Address       string    `gorm:"type:text" json:"address"`
	Location      string    `gorm:"size:100" json:"location"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
}

func (d *UserDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
