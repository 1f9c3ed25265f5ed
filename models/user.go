package models

import "time"

const (
	RoleFreelancer   = "freelancer"
	RoleProductOwner = "product_owner"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone,omitempty"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'freelancer'" json:"role"`
	Country   string    `gorm:"size:2" json:"country"`
	Bio       *string   `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL *string   `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`
	Status    string    `gorm:"type:varchar(20);default:'Active'" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
