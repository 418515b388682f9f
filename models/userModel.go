package models

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type AddressType string

const (
	AddressHome      AddressType = "home"
	AddressWork      AddressType = "work"
	AddressTemporary AddressType = "temporary"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:100"`
	LastName  string    `json:"last_name" gorm:"size:100"`
	Email     string    `json:"email" gorm:"size:200;uniqueIndex"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Password  string    `json:"-" gorm:"size:250;not null"`
	UserType  Role      `json:"user_type" gorm:"size:20;default:buyer"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Profile   *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Profile struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	UserID         uint      `json:"-" gorm:"uniqueIndex"`
	Gender         string    `json:"gender" gorm:"size:50"`
	ProfilePicture string    `json:"profile_picture" gorm:"size:250"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

type Address struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	UserID         uint        `json:"-" gorm:"index"`
	Name           string      `json:"name" gorm:"size:100" binding:"required"`
	Mobile         string      `json:"mobile" gorm:"size:50" binding:"required"`
	Pincode        string      `json:"pincode" gorm:"size:20;not null" binding:"required"`
	Locality       string      `json:"locality" gorm:"size:200" binding:"required"`
	AddressLine    string      `json:"address_line" gorm:"size:500" binding:"required"`
	City           string      `json:"city" gorm:"size:100;not null" binding:"required"`
	State          string      `json:"state" gorm:"size:100;not null" binding:"required"`
	Landmark       string      `json:"landmark,omitempty" gorm:"size:200"`
	AlternatePhone string      `json:"alternate_phone,omitempty" gorm:"size:50"`
	AddressType    AddressType `json:"address_type" gorm:"size:20;default:home" binding:"omitempty,oneof=home work temporary"`
	CreatedAt      time.Time   `json:"-"`
	UpdatedAt      time.Time   `json:"-"`
}

type RegisterData struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	UserType  Role   `json:"user_type" binding:"omitempty,oneof=buyer seller"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileUpdate struct {
	Gender         string `json:"gender"`
	ProfilePicture string `json:"profile_picture"`
}
