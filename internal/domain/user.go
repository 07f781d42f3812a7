package domain

import (
	"time"
)

type AdminRole string

const (
	AdminRoleOwner AdminRole = "owner"
	AdminRoleAdmin AdminRole = "admin"
	AdminRoleStaff AdminRole = "staff"
)

// AdminUser is an operator allowed into the back office.
type AdminUser struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Name         string     `json:"name"`
	Role         AdminRole  `json:"role" gorm:"type:varchar(20);default:'admin'"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (AdminUser) TableName() string { return "admin_users" }

// AdminProfile is the public projection returned to clients.
type AdminProfile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      AdminRole  `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (u *AdminUser) Profile() *AdminProfile {
	return &AdminProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		LastLogin: u.LastLogin,
	}
}

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
