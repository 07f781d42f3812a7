package domain

import (
	"strings"
	"time"
)

// Lead is a visitor contact captured by the public contact form.
// Email is optional: phone-only leads are valid.
type Lead struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     *string   `json:"email,omitempty" gorm:"index"`
	Phone     *string   `json:"phone,omitempty"`
	Message   *string   `json:"message,omitempty"`
	Plan      *string   `json:"plan,omitempty"`
	Source    *string   `json:"source,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	Referrer  *string   `json:"referrer,omitempty"`
	IP        *string   `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Lead) TableName() string { return "leads" }

// CustomerKey returns the normalized identity used to merge a lead with orders.
func (l *Lead) CustomerKey() string {
	if l.Email == nil {
		return ""
	}
	return NormalizeEmail(*l.Email)
}

// NormalizeEmail lowercases and trims an address for identity comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StringValue dereferences an optional field, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OptionalString maps "" to nil after trimming.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
