package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// BusinessSettings holds the operator-editable configuration. Only the keys
// below are recognized; anything else in a submitted document is dropped.
type BusinessSettings struct {
	BusinessName              string `json:"businessName" validate:"max=200"`
	BusinessEmail             string `json:"businessEmail" validate:"omitempty,email"`
	BusinessPhone             string `json:"businessPhone" validate:"max=50"`
	AutoResponseEnabled       bool   `json:"autoResponseEnabled"`
	AutoResponseMessage       string `json:"autoResponseMessage" validate:"max=4000"`
	NotificationEmail         string `json:"notificationEmail" validate:"omitempty,email"`
	EmailNotificationsEnabled bool   `json:"emailNotificationsEnabled"`
	SlackWebhookURL           string `json:"slackWebhookUrl" validate:"omitempty,url"`
	SlackNotificationsEnabled bool   `json:"slackNotificationsEnabled"`
	DefaultTurnaroundHours    int    `json:"defaultTurnaroundHours" validate:"gte=0"`
	MaxFileSize               int    `json:"maxFileSize" validate:"gte=0"` // MB
	AllowedFileTypes          string `json:"allowedFileTypes" validate:"max=200"`
}

func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		BusinessName:              "CraftMyResume",
		BusinessEmail:             "admin@craftmyresume.com",
		BusinessPhone:             "+1 (555) 123-4567",
		AutoResponseEnabled:       true,
		AutoResponseMessage:       "Thank you for your resume request! We'll get back to you within 24 hours.",
		NotificationEmail:         "notifications@craftmyresume.com",
		EmailNotificationsEnabled: true,
		SlackWebhookURL:           "",
		SlackNotificationsEnabled: false,
		DefaultTurnaroundHours:    24,
		MaxFileSize:               10,
		AllowedFileTypes:          "pdf,doc,docx",
	}
}

// AllowsExtension reports whether ext (with or without dot) is accepted.
func (s BusinessSettings) AllowsExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return false
	}
	for _, allowed := range strings.Split(s.AllowedFileTypes, ",") {
		if strings.ToLower(strings.TrimSpace(allowed)) == ext {
			return true
		}
	}
	return false
}

// MaxFileBytes converts MaxFileSize to bytes; zero means unlimited.
func (s BusinessSettings) MaxFileBytes() int64 {
	if s.MaxFileSize <= 0 {
		return 0
	}
	return int64(s.MaxFileSize) * 1024 * 1024
}

// Value implements driver.Valuer so the settings persist as a jsonb column.
func (s BusinessSettings) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *BusinessSettings) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*s = DefaultBusinessSettings()
		return nil
	default:
		return errors.New("unsupported settings column type")
	}
	return json.Unmarshal(raw, s)
}

// SettingsRecord is the single row of admin_settings (id = 1).
type SettingsRecord struct {
	ID        int              `gorm:"primaryKey"`
	Settings  BusinessSettings `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (SettingsRecord) TableName() string { return "admin_settings" }

const SettingsRecordID = 1
