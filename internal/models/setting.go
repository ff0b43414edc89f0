package models

import "time"

// SettingKeyGlobalSavings is the key of the global savings balance setting.
const SettingKeyGlobalSavings = "global_savings"

// Setting is a keyed application setting with a JSON value.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
