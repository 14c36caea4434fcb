// internal/models/audit.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	UserID       *uint             `json:"user_id" gorm:"index"`
	Action       string            `json:"action" gorm:"size:150;not null;index"`
	ResourceType string            `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uint             `json:"resource_id" gorm:"index"`
	Status       int               `json:"status"`
	NewValues    datatypes.JSONMap `json:"new_values"`
	IPAddress    string            `json:"ip_address" gorm:"size:45"`
	UserAgent    string            `json:"user_agent" gorm:"type:text"`
	RequestID    string            `json:"request_id" gorm:"size:64"`
	CreatedAt    time.Time         `json:"created_at" gorm:"index"`
}
