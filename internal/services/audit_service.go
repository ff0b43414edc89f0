package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/logger"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log stores one audit entry for an administrative mutation. A failed write
// is logged and dropped so the mutation itself still succeeds.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("audit entry dropped",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
	}
}

// encodeChanges renders the change set as JSON, or "" when there is none.
func encodeChanges(action string, changes map[string]interface{}) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("audit changes not serialisable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
