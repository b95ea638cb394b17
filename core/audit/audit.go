package audit

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Action types recorded in the activity log.
const (
	ActionLogin  = "LOGIN"
	ActionSearch = "SEARCH"
	ActionUpload = "UPLOAD"
	ActionReset  = "RESET"
)

// ActivityLog is one recorded user action.
type ActivityLog struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID     *uint     `gorm:"column:user_id;index" json:"userId"`
	Username   string    `gorm:"column:username;size:100" json:"username"`
	ActionType string    `gorm:"column:action_type;size:50;not null" json:"actionType"`
	Details    string    `gorm:"column:details;type:text" json:"details"`
	IPAddress  string    `gorm:"column:ip_address;size:64" json:"ipAddress"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the default table name.
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Recorder writes activity log rows on a best-effort basis.
// A failed write is logged and swallowed, it never fails the request.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a new activity recorder.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Record stores an activity entry for the given request.
// details is marshalled to JSON; a nil user is recorded as anonymous.
func (r *Recorder) Record(c *fiber.Ctx, userID *uint, username, actionType string, details any) {
	if r == nil || r.db == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		r.logger.Warn("Failed to encode activity details", zap.Error(err))
		payload = []byte("{}")
	}

	entry := ActivityLog{
		UserID:     userID,
		Username:   username,
		ActionType: actionType,
		Details:    string(payload),
		IPAddress:  c.IP(),
	}

	if err := r.db.Create(&entry).Error; err != nil {
		r.logger.Warn("Failed to record activity",
			zap.String("action", actionType),
			zap.Error(err),
		)
	}
}
