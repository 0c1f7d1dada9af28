package models

// Notification is an in-app message for a user. The only state transition
// is unread to read; there is no way back.
type Notification struct {
	Base
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}
