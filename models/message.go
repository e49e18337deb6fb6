package models

import "time"

// MaxMessageLength is the maximum length of a message's text.
const MaxMessageLength = 140

// Message represents a message in the system
type Message struct {
	ID        uint   `gorm:"primaryKey;column:message_id"`
	Text      string `gorm:"type:text;not null"`
	UserID    uint   `gorm:"column:author_id;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "message"
}
