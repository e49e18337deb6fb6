package models

// Like links a user to a message they liked. The pair is the primary
// key, so a message can be liked at most once per user.
type Like struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false;column:user_id"`
	MessageID uint `gorm:"primaryKey;autoIncrement:false;column:message_id"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}
