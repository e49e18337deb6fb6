package models

// Follow links a follower to a followed user. The pair is the primary
// key, so a user can follow another at most once.
type Follow struct {
	FollowerID uint `gorm:"primaryKey;autoIncrement:false;column:follower_id"`
	FollowedID uint `gorm:"primaryKey;autoIncrement:false;column:followed_id"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
