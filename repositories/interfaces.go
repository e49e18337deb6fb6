package repositories

import (
	"errors"

	"warbler/models"
)

// ErrSelfFollow is returned when a user attempts to follow itself.
var ErrSelfFollow = errors.New("a user cannot follow itself")

type UserRepository interface {
	Create(user *models.User) error
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	UsernameTaken(username string) (bool, error)
	EmailTaken(email string) (bool, error)
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	Following(userID uint) ([]models.User, error)
	Followers(userID uint) ([]models.User, error)
	Delete(userID uint) error
}

type MessageRepository interface {
	Create(message *models.Message) error
	ByID(id uint) (*models.Message, error)
	Delete(id uint) error
	Latest(limit int) ([]models.Message, error)
	ByUserID(userID uint, limit int) ([]models.Message, error)
	Timeline(userID uint, limit int) ([]models.Message, error)
	Like(userID, messageID uint) error
	Unlike(userID, messageID uint) error
	IsLiked(userID, messageID uint) (bool, error)
	LikedBy(userID uint) ([]models.Message, error)
}
