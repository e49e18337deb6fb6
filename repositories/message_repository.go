package repositories

import (
	"gorm.io/gorm"

	"warbler/models"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) ByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.Preload("User").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
}

func (r *messageRepository) Latest(limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) ByUserID(userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("author_id = ?", userID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// Timeline returns the latest messages written by the user or by
// anyone the user follows.
func (r *messageRepository) Timeline(userID uint, limit int) ([]models.Message, error) {
	followed := r.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	var messages []models.Message
	err := r.db.Preload("User").
		Where("author_id = ? OR author_id IN (?)", userID, followed).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Like(userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	return r.db.Create(&like).Error
}

func (r *messageRepository) Unlike(userID, messageID uint) error {
	return r.db.
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

func (r *messageRepository) IsLiked(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

func (r *messageRepository) LikedBy(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Joins("INNER JOIN likes ON likes.message_id = message.message_id").
		Where("likes.user_id = ?", userID).
		Order("message.created_at DESC").
		Find(&messages).Error
	return messages, err
}
