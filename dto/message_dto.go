package dto

// MessageDTO is a Data Transfer Object for the message response
type MessageDTO struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	PubDate  int64  `json:"pub_date"`
	Username string `json:"user"`
}
