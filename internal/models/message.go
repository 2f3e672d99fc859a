package models

// SentAtFormat is the fixed timestamp layout messages are stamped with
// (DD/MM/YYYY HH:MM:SS). The value is generated server-side at creation
// and never accepted from clients.
const SentAtFormat = "02/01/2006 15:04:05"

type Message struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	SenderID   uint   `json:"senderId" gorm:"index;not null"`
	ReceiverID uint   `json:"receiverId" gorm:"index;not null"`
	Message    string `json:"message" gorm:"type:text"`
	SentAt     string `json:"sentAt" gorm:"not null"`
}
