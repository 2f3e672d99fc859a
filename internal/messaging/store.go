package messaging

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/identity"
	"github.com/opinar/OfflineMessagingApi/internal/models"
)

// Store owns Message records. Sends go through the authorization gate;
// a denied send never writes a row.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Send resolves receiverUsername, re-reads both parties' block lists, runs
// the gate and inserts the message, all inside one transaction so the
// read-then-act sequence cannot interleave with a concurrent block of the
// same pair. SentAt is stamped with the server clock at persistence time;
// client-supplied timestamps are never consulted.
//
// Failure modes: apperr.ErrNotFound when the receiver does not resolve,
// ErrReceiverBlockedSender / ErrSenderBlockedReceiver on denial.
func (s *Store) Send(ctx context.Context, sender *models.User, receiverUsername, body string) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := identity.NewStore(tx)

		receiver, err := users.ByUsername(ctx, receiverUsername)
		if err != nil {
			return err
		}
		// Fresh copy of the sender's block list; the caller's record may be
		// stale relative to a block issued earlier in the same session.
		freshSender, err := users.ByID(ctx, sender.ID)
		if err != nil {
			return err
		}

		if err := Authorize(freshSender, receiver); err != nil {
			return err
		}

		msg = models.Message{
			SenderID:   freshSender.ID,
			ReceiverID: receiver.ID,
			Message:    body,
			SentAt:     time.Now().Format(models.SentAtFormat),
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes a message unconditionally and returns the deleted record
// echo. Missing ids are apperr.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Message{}, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Store) All(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := s.db.WithContext(ctx).Order("id").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Between returns the messages senderID has sent to receiverID, oldest first.
func (s *Store) Between(ctx context.Context, senderID, receiverID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Order("id").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Network returns the distinct users senderID has messaged, in first-contact
// order. Receivers that have since been deleted are skipped.
func (s *Store) Network(ctx context.Context, senderID uint) ([]models.User, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("id").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	users := identity.NewStore(s.db)
	seen := map[uint]bool{}
	receivers := make([]models.User, 0)
	for _, msg := range msgs {
		if seen[msg.ReceiverID] {
			continue
		}
		seen[msg.ReceiverID] = true
		receiver, err := users.ByID(ctx, msg.ReceiverID)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		receivers = append(receivers, *receiver)
	}
	return receivers, nil
}
