package messaging

import (
	"errors"

	"github.com/opinar/OfflineMessagingApi/internal/models"
)

// Denial reasons returned by Authorize. Either direction of blocking
// prevents delivery; a denial is an expected outcome, not a fault.
var (
	ErrReceiverBlockedSender = errors.New("receiver has blocked sender")
	ErrSenderBlockedReceiver = errors.New("sender has blocked receiver")
)

// Authorize decides whether a message may be sent from sender to receiver,
// given both parties' block lists. Blocking is directional: A blocking B
// denies B->A while A->B stays allowed. When both parties block each other
// the receiver-blocked-sender reason wins, as it is checked first.
func Authorize(sender, receiver *models.User) error {
	if receiver.BlockedUsers.Contains(sender.ID) {
		return ErrReceiverBlockedSender
	}
	if sender.BlockedUsers.Contains(receiver.ID) {
		return ErrSenderBlockedReceiver
	}
	return nil
}

// Blocked reports whether err is a block-list denial from Authorize.
func Blocked(err error) bool {
	return errors.Is(err, ErrReceiverBlockedSender) || errors.Is(err, ErrSenderBlockedReceiver)
}
