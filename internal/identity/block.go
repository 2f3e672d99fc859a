package identity

import (
	"context"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/models"
)

// Block adds targetID to user's block list and persists it. Blocking an
// already-blocked id is a no-op. The target must exist; blocking yourself
// is rejected outright.
func (s *Store) Block(ctx context.Context, user *models.User, targetID uint) error {
	if targetID == user.ID {
		return apperr.NewValidation().Add("username", "You cannot block yourself.")
	}
	if _, err := s.ByID(ctx, targetID); err != nil {
		return err
	}
	if user.BlockedUsers.Contains(targetID) {
		return nil
	}
	user.BlockedUsers = user.BlockedUsers.Add(targetID)
	return s.saveBlockList(ctx, user)
}

// Unblock removes targetID from user's block list; unblocking an id that is
// not blocked is a no-op.
func (s *Store) Unblock(ctx context.Context, user *models.User, targetID uint) error {
	if !user.BlockedUsers.Contains(targetID) {
		return nil
	}
	user.BlockedUsers = user.BlockedUsers.Remove(targetID)
	return s.saveBlockList(ctx, user)
}

// IsBlocking reports whether user currently blocks targetID.
func (s *Store) IsBlocking(user *models.User, targetID uint) bool {
	return user.BlockedUsers.Contains(targetID)
}

// SetBlocked is the API-facing toggle behind the {username, block} contract:
// it resolves targetUsername and blocks or unblocks it on user.
func (s *Store) SetBlocked(ctx context.Context, user *models.User, targetUsername string, blocked bool) error {
	target, err := s.ByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if blocked {
		return s.Block(ctx, user, target.ID)
	}
	return s.Unblock(ctx, user, target.ID)
}

func (s *Store) saveBlockList(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("blocked_users", user.BlockedUsers).Error
}
