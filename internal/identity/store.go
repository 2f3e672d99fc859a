package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/models"
)

// Store owns User records. Every mutation persists synchronously before
// returning.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Register creates a new user with an empty block list. Validation runs in
// two phases: shape checks first (all fields present), then store-dependent
// uniqueness checks, with every failure aggregated into a single field-keyed
// error so the caller sees all problems at once.
func (s *Store) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	v := apperr.NewValidation()
	if username == "" {
		v.Add("username", "Username is required.")
	}
	if email == "" {
		v.Add("email", "Email is required.")
	}
	if password == "" {
		v.Add("password", "Password is required.")
	}
	if !v.Empty() {
		return nil, v
	}

	if _, err := s.ByUsername(ctx, username); err == nil {
		v.Add("username", fmt.Sprintf("User (%s) exists. Please try different username.", username))
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if _, err := s.ByEmail(ctx, email); err == nil {
		v.Add("email", fmt.Sprintf("Email (%s) has already been in use. Please try different email.", email))
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if !v.Empty() {
		return nil, v
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Password:     string(hashed),
		BlockedUsers: models.BlockList{},
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate resolves an email/password pair to a user. Unknown email and
// wrong password both come back as ErrUnauthenticated.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.ByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	return user, nil
}

func (s *Store) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user unconditionally and returns the deleted record.
// Messages referencing the user and stale entries in other users' block
// lists are left in place; the authorization gate only tests membership,
// so dangling ids are harmless.
func (s *Store) Delete(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
