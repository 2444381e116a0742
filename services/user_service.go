package services

import (
	"context"
	"log"
	"time"

	"talkalot_server/models"
	"talkalot_server/repositories"

	"github.com/google/uuid"
)

// UserService covers anonymous identity and event presence. Presence changes
// feed the proximity pass, and the status poll re-runs it defensively since
// there is no push-based presence feed.
type UserService struct {
	Users         repositories.UserRepository
	Notifications repositories.NotificationRepository
	Proximity     *ProximityService
}

// Register creates a fresh anonymous attendee and returns it.
func (us *UserService) Register(ctx context.Context) (*models.User, error) {
	user := &models.User{
		UserID:   uuid.NewString(),
		LastSeen: time.Now().UTC().Format(time.RFC3339),
	}
	if err := us.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Registered new user: %s", user.UserID)
	return user, nil
}

// JoinFair marks the user present and immediately runs the proximity pass,
// since their arrival may complete a waiting match.
func (us *UserService) JoinFair(ctx context.Context, userID string) error {
	if _, err := us.Users.Get(ctx, userID); err != nil {
		return err
	}
	if err := us.Users.SetInsideFair(ctx, userID, true); err != nil {
		return err
	}
	log.Printf("User %s joined the fair", userID)
	return us.Proximity.OnPresenceBecameTrue(ctx, userID)
}

// LeaveFair marks the user absent. Matches keep their state; a later return
// can still trigger proximity alerts for pairs not yet notified.
func (us *UserService) LeaveFair(ctx context.Context, userID string) error {
	if _, err := us.Users.Get(ctx, userID); err != nil {
		return err
	}
	return us.Users.SetInsideFair(ctx, userID, false)
}

// UserStatus is the status-poll response.
type UserStatus struct {
	InsideFair          bool `json:"insideFair"`
	UnreadNotifications int  `json:"unreadNotifications"`
}

// Status refreshes lastSeen, opportunistically re-runs the proximity pass,
// and reports presence plus the unread notification count.
func (us *UserService) Status(ctx context.Context, userID string) (*UserStatus, error) {
	user, err := us.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := us.Users.TouchLastSeen(ctx, userID); err != nil {
		return nil, err
	}
	if err := us.Proximity.OnPresenceBecameTrue(ctx, userID); err != nil {
		return nil, err
	}
	unread, err := us.Notifications.CountUnseen(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserStatus{InsideFair: user.InsideFair, UnreadNotifications: unread}, nil
}

// UpdateInterests replaces the user's display tags and free-text interests.
func (us *UserService) UpdateInterests(ctx context.Context, userID string, tags []string, freeText string) error {
	if _, err := us.Users.Get(ctx, userID); err != nil {
		return err
	}
	return us.Users.UpdateInterests(ctx, userID, tags, freeText)
}
