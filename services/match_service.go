package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"talkalot_server/models"
	"talkalot_server/repositories"

	"github.com/google/uuid"
)

const matchMessage = "You have a new mutual interest match! You'll be notified when you're nearby."

// MatchService is the match detector: it turns a fresh like edge into a
// canonical match once both users have liked each other's posts.
type MatchService struct {
	Users   repositories.UserRepository
	Likes   repositories.LikeRepository
	Matches repositories.MatchRepository
}

// OnLikeCreated runs the reciprocity check for a new like from likerID on a
// post owned by postOwnerID. It returns the match for the pair if one exists
// or was just created, and nil when the interest is still one-sided.
// Creation is idempotent: repeated triggers for the same pair never produce
// a second match or a second notification pair.
func (ms *MatchService) OnLikeCreated(ctx context.Context, likerID, postOwnerID string) (*models.Match, error) {
	low, high := models.NormalizeMatchPair(likerID, postOwnerID)

	existing, err := ms.Matches.GetByPair(ctx, low, high)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	// Mutual interest: the post owner has liked some post authored by the
	// liker. Any post counts, not just the one that triggered this check.
	reciprocal, err := ms.Likes.HasReciprocal(ctx, likerID, postOwnerID)
	if err != nil {
		return nil, err
	}
	if !reciprocal {
		return nil, nil
	}

	match := &models.Match{
		PairKey:    models.PairKeyFor(low, high),
		MatchID:    uuid.NewString(),
		UserLowID:  low,
		UserHighID: high,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	notifLiker := newNotification(likerID, models.NotificationKindMatch, matchMessage)
	notifLiker.RelatedUserID = postOwnerID
	notifLiker.RelatedMatchID = match.MatchID
	notifOwner := newNotification(postOwnerID, models.NotificationKindMatch, matchMessage)
	notifOwner.RelatedUserID = likerID
	notifOwner.RelatedMatchID = match.MatchID

	err = ms.Matches.CreateWithNotifications(ctx, match, notifLiker, notifOwner)
	if errors.Is(err, repositories.ErrConflict) {
		// A concurrent reciprocal like won the race; the pair exists now.
		log.Printf("Match for pair %s already created concurrently", match.PairKey)
		return ms.Matches.GetByPair(ctx, low, high)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Created match %s between %s and %s", match.MatchID, low, high)
	return match, nil
}

// MatchView is one entry of a user's match list, seen from that user's side.
type MatchView struct {
	MatchID        string   `json:"matchId"`
	OtherUserID    string   `json:"otherUserId"`
	OtherUserTags  []string `json:"otherUserTags"`
	BothAtEvent    bool     `json:"bothAtEvent"`
	IConfirmed     bool     `json:"iConfirmed"`
	OtherConfirmed bool     `json:"otherConfirmed"`
	BothConfirmed  bool     `json:"bothConfirmed"`
	Codeword       string   `json:"codeword,omitempty"`
	MatchedAt      string   `json:"matchedAt"`
}

// ListMatches returns the caller's matches, newest first. The codeword is
// included only once both parties have confirmed.
func (ms *MatchService) ListMatches(ctx context.Context, userID string) ([]MatchView, error) {
	caller, err := ms.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := ms.Matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", userID, err)
	}

	views := make([]MatchView, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		otherID := m.OtherParty(userID)

		var otherTags []string
		bothAtEvent := false
		if other, err := ms.Users.Get(ctx, otherID); err == nil {
			otherTags = other.InterestTags
			bothAtEvent = caller.InsideFair && other.InsideFair
		}

		view := MatchView{
			MatchID:        m.MatchID,
			OtherUserID:    otherID,
			OtherUserTags:  otherTags,
			BothAtEvent:    bothAtEvent,
			IConfirmed:     m.ConfirmedBy(userID),
			OtherConfirmed: m.ConfirmedBy(otherID),
			BothConfirmed:  m.ConfirmationState() == models.ConfirmBoth,
			MatchedAt:      m.CreatedAt,
		}
		if view.BothConfirmed {
			view.Codeword = m.Codeword
		}
		views = append(views, view)
	}
	return views, nil
}
