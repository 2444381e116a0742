package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"talkalot_server/models"
	"talkalot_server/repositories"
)

const proximityGenericMessage = "Someone who shares your interests is nearby right now! Look around and start a conversation."

// ProximityService watches for the moment both parties of a match are inside
// the fair and emits the one-time proximity notification pair. It is driven
// by opportunistic, redundant triggers (join-fair, status polls), so every
// path through it has to be idempotent.
type ProximityService struct {
	Users   repositories.UserRepository
	Likes   repositories.LikeRepository
	Matches repositories.MatchRepository
}

// OnPresenceBecameTrue runs the proximity pass for one user. Safe to call on
// any event that might have changed presence; it is a no-op when the user is
// unknown, absent, or has no un-notified matches.
func (ps *ProximityService) OnPresenceBecameTrue(ctx context.Context, userID string) error {
	user, err := ps.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if !user.InsideFair {
		return nil
	}

	matches, err := ps.Matches.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list matches for proximity check: %w", err)
	}

	for i := range matches {
		m := &matches[i]
		if m.ProximityNotified {
			continue
		}

		otherID := m.OtherParty(userID)
		other, err := ps.Users.Get(ctx, otherID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return err
		}
		if !other.InsideFair {
			// Leave the flag untouched so a later presence change from
			// either side can retrigger this match.
			continue
		}

		notifUser := ps.proximityNotification(ctx, userID, otherID, m.MatchID)
		notifOther := ps.proximityNotification(ctx, otherID, userID, m.MatchID)

		err = ps.Matches.MarkProximityNotified(ctx, m.PairKey, notifUser, notifOther)
		if errors.Is(err, repositories.ErrConflict) {
			// A concurrent trigger already notified this match.
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("Proximity notified match %s (%s and %s)", m.MatchID, userID, otherID)
	}
	return nil
}

// proximityNotification builds the alert for one recipient, enriched with a
// post of the other party that the recipient liked when one can be found.
// Enrichment is best effort; any miss falls back to the generic message.
func (ps *ProximityService) proximityNotification(ctx context.Context, recipientID, otherID, matchID string) *models.Notification {
	message := proximityGenericMessage
	if post, err := ps.Likes.FindLikedPost(ctx, recipientID, otherID); err == nil && post.Content != "" {
		message = fmt.Sprintf("The person behind %q is nearby right now! Look around and start a conversation.", post.Content)
	}

	notif := newNotification(recipientID, models.NotificationKindProximity, message)
	notif.RelatedUserID = otherID
	notif.RelatedMatchID = matchID
	return notif
}
