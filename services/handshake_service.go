package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"talkalot_server/models"
	"talkalot_server/repositories"
	"talkalot_server/utils"
)

// HandshakeService runs the two-party opt-in protocol that gates the shared
// codeword. Confirmation flags only ever move forward, and the codeword is
// generated exactly once per match, when the second confirmation lands.
type HandshakeService struct {
	Matches repositories.MatchRepository
}

// ConfirmResult is what a confirming caller learns: whether the handshake is
// complete, and the codeword only once it is.
type ConfirmResult struct {
	BothConfirmed bool   `json:"bothConfirmed"`
	Codeword      string `json:"codeword,omitempty"`
}

// MatchStatus is the read-only projection of the handshake for one party.
type MatchStatus struct {
	IConfirmed     bool   `json:"iConfirmed"`
	OtherConfirmed bool   `json:"otherConfirmed"`
	BothConfirmed  bool   `json:"bothConfirmed"`
	Codeword       string `json:"codeword,omitempty"`
}

// Confirm records userID's opt-in on the match. Repeat calls are no-ops that
// return the current state; the codeword is never revealed before both
// parties have confirmed, and never regenerated after it exists.
func (hs *HandshakeService) Confirm(ctx context.Context, matchID, userID string) (*ConfirmResult, error) {
	match, err := hs.Matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(userID) {
		return nil, repositories.ErrForbidden
	}

	if !match.ConfirmedBy(userID) {
		match, err = hs.Matches.Confirm(ctx, match.PairKey, userID == match.UserLowID)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm match %s: %w", matchID, err)
		}
	}

	if match.ConfirmationState() != models.ConfirmBoth {
		return &ConfirmResult{}, nil
	}

	if match.Codeword == "" {
		codeword := utils.GenerateCodeword()
		message := fmt.Sprintf("It's mutual! Find each other and say the codeword: %s", codeword)

		notifLow := newNotification(match.UserLowID, models.NotificationKindCodeword, message)
		notifLow.RelatedUserID = match.UserHighID
		notifLow.RelatedMatchID = match.MatchID
		notifLow.Payload = map[string]string{"codeword": codeword}
		notifHigh := newNotification(match.UserHighID, models.NotificationKindCodeword, message)
		notifHigh.RelatedUserID = match.UserLowID
		notifHigh.RelatedMatchID = match.MatchID
		notifHigh.Payload = map[string]string{"codeword": codeword}

		err = hs.Matches.SetCodewordWithNotifications(ctx, match.PairKey, codeword, notifLow, notifHigh)
		switch {
		case errors.Is(err, repositories.ErrConflict):
			// A concurrent confirmation already generated the codeword.
			match, err = hs.Matches.GetByID(ctx, matchID)
			if err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		default:
			match.Codeword = codeword
			log.Printf("Generated codeword for match %s", match.MatchID)
		}
	}

	return &ConfirmResult{BothConfirmed: true, Codeword: match.Codeword}, nil
}

// GetStatus projects the current handshake state for userID without changing
// anything. The codeword is withheld unless both parties have confirmed.
func (hs *HandshakeService) GetStatus(ctx context.Context, matchID, userID string) (*MatchStatus, error) {
	match, err := hs.Matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(userID) {
		return nil, repositories.ErrForbidden
	}

	status := &MatchStatus{
		IConfirmed:     match.ConfirmedBy(userID),
		OtherConfirmed: match.ConfirmedBy(match.OtherParty(userID)),
		BothConfirmed:  match.ConfirmationState() == models.ConfirmBoth,
	}
	if status.BothConfirmed {
		status.Codeword = match.Codeword
	}
	return status, nil
}
