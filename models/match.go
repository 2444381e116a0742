package models

// Match represents a mutual-interest relationship between exactly two users.
// The pair is stored canonically ordered (UserLowID < UserHighID), and the
// pairKey primary key makes the pair unique at write time.
type Match struct {
	PairKey           string `dynamodbav:"pairKey" json:"pairKey"` // Partition Key: "<low>#<high>"
	MatchID           string `dynamodbav:"matchId" json:"matchId"` // Used in GSI
	UserLowID         string `dynamodbav:"userLowId" json:"userLowId"`
	UserHighID        string `dynamodbav:"userHighId" json:"userHighId"`
	CreatedAt         string `dynamodbav:"createdAt" json:"createdAt"`
	ProximityNotified bool   `dynamodbav:"proximityNotified" json:"proximityNotified"`
	UserLowConfirmed  bool   `dynamodbav:"userLowConfirmed" json:"userLowConfirmed"`
	UserHighConfirmed bool   `dynamodbav:"userHighConfirmed" json:"userHighConfirmed"`
	Codeword          string `dynamodbav:"codeword,omitempty" json:"codeword,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// GSI names for match lookups
const (
	MatchIDIndex  = "matchId-index"
	UserLowIndex  = "userLow-index"
	UserHighIndex = "userHigh-index"
)

// NormalizeMatchPair returns the canonical (low, high) ordering of two user
// ids under lexicographic string comparison. This ordering is fixed
// project-wide; changing it after matches exist would break pair uniqueness.
func NormalizeMatchPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// PairKeyFor builds the Matches partition key for two user ids in any order.
func PairKeyFor(a, b string) string {
	low, high := NormalizeMatchPair(a, b)
	return low + "#" + high
}

// Involves reports whether userID is one of the two parties.
func (m *Match) Involves(userID string) bool {
	return m.UserLowID == userID || m.UserHighID == userID
}

// OtherParty returns the id of the party opposite userID. The caller must
// have checked Involves first; an unknown id returns the empty string.
func (m *Match) OtherParty(userID string) string {
	switch userID {
	case m.UserLowID:
		return m.UserHighID
	case m.UserHighID:
		return m.UserLowID
	}
	return ""
}

// ConfirmState is the explicit confirmation state machine for a match.
// Flags are monotonic, so the only legal transitions move toward ConfirmBoth.
type ConfirmState int

const (
	ConfirmNone ConfirmState = iota
	ConfirmLowOnly
	ConfirmHighOnly
	ConfirmBoth
)

// ConfirmationState derives the tagged state from the stored flags.
func (m *Match) ConfirmationState() ConfirmState {
	switch {
	case m.UserLowConfirmed && m.UserHighConfirmed:
		return ConfirmBoth
	case m.UserLowConfirmed:
		return ConfirmLowOnly
	case m.UserHighConfirmed:
		return ConfirmHighOnly
	}
	return ConfirmNone
}

// ConfirmedBy reports whether the given party has already confirmed.
func (m *Match) ConfirmedBy(userID string) bool {
	switch userID {
	case m.UserLowID:
		return m.UserLowConfirmed
	case m.UserHighID:
		return m.UserHighConfirmed
	}
	return false
}

// NextConfirmState is the total transition function: the state after the
// given party confirms. Confirming an already-confirmed side is a no-op.
func NextConfirmState(current ConfirmState, m *Match, userID string) ConfirmState {
	isLow := userID == m.UserLowID
	switch current {
	case ConfirmNone:
		if isLow {
			return ConfirmLowOnly
		}
		return ConfirmHighOnly
	case ConfirmLowOnly:
		if isLow {
			return ConfirmLowOnly
		}
		return ConfirmBoth
	case ConfirmHighOnly:
		if isLow {
			return ConfirmBoth
		}
		return ConfirmHighOnly
	}
	return ConfirmBoth
}
