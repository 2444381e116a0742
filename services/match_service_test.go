package services

import (
	"context"
	"testing"
	"time"

	"talkalot_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnLikeCreatedNoReciprocity(t *testing.T) {
	e := newEngine()
	e.addUser("u1", false)
	e.addUser("u2", false)
	e.addPost("p1", "u1", "vintage synths")
	e.addLike("u2", "p1", "u1")

	match, err := e.matcher.OnLikeCreated(context.Background(), "u2", "u1")
	require.NoError(t, err)
	assert.Nil(t, match, "one-sided interest must not create a match")
	assert.Empty(t, e.store.matches)
	assert.Empty(t, e.store.notifsOfKind("u1", models.NotificationKindMatch))
	assert.Empty(t, e.store.notifsOfKind("u2", models.NotificationKindMatch))
}

func TestOnLikeCreatedReciprocity(t *testing.T) {
	e := newEngine()
	e.addUser("u1", false)
	e.addUser("u2", false)
	e.addPost("p1", "u1", "vintage synths")
	e.addPost("p2", "u2", "street photography")
	e.addLike("u2", "p1", "u1")
	e.addLike("u1", "p2", "u2")

	match, err := e.matcher.OnLikeCreated(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "u1", match.UserLowID)
	assert.Equal(t, "u2", match.UserHighID)
	assert.False(t, match.ProximityNotified)
	assert.Equal(t, models.ConfirmNone, match.ConfirmationState())

	// Exactly one match notification each, referencing the other party.
	notifsU1 := e.store.notifsOfKind("u1", models.NotificationKindMatch)
	notifsU2 := e.store.notifsOfKind("u2", models.NotificationKindMatch)
	require.Len(t, notifsU1, 1)
	require.Len(t, notifsU2, 1)
	assert.Equal(t, "u2", notifsU1[0].RelatedUserID)
	assert.Equal(t, "u1", notifsU2[0].RelatedUserID)
	assert.Equal(t, match.MatchID, notifsU1[0].RelatedMatchID)
}

func TestOnLikeCreatedIdempotent(t *testing.T) {
	e := newEngine()
	e.addUser("u1", false)
	e.addUser("u2", false)
	e.addPost("p1", "u1", "a")
	e.addPost("p2", "u2", "b")
	e.addLike("u2", "p1", "u1")
	e.addLike("u1", "p2", "u2")

	first, err := e.matcher.OnLikeCreated(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := e.matcher.OnLikeCreated(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, first.MatchID, second.MatchID)
	assert.Len(t, e.store.matches, 1)
	assert.Len(t, e.store.notifsOfKind("u1", models.NotificationKindMatch), 1,
		"repeat detection must not re-fire notifications")
	assert.Len(t, e.store.notifsOfKind("u2", models.NotificationKindMatch), 1)
}

func TestOnLikeCreatedCanonicalOrdering(t *testing.T) {
	e := newEngine()
	e.addUser("u1", false)
	e.addUser("u2", false)
	e.addPost("p1", "u1", "a")
	e.addPost("p2", "u2", "b")
	e.addLike("u2", "p1", "u1")
	e.addLike("u1", "p2", "u2")

	match, err := e.matcher.OnLikeCreated(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, match)

	// Role-reversed trigger resolves to the same match.
	reversed, err := e.matcher.OnLikeCreated(context.Background(), "u2", "u1")
	require.NoError(t, err)
	require.NotNil(t, reversed)
	assert.Equal(t, match.MatchID, reversed.MatchID)
	assert.Len(t, e.store.matches, 1)
}

func TestOnLikeCreatedLostRaceReturnsExisting(t *testing.T) {
	e := newEngine()
	e.addUser("u1", false)
	e.addUser("u2", false)
	e.addPost("p1", "u1", "a")
	e.addPost("p2", "u2", "b")
	e.addLike("u2", "p1", "u1")
	e.addLike("u1", "p2", "u2")

	// A concurrent reciprocal like creates the pair between our existence
	// check and our conditional write.
	raceMatch := models.Match{
		PairKey:    models.PairKeyFor("u1", "u2"),
		MatchID:    "race-winner",
		UserLowID:  "u1",
		UserHighID: "u2",
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	e.store.beforeCreateMatch = func() {
		e.store.matches[raceMatch.PairKey] = raceMatch
	}

	match, err := e.matcher.OnLikeCreated(context.Background(), "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "race-winner", match.MatchID, "lost race must surface the existing match")
	assert.Len(t, e.store.matches, 1)
	assert.Empty(t, e.store.notifsOfKind("u1", models.NotificationKindMatch),
		"losing writer must not append its notification pair")
}

func TestListMatchesViews(t *testing.T) {
	e := newEngine()
	e.addUser("u1", true, "synths")
	e.addUser("u2", true, "photography", "coffee")
	e.addUser("u3", false, "climbing")
	e.store.matches["u1#u2"] = models.Match{
		PairKey: "u1#u2", MatchID: "m1", UserLowID: "u1", UserHighID: "u2",
		CreatedAt: "2026-08-28T10:00:00Z", UserLowConfirmed: true,
	}
	e.store.matches["u1#u3"] = models.Match{
		PairKey: "u1#u3", MatchID: "m2", UserLowID: "u1", UserHighID: "u3",
		CreatedAt: "2026-08-28T11:00:00Z",
		UserLowConfirmed: true, UserHighConfirmed: true, Codeword: "Bold Falcon 42",
	}

	views, err := e.matcher.ListMatches(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest first.
	assert.Equal(t, "m2", views[0].MatchID)
	assert.Equal(t, "m1", views[1].MatchID)

	// Fully confirmed match reveals the codeword.
	assert.Equal(t, "u3", views[0].OtherUserID)
	assert.Equal(t, []string{"climbing"}, views[0].OtherUserTags)
	assert.False(t, views[0].BothAtEvent, "u3 is not at the event")
	assert.True(t, views[0].BothConfirmed)
	assert.Equal(t, "Bold Falcon 42", views[0].Codeword)

	// Half-confirmed match withholds it.
	assert.Equal(t, "u2", views[1].OtherUserID)
	assert.True(t, views[1].BothAtEvent)
	assert.True(t, views[1].IConfirmed)
	assert.False(t, views[1].OtherConfirmed)
	assert.False(t, views[1].BothConfirmed)
	assert.Empty(t, views[1].Codeword)
}

func TestListMatchesUnknownUser(t *testing.T) {
	e := newEngine()
	_, err := e.matcher.ListMatches(context.Background(), "ghost")
	assert.Error(t, err)
}
