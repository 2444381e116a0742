package services

import (
	"context"
	"errors"
	"time"

	"talkalot_server/models"
	"talkalot_server/repositories"

	"github.com/google/uuid"
)

// ErrSelfLike rejects likes on the liker's own post before they ever reach
// the match detector.
var ErrSelfLike = errors.New("cannot like your own post")

const likeMessage = "Someone liked your interest post!"

// PostService owns the interest board: posts, like edges, and the like-driven
// entry point into the match detector.
type PostService struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Likes         repositories.LikeRepository
	Notifications repositories.NotificationRepository
	Matcher       *MatchService
	Proximity     *ProximityService
}

// CreatePost publishes a new interest post for userID.
func (ps *PostService) CreatePost(ctx context.Context, userID, content string, tags []string) (*models.Post, error) {
	if _, err := ps.Users.Get(ctx, userID); err != nil {
		return nil, err
	}
	post := &models.Post{
		PostID:    uuid.NewString(),
		AuthorID:  userID,
		Content:   content,
		Tags:      tags,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := ps.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// PostView is a post as seen by a particular viewer.
type PostView struct {
	models.Post
	LikeCount int  `json:"likeCount"`
	LikedByMe bool `json:"likedByMe"`
}

// ListPosts returns all posts newest first, with like counts and the
// viewer's own like state.
func (ps *PostService) ListPosts(ctx context.Context, viewerID string) ([]PostView, error) {
	if _, err := ps.Users.Get(ctx, viewerID); err != nil {
		return nil, err
	}
	posts, err := ps.Posts.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		count, err := ps.Likes.CountForPost(ctx, post.PostID)
		if err != nil {
			return nil, err
		}
		likedByMe, err := ps.Likes.Has(ctx, viewerID, post.PostID)
		if err != nil {
			return nil, err
		}
		views = append(views, PostView{Post: post, LikeCount: count, LikedByMe: likedByMe})
	}
	return views, nil
}

// LikeResult reports the outcome of a like action.
type LikeResult struct {
	Status  string `json:"status"`
	Matched bool   `json:"matched"`
}

// LikePost records a like edge and drives the downstream engine: the like
// fan-out to a present post owner, the match detector, and (when a match
// exists) the proximity pass. Duplicate likes are absorbed.
func (ps *PostService) LikePost(ctx context.Context, likerID, postID string) (*LikeResult, error) {
	if _, err := ps.Users.Get(ctx, likerID); err != nil {
		return nil, err
	}
	post, err := ps.Posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == likerID {
		return nil, ErrSelfLike
	}

	like := &models.Like{
		LikerID:     likerID,
		PostID:      postID,
		PostOwnerID: post.AuthorID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := ps.Likes.Create(ctx, like); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return &LikeResult{Status: "already_liked"}, nil
		}
		return nil, err
	}

	// Fan-out to the post owner, only while they are at the event.
	if owner, err := ps.Users.Get(ctx, post.AuthorID); err == nil && owner.InsideFair {
		notif := newNotification(post.AuthorID, models.NotificationKindLike, likeMessage)
		notif.RelatedUserID = likerID
		notif.RelatedPostID = postID
		if err := ps.Notifications.Append(ctx, notif); err != nil {
			return nil, err
		}
	}

	match, err := ps.Matcher.OnLikeCreated(ctx, likerID, post.AuthorID)
	if err != nil {
		return nil, err
	}
	if match != nil {
		if err := ps.Proximity.OnPresenceBecameTrue(ctx, likerID); err != nil {
			return nil, err
		}
	}

	return &LikeResult{Status: "liked", Matched: match != nil}, nil
}

// UnlikePost removes the like edge. Matches already created stay as they
// are; only the edge disappears.
func (ps *PostService) UnlikePost(ctx context.Context, likerID, postID string) error {
	return ps.Likes.Delete(ctx, likerID, postID)
}
