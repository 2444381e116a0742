package services

import (
	"context"
	"sort"
	"sync"

	"talkalot_server/models"
	"talkalot_server/repositories"
)

// fakeStore is an in-memory stand-in for the Dynamo-backed repositories. It
// mirrors their conflict semantics (pair uniqueness, proximity flag guard,
// codeword guard) so the services can be exercised without DynamoDB.
type fakeStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	posts   map[string]models.Post
	likes   map[string]models.Like
	matches map[string]models.Match
	notifs  map[string][]models.Notification

	// beforeCreateMatch, when set, runs just before a match create commits.
	// Tests use it to lose the create race on purpose.
	beforeCreateMatch func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]models.User{},
		posts:   map[string]models.Post{},
		likes:   map[string]models.Like{},
		matches: map[string]models.Match{},
		notifs:  map[string][]models.Notification{},
	}
}

func likeEdgeKey(likerID, postID string) string {
	return likerID + "|" + postID
}

// --- UserRepository ---

func (f *fakeStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeStore) Get(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (f *fakeStore) SetInsideFair(ctx context.Context, userID string, inside bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.InsideFair = inside
	f.users[userID] = user
	return nil
}

func (f *fakeStore) TouchLastSeen(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeStore) UpdateInterests(ctx context.Context, userID string, tags []string, freeText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.InterestTags = tags
	user.FreeTextInterests = freeText
	f.users[userID] = user
	return nil
}

// --- PostRepository ---

func (f *fakeStore) CreatePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.PostID] = *post
	return nil
}

func (f *fakeStore) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (f *fakeStore) ListRecent(ctx context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt > posts[j].CreatedAt })
	return posts, nil
}

// postRepo adapts fakeStore to the PostRepository method names.
type postRepo struct{ *fakeStore }

func (r postRepo) Create(ctx context.Context, post *models.Post) error { return r.CreatePost(ctx, post) }
func (r postRepo) Get(ctx context.Context, postID string) (*models.Post, error) {
	return r.GetPost(ctx, postID)
}

// --- LikeRepository ---

type likeRepo struct{ *fakeStore }

func (r likeRepo) Create(ctx context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeEdgeKey(like.LikerID, like.PostID)
	if _, exists := r.likes[key]; exists {
		return repositories.ErrConflict
	}
	r.likes[key] = *like
	return nil
}

func (r likeRepo) Delete(ctx context.Context, likerID, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, likeEdgeKey(likerID, postID))
	return nil
}

func (r likeRepo) Has(ctx context.Context, likerID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[likeEdgeKey(likerID, postID)]
	return ok, nil
}

func (r likeRepo) HasReciprocal(ctx context.Context, authorID, likerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, like := range r.likes {
		if like.PostOwnerID == authorID && like.LikerID == likerID {
			return true, nil
		}
	}
	return false, nil
}

func (r likeRepo) FindLikedPost(ctx context.Context, likerID, authorID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, like := range r.likes {
		if like.PostOwnerID == authorID && like.LikerID == likerID {
			if post, ok := r.posts[like.PostID]; ok {
				return &post, nil
			}
		}
	}
	return nil, repositories.ErrNotFound
}

func (r likeRepo) CountForPost(ctx context.Context, postID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, like := range r.likes {
		if like.PostID == postID {
			count++
		}
	}
	return count, nil
}

// --- MatchRepository ---

type matchRepo struct{ *fakeStore }

func (r matchRepo) GetByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[models.PairKeyFor(userA, userB)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &match, nil
}

func (r matchRepo) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.MatchID == matchID {
			match := m
			return &match, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r matchRepo) ListByUser(ctx context.Context, userID string) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []models.Match
	for _, m := range r.matches {
		if m.Involves(userID) {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt > matches[j].CreatedAt })
	return matches, nil
}

func (r matchRepo) CreateWithNotifications(ctx context.Context, match *models.Match, notifA, notifB *models.Notification) error {
	if r.beforeCreateMatch != nil {
		hook := r.beforeCreateMatch
		r.beforeCreateMatch = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.matches[match.PairKey]; exists {
		return repositories.ErrConflict
	}
	r.matches[match.PairKey] = *match
	r.appendLocked(notifA, notifB)
	return nil
}

func (r matchRepo) MarkProximityNotified(ctx context.Context, pairKey string, notifA, notifB *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[pairKey]
	if !ok {
		return repositories.ErrNotFound
	}
	if match.ProximityNotified {
		return repositories.ErrConflict
	}
	match.ProximityNotified = true
	r.matches[pairKey] = match
	r.appendLocked(notifA, notifB)
	return nil
}

func (r matchRepo) Confirm(ctx context.Context, pairKey string, lowSide bool) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[pairKey]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if lowSide {
		match.UserLowConfirmed = true
	} else {
		match.UserHighConfirmed = true
	}
	r.matches[pairKey] = match
	return &match, nil
}

func (r matchRepo) SetCodewordWithNotifications(ctx context.Context, pairKey, codeword string, notifA, notifB *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[pairKey]
	if !ok {
		return repositories.ErrNotFound
	}
	if match.Codeword != "" {
		return repositories.ErrConflict
	}
	match.Codeword = codeword
	r.matches[pairKey] = match
	r.appendLocked(notifA, notifB)
	return nil
}

// --- NotificationRepository ---

type notifRepo struct{ *fakeStore }

func (r notifRepo) Append(ctx context.Context, notif *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLocked(notif)
	return nil
}

func (r notifRepo) ListByUser(ctx context.Context, userID string, limit int32) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notifs := append([]models.Notification(nil), r.notifs[userID]...)
	sort.Slice(notifs, func(i, j int) bool { return notifs[i].SortKey > notifs[j].SortKey })
	if limit > 0 && int(limit) < len(notifs) {
		notifs = notifs[:limit]
	}
	return notifs, nil
}

func (r notifRepo) CountUnseen(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifs[userID] {
		if !n.Seen {
			count++
		}
	}
	return count, nil
}

func (r notifRepo) MarkAllSeen(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notifs := r.notifs[userID]
	for i := range notifs {
		notifs[i].Seen = true
	}
	return nil
}

func (f *fakeStore) appendLocked(notifs ...*models.Notification) {
	for _, n := range notifs {
		f.notifs[n.UserID] = append(f.notifs[n.UserID], *n)
	}
}

// notifsOfKind returns a user's notifications of one kind, oldest first.
func (f *fakeStore) notifsOfKind(userID, kind string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifs[userID] {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// --- wiring helpers ---

type engine struct {
	store     *fakeStore
	matcher   *MatchService
	proximity *ProximityService
	handshake *HandshakeService
	users     *UserService
	posts     *PostService
	notifs    *NotificationService
}

func newEngine() *engine {
	store := newFakeStore()
	users := store
	likes := likeRepo{store}
	matches := matchRepo{store}
	notifications := notifRepo{store}
	posts := postRepo{store}

	matcher := &MatchService{Users: users, Likes: likes, Matches: matches}
	proximity := &ProximityService{Users: users, Likes: likes, Matches: matches}
	handshake := &HandshakeService{Matches: matches}
	userService := &UserService{Users: users, Notifications: notifications, Proximity: proximity}
	postService := &PostService{
		Users:         users,
		Posts:         posts,
		Likes:         likes,
		Notifications: notifications,
		Matcher:       matcher,
		Proximity:     proximity,
	}
	notifService := &NotificationService{Notifications: notifications}

	return &engine{
		store:     store,
		matcher:   matcher,
		proximity: proximity,
		handshake: handshake,
		users:     userService,
		posts:     postService,
		notifs:    notifService,
	}
}

// addUser seeds an attendee directly into the store.
func (e *engine) addUser(userID string, inside bool, tags ...string) {
	e.store.users[userID] = models.User{UserID: userID, InsideFair: inside, InterestTags: tags}
}

// addPost seeds a post directly into the store.
func (e *engine) addPost(postID, authorID, content string) {
	e.store.posts[postID] = models.Post{PostID: postID, AuthorID: authorID, Content: content, CreatedAt: postID}
}

// addLike seeds a like edge directly into the store.
func (e *engine) addLike(likerID, postID, ownerID string) {
	e.store.likes[likeEdgeKey(likerID, postID)] = models.Like{LikerID: likerID, PostID: postID, PostOwnerID: ownerID}
}
