package memstore

import (
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var plog = logger.GetLogger(common.LoggerStore)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures the store during initialization
type Options struct {
	Clock func() time.Time // Source of all timestamps (nil = time.Now)
}

// DefaultOptions returns the default store options
func DefaultOptions() *Options {
	return &Options{
		Clock: time.Now,
	}
}

// --------------------------------------------------------------------------
// Tables
// --------------------------------------------------------------------------

// likeKey identifies a like relation
type likeKey struct {
	postID int64
	userID int64
}

type userTable struct {
	mu   sync.RWMutex
	rows map[int64]*social.User
}

type postTable struct {
	mu   sync.RWMutex
	rows map[int64]*social.Post
}

type commentTable struct {
	mu   sync.RWMutex
	rows map[int64]*social.Comment
}

// followGraph stores every edge twice so both directions are a set lookup
type followGraph struct {
	mu        sync.RWMutex
	followers map[int64]map[int64]struct{} // followed -> followers
	following map[int64]map[int64]struct{} // follower -> followed
	edges     int
}

type storeImpl struct {
	clock func() time.Time

	users    userTable
	posts    postTable
	comments commentTable
	likes    *xsync.MapOf[likeKey, struct{}]
	follows  followGraph

	userSeq    atomic.Int64
	postSeq    atomic.Int64
	commentSeq atomic.Int64
}

// NewMemStore creates a new, empty in-memory store with the specified options (optional).
//
// Every table has its own lock. Operations touching two tables acquire the
// locks one after another, or nested in the fixed order
// likes -> posts and follows -> users.
func NewMemStore(opts *Options) social.IStore {
	if opts == nil {
		opts = DefaultOptions()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &storeImpl{
		clock:    clock,
		users:    userTable{rows: make(map[int64]*social.User)},
		posts:    postTable{rows: make(map[int64]*social.Post)},
		comments: commentTable{rows: make(map[int64]*social.Comment)},
		likes:    xsync.NewMapOf[likeKey, struct{}](),
		follows: followGraph{
			followers: make(map[int64]map[int64]struct{}),
			following: make(map[int64]map[int64]struct{}),
		},
	}
}

// now returns the current time as a store timestamp
func (s *storeImpl) now() string {
	return social.FormatTime(s.clock())
}

// --------------------------------------------------------------------------
// Interface Methods (docu see social/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) CreateUser(username, email, displayName string) social.User {
	ts := s.now()
	user := &social.User{
		ID:          s.userSeq.Add(1),
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	s.users.mu.Lock()
	s.users.rows[user.ID] = user
	snapshot := *user
	s.users.mu.Unlock()

	// register an (empty) follower slot for the new user
	s.follows.mu.Lock()
	if _, ok := s.follows.followers[user.ID]; !ok {
		s.follows.followers[user.ID] = make(map[int64]struct{})
	}
	s.follows.mu.Unlock()

	return snapshot
}

func (s *storeImpl) GetUser(id int64) (social.User, bool) {
	s.users.mu.RLock()
	defer s.users.mu.RUnlock()

	if user, ok := s.users.rows[id]; ok {
		return *user, true
	}
	return social.User{}, false
}

func (s *storeImpl) GetAllUsers() []social.User {
	s.users.mu.RLock()
	users := make([]social.User, 0, len(s.users.rows))
	for _, user := range s.users.rows {
		users = append(users, *user)
	}
	s.users.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (s *storeImpl) UpdateUser(id int64, update social.UserUpdate) (social.User, bool) {
	ts := s.now()

	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	user, ok := s.users.rows[id]
	if !ok {
		return social.User{}, false
	}
	update.Apply(user)
	user.UpdatedAt = ts
	return *user, true
}

func (s *storeImpl) CreatePost(userID int64, content string) social.Post {
	ts := s.now()
	post := &social.Post{
		ID:        s.postSeq.Add(1),
		UserID:    userID,
		Content:   content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	s.posts.mu.Lock()
	s.posts.rows[post.ID] = post
	snapshot := *post
	s.posts.mu.Unlock()

	s.users.mu.Lock()
	if owner, ok := s.users.rows[userID]; ok {
		owner.PostCount++
	} else {
		plog.Debugf("post %d created for unknown user %d", post.ID, userID)
	}
	s.users.mu.Unlock()

	return snapshot
}

func (s *storeImpl) GetPost(id int64) (social.Post, bool) {
	s.posts.mu.Lock()
	defer s.posts.mu.Unlock()

	post, ok := s.posts.rows[id]
	if !ok {
		return social.Post{}, false
	}
	post.Views++
	return *post, true
}

func (s *storeImpl) GetPostsByUser(userID int64) []social.Post {
	s.posts.mu.RLock()
	posts := make([]social.Post, 0)
	for _, post := range s.posts.rows {
		if post.UserID == userID {
			posts = append(posts, *post)
		}
	}
	s.posts.mu.RUnlock()

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

func (s *storeImpl) GetFeed(userID int64, limit int) []social.Post {
	if limit <= 0 {
		return []social.Post{}
	}

	// authors = the user + everyone the user follows
	s.follows.mu.RLock()
	authors := make(map[int64]struct{}, len(s.follows.following[userID])+1)
	for id := range s.follows.following[userID] {
		authors[id] = struct{}{}
	}
	s.follows.mu.RUnlock()
	authors[userID] = struct{}{}

	s.posts.mu.RLock()
	feed := make([]social.Post, 0)
	for _, post := range s.posts.rows {
		if _, ok := authors[post.UserID]; ok {
			feed = append(feed, *post)
		}
	}
	s.posts.mu.RUnlock()

	// newest first, equal timestamps by descending id
	sort.Slice(feed, func(i, j int) bool {
		if feed[i].CreatedAt != feed[j].CreatedAt {
			return feed[i].CreatedAt > feed[j].CreatedAt
		}
		return feed[i].ID > feed[j].ID
	})

	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

func (s *storeImpl) AddComment(postID, userID int64, text string) social.Comment {
	comment := &social.Comment{
		ID:        s.commentSeq.Add(1),
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: s.now(),
	}

	s.comments.mu.Lock()
	s.comments.rows[comment.ID] = comment
	snapshot := *comment
	s.comments.mu.Unlock()

	s.posts.mu.Lock()
	if post, ok := s.posts.rows[postID]; ok {
		post.CommentCount++
	} else {
		plog.Debugf("comment %d added to unknown post %d", comment.ID, postID)
	}
	s.posts.mu.Unlock()

	return snapshot
}

func (s *storeImpl) GetComments(postID int64) []social.Comment {
	s.comments.mu.RLock()
	comments := make([]social.Comment, 0)
	for _, comment := range s.comments.rows {
		if comment.PostID == postID {
			comments = append(comments, *comment)
		}
	}
	s.comments.mu.RUnlock()

	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments
}

func (s *storeImpl) LikePost(postID, userID int64) bool {
	inserted := false

	// the like counter is updated while the bucket of the key is locked,
	// so a concurrent like/unlike of the same pair cannot interleave
	s.likes.Compute(likeKey{postID: postID, userID: userID}, func(old struct{}, loaded bool) (struct{}, bool) {
		if loaded {
			return old, false
		}
		inserted = true

		s.posts.mu.Lock()
		if post, ok := s.posts.rows[postID]; ok {
			post.LikeCount++
		} else {
			plog.Debugf("like recorded for unknown post %d", postID)
		}
		s.posts.mu.Unlock()

		return struct{}{}, false
	})

	return inserted
}

func (s *storeImpl) UnlikePost(postID, userID int64) bool {
	removed := false

	s.likes.Compute(likeKey{postID: postID, userID: userID}, func(old struct{}, loaded bool) (struct{}, bool) {
		if !loaded {
			return old, true
		}
		removed = true

		s.posts.mu.Lock()
		if post, ok := s.posts.rows[postID]; ok && post.LikeCount > 0 {
			post.LikeCount--
		}
		s.posts.mu.Unlock()

		return old, true
	})

	return removed
}

func (s *storeImpl) IsPostLiked(postID, userID int64) bool {
	_, ok := s.likes.Load(likeKey{postID: postID, userID: userID})
	return ok
}

func (s *storeImpl) Follow(followerID, followingID int64) bool {
	if followerID == followingID {
		return false
	}

	s.follows.mu.Lock()
	defer s.follows.mu.Unlock()

	if _, ok := s.follows.followers[followingID][followerID]; ok {
		return false
	}
	addEdge(s.follows.followers, followingID, followerID)
	addEdge(s.follows.following, followerID, followingID)
	s.follows.edges++

	s.users.mu.Lock()
	if user, ok := s.users.rows[followingID]; ok {
		user.FollowerCount++
	}
	if user, ok := s.users.rows[followerID]; ok {
		user.FollowingCount++
	}
	s.users.mu.Unlock()

	return true
}

func (s *storeImpl) Unfollow(followerID, followingID int64) bool {
	s.follows.mu.Lock()
	defer s.follows.mu.Unlock()

	if _, ok := s.follows.followers[followingID][followerID]; !ok {
		return false
	}
	delete(s.follows.followers[followingID], followerID)
	delete(s.follows.following[followerID], followingID)
	s.follows.edges--

	s.users.mu.Lock()
	if user, ok := s.users.rows[followingID]; ok && user.FollowerCount > 0 {
		user.FollowerCount--
	}
	if user, ok := s.users.rows[followerID]; ok && user.FollowingCount > 0 {
		user.FollowingCount--
	}
	s.users.mu.Unlock()

	return true
}

func (s *storeImpl) GetFollowers(userID int64) []social.User {
	s.follows.mu.RLock()
	ids := setToSlice(s.follows.followers[userID])
	s.follows.mu.RUnlock()

	return s.resolveUsers(ids)
}

func (s *storeImpl) GetFollowing(userID int64) []social.User {
	s.follows.mu.RLock()
	ids := setToSlice(s.follows.following[userID])
	s.follows.mu.RUnlock()

	return s.resolveUsers(ids)
}

func (s *storeImpl) GetInfo() social.Info {
	info := social.Info{}

	s.users.mu.RLock()
	info.Users = len(s.users.rows)
	s.users.mu.RUnlock()

	s.posts.mu.RLock()
	info.Posts = len(s.posts.rows)
	s.posts.mu.RUnlock()

	s.comments.mu.RLock()
	info.Comments = len(s.comments.rows)
	s.comments.mu.RUnlock()

	info.Likes = s.likes.Size()

	s.follows.mu.RLock()
	info.FollowEdges = s.follows.edges
	s.follows.mu.RUnlock()

	return info
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// resolveUsers looks up the given ids, silently dropping unknown ones.
// The result is ordered by id.
func (s *storeImpl) resolveUsers(ids []int64) []social.User {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.users.mu.RLock()
	defer s.users.mu.RUnlock()

	users := make([]social.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.users.rows[id]; ok {
			users = append(users, *user)
		}
	}
	return users
}

// addEdge inserts to into the set stored under from, creating the set if needed
func addEdge(index map[int64]map[int64]struct{}, from, to int64) {
	set, ok := index[from]
	if !ok {
		set = make(map[int64]struct{})
		index[from] = set
	}
	set[to] = struct{}{}
}

func setToSlice(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
