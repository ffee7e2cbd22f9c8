package social

import "time"

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// StoreFactory is a function type that creates a new, empty store.
// It is used by the conformance suite and the workload runner to abstract
// the creation of the store from its implementation.
type StoreFactory func() IStore

// IStore is the interface of the in-memory social network store.
// None of the methods return an error: "not found" is reported through the
// boolean return value of lookups and "no-op" through the boolean return
// value of relation mutations.
//
// References between entities are never validated. A post may name an
// unknown owner, a comment an unknown post and a like an unknown post; the
// store only skips the counter update of the missing entity.
type IStore interface {

	// --------------------------------------------------------------------------
	// Users
	// --------------------------------------------------------------------------

	// CreateUser allocates the next user id and stores a new user with an empty
	// bio and all counters set to 0.
	CreateUser(username, email, displayName string) User
	// GetUser returns the user with the given id. The boolean reports whether it exists.
	GetUser(id int64) (user User, found bool)
	// GetAllUsers returns every user. Callers must not depend on the order.
	GetAllUsers() []User
	// UpdateUser applies the non-nil fields of update and sets UpdatedAt to now.
	UpdateUser(id int64, update UserUpdate) (user User, found bool)

	// --------------------------------------------------------------------------
	// Posts
	// --------------------------------------------------------------------------

	// CreatePost allocates the next post id and increments the owner's post count
	// if the owner exists. The post is created even if it does not.
	CreatePost(userID int64, content string) Post
	// GetPost returns the post with the given id and increments its view count.
	GetPost(id int64) (post Post, found bool)
	// GetPostsByUser returns all posts owned by userID without touching views.
	GetPostsByUser(userID int64) []Post
	// GetFeed returns the posts of userID and of every user userID follows,
	// newest first, truncated to at most limit entries.
	GetFeed(userID int64, limit int) []Post

	// --------------------------------------------------------------------------
	// Comments
	// --------------------------------------------------------------------------

	// AddComment allocates the next comment id and increments the post's comment
	// count if the post exists. The comment is created even if it does not.
	AddComment(postID, userID int64, text string) Comment
	// GetComments returns all comments of postID.
	GetComments(postID int64) []Comment

	// --------------------------------------------------------------------------
	// Likes
	// --------------------------------------------------------------------------

	// LikePost records that userID likes postID. It returns false if the like
	// already exists.
	LikePost(postID, userID int64) bool
	// UnlikePost removes the like of userID on postID. It returns false if there
	// was no such like. The like count never drops below 0.
	UnlikePost(postID, userID int64) bool
	// IsPostLiked reports whether userID currently likes postID.
	IsPostLiked(postID, userID int64) bool

	// --------------------------------------------------------------------------
	// Follow graph
	// --------------------------------------------------------------------------

	// Follow adds the edge followerID -> followingID. It returns false for
	// self-follows and for edges that already exist.
	Follow(followerID, followingID int64) bool
	// Unfollow removes the edge followerID -> followingID. It returns false if
	// the edge does not exist. Counters never drop below 0.
	Unfollow(followerID, followingID int64) bool
	// GetFollowers returns the users following userID. Ids that do not resolve
	// to a user are dropped.
	GetFollowers(userID int64) []User
	// GetFollowing returns the users userID follows. Ids that do not resolve
	// to a user are dropped.
	GetFollowing(userID int64) []User

	// --------------------------------------------------------------------------
	// Meta
	// --------------------------------------------------------------------------

	// GetInfo returns the current size of every table.
	// The values are not taken atomically across tables.
	GetInfo() Info
}

// --------------------------------------------------------------------------
// Timestamps
// --------------------------------------------------------------------------

// TimeLayout is the format of every timestamp produced by the store.
// It is RFC 3339 with a fixed nine digit fraction, so that lexical order of
// two timestamps in UTC equals their chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp produced by FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
