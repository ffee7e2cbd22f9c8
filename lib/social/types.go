package social

import "fmt"

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

// User is a registered account.
// PostCount, FollowerCount and FollowingCount are denormalized counters that
// the store keeps equal to the size of the relation they cache.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	PostCount      int    `json:"post_count"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}

func (u User) String() string {
	return fmt.Sprintf("User{ID: %d, Username: %q, Posts: %d, Followers: %d, Following: %d}",
		u.ID, u.Username, u.PostCount, u.FollowerCount, u.FollowingCount)
}

// Post is a message published by a user.
// Views is incremented every time the post is read with GetPost.
type Post struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	Views        int    `json:"views"`
}

func (p Post) String() string {
	return fmt.Sprintf("Post{ID: %d, UserID: %d, Likes: %d, Comments: %d, Views: %d}",
		p.ID, p.UserID, p.LikeCount, p.CommentCount, p.Views)
}

// Comment is a reply to a post.
// LikeCount is part of the record for compatibility; no operation changes it.
type Comment struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	UserID    int64  `json:"user_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	LikeCount int    `json:"like_count"`
}

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// UserUpdate is a partial update of a user profile. Nil fields are left unchanged.
type UserUpdate struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// Apply copies the set fields of the update onto u.
func (upd UserUpdate) Apply(u *User) {
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
}

// Info holds the cardinality of every table of a store.
type Info struct {
	Users       int `json:"users"`
	Posts       int `json:"posts"`
	Comments    int `json:"comments"`
	Likes       int `json:"likes"`
	FollowEdges int `json:"follow_edges"`
}
