package social

import "fmt"

// CheckCounters verifies that every denormalized user counter equals the size
// of the relation it caches and returns one message per violation.
//
// Follow edges pointing at unknown users are dropped by GetFollowers and
// GetFollowing, so a store holding such edges reports violations here.
// The result is only meaningful when no writes run concurrently.
func CheckCounters(store IStore) []string {
	var violations []string
	for _, user := range store.GetAllUsers() {
		violations = append(violations, checkUser(store, user)...)
	}
	return violations
}

// CheckUserCounters runs the checks of CheckCounters for a single user.
// An unknown id is reported as a violation.
func CheckUserCounters(store IStore, id int64) []string {
	user, ok := store.GetUser(id)
	if !ok {
		return []string{fmt.Sprintf("user %d: not found", id)}
	}
	return checkUser(store, user)
}

func checkUser(store IStore, user User) []string {
	var violations []string
	if n := len(store.GetPostsByUser(user.ID)); n != user.PostCount {
		violations = append(violations, fmt.Sprintf("user %d: post_count=%d, posts=%d", user.ID, user.PostCount, n))
	}
	if n := len(store.GetFollowers(user.ID)); n != user.FollowerCount {
		violations = append(violations, fmt.Sprintf("user %d: follower_count=%d, followers=%d", user.ID, user.FollowerCount, n))
	}
	if n := len(store.GetFollowing(user.ID)); n != user.FollowingCount {
		violations = append(violations, fmt.Sprintf("user %d: following_count=%d, following=%d", user.ID, user.FollowingCount, n))
	}
	return violations
}
