package metered

import (
	"fmt"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/VictoriaMetrics/metrics"
	"io"
	"time"
)

// Operation names used as the "op" label of every metric
const (
	OpCreateUser     = "create_user"
	OpGetUser        = "get_user"
	OpGetAllUsers    = "get_all_users"
	OpUpdateUser     = "update_user"
	OpCreatePost     = "create_post"
	OpGetPost        = "get_post"
	OpGetPostsByUser = "get_posts_by_user"
	OpGetFeed        = "get_feed"
	OpAddComment     = "add_comment"
	OpGetComments    = "get_comments"
	OpLikePost       = "like_post"
	OpUnlikePost     = "unlike_post"
	OpIsPostLiked    = "is_post_liked"
	OpFollow         = "follow"
	OpUnfollow       = "unfollow"
	OpGetFollowers   = "get_followers"
	OpGetFollowing   = "get_following"
	OpGetInfo        = "get_info"
)

var operations = []string{
	OpCreateUser, OpGetUser, OpGetAllUsers, OpUpdateUser,
	OpCreatePost, OpGetPost, OpGetPostsByUser, OpGetFeed,
	OpAddComment, OpGetComments,
	OpLikePost, OpUnlikePost, OpIsPostLiked,
	OpFollow, OpUnfollow, OpGetFollowers, OpGetFollowing,
	OpGetInfo,
}

// opMetrics bundles the metrics of one operation
type opMetrics struct {
	calls    *metrics.Counter
	misses   *metrics.Counter
	duration *metrics.Histogram
}

// Store is a social.IStore decorator that records, per operation, the number
// of calls, the number of misses (lookups that found nothing and mutations
// that were a no-op) and a latency histogram. Entity counts are exported as
// gauges that query the wrapped store on every scrape.
type Store struct {
	inner social.IStore
	set   *metrics.Set
	ops   map[string]*opMetrics // read-only after New
}

// New wraps inner and registers all metrics in set (nil = a new private set).
// Registering two stores in the same set panics, because gauge names must be unique.
func New(inner social.IStore, set *metrics.Set) *Store {
	if set == nil {
		set = metrics.NewSet()
	}

	s := &Store{
		inner: inner,
		set:   set,
		ops:   make(map[string]*opMetrics, len(operations)),
	}

	for _, op := range operations {
		s.ops[op] = &opMetrics{
			calls:    set.GetOrCreateCounter(fmt.Sprintf(`socialkv_operations_total{op=%q}`, op)),
			misses:   set.GetOrCreateCounter(fmt.Sprintf(`socialkv_operation_misses_total{op=%q}`, op)),
			duration: set.GetOrCreateHistogram(fmt.Sprintf(`socialkv_operation_duration_seconds{op=%q}`, op)),
		}
	}

	set.NewGauge("socialkv_users", func() float64 { return float64(inner.GetInfo().Users) })
	set.NewGauge("socialkv_posts", func() float64 { return float64(inner.GetInfo().Posts) })
	set.NewGauge("socialkv_comments", func() float64 { return float64(inner.GetInfo().Comments) })
	set.NewGauge("socialkv_likes", func() float64 { return float64(inner.GetInfo().Likes) })
	set.NewGauge("socialkv_follow_edges", func() float64 { return float64(inner.GetInfo().FollowEdges) })

	return s
}

// MetricSet returns the set the metrics are registered in
func (s *Store) MetricSet() *metrics.Set {
	return s.set
}

// WritePrometheus writes all metrics in Prometheus text exposition format to w
func (s *Store) WritePrometheus(w io.Writer) {
	s.set.WritePrometheus(w)
}

// Calls returns how often op was called
func (s *Store) Calls(op string) uint64 {
	if m, ok := s.ops[op]; ok {
		return m.calls.Get()
	}
	return 0
}

// Misses returns how often op found nothing or changed nothing
func (s *Store) Misses(op string) uint64 {
	if m, ok := s.ops[op]; ok {
		return m.misses.Get()
	}
	return 0
}

// track counts a call of op and records its latency since start
func (s *Store) track(op string, start time.Time) {
	m := s.ops[op]
	m.calls.Inc()
	m.duration.UpdateDuration(start)
}

// miss counts a miss of op if ok is false and returns ok
func (s *Store) miss(op string, ok bool) bool {
	if !ok {
		s.ops[op].misses.Inc()
	}
	return ok
}

// --------------------------------------------------------------------------
// Interface Methods (docu see social/interface.go)
// --------------------------------------------------------------------------

func (s *Store) CreateUser(username, email, displayName string) social.User {
	defer s.track(OpCreateUser, time.Now())
	return s.inner.CreateUser(username, email, displayName)
}

func (s *Store) GetUser(id int64) (social.User, bool) {
	defer s.track(OpGetUser, time.Now())
	user, ok := s.inner.GetUser(id)
	return user, s.miss(OpGetUser, ok)
}

func (s *Store) GetAllUsers() []social.User {
	defer s.track(OpGetAllUsers, time.Now())
	return s.inner.GetAllUsers()
}

func (s *Store) UpdateUser(id int64, update social.UserUpdate) (social.User, bool) {
	defer s.track(OpUpdateUser, time.Now())
	user, ok := s.inner.UpdateUser(id, update)
	return user, s.miss(OpUpdateUser, ok)
}

func (s *Store) CreatePost(userID int64, content string) social.Post {
	defer s.track(OpCreatePost, time.Now())
	return s.inner.CreatePost(userID, content)
}

func (s *Store) GetPost(id int64) (social.Post, bool) {
	defer s.track(OpGetPost, time.Now())
	post, ok := s.inner.GetPost(id)
	return post, s.miss(OpGetPost, ok)
}

func (s *Store) GetPostsByUser(userID int64) []social.Post {
	defer s.track(OpGetPostsByUser, time.Now())
	return s.inner.GetPostsByUser(userID)
}

func (s *Store) GetFeed(userID int64, limit int) []social.Post {
	defer s.track(OpGetFeed, time.Now())
	return s.inner.GetFeed(userID, limit)
}

func (s *Store) AddComment(postID, userID int64, text string) social.Comment {
	defer s.track(OpAddComment, time.Now())
	return s.inner.AddComment(postID, userID, text)
}

func (s *Store) GetComments(postID int64) []social.Comment {
	defer s.track(OpGetComments, time.Now())
	return s.inner.GetComments(postID)
}

func (s *Store) LikePost(postID, userID int64) bool {
	defer s.track(OpLikePost, time.Now())
	return s.miss(OpLikePost, s.inner.LikePost(postID, userID))
}

func (s *Store) UnlikePost(postID, userID int64) bool {
	defer s.track(OpUnlikePost, time.Now())
	return s.miss(OpUnlikePost, s.inner.UnlikePost(postID, userID))
}

func (s *Store) IsPostLiked(postID, userID int64) bool {
	defer s.track(OpIsPostLiked, time.Now())
	return s.inner.IsPostLiked(postID, userID)
}

func (s *Store) Follow(followerID, followingID int64) bool {
	defer s.track(OpFollow, time.Now())
	return s.miss(OpFollow, s.inner.Follow(followerID, followingID))
}

func (s *Store) Unfollow(followerID, followingID int64) bool {
	defer s.track(OpUnfollow, time.Now())
	return s.miss(OpUnfollow, s.inner.Unfollow(followerID, followingID))
}

func (s *Store) GetFollowers(userID int64) []social.User {
	defer s.track(OpGetFollowers, time.Now())
	return s.inner.GetFollowers(userID)
}

func (s *Store) GetFollowing(userID int64) []social.User {
	defer s.track(OpGetFollowing, time.Now())
	return s.inner.GetFollowing(userID)
}

func (s *Store) GetInfo() social.Info {
	defer s.track(OpGetInfo, time.Now())
	return s.inner.GetInfo()
}
