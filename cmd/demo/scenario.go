package demo

import (
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/lni/dragonboat/v4/logger"
	"io"
)

var plog = logger.GetLogger(common.LoggerCLI)

// Step is one line of the demo output
type Step struct {
	Step   string `json:"step"`
	Result any    `json:"result"`
}

// RunScenario plays the alice/bob scenario against store and writes every step to w.
// It returns an error if the store does not behave as expected.
func RunScenario(store social.IStore, w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}

	emit := func(step string, result any) error {
		plog.Debugf("demo step %s", step)
		return enc.Encode(Step{Step: step, Result: result})
	}

	expect := func(cond bool, format string, args ...any) error {
		if !cond {
			return fmt.Errorf("unexpected result: "+format, args...)
		}
		return nil
	}

	// users
	alice := store.CreateUser("alice", "alice@example.com", "Alice")
	if err := emit("create_user alice", alice); err != nil {
		return err
	}
	bob := store.CreateUser("bob", "bob@example.com", "Bob")
	if err := emit("create_user bob", bob); err != nil {
		return err
	}

	// bob posts
	post := store.CreatePost(bob.ID, "hello")
	if err := emit("create_post bob", post); err != nil {
		return err
	}
	bob, _ = store.GetUser(bob.ID)
	if err := expect(bob.PostCount == 1, "bob.post_count=%d", bob.PostCount); err != nil {
		return err
	}

	// alice follows bob
	followed := store.Follow(alice.ID, bob.ID)
	if err := emit("follow alice->bob", followed); err != nil {
		return err
	}
	alice, _ = store.GetUser(alice.ID)
	bob, _ = store.GetUser(bob.ID)
	if err := emit("get_user alice", alice); err != nil {
		return err
	}
	if err := emit("get_user bob", bob); err != nil {
		return err
	}
	if err := expect(followed && bob.FollowerCount == 1 && alice.FollowingCount == 1,
		"follow=%t, bob.follower_count=%d, alice.following_count=%d", followed, bob.FollowerCount, alice.FollowingCount); err != nil {
		return err
	}

	// feed
	feed := store.GetFeed(alice.ID, 10)
	if err := emit("get_feed alice", feed); err != nil {
		return err
	}
	if err := expect(len(feed) == 1 && feed[0].ID == post.ID, "feed=%v", feed); err != nil {
		return err
	}

	// likes
	for i, step := range []struct {
		name  string
		like  bool
		ok    bool
		count int
	}{
		{"like_post alice", true, true, 1},
		{"like_post alice (again)", true, false, 1},
		{"unlike_post alice", false, true, 0},
	} {
		var ok bool
		if step.like {
			ok = store.LikePost(post.ID, alice.ID)
		} else {
			ok = store.UnlikePost(post.ID, alice.ID)
		}
		if err := emit(step.name, ok); err != nil {
			return err
		}
		posts := store.GetPostsByUser(bob.ID)
		if err := expect(ok == step.ok && len(posts) == 1 && posts[0].LikeCount == step.count,
			"step %d: ok=%t, posts=%v", i, ok, posts); err != nil {
			return err
		}
	}

	return emit("get_info", store.GetInfo())
}
