package demo

import (
	"bytes"
	"encoding/json"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/ValentinKolb/socialKV/lib/social/memstore"
	"strings"
	"testing"
)

func TestRunScenario(t *testing.T) {
	var buf bytes.Buffer
	if err := RunScenario(memstore.NewMemStore(nil), &buf, false); err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("Expected 11 steps, got %d:\n%s", len(lines), buf.String())
	}

	var first struct {
		Step   string      `json:"step"`
		Result social.User `json:"result"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Failed to decode first step: %v", err)
	}
	if first.Step != "create_user alice" || first.Result.ID != 1 || first.Result.Username != "alice" {
		t.Errorf("Unexpected first step: %+v", first)
	}

	var last struct {
		Step   string      `json:"step"`
		Result social.Info `json:"result"`
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("Failed to decode last step: %v", err)
	}
	want := social.Info{Users: 2, Posts: 1, FollowEdges: 1}
	if last.Result != want {
		t.Errorf("Expected %+v, got %+v", want, last.Result)
	}
}

// brokenStore drops every like
type brokenStore struct {
	social.IStore
}

func (brokenStore) LikePost(int64, int64) bool { return false }

func TestRunScenarioDetectsMisbehavior(t *testing.T) {
	var buf bytes.Buffer
	err := RunScenario(brokenStore{memstore.NewMemStore(nil)}, &buf, true)
	if err == nil {
		t.Fatalf("Expected an error for a store that drops likes")
	}
	if !strings.Contains(err.Error(), "step 0") {
		t.Errorf("Expected the first like step to fail, got %v", err)
	}
}
