package simulate

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimulateCommand(t *testing.T) {
	var out bytes.Buffer
	SimulateCmd.SetOut(&out)
	SimulateCmd.SetArgs([]string{
		"--users", "10",
		"--posts-per-user", "2",
		"--follows-per-user", "3",
		"--workers", "2",
		"--operations", "300",
		"--seed", "7",
		"--mix", "unfollow=0,update-user=0",
		"--metrics",
	})

	if err := SimulateCmd.Execute(); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if simulateCmdConfig.Users != 10 || simulateCmdConfig.Mix.Unfollow != 0 {
		t.Errorf("Flags not applied: %+v", simulateCmdConfig)
	}
	for _, want := range []string{"SEED DATA", "OPERATIONS", "VERIFICATION", "socialkv_operations_total"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestSimulateRejectsInvalidMix(t *testing.T) {
	SimulateCmd.SetOut(&bytes.Buffer{})
	SimulateCmd.SetArgs([]string{"--mix", "retweet=5"})

	if err := SimulateCmd.Execute(); err == nil {
		t.Errorf("Expected error for unknown operation")
	}
}
