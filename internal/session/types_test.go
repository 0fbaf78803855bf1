package session

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMergeOptions_FastModeShortensDefaultCommandTimeout(t *testing.T) {
	got := MergeOptions(AdvancedOptions{FastMode: true})
	want := DefaultAdvancedOptions()
	want.FastMode = true
	want.CommandTimeout = 5 * time.Second

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOptions_ExplicitValuesOverrideDefaults(t *testing.T) {
	got := MergeOptions(AdvancedOptions{
		ConnectionRetryCount: 7,
		CommandRetryCount:    4,
		RetryDelay:           9 * time.Second,
		FailOnError:          BoolPtr(false),
	})

	want := DefaultAdvancedOptions()
	want.ConnectionRetryCount = 7
	want.CommandRetryCount = 4
	want.RetryDelay = 9 * time.Second
	want.FailOnError = BoolPtr(false)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandResult_IgnoresTimingFieldsWhenComparingOutcome(t *testing.T) {
	a := CommandResult{Command: "show version", Output: "12.4", Success: true, Host: "r1", ExecutionTime: 10 * time.Millisecond}
	b := CommandResult{Command: "show version", Output: "12.4", Success: true, Host: "r1", ExecutionTime: 25 * time.Millisecond}

	diff := cmp.Diff(a, b, cmpopts.IgnoreFields(CommandResult{}, "ExecutionTime", "Timestamp"))
	if diff != "" {
		t.Errorf("results should be equal ignoring timing fields, got diff:\n%s", diff)
	}
}
