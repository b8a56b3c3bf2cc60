package process

import (
	"context"
	"strings"
	"testing"
)

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), nil, "definitely-not-a-real-binary-xyz")
	if err == nil || !strings.Contains(err.Error(), "definitely-not-a-real-binary-xyz failed") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if Available("definitely-not-a-real-binary-xyz") {
		t.Fatalf("binary should not be available")
	}
}
