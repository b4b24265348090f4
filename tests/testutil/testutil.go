package testutil

import (
	"os"
	"testing"
)

// MustSetTestEnvironment forces GO_ENV=test. Meant for TestMain and suite
// setup, before any database connection is opened: the suites in this tree
// open and migrate databases, so a wrong environment could point them at a
// real one.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("could not set GO_ENV=test: %v", err)
	}
}
