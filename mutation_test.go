//go:build mutation

package stubtree

import (
	"testing"

	"github.com/gtramontina/ooze"
)

func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test ./..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles(".*_test.go|UAT/.*"),
		ooze.WithMinimumThreshold(1.00),
		ooze.WithRepositoryRoot("."),
		ooze.ForceColors(),
	)
}
