// Package editing holds the code under test for the tree-editing UAT: a
// reporting job whose dependency tree gets reshaped between test cases
// instead of rebuilt from scratch.
package editing

import (
	"fmt"

	"github.com/toejough/stubtree"
)

// RunReport pulls metrics through the dependency chain
// metrics.daily.fetch() and formats them.
func RunReport(deps *stubtree.Proxy) (string, error) {
	result, err := deps.CallPath("metrics.daily.fetch")
	if err != nil {
		return "", fmt.Errorf("running report: %w", err)
	}

	return fmt.Sprintf("report: %v", result), nil
}
