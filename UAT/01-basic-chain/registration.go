// Package chain holds the code under test for the basic-chain UAT: a
// registration flow that talks to its persistence dependency through a
// stub tree proxy.
package chain

import (
	"fmt"

	"github.com/toejough/stubtree"
)

// RegisterUser drives a three-step call chain against the dependency:
// db.user.create.save(name). In production the dependency would be a real
// client; in tests it is a stub tree.
func RegisterUser(db *stubtree.Proxy, name string) (string, error) {
	user, err := db.Child("user")
	if err != nil {
		return "", fmt.Errorf("registering %q: %w", name, err)
	}

	create, err := user.Child("create")
	if err != nil {
		return "", fmt.Errorf("registering %q: %w", name, err)
	}

	result, err := create.Call("save", name)
	if err != nil {
		return "", fmt.Errorf("registering %q: %w", name, err)
	}

	id, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("registering %q: save returned a %T, wanted a string", name, result)
	}

	return id, nil
}
