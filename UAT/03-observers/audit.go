// Package audit holds the code under test for the observers UAT: a payment
// flow whose charge call the tests watch and intercept without rewriting
// the stub.
package audit

import (
	"fmt"

	"github.com/toejough/stubtree"
)

// ChargeCustomer runs billing.charge(customer, cents) through the
// dependency and reports whether the charge was accepted.
func ChargeCustomer(deps *stubtree.Proxy, customer string, cents int) (bool, error) {
	result, err := deps.CallPath("billing.charge", customer, cents)
	if err != nil {
		return false, fmt.Errorf("charging %s: %w", customer, err)
	}

	accepted, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("charging %s: charge returned a %T, wanted a bool", customer, result)
	}

	return accepted, nil
}
