// Package testutil holds helpers shared by the end-to-end HTTP tests.
package testutil

import "testing"

// Given opens a scenario block. With When and Then it gives the flow tests
// a readable shape without pulling in a BDD framework.
func Given(t *testing.T, scenario string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+scenario, fn)
}

// When names the action under test inside a Given block.
func When(t *testing.T, action string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+action, fn)
}

// Then asserts the outcome of the enclosing When block.
func Then(t *testing.T, outcome string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+outcome, fn)
}
