// Package test holds assertions shared by the conversion tests.
package test

import "testing"

// AssertWantErr fails t when err does not read exactly wantErr. It
// returns true when an error was expected or received so that the caller
// can skip checking the result.
func AssertWantErr(err error, wantErr, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr != err.Error() {
			t.Errorf("%s error = %v, wantErr %q", caller, err, wantErr)
		}

		return true
	} else if wantErr != "" {
		t.Errorf("%s expected error %q, did not receive an error", caller, wantErr)
		return true
	}

	return false
}
