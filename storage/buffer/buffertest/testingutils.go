// Package buffertest holds the tiny assertion helpers the buffer
// package's tests use, in place of pulling in testify.
package buffertest

import (
	"reflect"
	"testing"
)

// Equals fails the test if exp and act are not deeply equal.
func Equals(tb testing.TB, exp, act interface{}) {
	tb.Helper()
	if !reflect.DeepEqual(exp, act) {
		tb.Fatalf("expected: %#v\ngot: %#v", exp, act)
	}
}

// Ok fails the test if err is non-nil.
func Ok(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("unexpected error: %s", err.Error())
	}
}
