package auth

import "testing"

func TestOwns(t *testing.T) {
	if !Owns(42, 42) {
		t.Error("expected caller to own their own resource")
	}
	if Owns(42, 43) {
		t.Error("expected ownership check to fail for another patient")
	}
	if Owns(0, 0) != true {
		t.Error("identical ids always match")
	}
}
