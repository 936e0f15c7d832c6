package sl

import (
	"errors"
	"testing"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != "error" {
		t.Errorf("Key = %q, want %q", attr.Key, "error")
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Value = %q, want %q", attr.Value.String(), "boom")
	}
}

func TestOp(t *testing.T) {
	attr := Op("storage.CreateUser")
	if attr.Key != "op" {
		t.Errorf("Key = %q, want %q", attr.Key, "op")
	}
	if attr.Value.String() != "storage.CreateUser" {
		t.Errorf("Value = %q, want %q", attr.Value.String(), "storage.CreateUser")
	}
}
