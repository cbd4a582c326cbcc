package scope

import "testing"

func TestScopeCanAccess(t *testing.T) {
	global := Scope{Global: true}
	if !global.CanAccess(1) || !global.CanAccess(99) {
		t.Error("global scope should reach every university")
	}

	pinned := Scope{UniversityID: 5}
	if !pinned.CanAccess(5) {
		t.Error("pinned scope should reach its own university")
	}
	if pinned.CanAccess(6) {
		t.Error("pinned scope should not reach another university")
	}

	var none Scope
	if none.CanAccess(0) || none.CanAccess(1) {
		t.Error("empty scope should reach nothing")
	}
}

func TestScopeEmpty(t *testing.T) {
	if (Scope{Global: true}).Empty() {
		t.Error("global scope is not empty")
	}
	if (Scope{UniversityID: 2}).Empty() {
		t.Error("pinned scope is not empty")
	}
	if !(Scope{}).Empty() {
		t.Error("zero scope is empty")
	}
}
