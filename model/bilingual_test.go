package model

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ko   string
		uz   string
		want string
	}{
		{"korean wins when both set", "한국어", "O'zbek", "한국어"},
		{"falls back to uzbek", "", "O'zbek", "O'zbek"},
		{"whitespace korean falls back", "   ", "O'zbek", "O'zbek"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.ko, tt.uz); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.ko, tt.uz, got, tt.want)
			}
		})
	}
}

func TestPickLanguage(t *testing.T) {
	if got := PickLanguage("한국어", "O'zbek", "uz"); got != "O'zbek" {
		t.Errorf("uz should pick the uzbek side, got %q", got)
	}
	if got := PickLanguage("한국어", "", "uz"); got != "한국어" {
		t.Errorf("uz with empty uzbek should fall back to korean, got %q", got)
	}
	if got := PickLanguage("한국어", "O'zbek", "ko"); got != "한국어" {
		t.Errorf("ko should pick the korean side, got %q", got)
	}
	if got := PickLanguage("", "O'zbek", ""); got != "O'zbek" {
		t.Errorf("default language with empty korean should fall back, got %q", got)
	}
}

func TestHasBilingual(t *testing.T) {
	if !HasBilingual("한국어", "") {
		t.Error("korean side alone should count")
	}
	if !HasBilingual("", "O'zbek") {
		t.Error("uzbek side alone should count")
	}
	if HasBilingual("  ", "\t") {
		t.Error("whitespace on both sides should not count")
	}
}
