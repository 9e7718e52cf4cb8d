package utils

import "testing"

func TestNormalizeCallSign(t *testing.T) {
	cases := map[string]string{
		"n4xyz":   "N4XYZ",
		" K4ABC ": "K4ABC",
		"w1aw/p":  "W1AW/P",
		"":        "",
	}
	for in, want := range cases {
		if got := NormalizeCallSign(in); got != want {
			t.Errorf("NormalizeCallSign(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidCallSign(t *testing.T) {
	valid := []string{"K4ABC", "n4xyz", "W1AW", "VE3ABC", "2E0XYZ", "W1AW/P"}
	for _, cs := range valid {
		if !ValidCallSign(cs) {
			t.Errorf("ValidCallSign(%q) = false, want true", cs)
		}
	}

	invalid := []string{"", "HELLO", "1234", "K4ABC/TOOLONG", "K-4ABC"}
	for _, cs := range invalid {
		if ValidCallSign(cs) {
			t.Errorf("ValidCallSign(%q) = true, want false", cs)
		}
	}
}
