package utils

import (
	"regexp"
	"strings"
)

// Prefix-digit-suffix shape covers US and most international call signs.
// Portable designators like /P or /M are accepted and kept.
var callSignPattern = regexp.MustCompile(`^[A-Z0-9]{1,3}[0-9][A-Z]{1,4}(/[A-Z0-9]{1,3})?$`)

// NormalizeCallSign trims and upper-cases a call sign. All comparison and
// storage goes through this; "n4xyz " and "N4XYZ" are the same station.
func NormalizeCallSign(callSign string) string {
	return strings.ToUpper(strings.TrimSpace(callSign))
}

// ValidCallSign reports whether a normalized call sign looks plausible
func ValidCallSign(callSign string) bool {
	return callSignPattern.MatchString(NormalizeCallSign(callSign))
}
