// utils/age.go - age gating for signup
package utils

import (
	"fmt"
	"time"
)

// MinimumAge is the legal lower bound for supporter registration.
const MinimumAge = 18

// CalculateAgeAt returns the whole-year age at the given instant,
// counting the birthday itself as already turned.
func CalculateAgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// CalculateAge is CalculateAgeAt against the current time.
func CalculateAge(birth time.Time) int {
	return CalculateAgeAt(birth, time.Now())
}

// ValidateAgeAt returns nil when the birth date satisfies the age gate,
// otherwise a user-facing message saying how long until eligibility.
func ValidateAgeAt(birth, now time.Time) *string {
	age := CalculateAgeAt(birth, now)
	if age >= MinimumAge {
		return nil
	}

	yearsToWait := MinimumAge - age
	waitText := "もうすぐ"
	if yearsToWait > 1 {
		waitText = fmt.Sprintf("あと%d年で", yearsToWait)
	}
	msg := fmt.Sprintf("18歳以上の方のみご登録いただけます。%s登録できますので、その日を楽しみにお待ちください！", waitText)
	return &msg
}

// ValidateAge is ValidateAgeAt against the current time.
func ValidateAge(birth time.Time) *string {
	return ValidateAgeAt(birth, time.Now())
}

// ParseBirthDate parses the YYYY-MM-DD form dates arrive in.
func ParseBirthDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
