package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// phoneRe accepts an optional leading '+' followed by 10 to 15 digits.
var phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// AllowedDomain reports whether email belongs to one of the allowed
// corporate domains. Only the first label after '@' is compared, so
// user@kurganmk.ru and user@kurganmk.anything both pass. Observed behavior
// of the production bot; kept as-is.
func AllowedDomain(email string, allowed []string) bool {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	label, _, _ := strings.Cut(domain, ".")
	for _, a := range allowed {
		if label == a {
			return true
		}
	}
	return false
}

// Phone reports whether s (after trimming) is a plausible phone number:
// optional leading '+', then 10-15 digits.
func Phone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// NonEmpty reports whether s contains anything besides whitespace.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
