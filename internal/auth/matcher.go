package auth

import "golang.org/x/crypto/bcrypt"

// Matcher isolates secret comparison so the storage encoding can be swapped
// without touching call sites. The historical behavior is an exact plaintext
// match; BcryptMatcher is the drop-in hardened alternative.
type Matcher interface {
	// Match reports whether the presented secret corresponds to the stored one.
	Match(secret, stored string) bool

	// Encode converts a new secret to its stored form.
	Encode(secret string) (string, error)
}

type PlainMatcher struct{}

func (PlainMatcher) Match(secret, stored string) bool {
	return secret == stored
}

func (PlainMatcher) Encode(secret string) (string, error) {
	return secret, nil
}

type BcryptMatcher struct{}

func (BcryptMatcher) Match(secret, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}

func (BcryptMatcher) Encode(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
