package common

const (
	// MaxFieldLength is the maximum length in bytes of a username or
	// password accepted over the wire. Longer input is rejected, not
	// truncated.
	MaxFieldLength = 49

	// MinPasswordLength is the minimum accepted password length at
	// registration time.
	MinPasswordLength = 4
)
