package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels.
	ErrUserNotFound = errors.New("user not found")

	// Newsletter repository sentinels.
	ErrSubscriberNotFound = errors.New("newsletter subscriber not found")

	// Inquiry repository sentinels.
	ErrInquiryNotFound = errors.New("partnership inquiry not found")
)
