package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Post errors
	ErrPostNotFound = errors.New("post not found")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Connection errors
	ErrConnectionNotFound = errors.New("connection not found")
	ErrSelfConnection     = errors.New("cannot send friend request to yourself")
	ErrRequestPending     = errors.New("friend request already sent")
	ErrAlreadyConnected   = errors.New("users are already connected")
	ErrUserBlocked        = errors.New("cannot send request to blocked user")
	ErrNotPending         = errors.New("connection is not in pending status")

	// Job errors
	ErrJobNotFound = errors.New("job not found")

	// Reaction errors
	ErrAlreadyReacted = errors.New("user already celebrated this post")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Classification errors
	ErrClassification = errors.New("classification failed")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
