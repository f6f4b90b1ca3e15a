package services

import "errors"

// Validation errors: the caller supplied invalid input; the store is never
// touched.
var (
	ErrMissingIdentifier = errors.New("missing identifier")
	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrSelfConnection    = errors.New("cannot send a connection request to yourself")
)

// Conflict errors: detected via a pre-check read; callers treat "already in
// the desired state" as success-adjacent, not fatal.
var (
	ErrAlreadyFollowing    = errors.New("already following this user")
	ErrDuplicateConnection = errors.New("a connection or pending request already exists between these users")
)

// Connection state-machine errors.
var (
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrConnectionNotPending = errors.New("connection request is not pending")
	ErrNotConnected         = errors.New("users are not connected")
	ErrNotRecipient         = errors.New("only the recipient can accept this request")
	ErrNotRequester         = errors.New("only the requester can withdraw this request")
)
