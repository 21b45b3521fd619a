package store

import "errors"

// ErrNotFound means the record does not exist yet. Expected for a
// first-time player; callers route to onboarding instead of failing.
var ErrNotFound = errors.New("record not found")

// ErrSchemaMissing means the remote backend exists but its tables do not.
// The adapter reacts by permanently switching to the local backend for the
// rest of the session.
var ErrSchemaMissing = errors.New("remote schema missing")
