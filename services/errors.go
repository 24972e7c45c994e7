package services

import "errors"

var (
	// ErrNotFound indicates the referenced video or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps a failed read or write against the store.
	ErrPersistence = errors.New("persistence failure")

	// ErrVoteInProgress indicates another vote for the same video and user
	// holds the pair lock.
	ErrVoteInProgress = errors.New("vote already in progress")
)
