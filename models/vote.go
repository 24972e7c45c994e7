package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteAction is one of the four transitions a user can apply to a video.
type VoteAction string

const (
	VoteLike      VoteAction = "like"
	VoteUnlike    VoteAction = "unlike"
	VoteDislike   VoteAction = "dislike"
	VoteUndislike VoteAction = "undislike"
)

var ErrUnknownVoteAction = errors.New("unknown vote action")

// ParseVoteAction maps a route segment to a VoteAction.
func ParseVoteAction(s string) (VoteAction, error) {
	switch a := VoteAction(s); a {
	case VoteLike, VoteUnlike, VoteDislike, VoteUndislike:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVoteAction, s)
}

// VoteCounts is the aggregate part of a video's ledger returned to clients.
type VoteCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// VoteOutcome tells the caller which documents a transition modified.
type VoteOutcome struct {
	VideoChanged bool
	UserChanged  bool
}

// Counts returns the video's current like and dislike counters.
func (v *Video) Counts() VoteCounts {
	return VoteCounts{Likes: v.Likes, Dislikes: v.Dislikes}
}

// ApplyVote applies action for user u on video v, mutating both in place.
//
// A user is in at most one of LikedBy and DislikedBy, counters track the set
// sizes, and v.ID is in u.LikedVideos exactly when u.ID is in v.LikedBy.
// Repeating an action, or removing a vote that was never cast, changes nothing.
func ApplyVote(v *Video, u *User, action VoteAction) (VoteOutcome, error) {
	if v == nil || u == nil {
		return VoteOutcome{}, errors.New("vote needs both a video and a user")
	}

	var out VoteOutcome
	switch action {
	case VoteLike:
		if containsID(v.LikedBy, u.ID) {
			return out, nil
		}
		if containsID(v.DislikedBy, u.ID) {
			v.DislikedBy = removeID(v.DislikedBy, u.ID)
			v.Dislikes = decrement(v.Dislikes)
		}
		v.LikedBy = append(v.LikedBy, u.ID)
		v.Likes++
		out.VideoChanged = true
		if !containsID(u.LikedVideos, v.ID) {
			u.LikedVideos = append(u.LikedVideos, v.ID)
			out.UserChanged = true
		}

	case VoteUnlike:
		if containsID(v.LikedBy, u.ID) {
			v.LikedBy = removeID(v.LikedBy, u.ID)
			v.Likes = decrement(v.Likes)
			out.VideoChanged = true
		}
		// also heals an index left behind by a half-applied earlier vote
		if containsID(u.LikedVideos, v.ID) {
			u.LikedVideos = removeID(u.LikedVideos, v.ID)
			out.UserChanged = true
		}

	case VoteDislike:
		if containsID(v.DislikedBy, u.ID) {
			return out, nil
		}
		if containsID(v.LikedBy, u.ID) {
			v.LikedBy = removeID(v.LikedBy, u.ID)
			v.Likes = decrement(v.Likes)
			if containsID(u.LikedVideos, v.ID) {
				u.LikedVideos = removeID(u.LikedVideos, v.ID)
				out.UserChanged = true
			}
		}
		v.DislikedBy = append(v.DislikedBy, u.ID)
		v.Dislikes++
		out.VideoChanged = true

	case VoteUndislike:
		if containsID(v.DislikedBy, u.ID) {
			v.DislikedBy = removeID(v.DislikedBy, u.ID)
			v.Dislikes = decrement(v.Dislikes)
			out.VideoChanged = true
		}

	default:
		return out, fmt.Errorf("%w: %q", ErrUnknownVoteAction, string(action))
	}
	return out, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// removeID drops every occurrence of id.
func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// decrement clamps at zero; a corrupted ledger must not go negative.
func decrement(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return n - 1
}
