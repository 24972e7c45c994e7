package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"youtube-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteStore loads and saves the two documents a vote touches. Each save is
// atomic for its own document only.
type VoteStore interface {
	LoadVideo(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	SaveVideo(ctx context.Context, v *models.Video) error
	LoadUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
}

// Locker serialises votes for one (video, user) pair.
type Locker interface {
	// Acquire returns a release func, or ErrVoteInProgress if the pair is held.
	Acquire(ctx context.Context, videoID, userID primitive.ObjectID) (func(), error)
}

// EngagementService applies like/dislike transitions and persists them.
type EngagementService struct {
	store  VoteStore
	locker Locker
}

// NewEngagementService creates the service. locker may be nil, in which case
// concurrent votes on the same pair are not excluded.
func NewEngagementService(store VoteStore, locker Locker) *EngagementService {
	return &EngagementService{store: store, locker: locker}
}

func (s *EngagementService) Like(ctx context.Context, videoID, userID primitive.ObjectID) (models.VoteCounts, error) {
	return s.Vote(ctx, models.VoteLike, videoID, userID)
}

func (s *EngagementService) Unlike(ctx context.Context, videoID, userID primitive.ObjectID) (models.VoteCounts, error) {
	return s.Vote(ctx, models.VoteUnlike, videoID, userID)
}

func (s *EngagementService) Dislike(ctx context.Context, videoID, userID primitive.ObjectID) (models.VoteCounts, error) {
	return s.Vote(ctx, models.VoteDislike, videoID, userID)
}

func (s *EngagementService) Undislike(ctx context.Context, videoID, userID primitive.ObjectID) (models.VoteCounts, error) {
	return s.Vote(ctx, models.VoteUndislike, videoID, userID)
}

// Vote loads the video and the user, applies action and writes back whatever
// changed: the video first, then the user. There is no transaction across
// the two writes; if the user write fails the video keeps its new state and
// the error is returned as ErrPersistence.
func (s *EngagementService) Vote(ctx context.Context, action models.VoteAction, videoID, userID primitive.ObjectID) (models.VoteCounts, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, videoID, userID)
		if err != nil {
			return models.VoteCounts{}, err
		}
		defer release()
	}

	video, err := s.store.LoadVideo(ctx, videoID)
	if err != nil {
		return models.VoteCounts{}, loadErr("video", videoID, err)
	}
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return models.VoteCounts{}, loadErr("user", userID, err)
	}

	out, err := models.ApplyVote(video, user, action)
	if err != nil {
		return models.VoteCounts{}, err
	}

	if out.VideoChanged {
		if err := s.store.SaveVideo(ctx, video); err != nil {
			return models.VoteCounts{}, fmt.Errorf("%w: save video %s: %w", ErrPersistence, videoID.Hex(), err)
		}
	}
	if out.UserChanged {
		if err := s.store.SaveUser(ctx, user); err != nil {
			log.Printf("vote %s: video %s saved but user %s was not, liked index diverged: %v",
				action, videoID.Hex(), userID.Hex(), err)
			return models.VoteCounts{}, fmt.Errorf("%w: save user %s: %w", ErrPersistence, userID.Hex(), err)
		}
	}

	return video.Counts(), nil
}

func loadErr(kind string, id primitive.ObjectID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id.Hex(), ErrNotFound)
	}
	return fmt.Errorf("%w: load %s %s: %w", ErrPersistence, kind, id.Hex(), err)
}
