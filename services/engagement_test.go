package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"youtube-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore keeps copies of documents so a test only sees what was saved.
type memStore struct {
	mu     sync.Mutex
	videos map[primitive.ObjectID]models.Video
	users  map[primitive.ObjectID]models.User
}

func newMemStore() *memStore {
	return &memStore{
		videos: map[primitive.ObjectID]models.Video{},
		users:  map[primitive.ObjectID]models.User{},
	}
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	return append([]primitive.ObjectID{}, ids...)
}

func (s *memStore) LoadVideo(_ context.Context, id primitive.ObjectID) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	v.LikedBy = cloneIDs(v.LikedBy)
	v.DislikedBy = cloneIDs(v.DislikedBy)
	return &v, nil
}

func (s *memStore) SaveVideo(_ context.Context, v *models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *v
	c.LikedBy = cloneIDs(v.LikedBy)
	c.DislikedBy = cloneIDs(v.DislikedBy)
	s.videos[v.ID] = c
	return nil
}

func (s *memStore) LoadUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.LikedVideos = cloneIDs(u.LikedVideos)
	return &u, nil
}

func (s *memStore) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	c.LikedVideos = cloneIDs(u.LikedVideos)
	s.users[u.ID] = c
	return nil
}

func (s *memStore) addVideo() primitive.ObjectID {
	v := models.NewVideo(primitive.NewObjectID(), "t", "l")
	s.videos[v.ID] = v
	return v.ID
}

func (s *memStore) addUser() primitive.ObjectID {
	u := models.User{ID: primitive.NewObjectID(), Username: "u"}
	s.users[u.ID] = u
	return u.ID
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) LoadVideo(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *mockStore) SaveVideo(ctx context.Context, v *models.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockStore) LoadUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockStore) SaveUser(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type stubLocker struct {
	err      error
	acquired int
	released int
}

func (l *stubLocker) Acquire(_ context.Context, _, _ primitive.ObjectID) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func() { l.released++ }, nil
}

func TestEngagementService_Scenarios(t *testing.T) {
	store := newMemStore()
	videoID := store.addVideo()
	alice := store.addUser()
	bob := store.addUser()
	svc := NewEngagementService(store, nil)
	ctx := context.Background()

	counts, err := svc.Like(ctx, videoID, alice)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Likes: 1}, counts)
	assert.Contains(t, store.videos[videoID].LikedBy, alice)
	assert.Contains(t, store.users[alice].LikedVideos, videoID)

	counts, err = svc.Dislike(ctx, videoID, alice)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Dislikes: 1}, counts)
	assert.NotContains(t, store.videos[videoID].LikedBy, alice)
	assert.NotContains(t, store.users[alice].LikedVideos, videoID)
	assert.Contains(t, store.videos[videoID].DislikedBy, alice)

	counts, err = svc.Undislike(ctx, videoID, alice)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{}, counts)
	assert.Empty(t, store.videos[videoID].DislikedBy)

	counts, err = svc.Unlike(ctx, videoID, bob)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{}, counts)
}

func TestEngagementService_LikeTwice(t *testing.T) {
	store := newMemStore()
	videoID := store.addVideo()
	userID := store.addUser()
	svc := NewEngagementService(store, nil)

	first, err := svc.Like(context.Background(), videoID, userID)
	require.NoError(t, err)
	second, err := svc.Like(context.Background(), videoID, userID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, store.videos[videoID].LikedBy, 1)
	assert.Len(t, store.users[userID].LikedVideos, 1)
}

func TestEngagementService_NotFound(t *testing.T) {
	store := newMemStore()
	videoID := store.addVideo()
	userID := store.addUser()
	svc := NewEngagementService(store, nil)
	missing := primitive.NewObjectID()

	_, err := svc.Like(context.Background(), missing, userID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, store.videos, missing)

	_, err = svc.Like(context.Background(), videoID, missing)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.videos[videoID].LikedBy)

	_, err = svc.Undislike(context.Background(), videoID, missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEngagementService_NoOpSkipsWrites(t *testing.T) {
	m := new(mockStore)
	video := models.NewVideo(primitive.NewObjectID(), "t", "l")
	user := &models.User{ID: primitive.NewObjectID()}
	m.On("LoadVideo", mock.Anything, video.ID).Return(&video, nil)
	m.On("LoadUser", mock.Anything, user.ID).Return(user, nil)

	svc := NewEngagementService(m, nil)
	counts, err := svc.Unlike(context.Background(), video.ID, user.ID)

	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{}, counts)
	m.AssertNotCalled(t, "SaveVideo", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestEngagementService_WritesVideoBeforeUser(t *testing.T) {
	m := new(mockStore)
	video := models.NewVideo(primitive.NewObjectID(), "t", "l")
	user := &models.User{ID: primitive.NewObjectID()}
	var order []string
	m.On("LoadVideo", mock.Anything, video.ID).Return(&video, nil)
	m.On("LoadUser", mock.Anything, user.ID).Return(user, nil)
	m.On("SaveVideo", mock.Anything, mock.Anything).Run(func(mock.Arguments) { order = append(order, "video") }).Return(nil)
	m.On("SaveUser", mock.Anything, mock.Anything).Run(func(mock.Arguments) { order = append(order, "user") }).Return(nil)

	svc := NewEngagementService(m, nil)
	_, err := svc.Like(context.Background(), video.ID, user.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"video", "user"}, order)
}

func TestEngagementService_UserWriteFailureLeavesVideoSaved(t *testing.T) {
	m := new(mockStore)
	video := models.NewVideo(primitive.NewObjectID(), "t", "l")
	user := &models.User{ID: primitive.NewObjectID()}
	boom := errors.New("connection reset")
	m.On("LoadVideo", mock.Anything, video.ID).Return(&video, nil)
	m.On("LoadUser", mock.Anything, user.ID).Return(user, nil)
	m.On("SaveVideo", mock.Anything, mock.Anything).Return(nil)
	m.On("SaveUser", mock.Anything, mock.Anything).Return(boom)

	svc := NewEngagementService(m, nil)
	_, err := svc.Like(context.Background(), video.ID, user.ID)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, boom)
	m.AssertCalled(t, "SaveVideo", mock.Anything, mock.Anything)
}

func TestEngagementService_VideoWriteFailureStopsBeforeUser(t *testing.T) {
	m := new(mockStore)
	video := models.NewVideo(primitive.NewObjectID(), "t", "l")
	user := &models.User{ID: primitive.NewObjectID()}
	m.On("LoadVideo", mock.Anything, video.ID).Return(&video, nil)
	m.On("LoadUser", mock.Anything, user.ID).Return(user, nil)
	m.On("SaveVideo", mock.Anything, mock.Anything).Return(errors.New("write conflict"))

	svc := NewEngagementService(m, nil)
	_, err := svc.Like(context.Background(), video.ID, user.ID)

	assert.ErrorIs(t, err, ErrPersistence)
	m.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestEngagementService_LoadFailureIsPersistence(t *testing.T) {
	m := new(mockStore)
	id := primitive.NewObjectID()
	m.On("LoadVideo", mock.Anything, id).Return(nil, errors.New("server selection timeout"))

	svc := NewEngagementService(m, nil)
	_, err := svc.Dislike(context.Background(), id, primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestEngagementService_Locker(t *testing.T) {
	store := newMemStore()
	videoID := store.addVideo()
	userID := store.addUser()

	locker := &stubLocker{}
	svc := NewEngagementService(store, locker)
	_, err := svc.Like(context.Background(), videoID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)

	busy := &stubLocker{err: ErrVoteInProgress}
	svc = NewEngagementService(store, busy)
	_, err = svc.Unlike(context.Background(), videoID, userID)
	assert.ErrorIs(t, err, ErrVoteInProgress)
	assert.Contains(t, store.videos[videoID].LikedBy, userID)
}
