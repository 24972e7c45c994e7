package controllers

import (
	"context"

	"youtube-be/config"
	"youtube-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// videoView is a video with its channel resolved.
type videoView struct {
	models.Video
	Channel *models.Channel `json:"channel"`
}

// videoDetail additionally resolves comments and their authors.
type videoDetail struct {
	models.Video
	Channel  *models.Channel      `json:"channel"`
	Comments []models.CommentView `json:"comments"`
}

func findVideos(ctx context.Context, filter bson.M) ([]models.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}})
	cursor, err := config.GetCollection(config.VideosCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []models.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func channelsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Channel, error) {
	out := make(map[primitive.ObjectID]*models.Channel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := config.GetCollection(config.ChannelsCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var channels []models.Channel
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	for i := range channels {
		out[channels[i].ID] = &channels[i]
	}
	return out, nil
}

func withChannels(ctx context.Context, videos []models.Video) ([]videoView, error) {
	ids := make([]primitive.ObjectID, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.Channel)
	}
	channels, err := channelsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]videoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, videoView{Video: v, Channel: channels[v.Channel]})
	}
	return views, nil
}

// commentsWithUsers resolves the author of each comment to its username and
// avatar. Comments whose author no longer exists keep a nil user.
func commentsWithUsers(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.User)
	}

	users := map[primitive.ObjectID]*models.UserSummary{}
	if len(ids) > 0 {
		opts := options.Find().SetProjection(bson.M{"username": 1, "avatar": 1})
		cursor, err := config.GetCollection(config.UsersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var summaries []models.UserSummary
		if err := cursor.All(ctx, &summaries); err != nil {
			return nil, err
		}
		for i := range summaries {
			users[summaries[i].ID] = &summaries[i]
		}
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, models.CommentView{
			ID:        cm.ID,
			User:      users[cm.User],
			Video:     cm.Video,
			Text:      cm.Text,
			Timestamp: cm.Timestamp,
			CreatedAt: cm.CreatedAt,
			UpdatedAt: cm.UpdatedAt,
		})
	}
	return views, nil
}

func findComments(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := config.GetCollection(config.CommentsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
