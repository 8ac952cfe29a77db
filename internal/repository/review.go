package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/domain/review"
	"chess_trainer/internal/errors"
)

const reviewsCollection = "reviews"

type ReviewRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewReviewRepository(log *zap.SugaredLogger, mongo *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		log:   log,
		mongo: mongo,
	}
}

// SaveReview upserts by game and ply, so a re-reviewed move replaces the old verdict.
func (r *ReviewRepository) SaveReview(ctx context.Context, rv review.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(reviewsCollection)
	filter := bson.M{"game_id": rv.GameID, "ply": rv.Ply}
	update := bson.M{
		"$set":         bson.M{"fen": rv.FEN, "side": rv.Side, "move": rv.Move, "best_move": rv.BestMove, "played_eval": rv.PlayedEval, "best_eval": rv.BestEval, "label": rv.Label, "created_at": rv.CreatedAt},
		"$setOnInsert": bson.M{"_id": rv.ID},
	}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		r.log.Errorf("failed to save review: %v", err)
		return err
	}
	return nil
}

func (r *ReviewRepository) GameReviews(ctx context.Context, gameID string) ([]review.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(reviewsCollection)
	cursor, err := collection.Find(ctx, bson.M{"game_id": gameID}, options.Find().SetSort(bson.D{{Key: "ply", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []review.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, errors.ErrReviewNotFound
	}
	return reviews, nil
}

func (r *ReviewRepository) GameStats(ctx context.Context, gameID string) (decision.ReviewStats, error) {
	reviews, err := r.GameReviews(ctx, gameID)
	if err != nil {
		return decision.ReviewStats{}, err
	}
	return Summarize(reviews), nil
}

// Summarize folds reviews into statistics.
func Summarize(reviews []review.Review) decision.ReviewStats {
	var stats decision.ReviewStats
	for _, rv := range reviews {
		stats.Add(rv.Label)
	}
	return stats
}
