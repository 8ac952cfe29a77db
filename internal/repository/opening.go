package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/opening"
	"chess_trainer/internal/errors"
	"chess_trainer/internal/utils"
)

const (
	openingsCollection = "openings"
	progressCollection = "opening_progress"
)

type OpeningStorage struct {
	log          *zap.SugaredLogger
	mongo        *mongo.Database
	queryTimeout time.Duration
}

func NewOpeningStorage(log *zap.SugaredLogger, mongo *mongo.Database) *OpeningStorage {
	return &OpeningStorage{
		log:          log,
		mongo:        mongo,
		queryTimeout: queryTimeout,
	}
}

// SeedOpenings inserts the lines that are not stored yet and leaves the rest
// untouched. Returns how many were inserted.
func (s *OpeningStorage) SeedOpenings(ctx context.Context, lines []opening.Line) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	inserted := 0
	for _, line := range lines {
		res, err := s.mongo.Collection(openingsCollection).UpdateOne(ctx,
			bson.M{"_id": line.Name},
			bson.M{"$setOnInsert": line},
			options.Update().SetUpsert(true))
		if err != nil {
			return inserted, fmt.Errorf("failed to seed opening %s: %w", line.Name, err)
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}
	return inserted, nil
}

// ImportOpenings walks path for .json files, each holding an array of lines,
// and replaces stored lines of the same name.
func (s *OpeningStorage) ImportOpenings(ctx context.Context, path string) (int, error) {
	imported := 0
	err := filepath.Walk(path, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		lines, err := ReadOpeningFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", file, err)
		}
		for _, line := range lines {
			if err := s.SaveOpening(ctx, line); err != nil {
				return fmt.Errorf("failed to save opening %s from %s: %w", line.Name, file, err)
			}
			imported++
		}
		return nil
	})
	return imported, err
}

func ReadOpeningFile(path string) ([]opening.Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []opening.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	for i := range lines {
		if err := utils.Validate(&lines[i]); err != nil {
			return nil, fmt.Errorf("opening %d: %w", i, err)
		}
	}
	return lines, nil
}

func (s *OpeningStorage) SaveOpening(ctx context.Context, line opening.Line) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.mongo.Collection(openingsCollection).
		ReplaceOne(ctx, bson.M{"_id": line.Name}, line, options.Replace().SetUpsert(true))
	return err
}

func (s *OpeningStorage) Openings(ctx context.Context) ([]opening.Line, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	cursor, err := s.mongo.Collection(openingsCollection).
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list openings: %w", err)
	}
	defer cursor.Close(ctx)

	lines := []opening.Line{}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *OpeningStorage) OpeningByName(ctx context.Context, name string) (opening.Line, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var line opening.Line
	err := s.mongo.Collection(openingsCollection).FindOne(ctx, bson.M{"_id": name}).Decode(&line)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return opening.Line{}, fmt.Errorf("%w: %s", errors.ErrOpeningNotFound, name)
	}
	return line, err
}

// Progress loads a trainee's opening history. Unknown users get a fresh one.
func (s *OpeningStorage) Progress(ctx context.Context, userID string) (opening.Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var progress opening.Progress
	err := s.mongo.Collection(progressCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&progress)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return opening.NewProgress(userID), nil
	}
	if err != nil {
		return opening.Progress{}, fmt.Errorf("failed to load opening progress %s: %w", userID, err)
	}
	return progress, nil
}

func (s *OpeningStorage) SaveProgress(ctx context.Context, progress opening.Progress) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.mongo.Collection(progressCollection).
		ReplaceOne(ctx, bson.M{"_id": progress.UserID}, progress, options.Replace().SetUpsert(true))
	if err != nil {
		s.log.Errorw("failed to save opening progress", "user", progress.UserID, "error", err)
	}
	return err
}
