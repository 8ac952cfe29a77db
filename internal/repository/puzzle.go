package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/puzzle"
	"chess_trainer/internal/errors"
	"chess_trainer/internal/utils"
)

const (
	puzzlesCollection  = "puzzles"
	profilesCollection = "users"

	queryTimeout = 5 * time.Second
)

type PuzzleStorage struct {
	log          *zap.SugaredLogger
	mongo        *mongo.Database
	pageLimit    int
	queryTimeout time.Duration
}

func NewPuzzleStorage(log *zap.SugaredLogger, mongo *mongo.Database, pageLimit int) *PuzzleStorage {
	return &PuzzleStorage{
		log:          log,
		mongo:        mongo,
		pageLimit:    pageLimit,
		queryTimeout: queryTimeout,
	}
}

// ImportPuzzles walks pathToPuzzles for .json files, each holding an array of
// puzzles, and upserts them by id. Returns how many were stored.
func (s *PuzzleStorage) ImportPuzzles(ctx context.Context, pathToPuzzles string) (int, error) {
	imported := 0
	err := filepath.Walk(pathToPuzzles, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		puzzles, err := ReadPuzzleFile(path)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", path, err)
		}
		for _, pz := range puzzles {
			if err := s.SavePuzzle(ctx, pz); err != nil {
				return fmt.Errorf("failed to save puzzle %s from %s: %w", pz.ID, path, err)
			}
			imported++
		}
		return nil
	})
	return imported, err
}

// ReadPuzzleFile decodes and validates one puzzle file. Puzzles without a
// level take it from a "Level N" directory in the path.
func ReadPuzzleFile(path string) ([]puzzle.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var puzzles []puzzle.Puzzle
	if err := json.Unmarshal(data, &puzzles); err != nil {
		return nil, err
	}

	level, hasLevel := ExtractLevel(path)
	for i := range puzzles {
		if puzzles[i].Level == 0 && hasLevel {
			puzzles[i].Level = level
		}
		if err := utils.Validate(&puzzles[i]); err != nil {
			return nil, fmt.Errorf("puzzle %d: %w", i, err)
		}
	}
	return puzzles, nil
}

var levelDir = regexp.MustCompile(`(?i)^level[ _-]?(\d+)$`)

func ExtractLevel(pathToPuzzle string) (int, bool) {
	for _, dir := range strings.Split(filepath.ToSlash(filepath.Dir(pathToPuzzle)), "/") {
		if match := levelDir.FindStringSubmatch(dir); len(match) == 2 {
			level, err := strconv.Atoi(match[1])
			if err != nil {
				return 0, false
			}
			return level, true
		}
	}
	return 0, false
}

func (s *PuzzleStorage) SavePuzzle(ctx context.Context, pz puzzle.Puzzle) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.mongo.Collection(puzzlesCollection).
		ReplaceOne(ctx, bson.M{"_id": pz.ID}, pz, options.Replace().SetUpsert(true))
	return err
}

func (s *PuzzleStorage) PuzzleByID(ctx context.Context, puzzleID string) (puzzle.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var pz puzzle.Puzzle
	err := s.mongo.Collection(puzzlesCollection).FindOne(ctx, bson.M{"_id": puzzleID}).Decode(&pz)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return puzzle.Puzzle{}, fmt.Errorf("%w: %s", errors.ErrPuzzleNotFound, puzzleID)
	}
	return pz, err
}

// PuzzlesPage lists one level with the user's solved puzzles first, then
// cuts out the requested page.
func (s *PuzzleStorage) PuzzlesPage(ctx context.Context, userID string, level int, pageNum int) (*puzzle.Page, error) {
	if pageNum < 1 {
		return nil, fmt.Errorf("%w: %d", errors.ErrInvalidPage, pageNum)
	}

	all, err := s.levelPuzzles(ctx, level)
	if err != nil {
		return nil, err
	}

	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return Paginate(all, profile, pageNum, s.pageLimit), nil
}

func (s *PuzzleStorage) levelPuzzles(ctx context.Context, level int) ([]puzzle.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	cursor, err := s.mongo.Collection(puzzlesCollection).
		Find(ctx, bson.M{"level": level}, options.Find().SetSort(bson.D{{Key: "rating", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list level %d: %w", level, err)
	}
	defer cursor.Close(ctx)

	var all []puzzle.Puzzle
	if err := cursor.All(ctx, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Paginate marks every puzzle solved or unsolved for the profile, puts the
// solved ones first and returns page pageNum (1-based) of size limit.
func Paginate(all []puzzle.Puzzle, profile puzzle.Profile, pageNum int, limit int) *puzzle.Page {
	if limit < 1 {
		limit = 1
	}

	marked := make([]puzzle.Puzzle, len(all))
	for i, pz := range all {
		pz.Status = puzzle.StatusUnsolved
		if profile.HasSolved(pz.ID) {
			pz.Status = puzzle.StatusSolved
		}
		marked[i] = pz
	}
	sort.SliceStable(marked, func(i, j int) bool {
		return marked[i].Status == puzzle.StatusSolved && marked[j].Status != puzzle.StatusSolved
	})

	pageWithUnsolved := 1
	for i, pz := range marked {
		if pz.Status == puzzle.StatusUnsolved {
			pageWithUnsolved = i/limit + 1
			break
		}
	}

	totalPages := (len(marked) + limit - 1) / limit
	start := min((pageNum-1)*limit, len(marked))
	end := min(start+limit, len(marked))

	return &puzzle.Page{
		PageNum:          pageNum,
		TotalPages:       totalPages,
		PageWithUnsolved: pageWithUnsolved,
		Puzzles:          marked[start:end],
	}
}

// PuzzlesNearRating returns every puzzle within tolerance of rating, or the
// single closest puzzle when none is.
func (s *PuzzleStorage) PuzzlesNearRating(ctx context.Context, rating, tolerance int) ([]puzzle.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	collection := s.mongo.Collection(puzzlesCollection)
	cursor, err := collection.Find(ctx, bson.M{"rating": bson.M{"$gte": rating - tolerance, "$lte": rating + tolerance}})
	if err != nil {
		return nil, err
	}
	var near []puzzle.Puzzle
	if err := cursor.All(ctx, &near); err != nil {
		return nil, err
	}
	if len(near) > 0 {
		return near, nil
	}

	var candidates []puzzle.Puzzle
	for _, q := range []struct {
		filter bson.M
		order  int
	}{
		{bson.M{"rating": bson.M{"$gt": rating}}, 1},
		{bson.M{"rating": bson.M{"$lt": rating}}, -1},
	} {
		var pz puzzle.Puzzle
		err := collection.FindOne(ctx, q.filter, options.FindOne().SetSort(bson.D{{Key: "rating", Value: q.order}})).Decode(&pz)
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, pz)
	}

	closest, ok := Closest(candidates, rating)
	if !ok {
		return nil, errors.ErrPuzzleNotFound
	}
	return []puzzle.Puzzle{closest}, nil
}

func (s *PuzzleStorage) PuzzlesByTheme(ctx context.Context, theme string) ([]puzzle.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	cursor, err := s.mongo.Collection(puzzlesCollection).Find(ctx, bson.M{"theme": theme})
	if err != nil {
		return nil, fmt.Errorf("failed to list theme %s: %w", theme, err)
	}
	defer cursor.Close(ctx)

	var themed []puzzle.Puzzle
	if err := cursor.All(ctx, &themed); err != nil {
		return nil, err
	}
	if len(themed) == 0 {
		return nil, fmt.Errorf("%w: no %s puzzles", errors.ErrPuzzleNotFound, theme)
	}
	return themed, nil
}

func Closest(puzzles []puzzle.Puzzle, rating int) (puzzle.Puzzle, bool) {
	if len(puzzles) == 0 {
		return puzzle.Puzzle{}, false
	}
	best := puzzles[0]
	for _, pz := range puzzles[1:] {
		if abs(pz.Rating-rating) < abs(best.Rating-rating) {
			best = pz
		}
	}
	return best, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Profile loads a solver's profile. Unknown users get a fresh one.
func (s *PuzzleStorage) Profile(ctx context.Context, userID string) (puzzle.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var profile puzzle.Profile
	err := s.mongo.Collection(profilesCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return puzzle.NewProfile(userID), nil
	}
	if err != nil {
		return puzzle.Profile{}, fmt.Errorf("failed to load profile %s: %w", userID, err)
	}
	return profile, nil
}

func (s *PuzzleStorage) SaveProfile(ctx context.Context, profile puzzle.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.mongo.Collection(profilesCollection).
		ReplaceOne(ctx, bson.M{"_id": profile.UserID}, profile, options.Replace().SetUpsert(true))
	if err != nil {
		s.log.Errorw("failed to save profile", "user", profile.UserID, "error", err)
	}
	return err
}
