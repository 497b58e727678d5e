// Package matchmaking holds the like/match core: candidate listing,
// idempotent like recording, mutual-like detection and deduplicated
// match creation. Storage is reached through narrow interfaces so the
// logic can be exercised without a running database.
package matchmaking

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sparked/models"
)

// CandidateLimit caps every candidate listing.
const CandidateLimit = 50

const (
	MessageLiked   = "Liked"
	MessageMatched = "It's a match!"
)

var (
	ErrValidation = errors.New("invalid target id")
	ErrSelfLike   = errors.New("cannot like yourself")
	ErrNotFound   = errors.New("target user not found")
)

type UserStore interface {
	// FindUserByID returns (nil, nil) when the user does not exist.
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindCandidates(ctx context.Context, exclude []primitive.ObjectID, genre string, limit int64) ([]models.User, error)
}

type LikeStore interface {
	UpsertLike(ctx context.Context, from, to primitive.ObjectID, at int64) error
	HasLike(ctx context.Context, from, to primitive.ObjectID) (bool, error)
	LikedIDs(ctx context.Context, from primitive.ObjectID) ([]primitive.ObjectID, error)
}

type MatchStore interface {
	// CreateMatchIfAbsent reports whether this call created the record.
	CreateMatchIfAbsent(ctx context.Context, a, b primitive.ObjectID, at int64) (*models.Match, bool, error)
	MatchesForUser(ctx context.Context, user primitive.ObjectID) ([]models.Match, error)
}

// LikeResult is the outcome of RecordLike. Match is set only when this
// call formed a new match.
type LikeResult struct {
	Message string
	Match   *models.Match
}

type Service struct {
	users   UserStore
	likes   LikeStore
	matches MatchStore
	now     func() time.Time
}

func NewService(users UserStore, likes LikeStore, matches MatchStore) *Service {
	return &Service{
		users:   users,
		likes:   likes,
		matches: matches,
		now:     time.Now,
	}
}

// ListCandidates returns up to CandidateLimit users the requester could
// like: never the requester, never anyone already liked, and only the
// preferred genre unless the preference is "all".
func (s *Service) ListCandidates(ctx context.Context, requester *models.User) ([]models.User, error) {
	liked, err := s.likes.LikedIDs(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	exclude := append([]primitive.ObjectID{requester.ID}, liked...)
	return s.users.FindCandidates(ctx, exclude, requester.Preference, CandidateLimit)
}

// ListAll is the debug listing: everyone but the requester, no
// preference filter, same cap.
func (s *Service) ListAll(ctx context.Context, requester primitive.ObjectID) ([]models.User, error) {
	return s.users.FindCandidates(ctx, []primitive.ObjectID{requester}, models.PreferenceAll, CandidateLimit)
}

// RecordLike records requester -> target and evaluates mutuality. The
// like edge is idempotent; the match insert is keyed on the canonical
// pair, so repeats and concurrent duplicates never yield a second
// match. MessageMatched is returned only by the call that created the
// match record.
func (s *Service) RecordLike(ctx context.Context, requester primitive.ObjectID, targetHex string) (LikeResult, error) {
	target, err := primitive.ObjectIDFromHex(targetHex)
	if err != nil {
		return LikeResult{}, ErrValidation
	}
	if target == requester {
		return LikeResult{}, ErrSelfLike
	}

	targetUser, err := s.users.FindUserByID(ctx, target)
	if err != nil {
		return LikeResult{}, err
	}
	if targetUser == nil {
		return LikeResult{}, ErrNotFound
	}

	now := s.now().Unix()
	if err := s.likes.UpsertLike(ctx, requester, target, now); err != nil {
		return LikeResult{}, err
	}

	mutual, err := s.likes.HasLike(ctx, target, requester)
	if err != nil {
		return LikeResult{}, err
	}
	if !mutual {
		return LikeResult{Message: MessageLiked}, nil
	}

	match, created, err := s.matches.CreateMatchIfAbsent(ctx, requester, target, now)
	if err != nil {
		return LikeResult{}, err
	}
	if !created {
		return LikeResult{Message: MessageLiked}, nil
	}
	return LikeResult{Message: MessageMatched, Match: match}, nil
}

// ListMatches returns the user's matches, newest first. The sort is
// applied here as well as in the store so the ordering holds for any
// backing implementation.
func (s *Service) ListMatches(ctx context.Context, user primitive.ObjectID) ([]models.Match, error) {
	matches, err := s.matches.MatchesForUser(ctx, user)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})
	return matches, nil
}
