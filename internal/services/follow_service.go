package services

import (
	"context"
	"fmt"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowService reads and edits the follow graph
type FollowService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// FolloweeIDs returns the ids userID follows; empty when none
func (s *FollowService) FolloweeIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids, err := s.follows.GetFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve follows of %s: %w", userID.Hex(), err)
	}
	return nonNil(ids), nil
}

// Follow makes actorID follow followeeID. It reports Overlap when the edge already existed.
func (s *FollowService) Follow(ctx context.Context, actorID string, followeeID primitive.ObjectID) (models.MutationResult, error) {
	followerID, err := s.actor(actorID, followeeID)
	if err != nil {
		return models.MutationResult{}, err
	}
	if _, err := s.users.GetUserByID(ctx, followeeID); err != nil {
		return models.MutationResult{}, err
	}

	id, created, err := s.follows.CreateFollow(ctx, followerID, followeeID)
	if err != nil {
		return models.MutationResult{}, err
	}
	if !created {
		return models.Result(false), nil
	}
	return models.Succeeded(id), nil
}

// Unfollow removes the edge; Overlap when there was none
func (s *FollowService) Unfollow(ctx context.Context, actorID string, followeeID primitive.ObjectID) (models.MutationResult, error) {
	followerID, err := s.actor(actorID, followeeID)
	if err != nil {
		return models.MutationResult{}, err
	}
	n, err := s.follows.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		return models.MutationResult{}, err
	}
	return models.Result(n > 0), nil
}

func (s *FollowService) actor(actorID string, followeeID primitive.ObjectID) (primitive.ObjectID, error) {
	followerID, err := models.ParseObjectID("session user", actorID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if followerID == followeeID {
		return primitive.NilObjectID, fmt.Errorf("%w: cannot follow yourself", models.ErrInvalidInput)
	}
	return followerID, nil
}
