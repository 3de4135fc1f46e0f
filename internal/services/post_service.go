package services

import (
	"context"
	"fmt"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// PostService assembles feeds of enriched posts and owns the post lifecycle.
type PostService struct {
	posts        repositories.PostRepository
	comments     repositories.CommentRepository
	likes        repositories.LikeRepository
	commentLikes repositories.CommentLikeRepository
	images       repositories.ImageRepository
	follows      *FollowService
	log          logrus.FieldLogger
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	commentLikes repositories.CommentLikeRepository,
	images repositories.ImageRepository,
	follows *FollowService,
	log logrus.FieldLogger,
) *PostService {
	return &PostService{
		posts:        posts,
		comments:     comments,
		likes:        likes,
		commentLikes: commentLikes,
		images:       images,
		follows:      follows,
		log:          log.WithField("service", "post"),
	}
}

// RandomFeed returns up to models.RandomSampleSize posts sampled uniformly
// from the whole collection. Every call samples again.
func (s *PostService) RandomFeed(ctx context.Context) ([]models.EnrichedPost, error) {
	posts, err := s.posts.SampleRandomPosts(ctx, models.RandomSampleSize)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, posts)
}

// UserTimeline returns one user's posts, newest first
func (s *PostService) UserTimeline(ctx context.Context, userID primitive.ObjectID, page models.Page) ([]models.EnrichedPost, error) {
	posts, err := s.posts.GetPostsByAuthors(ctx, []primitive.ObjectID{userID}, page)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, posts)
}

// Timeline returns the posts of userID and everyone userID follows, newest first
func (s *PostService) Timeline(ctx context.Context, userID primitive.ObjectID, page models.Page) ([]models.EnrichedPost, error) {
	followees, err := s.follows.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authors := append(followees, userID)

	posts, err := s.posts.GetPostsByAuthors(ctx, authors, page)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"authors": len(authors),
		"posts":   len(posts),
	}).Debug("timeline assembled")
	return s.enrichAll(ctx, posts)
}

// GetPost returns a single enriched post or models.ErrNotFound
func (s *PostService) GetPost(ctx context.Context, postID primitive.ObjectID) (*models.EnrichedPost, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrich(ctx, *post)
	if err != nil {
		return nil, err
	}
	return &enriched, nil
}

// CountUserPosts counts the posts written by userID
func (s *PostService) CountUserPosts(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.posts.CountPostsByUserID(ctx, userID)
}

// PostLikes lists a post's likes. An unknown post has no likes.
func (s *PostService) PostLikes(ctx context.Context, postID primitive.ObjectID) ([]models.PostLike, error) {
	return s.likes.GetLikesByPostID(ctx, postID)
}

// CreatePost stores a post written by actorID together with its images and
// returns it fully enriched. The image batch is written after the post; if
// it fails the post is removed again so no imageless orphan remains.
func (s *PostService) CreatePost(ctx context.Context, actorID string, req models.CreatePostRequest) (*models.EnrichedPost, error) {
	authorID, err := authorize(actorID, req.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  authorID,
		Title:   req.Title,
		Content: req.Content,
		Link:    req.Link,
		Tags:    req.Tags,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if len(req.Images) > 0 {
		if _, err := s.images.InsertImages(ctx, post.ID, req.Images); err != nil {
			if _, delErr := s.posts.DeletePost(ctx, post.ID); delErr != nil {
				s.log.WithError(delErr).WithField("post_id", post.ID.Hex()).Error("failed to roll back post after image insert failure")
			}
			return nil, fmt.Errorf("attach images: %w", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"post_id": post.ID.Hex(),
		"user_id": req.UserID,
		"images":  len(req.Images),
	}).Info("post created")
	return s.GetPost(ctx, post.ID)
}

// DeletePost removes a post owned by actorID and everything attached to it.
// Attachments go first so a failed cascade leaves the post in place to retry.
func (s *PostService) DeletePost(ctx context.Context, postID primitive.ObjectID, actorID string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author == nil || post.Author.ID.Hex() != actorID {
		return fmt.Errorf("delete post %s: %w", postID.Hex(), models.ErrPermissionDenied)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.comments.DeleteCommentsByPostID(gctx, postID) })
	g.Go(func() error { return s.likes.DeleteLikesByPostID(gctx, postID) })
	g.Go(func() error { return s.commentLikes.DeleteLikesByPostID(gctx, postID) })
	g.Go(func() error { return s.images.DeleteImagesByPostID(gctx, postID) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("delete post %s attachments: %w", postID.Hex(), err)
	}

	if _, err := s.posts.DeletePost(ctx, postID); err != nil {
		return err
	}

	s.log.WithField("post_id", postID.Hex()).Info("post deleted")
	return nil
}

// enrichAll enriches every post concurrently, preserving order
func (s *PostService) enrichAll(ctx context.Context, posts []models.Post) ([]models.EnrichedPost, error) {
	out := make([]models.EnrichedPost, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	for i := range posts {
		i := i
		g.Go(func() error {
			enriched, err := s.enrich(gctx, posts[i])
			if err != nil {
				return err
			}
			out[i] = enriched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// enrich fetches a post's comments, likes and images concurrently
func (s *PostService) enrich(ctx context.Context, post models.Post) (models.EnrichedPost, error) {
	var (
		comments []models.Comment
		likes    []models.PostLike
		images   []models.Image
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		comments, err = s.comments.GetCommentsByPostID(gctx, post.ID)
		return err
	})
	g.Go(func() (err error) {
		likes, err = s.likes.GetLikesByPostID(gctx, post.ID)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.images.GetImagesByPostID(gctx, post.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.EnrichedPost{}, err
	}

	post.UserID = primitive.NilObjectID
	return models.EnrichedPost{
		Post:     post,
		Comments: nonNil(comments),
		Likes:    nonNil(likes),
		Images:   nonNil(images),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
