package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/devfeed/backend/internal/middleware"
	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/anonto42/devfeed/backend/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *mockPostRepo) SampleRandomPosts(ctx context.Context, size int) ([]models.Post, error) {
	args := m.Called(ctx, size)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) GetPostsByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, authorIDs, page)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) CountPostsByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) GetCommentsByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommentRepo) GetComment(ctx context.Context, postID, commentID primitive.ObjectID) (*models.Comment, error) {
	args := m.Called(ctx, postID, commentID)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepo) DeleteComment(ctx context.Context, postID, commentID, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, postID, commentID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) DeleteCommentsByPostID(ctx context.Context, postID primitive.ObjectID) error {
	return m.Called(ctx, postID).Error(0)
}

type mockLikeRepo struct{ mock.Mock }

func (m *mockLikeRepo) UpsertLike(ctx context.Context, postID, userID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(primitive.ObjectID), args.Bool(1), args.Error(2)
}

func (m *mockLikeRepo) DeleteLike(ctx context.Context, postID, likeID, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, postID, likeID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) GetLikesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.PostLike, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.PostLike), args.Error(1)
}

func (m *mockLikeRepo) DeleteLikesByPostID(ctx context.Context, postID primitive.ObjectID) error {
	return m.Called(ctx, postID).Error(0)
}

type mockCommentLikeRepo struct{ mock.Mock }

func (m *mockCommentLikeRepo) UpsertCommentLike(ctx context.Context, postID, commentID, userID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	args := m.Called(ctx, postID, commentID, userID)
	return args.Get(0).(primitive.ObjectID), args.Bool(1), args.Error(2)
}

func (m *mockCommentLikeRepo) DeleteCommentLike(ctx context.Context, postID, commentID, likeID, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, postID, commentID, likeID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentLikeRepo) GetLikesByCommentID(ctx context.Context, commentID primitive.ObjectID) ([]models.CommentLike, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).([]models.CommentLike), args.Error(1)
}

func (m *mockCommentLikeRepo) DeleteLikesByCommentID(ctx context.Context, commentID primitive.ObjectID) error {
	return m.Called(ctx, commentID).Error(0)
}

func (m *mockCommentLikeRepo) DeleteLikesByPostID(ctx context.Context, postID primitive.ObjectID) error {
	return m.Called(ctx, postID).Error(0)
}

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) InsertImages(ctx context.Context, postID primitive.ObjectID, urls []string) ([]models.Image, error) {
	args := m.Called(ctx, postID, urls)
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *mockImageRepo) GetImagesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Image, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *mockImageRepo) DeleteImagesByPostID(ctx context.Context, postID primitive.ObjectID) error {
	return m.Called(ctx, postID).Error(0)
}

type mockFollowRepo struct{ mock.Mock }

func (m *mockFollowRepo) CreateFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Get(0).(primitive.ObjectID), args.Bool(1), args.Error(2)
}

func (m *mockFollowRepo) DeleteFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFollowRepo) GetFolloweeIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, followerID)
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	args := m.Called(ctx, firebaseUID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) LinkFirebaseUID(ctx context.Context, id primitive.ObjectID, firebaseUID string) error {
	return m.Called(ctx, id, firebaseUID).Error(0)
}

// stubVerifier accepts only the tokens it knows
type stubVerifier map[string]*auth.Token

func (v stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := v[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("token rejected")
}

// api wires the social handlers onto an echo instance backed by mocks
type api struct {
	e            *echo.Echo
	posts        *mockPostRepo
	comments     *mockCommentRepo
	likes        *mockLikeRepo
	commentLikes *mockCommentLikeRepo
	images       *mockImageRepo
	follows      *mockFollowRepo
	users        *mockUserRepo
}

func newAPI(t *testing.T) *api {
	t.Helper()
	return newAPIWithFirebase(t, nil)
}

func newAPIWithFirebase(t *testing.T, verifier IDTokenVerifier) *api {
	t.Helper()
	log, _ := test.NewNullLogger()

	a := &api{
		e:            echo.New(),
		posts:        &mockPostRepo{},
		comments:     &mockCommentRepo{},
		likes:        &mockLikeRepo{},
		commentLikes: &mockCommentLikeRepo{},
		images:       &mockImageRepo{},
		follows:      &mockFollowRepo{},
		users:        &mockUserRepo{},
	}
	a.e.Validator = validators.NewValidator()

	followService := services.NewFollowService(a.follows, a.users)
	postService := services.NewPostService(a.posts, a.comments, a.likes, a.commentLikes, a.images, followService, log)
	commentService := services.NewCommentService(a.posts, a.comments, a.commentLikes, log)
	likeService := services.NewLikeService(a.likes, a.commentLikes, a.comments)

	api := a.e.Group("/api/v1")
	auth := middleware.JWTAuthMiddleware(testSecret)

	NewFeedHandler(postService).RegisterFeedRoutes(api)
	NewPostHandler(postService, likeService).RegisterPostRoutes(api, auth)
	NewCommentHandler(commentService, likeService).RegisterCommentRoutes(api, auth)
	NewFollowHandler(followService).RegisterFollowRoutes(api, auth)
	NewAuthHandler(a.users, verifier, testSecret, time.Hour, log).RegisterAuthRoutes(a.e.Group("/api/v1/auth"))

	t.Cleanup(func() {
		a.posts.AssertExpectations(t)
		a.likes.AssertExpectations(t)
		a.users.AssertExpectations(t)
	})
	return a
}

// do sends a request; a non-empty userID is sent as a bearer token
func (a *api) do(t *testing.T, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, userID))
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}
