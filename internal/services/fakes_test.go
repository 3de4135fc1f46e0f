package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store is an in-memory stand-in for the Mongo repositories
type store struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]models.User
	posts        map[primitive.ObjectID]models.Post
	comments     map[primitive.ObjectID]models.Comment
	likes        map[primitive.ObjectID]models.PostLike
	commentLikes map[primitive.ObjectID]models.CommentLike
	images       map[primitive.ObjectID]models.Image
	follows      map[[2]primitive.ObjectID]primitive.ObjectID
	clock        time.Time

	imageErr error
}

func newStore() *store {
	return &store{
		users:        map[primitive.ObjectID]models.User{},
		posts:        map[primitive.ObjectID]models.Post{},
		comments:     map[primitive.ObjectID]models.Comment{},
		likes:        map[primitive.ObjectID]models.PostLike{},
		commentLikes: map[primitive.ObjectID]models.CommentLike{},
		images:       map[primitive.ObjectID]models.Image{},
		follows:      map[[2]primitive.ObjectID]primitive.ObjectID{},
		clock:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *store) addUser(name string) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{ID: primitive.NewObjectID(), Username: name}
	s.users[u.ID] = u
	return u.ID
}

func (s *store) addPost(author primitive.ObjectID, title string) primitive.ObjectID {
	p := &models.Post{UserID: author, Title: title}
	_ = postRepo{s}.CreatePost(context.Background(), p)
	return p.ID
}

func (s *store) follow(follower, followee primitive.ObjectID) {
	_, _, _ = followRepo{s}.CreateFollow(context.Background(), follower, followee)
}

// tick returns strictly increasing timestamps so ordering is deterministic
func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

type postRepo struct{ s *store }

func (r postRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = r.s.tick()
	post.UpdatedAt = post.CreatedAt
	r.s.posts[post.ID] = *post
	return nil
}

func (r postRepo) DeletePost(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return 0, nil
	}
	delete(r.s.posts, id)
	return 1, nil
}

// joined keeps the raw author id so tests can see the service strip it
func (r postRepo) joined(p models.Post) models.Post {
	u := r.s.users[p.UserID]
	p.Author = &models.UserCompact{ID: u.ID, Username: u.Username, ProfileImage: u.ProfileImage}
	return p
}

func (r postRepo) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id.Hex(), models.ErrNotFound)
	}
	p = r.joined(p)
	return &p, nil
}

func (r postRepo) SampleRandomPosts(_ context.Context, size int) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.s.posts { // map order is random enough for a sample
		if len(out) == size {
			break
		}
		out = append(out, r.joined(p))
	}
	sortNewest(out)
	return out, nil
}

func (r postRepo) GetPostsByAuthors(_ context.Context, authorIDs []primitive.ObjectID, page models.Page) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := map[primitive.ObjectID]bool{}
	for _, id := range authorIDs {
		set[id] = true
	}
	out := []models.Post{}
	for _, p := range r.s.posts {
		if set[p.UserID] {
			out = append(out, r.joined(p))
		}
	}
	sortNewest(out)
	if page.Offset >= int64(len(out)) {
		return []models.Post{}, nil
	}
	out = out[page.Offset:]
	if page.Limit > 0 && page.Limit < int64(len(out)) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r postRepo) CountPostsByUserID(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func sortNewest(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
}

type commentRepo struct{ s *store }

func (r commentRepo) CreateComment(_ context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = r.s.tick()
	r.s.comments[c.ID] = *c
	return nil
}

func (r commentRepo) GetCommentsByPostID(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r commentRepo) GetComment(_ context.Context, postID, commentID primitive.ObjectID) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, fmt.Errorf("comment %s: %w", commentID.Hex(), models.ErrNotFound)
	}
	return &c, nil
}

func (r commentRepo) DeleteComment(_ context.Context, postID, commentID, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID || c.UserID != userID {
		return 0, nil
	}
	delete(r.s.comments, commentID)
	return 1, nil
}

func (r commentRepo) DeleteCommentsByPostID(_ context.Context, postID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.comments {
		if c.PostID == postID {
			delete(r.s.comments, id)
		}
	}
	return nil
}

type likeRepo struct{ s *store }

func (r likeRepo) UpsertLike(_ context.Context, postID, userID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.likes {
		if l.TargetID == postID && l.UserID == userID {
			return primitive.NilObjectID, false, nil
		}
	}
	l := models.PostLike{ID: primitive.NewObjectID(), TargetID: postID, UserID: userID, CreatedAt: r.s.tick()}
	r.s.likes[l.ID] = l
	return l.ID, true, nil
}

func (r likeRepo) DeleteLike(_ context.Context, postID, likeID, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.likes[likeID]
	if !ok || l.TargetID != postID || l.UserID != userID {
		return 0, nil
	}
	delete(r.s.likes, likeID)
	return 1, nil
}

func (r likeRepo) GetLikesByPostID(_ context.Context, postID primitive.ObjectID) ([]models.PostLike, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.PostLike{}
	for _, l := range r.s.likes {
		if l.TargetID == postID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r likeRepo) DeleteLikesByPostID(_ context.Context, postID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.likes {
		if l.TargetID == postID {
			delete(r.s.likes, id)
		}
	}
	return nil
}

type commentLikeRepo struct{ s *store }

func (r commentLikeRepo) UpsertCommentLike(_ context.Context, postID, commentID, userID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.commentLikes {
		if l.TargetID == commentID && l.UserID == userID {
			return primitive.NilObjectID, false, nil
		}
	}
	l := models.CommentLike{ID: primitive.NewObjectID(), PostID: postID, TargetID: commentID, UserID: userID}
	r.s.commentLikes[l.ID] = l
	return l.ID, true, nil
}

func (r commentLikeRepo) DeleteCommentLike(_ context.Context, postID, commentID, likeID, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.commentLikes[likeID]
	if !ok || l.PostID != postID || l.TargetID != commentID || l.UserID != userID {
		return 0, nil
	}
	delete(r.s.commentLikes, likeID)
	return 1, nil
}

func (r commentLikeRepo) GetLikesByCommentID(_ context.Context, commentID primitive.ObjectID) ([]models.CommentLike, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.CommentLike{}
	for _, l := range r.s.commentLikes {
		if l.TargetID == commentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r commentLikeRepo) DeleteLikesByCommentID(_ context.Context, commentID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.commentLikes {
		if l.TargetID == commentID {
			delete(r.s.commentLikes, id)
		}
	}
	return nil
}

func (r commentLikeRepo) DeleteLikesByPostID(_ context.Context, postID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.commentLikes {
		if l.PostID == postID {
			delete(r.s.commentLikes, id)
		}
	}
	return nil
}

type imageRepo struct{ s *store }

func (r imageRepo) InsertImages(_ context.Context, postID primitive.ObjectID, urls []string) ([]models.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.imageErr != nil {
		return nil, r.s.imageErr
	}
	out := make([]models.Image, len(urls))
	for i, u := range urls {
		out[i] = models.Image{ID: primitive.NewObjectID(), TargetID: postID, URL: u}
		r.s.images[out[i].ID] = out[i]
	}
	return out, nil
}

func (r imageRepo) GetImagesByPostID(_ context.Context, postID primitive.ObjectID) ([]models.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Image
	for _, img := range r.s.images {
		if img.TargetID == postID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r imageRepo) DeleteImagesByPostID(_ context.Context, postID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, img := range r.s.images {
		if img.TargetID == postID {
			delete(r.s.images, id)
		}
	}
	return nil
}

type followRepo struct{ s *store }

func (r followRepo) CreateFollow(_ context.Context, followerID, followeeID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]primitive.ObjectID{followerID, followeeID}
	if _, ok := r.s.follows[key]; ok {
		return primitive.NilObjectID, false, nil
	}
	id := primitive.NewObjectID()
	r.s.follows[key] = id
	return id, true, nil
}

func (r followRepo) DeleteFollow(_ context.Context, followerID, followeeID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]primitive.ObjectID{followerID, followeeID}
	if _, ok := r.s.follows[key]; !ok {
		return 0, nil
	}
	delete(r.s.follows, key)
	return 1, nil
}

func (r followRepo) GetFolloweeIDs(_ context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []primitive.ObjectID
	for key := range r.s.follows {
		if key[0] == followerID {
			out = append(out, key[1])
		}
	}
	return out, nil
}

type userRepo struct{ s *store }

func (r userRepo) CreateUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = primitive.NewObjectID()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", models.ErrNotFound)
	}
	return &u, nil
}

func (r userRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r userRepo) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.FirebaseUID == uid })
}

func (r userRepo) LinkFirebaseUID(_ context.Context, id primitive.ObjectID, uid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || (u.FirebaseUID != "" && u.FirebaseUID != uid) {
		return fmt.Errorf("user %s: %w", id.Hex(), models.ErrConflict)
	}
	u.FirebaseUID = uid
	r.s.users[id] = u
	return nil
}

func (r userRepo) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", models.ErrNotFound)
}

var errStoreDown = errors.New("store unavailable")

// failingComments fails every read, for error propagation tests
type failingComments struct{ commentRepo }

func (failingComments) GetCommentsByPostID(context.Context, primitive.ObjectID) ([]models.Comment, error) {
	return nil, errStoreDown
}

// failingCascade fails to remove a post's comments
type failingCascade struct{ commentRepo }

func (failingCascade) DeleteCommentsByPostID(context.Context, primitive.ObjectID) error {
	return errStoreDown
}

type testEnv struct {
	store    *store
	posts    *PostService
	comments *CommentService
	likes    *LikeService
	follows  *FollowService
}

func newTestEnv() *testEnv {
	s := newStore()
	return newServicesWith(s, commentRepo{s})
}

func newServicesWith(s *store, comments repositories.CommentRepository) *testEnv {
	log := testLogger()
	follows := NewFollowService(followRepo{s}, userRepo{s})
	return &testEnv{
		store:    s,
		posts:    NewPostService(postRepo{s}, comments, likeRepo{s}, commentLikeRepo{s}, imageRepo{s}, follows, log),
		comments: NewCommentService(postRepo{s}, comments, commentLikeRepo{s}, log),
		likes:    NewLikeService(likeRepo{s}, commentLikeRepo{s}, comments),
		follows:  follows,
	}
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
