package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/policy"
	"github.com/akulakov/blogicum/internal/render"
	"github.com/akulakov/blogicum/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestEcho wires a real renderer and validator so handler tests also
// exercise the templates.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	registry, err := render.NewTemplateRegistry("../../templates")
	require.NoError(t, err)
	e.Renderer = registry
	e.Validator = validators.NewValidator()
	return e
}

func getRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// fakePostRepo is an in-memory PostRepository applying the same visibility
// rules in Go that the real repository expresses in SQL.
type fakePostRepo struct {
	posts   map[uint]*models.Post
	nextID  uint
	deleted []uint
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[uint]*models.Post), nextID: 100}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (f *fakePostRepo) CreatePost(post *models.Post) error {
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) GetVisiblePostByID(id uint, now time.Time) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok || !policy.PostVisible(p, now) {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePostRepo) list(filter func(*models.Post) bool, page, pageSize int) (*models.PostPage, error) {
	var items []models.Post
	for _, p := range f.posts {
		if filter(p) {
			items = append(items, *p)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].PubDate.Equal(items[j].PubDate) {
			return items[i].PubDate.After(items[j].PubDate)
		}
		return items[i].ID > items[j].ID
	})
	return models.NewPostPage(items, page, pageSize, int64(len(items))), nil
}

func (f *fakePostRepo) ListPublished(page, pageSize int, now time.Time) (*models.PostPage, error) {
	return f.list(func(p *models.Post) bool { return policy.PostVisible(p, now) }, page, pageSize)
}

func (f *fakePostRepo) ListByCategory(categoryID uint, page, pageSize int, now time.Time) (*models.PostPage, error) {
	return f.list(func(p *models.Post) bool {
		return policy.PostVisible(p, now) && p.CategoryID != nil && *p.CategoryID == categoryID
	}, page, pageSize)
}

func (f *fakePostRepo) ListByAuthor(authorID uint, includeHidden bool, page, pageSize int, now time.Time) (*models.PostPage, error) {
	return f.list(func(p *models.Post) bool {
		if p.AuthorID != authorID {
			return false
		}
		return includeHidden || policy.PostVisible(p, now)
	}, page, pageSize)
}

func (f *fakePostRepo) UpdatePost(post *models.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) DeletePost(id uint) error {
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeCommentRepo is an in-memory CommentRepository
type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
	updated  []uint
	deleted  []uint
}

func newFakeCommentRepo(comments ...*models.Comment) *fakeCommentRepo {
	repo := &fakeCommentRepo{comments: make(map[uint]*models.Comment), nextID: 100}
	for _, cm := range comments {
		repo.comments[cm.ID] = cm
	}
	return repo
}

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	if cm, ok := f.comments[id]; ok {
		return cm, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	for _, cm := range f.comments {
		if cm.PostID == postID {
			comments = append(comments, *cm)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (f *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	f.comments[comment.ID] = comment
	f.updated = append(f.updated, comment.ID)
	return nil
}

func (f *fakeCommentRepo) DeleteComment(id uint) error {
	delete(f.comments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeCategoryRepo is an in-memory CategoryRepository
type fakeCategoryRepo struct {
	categories []models.Category
}

func (f *fakeCategoryRepo) CreateCategory(category *models.Category) error {
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryRepo) GetPublishedBySlug(slug string) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug && f.categories[i].IsPublished {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) GetCategories() ([]models.Category, error) {
	var published []models.Category
	for _, cat := range f.categories {
		if cat.IsPublished {
			published = append(published, cat)
		}
	}
	return published, nil
}

func (f *fakeCategoryRepo) UpdateCategory(category *models.Category) error { return nil }
func (f *fakeCategoryRepo) DeleteCategory(id uint) error                  { return nil }

// fakeLocationRepo is an in-memory LocationRepository
type fakeLocationRepo struct {
	locations []models.Location
}

func (f *fakeLocationRepo) CreateLocation(location *models.Location) error { return nil }
func (f *fakeLocationRepo) DeleteLocation(id uint) error                   { return nil }

func (f *fakeLocationRepo) GetLocations() ([]models.Location, error) {
	return f.locations, nil
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User), nextID: 100}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}
