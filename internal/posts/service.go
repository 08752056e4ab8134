package posts

import (
	"context"
	"fmt"
	"strings"

	"github.com/pressgate/pressgate/internal/shared"
)

// RepositoryPort defines data access methods for posts.
type RepositoryPort interface {
	ListPosts(ctx context.Context, limit, offset int) ([]Post, error)
	CountPosts(ctx context.Context) (int, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	CreatePost(ctx context.Context, title, content string, authorID int64) (Post, error)
	UpdatePost(ctx context.Context, id int64, title, content string) (Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// Service handles post business logic. Authorization happens at the route
// boundary; this layer only validates shape.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListPosts returns one page of posts with pagination metadata. Page and
// perPage are normalised so out-of-range values never reach the store.
func (s *Service) ListPosts(ctx context.Context, page, perPage int) ([]Post, shared.Pagination, error) {
	total, err := s.repo.CountPosts(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	meta := shared.NewPagination(page, perPage, total)
	list, err := s.repo.ListPosts(ctx, meta.PerPage, (meta.Page-1)*meta.PerPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return list, meta, nil
}

// GetPost fetches one post.
func (s *Service) GetPost(ctx context.Context, id int64) (Post, error) {
	return s.repo.GetPost(ctx, id)
}

// CreatePost inserts a new post owned by the acting principal.
func (s *Service) CreatePost(ctx context.Context, title, content string, authorID int64) (Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Post{}, fmt.Errorf("%w: title required", shared.ErrInvalid)
	}
	return s.repo.CreatePost(ctx, title, content, authorID)
}

// UpdatePost edits title and content.
func (s *Service) UpdatePost(ctx context.Context, id int64, title, content string) (Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Post{}, fmt.Errorf("%w: title required", shared.ErrInvalid)
	}
	return s.repo.UpdatePost(ctx, id, title, content)
}

// DeletePost removes a post.
func (s *Service) DeletePost(ctx context.Context, id int64) error {
	return s.repo.DeletePost(ctx, id)
}
