package posts

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/shared"
)

type memoryRepo struct {
	posts  map[int64]Post
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{posts: make(map[int64]Post)}
}

func (r *memoryRepo) ListPosts(ctx context.Context, limit, offset int) ([]Post, error) {
	all := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryRepo) CountPosts(ctx context.Context) (int, error) {
	return len(r.posts), nil
}

func (r *memoryRepo) GetPost(ctx context.Context, id int64) (Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return Post{}, shared.ErrNotFound
	}
	return post, nil
}

func (r *memoryRepo) CreatePost(ctx context.Context, title, content string, authorID int64) (Post, error) {
	r.nextID++
	post := Post{ID: r.nextID, Title: title, Content: content, AuthorID: authorID}
	r.posts[post.ID] = post
	return post, nil
}

func (r *memoryRepo) UpdatePost(ctx context.Context, id int64, title, content string) (Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return Post{}, shared.ErrNotFound
	}
	post.Title = title
	post.Content = content
	r.posts[id] = post
	return post, nil
}

func (r *memoryRepo) DeletePost(ctx context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func TestCreatePost(t *testing.T) {
	svc := NewService(newMemoryRepo())

	post, err := svc.CreatePost(context.Background(), "  Hello  ", "first", 7)
	require.NoError(t, err)
	require.Equal(t, "Hello", post.Title)
	require.Equal(t, int64(7), post.AuthorID)
}

func TestCreatePostRequiresTitle(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.CreatePost(context.Background(), "   ", "body", 7)
	require.ErrorIs(t, err, shared.ErrInvalid)
}

func TestUpdatePost(t *testing.T) {
	repo := newMemoryRepo()
	created, _ := repo.CreatePost(context.Background(), "Hello", "first", 7)
	svc := NewService(repo)

	updated, err := svc.UpdatePost(context.Background(), created.ID, "Hello again", "second")
	require.NoError(t, err)
	require.Equal(t, "Hello again", updated.Title)
	require.Equal(t, "second", updated.Content)

	_, err = svc.UpdatePost(context.Background(), 404, "Nope", "")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListPostsPaginates(t *testing.T) {
	repo := newMemoryRepo()
	for i := 0; i < 5; i++ {
		_, _ = repo.CreatePost(context.Background(), "post", "", 1)
	}
	svc := NewService(repo)

	list, meta, err := svc.ListPosts(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 2, meta.Page)
	require.Equal(t, 5, meta.Total)
	require.Equal(t, 3, meta.TotalPages)

	// Out-of-range inputs normalise to the defaults.
	list, meta, err = svc.ListPosts(context.Background(), 0, -1)
	require.NoError(t, err)
	require.Len(t, list, 5)
	require.Equal(t, 1, meta.Page)
	require.Equal(t, 20, meta.PerPage)
}

func TestDeletePost(t *testing.T) {
	repo := newMemoryRepo()
	created, _ := repo.CreatePost(context.Background(), "Hello", "first", 7)
	svc := NewService(repo)

	require.NoError(t, svc.DeletePost(context.Background(), created.ID))
	require.ErrorIs(t, svc.DeletePost(context.Background(), created.ID), shared.ErrNotFound)
}
