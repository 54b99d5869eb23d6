package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/findash/findash/internal/api"
	"github.com/findash/findash/internal/bus"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/session"
)

// CategoryStore is the view model for spending categories. It owns an
// ephemeral cache of the server's category list and republishes every
// successful mutation on the change bus.
type CategoryStore struct {
	gateway    api.Gateway
	session    session.Store
	bus        *bus.Bus
	logger     *slog.Logger
	categories []model.Category
	ops        opTracker
	mu         sync.Mutex
}

// NewCategoryStore wires a category store to its collaborators.
func NewCategoryStore(gateway api.Gateway, sess session.Store, b *bus.Bus) *CategoryStore {
	return &CategoryStore{
		gateway: gateway,
		session: sess,
		bus:     b,
		logger:  slog.Default().With("component", "category-store"),
	}
}

// Categories returns a copy of the cached category list.
func (s *CategoryStore) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Load fetches all categories and replaces the cache wholesale. On
// failure the cache is left unchanged.
func (s *CategoryStore) Load(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return notLoggedIn()
	}

	key := opKey{kind: opLoad}
	if !s.ops.begin(key) {
		return ErrInFlight
	}

	categories, err := s.gateway.ListCategories(ctx)
	s.ops.finish(key, err)
	if err != nil {
		return failure("fetch categories", err)
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// Add creates a category. The server-returned entity, which carries the
// assigned identifier, is appended to the cache and a create event is
// published.
func (s *CategoryStore) Add(ctx context.Context, name string) (*model.Category, error) {
	if !s.session.IsAuthenticated() {
		return nil, notLoggedIn()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Category name cannot be empty")
	}

	key := opKey{kind: opAdd}
	if !s.ops.begin(key) {
		return nil, ErrInFlight
	}

	category, err := s.gateway.CreateCategory(ctx, name)
	s.ops.finish(key, err)
	if err != nil {
		return nil, failure("add category", err)
	}

	s.mu.Lock()
	s.categories = append(s.categories, *category)
	s.mu.Unlock()

	s.bus.Publish(model.ChangeEvent{Action: model.ChangeCreate, CategoryID: category.ID})
	return category, nil
}

// Rename updates a category's name, replacing the matching cache entry
// with the server-returned entity.
func (s *CategoryStore) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	if !s.session.IsAuthenticated() {
		return nil, notLoggedIn()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Category name cannot be empty")
	}

	key := opKey{kind: opEdit, id: id}
	if !s.ops.begin(key) {
		return nil, ErrInFlight
	}

	category, err := s.gateway.UpdateCategory(ctx, id, name)
	s.ops.finish(key, err)
	if err != nil {
		return nil, failure("update category", err)
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = *category
			break
		}
	}
	s.mu.Unlock()

	s.bus.Publish(model.ChangeEvent{Action: model.ChangeUpdate, CategoryID: id})
	return category, nil
}

// Remove deletes a category and publishes a delete event, regardless of
// whether expenses still reference it: the reference is soft and the
// expense store reacts to the event instead.
func (s *CategoryStore) Remove(ctx context.Context, id int64) error {
	if !s.session.IsAuthenticated() {
		return notLoggedIn()
	}

	key := opKey{kind: opDelete, id: id}
	if !s.ops.begin(key) {
		return ErrInFlight
	}

	err := s.gateway.DeleteCategory(ctx, id)
	s.ops.finish(key, err)
	if err != nil {
		return failure("delete category", err)
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.bus.Publish(model.ChangeEvent{Action: model.ChangeDelete, CategoryID: id})
	return nil
}
