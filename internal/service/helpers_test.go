package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/entities"
	"aquabio-be/internal/models"
	"aquabio-be/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository with the same
// case-insensitive matching rules as the real schema.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (r *fakeUserRepo) add(user *entities.User) *entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, username, email, passwordHash, fullName string) (*entities.User, error) {
	return r.add(&entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
	}), nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %w", apperrors.ErrNotFound)
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %w", apperrors.ErrNotFound)
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) || strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*entities.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

// fakeBiotaRepo is an in-memory BiotaRepository.
type fakeBiotaRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]*entities.BiotaEntry
}

func newFakeBiotaRepo() *fakeBiotaRepo {
	return &fakeBiotaRepo{entries: make(map[int64]*entities.BiotaEntry)}
}

func (r *fakeBiotaRepo) Create(_ context.Context, entry *entities.BiotaEntry) (*entities.BiotaEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *entry
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.entries[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeBiotaRepo) FindByID(_ context.Context, id int64) (*entities.BiotaEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, fmt.Errorf("biota %w", apperrors.ErrNotFound)
}

func (r *fakeBiotaRepo) List(_ context.Context, filters models.BiotaFilters) ([]*entities.BiotaEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	results := []*entities.BiotaEntry{}
	for _, entry := range r.entries {
		if filters.Search != "" &&
			!strings.Contains(entry.Name, filters.Search) &&
			!strings.Contains(entry.Description, filters.Search) &&
			!strings.Contains(entry.Location, filters.Search) {
			continue
		}
		if filters.Category != "" && entry.Category != filters.Category {
			continue
		}
		if filters.Location != "" && entry.Location != filters.Location {
			continue
		}
		copied := *entry
		results = append(results, &copied)
	}
	return results, nil
}

func (r *fakeBiotaRepo) Update(_ context.Context, id int64, patch repository.BiotaPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("biota %w", apperrors.ErrNotFound)
	}
	if patch.Name != nil {
		entry.Name = *patch.Name
	}
	if patch.Location != nil {
		entry.Location = *patch.Location
	}
	if patch.Category != nil {
		entry.Category = *patch.Category
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Image != nil {
		entry.Image = *patch.Image
	}
	return nil
}

func (r *fakeBiotaRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("biota %w", apperrors.ErrNotFound)
	}
	delete(r.entries, id)
	return nil
}

// fakeImageStore records saves and deletes.
type fakeImageStore struct {
	saved   []string
	deleted []string
}

func (s *fakeImageStore) Save(originalFilename string, _ io.Reader) (string, error) {
	path := "/uploads/biota-test-" + originalFilename
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeImageStore) Delete(publicPath string) error {
	if strings.HasPrefix(publicPath, "/uploads/") {
		s.deleted = append(s.deleted, publicPath)
	}
	return nil
}
