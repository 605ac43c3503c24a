package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/cache"
	"aquabio-be/internal/config"
	"aquabio-be/internal/entities"
	"aquabio-be/internal/models"
	"aquabio-be/internal/repository"
	"aquabio-be/internal/storage"
)

// Uploaded photos must be one of these image types.
var allowedImageMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

const (
	cacheKeyAll    = "biota:all"
	cacheKeyPrefix = "biota:"
	cacheTTL       = 5 * time.Minute
)

// BiotaService defines the interface for catalog business logic. All
// mutations take the acting user's ID; authorization is owner-or-admin
// with the admin flag re-read from storage.
type BiotaService interface {
	List(ctx context.Context, filters models.BiotaFilters) ([]*entities.BiotaEntry, error)
	Get(ctx context.Context, id int64) (*entities.BiotaEntry, error)
	Create(ctx context.Context, actorID int64, req *models.CreateBiotaRequest) (*entities.BiotaEntry, error)
	Update(ctx context.Context, actorID int64, id int64, req *models.UpdateBiotaRequest) (*entities.BiotaEntry, error)
	Delete(ctx context.Context, actorID int64, id int64) error
}

type biotaService struct {
	repo           repository.BiotaRepository
	userRepo       repository.UserRepository
	store          storage.ImageStore
	cache          cache.Cache // nil when Redis is unavailable
	maxUploadBytes int64
}

// NewBiotaService creates a new biota service. cacheClient may be nil.
func NewBiotaService(
	repo repository.BiotaRepository,
	userRepo repository.UserRepository,
	store storage.ImageStore,
	cacheClient cache.Cache,
	maxUploadBytes int64,
) BiotaService {
	return &biotaService{
		repo:           repo,
		userRepo:       userRepo,
		store:          store,
		cache:          cacheClient,
		maxUploadBytes: maxUploadBytes,
	}
}

// List returns the entries matching every supplied filter, newest
// first. The unfiltered catalog is served from cache when possible.
func (s *biotaService) List(ctx context.Context, filters models.BiotaFilters) ([]*entities.BiotaEntry, error) {
	unfiltered := filters.Search == "" && filters.Category == "" && filters.Location == ""

	if unfiltered && s.cache != nil {
		var cached []*entities.BiotaEntry
		if err := s.cache.GetJSON(ctx, cacheKeyAll, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	if unfiltered && s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyAll, entries, cacheTTL); err != nil {
			slog.Warn("failed to cache biota list", "error", err)
		}
	}
	return entries, nil
}

// Get returns a single entry or ErrNotFound.
func (s *biotaService) Get(ctx context.Context, id int64) (*entities.BiotaEntry, error) {
	if s.cache != nil {
		var cached entities.BiotaEntry
		if err := s.cache.GetJSON(ctx, entryCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, entryCacheKey(id), entry, cacheTTL); err != nil {
			slog.Warn("failed to cache biota entry", "id", id, "error", err)
		}
	}
	return entry, nil
}

// Create validates and persists a new entry owned by the actor. An
// image is mandatory: either an uploaded file (stored locally) or a
// caller-supplied URL recorded verbatim.
func (s *biotaService) Create(ctx context.Context, actorID int64, req *models.CreateBiotaRequest) (*entities.BiotaEntry, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	if name == "" || location == "" {
		return nil, fmt.Errorf("%w: name and location are required", apperrors.ErrValidation)
	}

	// Photographer is the actor's username at creation time, read fresh
	// from storage.
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var image string
	switch {
	case req.File != nil:
		image, err = s.storeImage(req.File)
		if err != nil {
			return nil, err
		}
	case req.ImageURL != "":
		image = req.ImageURL
	default:
		return nil, fmt.Errorf("%w: a photo upload or an image URL is required", apperrors.ErrValidation)
	}

	category := req.Category
	if category == "" {
		category = config.DefaultCategory
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	photographer := actor.Username
	if photographer == "" {
		photographer = config.DefaultPhotographer
	}

	entry, err := s.repo.Create(ctx, &entities.BiotaEntry{
		Name:         name,
		Location:     location,
		Category:     category,
		Description:  description,
		Image:        image,
		Photographer: photographer,
		UserID:       actor.ID,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, entry.ID)
	return entry, nil
}

// Update applies a partial patch to an existing entry after the
// owner-or-admin check. Name, location, and category overwrite only
// when non-empty; a present description overwrites even when empty; a
// newly uploaded file replaces the image and best-effort deletes the
// previous locally stored one. Supplying no image at all leaves the
// image unchanged.
func (s *biotaService) Update(ctx context.Context, actorID int64, id int64, req *models.UpdateBiotaRequest) (*entities.BiotaEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, entry); err != nil {
		return nil, err
	}

	var patch repository.BiotaPatch
	if name := strings.TrimSpace(req.Name); name != "" {
		patch.Name = &name
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		patch.Location = &location
	}
	if req.Category != "" {
		patch.Category = &req.Category
	}
	if req.Description != nil {
		patch.Description = req.Description
	}

	if req.File != nil {
		image, err := s.storeImage(req.File)
		if err != nil {
			return nil, err
		}
		// The old file is gone from the catalog either way; a failed
		// removal is logged, never propagated.
		if err := s.store.Delete(entry.Image); err != nil {
			slog.Warn("failed to delete replaced image", "id", id, "image", entry.Image, "error", err)
		}
		patch.Image = &image
	} else if req.ImageURL != "" {
		patch.Image = &req.ImageURL
	}

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return s.repo.FindByID(ctx, id)
}

// Delete removes an entry after the owner-or-admin check and
// best-effort deletes its locally stored image. Repeating the call
// reports ErrNotFound.
func (s *biotaService) Delete(ctx context.Context, actorID int64, id int64) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, entry); err != nil {
		return err
	}

	if err := s.store.Delete(entry.Image); err != nil {
		slog.Warn("failed to delete image file", "id", id, "image", entry.Image, "error", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// authorize allows a mutation when the actor owns the entry or is an
// administrator. The admin flag comes from the stored user record, not
// the token.
func (s *biotaService) authorize(ctx context.Context, actorID int64, entry *entities.BiotaEntry) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	isOwner := entry.UserID == actor.ID
	isAdmin := actor.IsAdmin
	if !isOwner && !isAdmin {
		return fmt.Errorf("%w: you do not have permission to modify this entry", apperrors.ErrForbidden)
	}
	return nil
}

// storeImage validates an uploaded file (size cap, sniffed image
// content type) and hands it to the store.
func (s *biotaService) storeImage(file *models.UploadedImage) (string, error) {
	if file.Size > s.maxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds the %d MB upload limit", apperrors.ErrValidation, s.maxUploadBytes/(1024*1024))
	}

	buffer := make([]byte, 512)
	bytesRead, err := file.Reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: error reading uploaded file", apperrors.ErrValidation)
	}
	if bytesRead == 0 {
		return "", fmt.Errorf("%w: uploaded file is empty", apperrors.ErrValidation)
	}

	detected := mimetype.Detect(buffer[:bytesRead]).String()
	if semicolon := strings.Index(detected, ";"); semicolon >= 0 {
		detected = detected[:semicolon]
	}
	if _, ok := allowedImageMimeTypes[strings.TrimSpace(detected)]; !ok {
		return "", fmt.Errorf("%w: only jpeg, png, gif, and webp images are allowed (got %s)", apperrors.ErrValidation, detected)
	}

	if _, err := file.Reader.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return s.store.Save(file.Filename, file.Reader)
}

func (s *biotaService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyAll, entryCacheKey(id)); err != nil {
		slog.Warn("failed to invalidate biota cache", "id", id, "error", err)
	}
}

func entryCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", cacheKeyPrefix, id)
}
