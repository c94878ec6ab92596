package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/fungi-kb/apiserver/internal/mq"
	"github.com/fungi-kb/apiserver/internal/storage"
	"github.com/fungi-kb/apiserver/internal/store"
	"github.com/fungi-kb/apiserver/types"
	"github.com/google/uuid"
)

// MushroomRepository defines persistence operations for species documents.
type MushroomRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Mushroom, int, error)
	Get(ctx context.Context, id string) (types.Mushroom, error)
	GetByScientificName(ctx context.Context, name string) (types.Mushroom, error)
	Create(ctx context.Context, mushroom types.Mushroom) (types.Mushroom, error)
	Update(ctx context.Context, mushroom types.Mushroom) (types.Mushroom, error)
	Delete(ctx context.Context, id string) error
}

// MushroomService encapsulates the knowledge-base use-cases: validated
// CRUD over species documents, media attachments, and change events.
type MushroomService struct {
	repo   MushroomRepository
	events *mq.MQ
	media  *storage.Storage
}

// NewMushroomService constructs a MushroomService. events and media may be
// nil; the corresponding features are then disabled.
func NewMushroomService(repo MushroomRepository, events *mq.MQ, media *storage.Storage) *MushroomService {
	return &MushroomService{repo: repo, events: events, media: media}
}

func (s *MushroomService) List(ctx context.Context, offset, limit int) ([]types.Mushroom, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *MushroomService) Get(ctx context.Context, id string) (types.Mushroom, error) {
	mushroom, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Mushroom{}, ErrMushroomNotFound
		}
		return types.Mushroom{}, err
	}
	return mushroom, nil
}

// Create validates the document, assigns a UUID, records the creator, and
// publishes a change event.
func (s *MushroomService) Create(ctx context.Context, mushroom types.Mushroom, createdBy string) (types.Mushroom, error) {
	if err := validateMushroom(&mushroom); err != nil {
		return types.Mushroom{}, err
	}

	mushroom.ID = uuid.NewString()
	mushroom.CreatedBy = createdBy
	mushroom.Verified = false

	created, err := s.repo.Create(ctx, mushroom)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.Mushroom{}, ErrScientificNameInUse
		}
		return types.Mushroom{}, err
	}

	publishEvent(ctx, s.events, types.EventMushroomCreated, created.ID, createdBy)
	return created, nil
}

// Update replaces the document matching mushroom.ID. The creator and
// verification flag survive the update; only admins toggle Verified, which
// is out of scope for this endpoint.
func (s *MushroomService) Update(ctx context.Context, mushroom types.Mushroom, updatedBy string) (types.Mushroom, error) {
	if err := validateMushroom(&mushroom); err != nil {
		return types.Mushroom{}, err
	}

	current, err := s.repo.Get(ctx, mushroom.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Mushroom{}, ErrMushroomNotFound
		}
		return types.Mushroom{}, err
	}
	mushroom.CreatedBy = current.CreatedBy
	mushroom.Verified = current.Verified
	mushroom.CreatedAt = current.CreatedAt

	updated, err := s.repo.Update(ctx, mushroom)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Mushroom{}, ErrMushroomNotFound
		}
		if errors.Is(err, store.ErrConflict) {
			return types.Mushroom{}, ErrScientificNameInUse
		}
		return types.Mushroom{}, err
	}

	publishEvent(ctx, s.events, types.EventMushroomUpdated, updated.ID, updatedBy)
	return updated, nil
}

func (s *MushroomService) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMushroomNotFound
		}
		return err
	}

	publishEvent(ctx, s.events, types.EventMushroomDeleted, id, deletedBy)
	return nil
}

// AttachMedia stores an uploaded file in object storage under the document's
// media prefix and appends an image entry referencing the object key.
func (s *MushroomService) AttachMedia(ctx context.Context, id, filename string, data []byte, contentType string) (types.Mushroom, error) {
	if s.media == nil {
		return types.Mushroom{}, ErrMediaStorageDisabled
	}

	mushroom, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Mushroom{}, ErrMushroomNotFound
		}
		return types.Mushroom{}, err
	}

	key := fmt.Sprintf("mushrooms/%s/%s", mushroom.ID, path.Base(filename))
	if err := s.media.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return types.Mushroom{}, err
	}

	if mushroom.Media == nil {
		mushroom.Media = &types.Media{}
	}
	mushroom.Media.Images = append(mushroom.Media.Images, types.MediaImage{
		URL:  key,
		Type: contentType,
	})

	updated, err := s.repo.Update(ctx, mushroom)
	if err != nil {
		return types.Mushroom{}, err
	}

	publishEvent(ctx, s.events, types.EventMushroomUpdated, updated.ID, "")
	return updated, nil
}
