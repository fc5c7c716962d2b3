package services

import (
	"context"
	"strings"

	"github.com/thesyncbridge/apiserver/types"
)

const transmissionListLimit = 100

// TransmissionRepository defines persistence operations for transmissions.
type TransmissionRepository interface {
	Create(ctx context.Context, transmission types.Transmission) (types.Transmission, error)
	Get(ctx context.Context, id string) (types.Transmission, error)
	// List returns transmissions ordered by day number then creation time, newest first.
	List(ctx context.Context, limit int) ([]types.Transmission, error)
	Delete(ctx context.Context, id string) error
}

// TransmissionService encapsulates transmission use-cases.
type TransmissionService struct {
	repo   TransmissionRepository
	events EventPublisher
}

func NewTransmissionService(repo TransmissionRepository, events EventPublisher) *TransmissionService {
	return &TransmissionService{repo: repo, events: publisherOrNoop(events)}
}

func (s *TransmissionService) Create(ctx context.Context, transmission types.Transmission) (types.Transmission, error) {
	transmission.Title = strings.TrimSpace(transmission.Title)
	transmission.Description = strings.TrimSpace(transmission.Description)
	if transmission.Title == "" {
		return types.Transmission{}, invalid("title", "title is required")
	}
	if transmission.Description == "" {
		return types.Transmission{}, invalid("description", "description is required")
	}
	if transmission.DayNumber < 0 {
		return types.Transmission{}, invalid("day_number", "day_number must not be negative")
	}
	if transmission.VideoURL != nil {
		url := strings.TrimSpace(*transmission.VideoURL)
		if url == "" {
			transmission.VideoURL = nil
		} else {
			transmission.VideoURL = &url
		}
	}

	created, err := s.repo.Create(ctx, transmission)
	if err != nil {
		return types.Transmission{}, err
	}
	s.events.Publish(ctx, EventTransmissionPublished, created)
	return created, nil
}

func (s *TransmissionService) Get(ctx context.Context, id string) (types.Transmission, error) {
	return s.repo.Get(ctx, id)
}

func (s *TransmissionService) List(ctx context.Context) ([]types.Transmission, error) {
	return s.repo.List(ctx, transmissionListLimit)
}

// Latest returns the transmission with the highest day number, or nil when
// nothing has been published yet.
func (s *TransmissionService) Latest(ctx context.Context) (*types.Transmission, error) {
	transmissions, err := s.repo.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(transmissions) == 0 {
		return nil, nil
	}
	return &transmissions[0], nil
}

func (s *TransmissionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
