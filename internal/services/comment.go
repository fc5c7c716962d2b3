package services

import (
	"context"
	"errors"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

const (
	maxCommentLength = 2000
	commentListLimit = 1000
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment types.Comment) (types.Comment, error)
	Get(ctx context.Context, id string) (types.Comment, error)
	// ListForTransmission returns non-deleted comments, oldest first.
	ListForTransmission(ctx context.Context, transmissionID string) ([]types.Comment, error)
	// ListAll returns every comment including deleted ones, newest first.
	ListAll(ctx context.Context, limit int) ([]types.Comment, error)
	SoftDelete(ctx context.Context, id string) error
}

// CommentService encapsulates comment threading and moderation.
type CommentService struct {
	repo          CommentRepository
	guardians     GuardianRepository
	transmissions TransmissionRepository
	events        EventPublisher
	policy        *bluemonday.Policy
}

func NewCommentService(
	repo CommentRepository,
	guardians GuardianRepository,
	transmissions TransmissionRepository,
	events EventPublisher,
) *CommentService {
	return &CommentService{
		repo:          repo,
		guardians:     guardians,
		transmissions: transmissions,
		events:        publisherOrNoop(events),
		policy:        bluemonday.StrictPolicy(),
	}
}

// Create posts a comment on behalf of a registered guardian.
func (s *CommentService) Create(ctx context.Context, transmissionID, scrollID, content string, parentID *string) (types.Comment, error) {
	scrollID = normalizeScrollID(scrollID)
	if scrollID == "" {
		return types.Comment{}, invalid("scroll_id", "scroll_id is required")
	}
	guardian, err := s.guardians.GetByScrollID(ctx, scrollID)
	if err != nil {
		return types.Comment{}, err
	}

	return s.create(ctx, types.Comment{
		TransmissionID: transmissionID,
		ScrollID:       guardian.ScrollID,
		Content:        content,
		ParentID:       parentID,
	})
}

// CreateAsAdmin posts a comment authored by the administrator.
func (s *CommentService) CreateAsAdmin(ctx context.Context, transmissionID, content string, parentID *string) (types.Comment, error) {
	return s.create(ctx, types.Comment{
		TransmissionID: transmissionID,
		ScrollID:       types.AdminAuthor,
		Content:        content,
		ParentID:       parentID,
		IsAdmin:        true,
	})
}

func (s *CommentService) create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	content, err := s.sanitize(comment.Content)
	if err != nil {
		return types.Comment{}, err
	}
	comment.Content = content

	comment.TransmissionID = strings.TrimSpace(comment.TransmissionID)
	if comment.TransmissionID == "" {
		return types.Comment{}, invalid("transmission_id", "transmission_id is required")
	}
	if _, err := s.transmissions.Get(ctx, comment.TransmissionID); err != nil {
		return types.Comment{}, err
	}

	if comment.ParentID != nil {
		parentID := strings.TrimSpace(*comment.ParentID)
		if parentID == "" {
			comment.ParentID = nil
		} else {
			if err := s.checkParent(ctx, parentID, comment.TransmissionID); err != nil {
				return types.Comment{}, err
			}
			comment.ParentID = &parentID
		}
	}

	created, err := s.repo.Create(ctx, comment)
	if err != nil {
		return types.Comment{}, err
	}
	s.events.Publish(ctx, EventCommentCreated, created)
	return created, nil
}

func (s *CommentService) checkParent(ctx context.Context, parentID, transmissionID string) error {
	parent, err := s.repo.Get(ctx, parentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("parent_id", "parent comment not found")
		}
		return err
	}
	if parent.IsDeleted {
		return invalid("parent_id", "parent comment has been deleted")
	}
	if parent.TransmissionID != transmissionID {
		return invalid("parent_id", "parent comment belongs to another transmission")
	}
	return nil
}

// sanitize strips markup and enforces the length limits on comment text.
// The policy escapes entities on output; they are decoded again so the stored
// text is what the author typed, minus tags.
func (s *CommentService) sanitize(content string) (string, error) {
	content = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(content)))
	if content == "" {
		return "", invalid("content", "content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return "", invalid("content", "content must be at most 2000 characters")
	}
	return content, nil
}

func (s *CommentService) ListForTransmission(ctx context.Context, transmissionID string) ([]types.Comment, error) {
	return s.repo.ListForTransmission(ctx, transmissionID)
}

func (s *CommentService) ListAll(ctx context.Context) ([]types.Comment, error) {
	return s.repo.ListAll(ctx, commentListLimit)
}

// Delete soft-deletes a comment as administrator.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// DeleteOwn soft-deletes a comment on behalf of its author.
func (s *CommentService) DeleteOwn(ctx context.Context, id, scrollID string) error {
	comment, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if comment.IsDeleted {
		return store.ErrNotFound
	}
	if comment.IsAdmin || comment.ScrollID != normalizeScrollID(scrollID) {
		return ErrForbidden
	}
	return s.repo.SoftDelete(ctx, id)
}
