// Package service holds the pengumuman use cases.
package service

import (
	"context"
	"errors"

	"warga_portal_backend/internal/announcements/repository"
	"warga_portal_backend/internal/events"
	"warga_portal_backend/internal/scheduler"
	"warga_portal_backend/platform/apperr"
	"warga_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo   *repository.Repository
	bus    events.Bus
	expiry scheduler.ExpiryScheduler
	log    *logger.Logger
}

// New wires the service. expiry may be nil when Redis is not configured;
// expiry then only takes effect through the active-list filter.
func New(repo *repository.Repository, bus events.Bus, expiry scheduler.ExpiryScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, expiry: expiry, log: log}
}

func (s *Service) Create(ctx context.Context, authorID uuid.UUID, f repository.Fields) (*repository.Announcement, error) {
	ann, err := s.repo.Create(ctx, authorID, f)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create pengumuman", err)
	}

	s.scheduleExpiry(ctx, ann)

	if s.bus != nil {
		s.bus.Publish(ctx, events.AnnouncementCreated{
			BaseEvent:      events.NewBaseEvent(),
			AnnouncementID: ann.ID,
			Title:          ann.Judul,
			RWID:           ann.RWID,
			RTID:           ann.RTID,
			Audience:       ann.TargetAudience,
		})
	}
	return ann, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Announcement, error) {
	ann, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("pengumuman tidak ditemukan")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load pengumuman", err)
	}
	return ann, nil
}

func (s *Service) ListActive(ctx context.Context) ([]repository.Announcement, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, f repository.Fields) (*repository.Announcement, error) {
	if err := s.repo.Update(ctx, id, f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("pengumuman tidak ditemukan")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update pengumuman", err)
	}

	ann, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.scheduleExpiry(ctx, ann)

	if s.bus != nil {
		s.bus.Publish(ctx, events.AnnouncementUpdated{
			BaseEvent:      events.NewBaseEvent(),
			AnnouncementID: ann.ID,
		})
	}
	return ann, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("pengumuman tidak ditemukan")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete pengumuman", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.AnnouncementDeleted{
			BaseEvent:      events.NewBaseEvent(),
			AnnouncementID: id,
		})
	}
	return nil
}

func (s *Service) scheduleExpiry(ctx context.Context, ann *repository.Announcement) {
	if s.expiry == nil || ann.ExpiresAt == nil {
		return
	}
	err := s.expiry.ScheduleAnnouncementExpiry(ctx,
		scheduler.AnnouncementExpiryPayload{AnnouncementID: ann.ID.String()},
		*ann.ExpiresAt)
	if err != nil {
		s.log.Warn("failed to schedule announcement expiry", "announcement_id", ann.ID, "error", err)
	}
}
