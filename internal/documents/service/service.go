// Package service holds the surat processing use cases.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warga_portal_backend/internal/documents/domain"
	"warga_portal_backend/internal/documents/repository"
	"warga_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// Store is the persistence surface the use cases need.
type Store interface {
	Create(ctx context.Context, jenis string, keperluan *string, pendudukID, rtID uuid.UUID) (*repository.Surat, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Surat, error)
	List(ctx context.Context, f repository.Filter) ([]repository.Surat, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, catatan *string, processedBy uuid.UUID, nomorSurat *string) error
	CountCompletedInYear(ctx context.Context, rtID uuid.UUID, year int) (int, error)
}

// nomorAttempts bounds the retries when concurrent completions collide on a
// letter number.
const nomorAttempts = 5

type Service struct {
	repo Store
}

func New(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, jenis string, keperluan *string, pendudukID, rtID uuid.UUID) (*repository.Surat, error) {
	if !domain.KnownJenis(jenis) {
		return nil, apperr.Validation("jenis surat tidak dikenal")
	}

	surat, err := s.repo.Create(ctx, jenis, keperluan, pendudukID, rtID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create surat", err)
	}
	return surat, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Surat, error) {
	surat, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("surat tidak ditemukan")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load surat", err)
	}
	return surat, nil
}

func (s *Service) List(ctx context.Context, f repository.Filter) ([]repository.Surat, error) {
	return s.repo.List(ctx, f)
}

// UpdateStatus advances a request through the processing state machine.
// Completion assigns the next letter number in the RT's sequence for the
// current year.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.Status, catatan *string, processedBy uuid.UUID) (*repository.Surat, error) {
	surat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current, _ := domain.ParseStatus(surat.Status)
	if !domain.CanTransition(current, next) {
		return nil, apperr.Validation(fmt.Sprintf("status tidak dapat diubah dari %s ke %s", current, next))
	}

	if next == domain.StatusSelesai {
		return s.complete(ctx, surat, catatan, processedBy)
	}

	if err := s.repo.UpdateStatus(ctx, id, string(next), catatan, processedBy, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("surat tidak ditemukan")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update surat", err)
	}

	return s.Get(ctx, id)
}

// complete marks a request selesai and assigns its letter number. Two
// concurrent completions can compute the same sequence number; the unique
// index on nomor_surat turns the loser's write into ErrNomorTaken, and the
// loser takes the next number.
func (s *Service) complete(ctx context.Context, surat *repository.Surat, catatan *string, processedBy uuid.UUID) (*repository.Surat, error) {
	year := time.Now().Year()
	count, err := s.repo.CountCompletedInYear(ctx, surat.RTID, year)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to assign letter number", err)
	}

	for attempt := 0; attempt < nomorAttempts; attempt++ {
		nomor := fmt.Sprintf("%03d/SK/RT-%s/%d", count+1+attempt, surat.RTNomor, year)
		err := s.repo.UpdateStatus(ctx, surat.ID, string(domain.StatusSelesai), catatan, processedBy, &nomor)
		if errors.Is(err, repository.ErrNomorTaken) {
			continue
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("surat tidak ditemukan")
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to update surat", err)
		}
		return s.Get(ctx, surat.ID)
	}

	return nil, apperr.Internal("failed to assign a unique letter number")
}
