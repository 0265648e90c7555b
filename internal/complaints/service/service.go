// Package service holds the laporan use cases.
package service

import (
	"context"
	"errors"
	"fmt"

	"warga_portal_backend/internal/complaints/domain"
	"warga_portal_backend/internal/complaints/repository"
	"warga_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Judul      string
	Deskripsi  string
	Kategori   *string
	Prioritas  *string
	PendudukID uuid.UUID
	RTID       uuid.UUID
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*repository.Laporan, error) {
	if in.Kategori != nil {
		if _, ok := domain.Kategori[*in.Kategori]; !ok {
			return nil, apperr.Validation("kategori laporan tidak dikenal")
		}
	}
	if in.Prioritas != nil {
		if _, ok := domain.Prioritas[*in.Prioritas]; !ok {
			return nil, apperr.Validation("prioritas laporan tidak dikenal")
		}
	}

	laporan, err := s.repo.Create(ctx, in.Judul, in.Deskripsi, in.Kategori, in.Prioritas, in.PendudukID, in.RTID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create laporan", err)
	}
	return laporan, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Laporan, error) {
	laporan, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("laporan tidak ditemukan")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load laporan", err)
	}
	return laporan, nil
}

func (s *Service) List(ctx context.Context, f repository.Filter) ([]repository.Laporan, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.Status, tanggapan *string, processedBy uuid.UUID) (*repository.Laporan, error) {
	laporan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current, _ := domain.ParseStatus(laporan.Status)
	if !domain.CanTransition(current, next) {
		return nil, apperr.Validation(fmt.Sprintf("status tidak dapat diubah dari %s ke %s", current, next))
	}

	if err := s.repo.UpdateStatus(ctx, id, string(next), tanggapan, processedBy); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("laporan tidak ditemukan")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update laporan", err)
	}

	return s.Get(ctx, id)
}
