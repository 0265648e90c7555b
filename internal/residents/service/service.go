// Package service holds the resident registry use cases.
package service

import (
	"context"
	"errors"

	"warga_portal_backend/internal/residents/repository"
	"warga_portal_backend/platform/apperr"
	"warga_portal_backend/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, f repository.Fields) (*repository.Resident, error) {
	normalizePhone(&f)
	res, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, mapResidentErr(err)
	}
	return res, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Resident, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapResidentErr(err)
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, rtID *uuid.UUID) ([]repository.Resident, error) {
	return s.repo.List(ctx, rtID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, f repository.Fields) error {
	normalizePhone(&f)
	if err := s.repo.Update(ctx, id, f); err != nil {
		return mapResidentErr(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapResidentErr(err)
	}
	return nil
}

func normalizePhone(f *repository.Fields) {
	if f.Phone == nil || *f.Phone == "" {
		return
	}
	normalized := phone.NormalizeE164(*f.Phone)
	f.Phone = &normalized
}

func mapResidentErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("penduduk tidak ditemukan")
	case errors.Is(err, repository.ErrNIKTaken):
		return apperr.Conflict("NIK sudah terdaftar")
	default:
		return apperr.Wrap(apperr.KindInternal, "resident operation failed", err)
	}
}
