// Package service holds the unit management use cases.
package service

import (
	"context"
	"errors"

	"warga_portal_backend/internal/units/repository"
	"warga_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

type UnitInput struct {
	Nomor  string
	Nama   string
	Alamat *string
}

func (s *Service) CreateRW(ctx context.Context, in UnitInput) (*repository.RW, error) {
	rw, err := s.repo.CreateRW(ctx, in.Nomor, in.Nama, in.Alamat)
	if err != nil {
		return nil, mapUnitErr(err, "nomor RW sudah terdaftar")
	}
	return rw, nil
}

func (s *Service) ListRW(ctx context.Context) ([]repository.RW, error) {
	return s.repo.ListRW(ctx)
}

func (s *Service) GetRW(ctx context.Context, id uuid.UUID) (*repository.RW, error) {
	rw, err := s.repo.GetRW(ctx, id)
	if err != nil {
		return nil, mapUnitErr(err, "")
	}
	return rw, nil
}

func (s *Service) UpdateRW(ctx context.Context, id uuid.UUID, in UnitInput) error {
	if err := s.repo.UpdateRW(ctx, id, in.Nomor, in.Nama, in.Alamat); err != nil {
		return mapUnitErr(err, "nomor RW sudah terdaftar")
	}
	return nil
}

func (s *Service) DeleteRW(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRW(ctx, id); err != nil {
		return mapUnitErr(err, "")
	}
	return nil
}

func (s *Service) CreateRT(ctx context.Context, rwID uuid.UUID, in UnitInput) (*repository.RT, error) {
	rt, err := s.repo.CreateRT(ctx, rwID, in.Nomor, in.Nama, in.Alamat)
	if err != nil {
		return nil, mapUnitErr(err, "nomor RT sudah terdaftar di RW ini")
	}
	return rt, nil
}

func (s *Service) ListRT(ctx context.Context, rwID *uuid.UUID) ([]repository.RT, error) {
	return s.repo.ListRT(ctx, rwID)
}

func (s *Service) GetRT(ctx context.Context, id uuid.UUID) (*repository.RT, error) {
	rt, err := s.repo.GetRT(ctx, id)
	if err != nil {
		return nil, mapUnitErr(err, "")
	}
	return rt, nil
}

func (s *Service) UpdateRT(ctx context.Context, id uuid.UUID, in UnitInput) error {
	if err := s.repo.UpdateRT(ctx, id, in.Nomor, in.Nama, in.Alamat); err != nil {
		return mapUnitErr(err, "nomor RT sudah terdaftar di RW ini")
	}
	return nil
}

func (s *Service) DeleteRT(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRT(ctx, id); err != nil {
		return mapUnitErr(err, "")
	}
	return nil
}

func mapUnitErr(err error, conflictMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("unit not found")
	case errors.Is(err, repository.ErrNumberTaken):
		return apperr.Conflict(conflictMsg)
	case errors.Is(err, repository.ErrInUse):
		return apperr.Conflict("unit masih memiliki data terkait")
	default:
		return apperr.Wrap(apperr.KindInternal, "unit operation failed", err)
	}
}
