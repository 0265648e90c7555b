package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"warga_portal_backend/internal/documents/domain"
	"warga_portal_backend/internal/documents/repository"
	"warga_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeStore struct {
	surat map[uuid.UUID]*repository.Surat
	taken map[string]bool
	count int

	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		surat: make(map[uuid.UUID]*repository.Surat),
		taken: make(map[string]bool),
	}
}

func (f *fakeStore) add(status, rtNomor string) uuid.UUID {
	id := uuid.New()
	f.surat[id] = &repository.Surat{
		ID:      id,
		Status:  status,
		RTID:    uuid.New(),
		RTNomor: rtNomor,
	}
	return id
}

func (f *fakeStore) Create(_ context.Context, jenis string, keperluan *string, pendudukID, rtID uuid.UUID) (*repository.Surat, error) {
	id := uuid.New()
	f.surat[id] = &repository.Surat{ID: id, JenisSurat: jenis, Keperluan: keperluan, Status: "pending", PendudukID: pendudukID, RTID: rtID}
	return f.surat[id], nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*repository.Surat, error) {
	s, ok := f.surat[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) List(context.Context, repository.Filter) ([]repository.Surat, error) {
	return nil, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status string, _ *string, _ uuid.UUID, nomorSurat *string) error {
	f.updateCalls++
	s, ok := f.surat[id]
	if !ok {
		return repository.ErrNotFound
	}
	if nomorSurat != nil {
		if f.taken[*nomorSurat] {
			return repository.ErrNomorTaken
		}
		f.taken[*nomorSurat] = true
		s.NomorSurat = nomorSurat
	}
	s.Status = status
	return nil
}

func (f *fakeStore) CountCompletedInYear(context.Context, uuid.UUID, int) (int, error) {
	return f.count, nil
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := apperr.GetKind(err); got != kind {
		t.Fatalf("error kind = %v, want %v (error: %v)", got, kind, err)
	}
}

func TestUpdateStatusAssignsLetterNumber(t *testing.T) {
	store := newFakeStore()
	store.count = 3
	id := store.add("diproses", "03")
	svc := New(store)

	surat, err := svc.UpdateStatus(context.Background(), id, domain.StatusSelesai, nil, uuid.New())
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	want := fmt.Sprintf("004/SK/RT-03/%d", time.Now().Year())
	if surat.NomorSurat == nil || *surat.NomorSurat != want {
		t.Errorf("nomor surat = %v, want %q", surat.NomorSurat, want)
	}
}

func TestUpdateStatusRetriesTakenLetterNumber(t *testing.T) {
	store := newFakeStore()
	store.count = 3
	id := store.add("diproses", "03")

	// A concurrent completion already claimed number 004.
	year := time.Now().Year()
	store.taken[fmt.Sprintf("004/SK/RT-03/%d", year)] = true

	surat, err := New(store).UpdateStatus(context.Background(), id, domain.StatusSelesai, nil, uuid.New())
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	want := fmt.Sprintf("005/SK/RT-03/%d", year)
	if surat.NomorSurat == nil || *surat.NomorSurat != want {
		t.Errorf("nomor surat = %v, want %q", surat.NomorSurat, want)
	}
}

func TestUpdateStatusGivesUpWhenNumbersExhausted(t *testing.T) {
	store := newFakeStore()
	id := store.add("diproses", "03")

	year := time.Now().Year()
	for seq := 1; seq <= nomorAttempts; seq++ {
		store.taken[fmt.Sprintf("%03d/SK/RT-03/%d", seq, year)] = true
	}

	_, err := New(store).UpdateStatus(context.Background(), id, domain.StatusSelesai, nil, uuid.New())
	wantKind(t, err, apperr.KindInternal)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	store := newFakeStore()
	id := store.add("selesai", "03")

	_, err := New(store).UpdateStatus(context.Background(), id, domain.StatusDiproses, nil, uuid.New())
	wantKind(t, err, apperr.KindValidation)

	if store.updateCalls != 0 {
		t.Errorf("update calls = %d, want 0", store.updateCalls)
	}
}

func TestCreateRejectsUnknownJenis(t *testing.T) {
	_, err := New(newFakeStore()).Create(context.Background(), "sakti", nil, uuid.New(), uuid.New())
	wantKind(t, err, apperr.KindValidation)
}
