package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStore_OwnerScoped(t *testing.T) {
	s := NewStore(&fakeGen{}, nil)
	owner, other := uuid.New(), uuid.New()
	w := s.Create(owner)

	if got, err := s.Get(w.ID, owner); err != nil || got != w {
		t.Fatalf("Get(owner) = %v, %v", got, err)
	}
	if _, err := s.Get(w.ID, other); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("Get(other) err = %v", err)
	}
	if err := s.Delete(w.ID, other); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("Delete(other) err = %v", err)
	}
	if err := s.Delete(w.ID, owner); err != nil {
		t.Errorf("Delete(owner) err = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("len = %d", s.Len())
	}
}

func TestStore_Sweep(t *testing.T) {
	clock := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := NewStore(&fakeGen{}, nil)
	s.now = func() time.Time { return clock }

	client := uuid.New()
	old := s.Create(client)
	clock = clock.Add(90 * time.Minute)
	fresh := s.Create(client)
	clock = clock.Add(time.Hour)

	if n := s.Sweep(2 * time.Hour); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := s.Get(old.ID, client); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("stale workspace still present")
	}
	if _, err := s.Get(fresh.ID, client); err != nil {
		t.Errorf("fresh workspace evicted: %v", err)
	}
	if n := s.Sweep(0); n != 0 {
		t.Errorf("Sweep(0) = %d", n)
	}
}

func TestStore_SweepSkipsBusy(t *testing.T) {
	clock := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := NewStore(&fakeGen{}, nil)
	s.now = func() time.Time { return clock }

	w := s.Create(uuid.New())
	w.mu.Lock()
	w.generating = true
	w.mu.Unlock()

	clock = clock.Add(24 * time.Hour)
	if n := s.Sweep(time.Hour); n != 0 {
		t.Errorf("busy workspace swept")
	}
}

func TestStore_EvictRechecksCandidates(t *testing.T) {
	clock := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := NewStore(&fakeGen{}, nil)
	s.now = func() time.Time { return clock }

	client := uuid.New()
	started, touched, idle := s.Create(client), s.Create(client), s.Create(client)
	clock = clock.Add(24 * time.Hour)
	cutoff := clock.Add(-time.Hour)
	candidates := []*Workspace{started, touched, idle}
	for _, w := range candidates {
		if !w.expired(cutoff) {
			t.Fatalf("workspace %s not a candidate", w.ID)
		}
	}

	// state changes between collection and the write lock
	started.mu.Lock()
	started.generating = true
	started.mu.Unlock()
	touched.mu.Lock()
	touched.touched = clock
	touched.mu.Unlock()

	s.mu.Lock()
	n := s.evictLocked(candidates, cutoff)
	s.mu.Unlock()

	if n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	for _, w := range []*Workspace{started, touched} {
		if _, err := s.Get(w.ID, client); err != nil {
			t.Errorf("workspace %s evicted: %v", w.ID, err)
		}
	}
	if _, err := s.Get(idle.ID, client); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("idle workspace still present")
	}

	s.mu.Lock()
	n = s.evictLocked([]*Workspace{idle}, cutoff)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("already removed workspace counted: %d", n)
	}
}
