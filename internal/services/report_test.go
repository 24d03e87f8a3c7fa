package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rescuelink/rescuelink-backend/internal/model"
	"github.com/rescuelink/rescuelink-backend/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	mu          sync.Mutex
	emergency   *model.Emergency
	profile     *model.Profile
	profileErr  error
	writeErr    error
	writeDenied bool
	winnerText  string

	getCalls     int32
	profileCalls int32
	writeCalls   int32
}

func (f *fakeStore) Emergencies() store.Emergencies { return &fakeEmergencies{f} }
func (f *fakeStore) Profiles() store.Profiles       { return &fakeProfiles{f} }
func (f *fakeStore) Ping(ctx context.Context) error { return nil }

type fakeEmergencies struct{ p *fakeStore }

func (e *fakeEmergencies) GetByID(ctx context.Context, id int64) (*model.Emergency, error) {
	atomic.AddInt32(&e.p.getCalls, 1)
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	if e.p.emergency == nil || e.p.emergency.ID != id {
		return nil, model.ErrNotFound
	}
	cp := *e.p.emergency
	return &cp, nil
}

func (e *fakeEmergencies) SetReportIfEmpty(ctx context.Context, id int64, text string) (bool, error) {
	atomic.AddInt32(&e.p.writeCalls, 1)
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	if e.p.writeErr != nil {
		return false, e.p.writeErr
	}
	if e.p.writeDenied {
		// Simulate a concurrent writer from another instance winning the slot.
		if e.p.winnerText != "" {
			e.p.emergency.ReportText = &e.p.winnerText
		}
		return false, nil
	}
	if e.p.emergency.HasReport() {
		return false, nil
	}
	e.p.emergency.ReportText = &text
	return true, nil
}

type fakeProfiles struct{ p *fakeStore }

func (pr *fakeProfiles) GetByID(ctx context.Context, userID string) (*model.Profile, error) {
	atomic.AddInt32(&pr.p.profileCalls, 1)
	if pr.p.profileErr != nil {
		return nil, pr.p.profileErr
	}
	return pr.p.profile, nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	delay   time.Duration
	calls   int32
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func openEmergency() *model.Emergency {
	return &model.Emergency{
		ID:        42,
		UserID:    "u1",
		Type:      "fire",
		Status:    "open",
		CreatedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

// --- Tests ---

func TestGenerate_NotFound(t *testing.T) {
	st := &fakeStore{}
	svc := NewReportService(st, &fakeGenerator{text: "x"})

	_, err := svc.Generate(context.Background(), "u1", 42)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerate_Forbidden(t *testing.T) {
	st := &fakeStore{emergency: openEmergency()}
	gen := &fakeGenerator{text: "x"}
	svc := NewReportService(st, gen)

	_, err := svc.Generate(context.Background(), "u2", 42)
	if !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("provider must not be called on ownership mismatch")
	}
	if st.writeCalls != 0 {
		t.Fatalf("no write expected on ownership mismatch")
	}
}

func TestGenerate_CachedShortCircuit(t *testing.T) {
	em := openEmergency()
	cached := "previously generated report"
	em.ReportText = &cached
	st := &fakeStore{emergency: em}
	gen := &fakeGenerator{text: "fresh"}
	svc := NewReportService(st, gen)

	for i := 0; i < 3; i++ {
		res, err := svc.Generate(context.Background(), "u1", 42)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !res.Cached || res.Text != cached {
			t.Fatalf("expected cached result, got %+v", res)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("provider must never be invoked for a cached report")
	}
	if st.profileCalls != 0 {
		t.Fatalf("no profile fetch expected for a cached report")
	}
}

func TestGenerate_FreshGeneration(t *testing.T) {
	st := &fakeStore{emergency: openEmergency()}
	gen := &fakeGenerator{text: "Report body"}
	svc := NewReportService(st, gen)

	res, err := svc.Generate(context.Background(), "u1", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Cached || res.Text != "Report body" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if st.emergency.ReportText == nil || *st.emergency.ReportText != "Report body" {
		t.Fatalf("report not persisted")
	}
}

func TestGenerate_MissingProfileStillGenerates(t *testing.T) {
	st := &fakeStore{emergency: openEmergency(), profile: nil}
	gen := &fakeGenerator{text: "Report body"}
	svc := NewReportService(st, gen)

	if _, err := svc.Generate(context.Background(), "u1", 42); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "- Name: Unknown") {
		t.Fatalf("expected profile placeholders in prompt:\n%s", gen.prompts[0])
	}
}

func TestGenerate_ProfileFetchErrorDegrades(t *testing.T) {
	st := &fakeStore{emergency: openEmergency(), profileErr: errors.New("profiles table unavailable")}
	gen := &fakeGenerator{text: "Report body"}
	svc := NewReportService(st, gen)

	res, err := svc.Generate(context.Background(), "u1", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Text != "Report body" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	provErr := errors.New("provider exploded")
	st := &fakeStore{emergency: openEmergency()}
	svc := NewReportService(st, &fakeGenerator{err: provErr})

	_, err := svc.Generate(context.Background(), "u1", 42)
	if !errors.Is(err, provErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if st.writeCalls != 0 {
		t.Fatalf("no write expected when generation fails")
	}
}

func TestGenerate_PersistFailureDiscardsText(t *testing.T) {
	st := &fakeStore{emergency: openEmergency(), writeErr: errors.New("disk full")}
	svc := NewReportService(st, &fakeGenerator{text: "Report body"})

	_, err := svc.Generate(context.Background(), "u1", 42)
	if !errors.Is(err, model.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestGenerate_LostWriteRaceReturnsWinner(t *testing.T) {
	st := &fakeStore{emergency: openEmergency(), writeDenied: true, winnerText: "winner text"}
	svc := NewReportService(st, &fakeGenerator{text: "loser text"})

	res, err := svc.Generate(context.Background(), "u1", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !res.Cached || res.Text != "winner text" {
		t.Fatalf("expected winner's cached text, got %+v", res)
	}
}

func TestGenerate_ConcurrentCallsCollapse(t *testing.T) {
	st := &fakeStore{emergency: openEmergency()}
	gen := &fakeGenerator{text: "Report body", delay: 50 * time.Millisecond}
	svc := NewReportService(st, gen)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*model.ReportResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Generate(context.Background(), "u1", 42)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("call %d failed: %v", i, errs[i])
		}
		if results[i].Text != "Report body" {
			t.Fatalf("call %d got unexpected text %q", i, results[i].Text)
		}
	}
	if got := atomic.LoadInt32(&gen.calls); got != 1 {
		t.Fatalf("expected a single provider call, got %d", got)
	}
	if got := atomic.LoadInt32(&st.writeCalls); got != 1 {
		t.Fatalf("expected a single write, got %d", got)
	}
}
