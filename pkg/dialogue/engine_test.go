package dialogue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askarpov/farebot/pkg/adapters/memory"
	"github.com/askarpov/farebot/pkg/domain"
	"github.com/askarpov/farebot/pkg/ports"
)

const testUser int64 = 42

// fakeResolver records lookups. Safe for concurrent use: the terminal fetch
// resolves both cities in parallel.
type fakeResolver struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
	calls []string
}

func (f *fakeResolver) Resolve(ctx context.Context, city string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, city)
	if f.err != nil {
		return "", f.err
	}
	code, ok := f.codes[strings.ToLower(city)]
	if !ok {
		return "", domain.ErrCityNotFound
	}
	return code, nil
}

func (f *fakeResolver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeFares struct {
	mu      sync.Mutex
	results []domain.ItineraryCandidate
	err     error
	queries []domain.FareQuery
}

func (f *fakeFares) Search(ctx context.Context, q domain.FareQuery) ([]domain.ItineraryCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
}

func newTestEngine(t *testing.T, resolver *fakeResolver, fares *fakeFares) (*Engine, ports.SessionStore) {
	t.Helper()
	store := memory.NewStore()
	e, err := New(store, resolver, fares, WithClock(fixedClock))
	require.NoError(t, err)
	return e, store
}

func defaultResolver() *fakeResolver {
	return &fakeResolver{codes: map[string]string{"moscow": "MOW", "paris": "PAR"}}
}

func sampleCandidates() []domain.ItineraryCandidate {
	return []domain.ItineraryCandidate{
		{
			Airline:      "SU",
			FlightNumber: "2468",
			DepartureAt:  "2099-01-01T10:20:00+03:00",
			ReturnAt:     "2099-01-10T18:40:00+01:00",
			DurationTo:   230,
			DurationBack: 225,
			Price:        14250,
			Link:         "/search/MOW0101PAR10011",
		},
	}
}

func TestEngine_HappyPath(t *testing.T) {
	resolver := defaultResolver()
	fares := &fakeFares{results: sampleCandidates()}
	e, store := newTestEngine(t, resolver, fares)
	ctx := context.Background()

	reply, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	assert.Equal(t, msgPromptStartDate, reply.Text)

	steps := []struct {
		input     string
		wantState domain.TripState
		wantReply string
	}{
		{"2099-01-01", domain.StateEndDate, msgPromptEndDate},
		{"2099-01-10", domain.StateOriginCity, msgPromptOrigin},
		{"Moscow", domain.StateDestinationCity, msgPromptDest},
	}
	for _, step := range steps {
		reply, err = e.Handle(ctx, testUser, domain.Text(step.input))
		require.NoError(t, err)
		assert.Equal(t, step.wantReply, reply.Text)

		s, err := store.Load(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, step.wantState, s.State)
	}

	reply, err = e.Handle(ctx, testUser, domain.Text("Paris"))
	require.NoError(t, err)
	assert.True(t, reply.Markdown)
	assert.Contains(t, reply.Text, "SU 2468")

	// One resolver call per city, one search, session disposed.
	assert.Equal(t, 2, resolver.callCount())
	require.Len(t, fares.queries, 1)
	q := fares.queries[0]
	assert.Equal(t, "MOW", q.Origin)
	assert.Equal(t, "PAR", q.Destination)
	assert.Equal(t, "2099-01-01", q.DepartDate.Format(time.DateOnly))
	assert.Equal(t, "2099-01-10", q.ReturnDate.Format(time.DateOnly))

	_, err = store.Load(ctx, testUser)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_InvalidStartDateHolds(t *testing.T) {
	e, store := newTestEngine(t, defaultResolver(), &fakeFares{})
	ctx := context.Background()

	_, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)

	// Repeated invalid input never advances the state or stores a date.
	for _, bad := range []string{"soon", "2020-01-01", "01-01-2099", "2099-13-40"} {
		reply, err := e.Handle(ctx, testUser, domain.Text(bad))
		require.NoError(t, err)
		assert.Equal(t, msgInvalidDate, reply.Text)

		s, err := store.Load(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, domain.StateStartDate, s.State)
		assert.True(t, s.StartDate.IsZero())
	}
}

func TestEngine_EndDateBeforeStartRejected(t *testing.T) {
	e, store := newTestEngine(t, defaultResolver(), &fakeFares{})
	ctx := context.Background()

	_, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	_, err = e.Handle(ctx, testUser, domain.Text("2099-01-10"))
	require.NoError(t, err)

	reply, err := e.Handle(ctx, testUser, domain.Text("2099-01-05"))
	require.NoError(t, err)
	assert.Equal(t, msgEndBeforeStart, reply.Text)

	s, err := store.Load(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StateEndDate, s.State)
	assert.True(t, s.EndDate.IsZero())

	// Same-day round trip is allowed: end must not be strictly earlier.
	reply, err = e.Handle(ctx, testUser, domain.Text("2099-01-10"))
	require.NoError(t, err)
	assert.Equal(t, msgPromptOrigin, reply.Text)
}

func TestEngine_MalformedEndDateRejected(t *testing.T) {
	e, _ := newTestEngine(t, defaultResolver(), &fakeFares{})
	ctx := context.Background()

	_, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	_, err = e.Handle(ctx, testUser, domain.Text("2099-01-10"))
	require.NoError(t, err)

	reply, err := e.Handle(ctx, testUser, domain.Text("whenever"))
	require.NoError(t, err)
	assert.Equal(t, msgInvalidDate, reply.Text)
}

func TestEngine_CancelFromEveryState(t *testing.T) {
	answers := []string{"2099-01-01", "2099-01-10", "Moscow"}

	// Walk zero, one, two, or three answers deep, then cancel.
	for depth := 0; depth <= len(answers); depth++ {
		e, store := newTestEngine(t, defaultResolver(), &fakeFares{})
		ctx := context.Background()

		_, err := e.Handle(ctx, testUser, domain.Begin())
		require.NoError(t, err)
		for _, a := range answers[:depth] {
			_, err = e.Handle(ctx, testUser, domain.Text(a))
			require.NoError(t, err)
		}

		reply, err := e.Handle(ctx, testUser, domain.Cancel())
		require.NoError(t, err)
		assert.Equal(t, msgCanceled, reply.Text, "depth %d", depth)

		_, err = store.Load(ctx, testUser)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "depth %d", depth)
	}
}

func TestEngine_CancelWithoutSession(t *testing.T) {
	e, _ := newTestEngine(t, defaultResolver(), &fakeFares{})

	reply, err := e.Handle(context.Background(), testUser, domain.Cancel())
	require.NoError(t, err)
	assert.Equal(t, msgNothingToDo, reply.Text)
}

func TestEngine_TextWithoutSessionIgnored(t *testing.T) {
	fares := &fakeFares{}
	e, _ := newTestEngine(t, defaultResolver(), fares)

	reply, err := e.Handle(context.Background(), testUser, domain.Text("2099-01-01"))
	require.NoError(t, err)
	assert.Empty(t, reply.Text)
	assert.Empty(t, fares.queries)
}

func TestEngine_BeginReplacesStaleSession(t *testing.T) {
	e, store := newTestEngine(t, defaultResolver(), &fakeFares{})
	ctx := context.Background()

	_, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	_, err = e.Handle(ctx, testUser, domain.Text("2099-01-01"))
	require.NoError(t, err)

	// A second begin discards progress; no merge with the stale session.
	reply, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	assert.Equal(t, msgPromptStartDate, reply.Text)

	s, err := store.Load(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StateStartDate, s.State)
	assert.True(t, s.StartDate.IsZero())
}

func TestEngine_RouteNotFoundSkipsSearch(t *testing.T) {
	resolver := &fakeResolver{codes: map[string]string{"moscow": "MOW"}}
	fares := &fakeFares{results: sampleCandidates()}
	e, store := newTestEngine(t, resolver, fares)

	reply := runInterview(t, e, "Moscow", "Atlantis")
	assert.Equal(t, msgRouteNotFound, reply.Text)

	assert.Empty(t, fares.queries, "fare search must not run on resolution failure")
	_, err := store.Load(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_RouteNotFoundMessage(t *testing.T) {
	resolver := &fakeResolver{codes: map[string]string{}}
	e, _ := newTestEngine(t, resolver, &fakeFares{})

	reply := runInterview(t, e, "Nowhere", "Atlantis")
	assert.Equal(t, msgRouteNotFound, reply.Text)
}

func TestEngine_ResolverOutageYieldsFailureMessage(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("directory timeout")}
	fares := &fakeFares{}
	e, _ := newTestEngine(t, resolver, fares)

	reply := runInterview(t, e, "Moscow", "Paris")
	assert.Equal(t, msgSearchFailed, reply.Text)
	assert.Empty(t, fares.queries)
}

func TestEngine_EmptyResultsRenderNoFlights(t *testing.T) {
	e, store := newTestEngine(t, defaultResolver(), &fakeFares{results: nil})

	reply := runInterview(t, e, "Moscow", "Paris")
	assert.Contains(t, reply.Text, "No flights found")

	_, err := store.Load(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_SearchErrorYieldsFailureMessage(t *testing.T) {
	fares := &fakeFares{err: errors.New("upstream 502")}
	e, store := newTestEngine(t, defaultResolver(), fares)

	reply := runInterview(t, e, "Moscow", "Paris")
	assert.Equal(t, msgSearchFailed, reply.Text)

	_, err := store.Load(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_CityValidatorRejectsInput(t *testing.T) {
	reject := func(ctx context.Context, city string) bool { return false }
	store := memory.NewStore()
	e, err := New(store, defaultResolver(), &fakeFares{},
		WithClock(fixedClock), WithCityValidator(reject))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	_, err = e.Handle(ctx, testUser, domain.Text("2099-01-01"))
	require.NoError(t, err)
	_, err = e.Handle(ctx, testUser, domain.Text("2099-01-10"))
	require.NoError(t, err)

	reply, err := e.Handle(ctx, testUser, domain.Text("Moscow"))
	require.NoError(t, err)
	assert.Equal(t, msgCityNotFound("Moscow"), reply.Text)

	s, err := store.Load(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StateOriginCity, s.State)
	assert.Empty(t, s.OriginCity)
}

// runInterview drives a full interview with fixed dates and the given cities,
// returning the terminal reply.
func runInterview(t *testing.T, e *Engine, origin, destination string) domain.Reply {
	t.Helper()
	ctx := context.Background()

	_, err := e.Handle(ctx, testUser, domain.Begin())
	require.NoError(t, err)
	for _, answer := range []string{"2099-01-01", "2099-01-10", origin} {
		_, err = e.Handle(ctx, testUser, domain.Text(answer))
		require.NoError(t, err)
	}
	reply, err := e.Handle(ctx, testUser, domain.Text(destination))
	require.NoError(t, err)
	return reply
}
