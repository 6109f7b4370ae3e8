package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askarpov/farebot/pkg/adapters/memory"
	"github.com/askarpov/farebot/pkg/dialogue"
	"github.com/askarpov/farebot/pkg/domain"
)

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, city string) (string, error) {
	return "", domain.ErrCityNotFound
}

type stubFares struct{}

func (stubFares) Search(ctx context.Context, q domain.FareQuery) ([]domain.ItineraryCandidate, error) {
	return nil, nil
}

func TestConsole_InterviewAndCancel(t *testing.T) {
	engine, err := dialogue.New(memory.NewStore(), stubResolver{}, stubFares{},
		dialogue.WithClock(func() time.Time {
			return time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
		}))
	require.NoError(t, err)

	in := strings.NewReader("/plan_trip\n2099-01-01\n/cancel\nexit\n")
	out := &bytes.Buffer{}

	c := New(engine, WithIO(in, out))
	require.NoError(t, c.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "START date")
	assert.Contains(t, output, "END date")
	assert.Contains(t, output, "canceled")
	assert.Contains(t, output, "Bye!")
}

func TestConsole_IgnoresBlankLinesAndEOF(t *testing.T) {
	engine, err := dialogue.New(memory.NewStore(), stubResolver{}, stubFares{})
	require.NoError(t, err)

	in := strings.NewReader("\n\n")
	out := &bytes.Buffer{}

	c := New(engine, WithIO(in, out))
	assert.NoError(t, c.Run(context.Background()))
}
