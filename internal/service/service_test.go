package service

import (
	"context"
	"testing"
	"time"

	"randevu/internal/catalog"
	"randevu/internal/models"
	"randevu/internal/schedule"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) QueryBusy(ctx context.Context, start, end time.Time) ([]models.BusyPeriod, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BusyPeriod), args.Error(1)
}

func (m *mockGateway) CreateEvent(ctx context.Context, event models.CalendarEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

type stubAuthorizer struct {
	connected bool
}

func (s *stubAuthorizer) AuthURL(state string) string             { return "https://example.com/auth" }
func (s *stubAuthorizer) Exchange(ctx context.Context, _ string) error { return nil }
func (s *stubAuthorizer) Connected(ctx context.Context) bool      { return s.connected }

// Fixed test time: Tuesday 2025-06-10, 12:00 at UTC+3.
var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

const (
	testToday  = "2025-06-10"
	futureTue  = "2025-06-17"
	futureSun  = "2025-06-15"
	pastMonday = "2025-06-09"
)

var testWindow = schedule.Window{Open: 600, Close: 1260, Step: 15}

func testClock(t *testing.T) *schedule.Clock {
	t.Helper()
	clock := schedule.NewClock("Europe/Istanbul", 3)
	clock.NowFunc = func() time.Time { return testNow }
	return clock
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]models.Service{
		{Key: "sac-kesimi", Title: "Saç Kesimi", DurationMin: 30, PriceFromTRY: 600},
		{Key: "sakal-kesimi", Title: "Sakal Kesimi", DurationMin: 15, PriceFromTRY: 300},
	})
	require.NoError(t, err)
	return c
}

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
