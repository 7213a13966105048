package arena

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingRepo "playarena/database/repository/booking"
	"playarena/models"
	"playarena/services/lock"
	"playarena/services/roster"
	scoreService "playarena/services/score"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock repositories and services.
type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, booking *models.GameBooking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*models.GameBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameBooking), args.Error(1)
}

func (m *MockBookingRepo) Replace(ctx context.Context, booking *models.GameBooking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepo) FindLiveBySlot(ctx context.Context, gameType models.GameType, date, startTime string) (*models.GameBooking, error) {
	args := m.Called(ctx, gameType, date, startTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameBooking), args.Error(1)
}

func (m *MockBookingRepo) FindByTypeAndDate(ctx context.Context, gameType models.GameType, date string) ([]models.GameBooking, error) {
	args := m.Called(ctx, gameType, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameBooking), args.Error(1)
}

func (m *MockBookingRepo) FindByPlayer(ctx context.Context, attuid string) ([]models.GameBooking, error) {
	args := m.Called(ctx, attuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameBooking), args.Error(1)
}

func (m *MockBookingRepo) FindArenaGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, error) {
	args := m.Called(ctx, date, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameBooking), args.Error(1)
}

func (m *MockBookingRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockRoster struct{ mock.Mock }

func (m *MockRoster) ValidateAll(ctx context.Context, attuids []string) error {
	return m.Called(ctx, attuids).Error(0)
}

func (m *MockRoster) Lookup(ctx context.Context, attuid string) (*models.AuthUser, error) {
	args := m.Called(ctx, attuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthUser), args.Error(1)
}

func (m *MockRoster) All(ctx context.Context) ([]models.AuthUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuthUser), args.Error(1)
}

type MockScores struct{ mock.Mock }

func (m *MockScores) RecordCheckinScore(ctx context.Context, booking *models.GameBooking, attuid string) error {
	return m.Called(ctx, booking, attuid).Error(0)
}

func (m *MockScores) SubmitFinalScores(ctx context.Context, caller, bookingID string, entries []scoreService.ScoreEntry) (*models.ScoreRecord, error) {
	args := m.Called(ctx, caller, bookingID, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoreRecord), args.Error(1)
}

func (m *MockScores) GetScores(ctx context.Context, bookingID string) (*models.ScoreRecord, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoreRecord), args.Error(1)
}

func (m *MockScores) AggregateByUser(ctx context.Context, gameType models.GameType) ([]models.UserScoreTotal, error) {
	args := m.Called(ctx, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserScoreTotal), args.Error(1)
}

// fakeAvailability records invalidations and serves a configurable
// open-game cache.
type fakeAvailability struct {
	mu          sync.Mutex
	invalidated []string
	cached      map[string][]models.GameBooking
	stored      map[string][]models.GameBooking
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{
		cached: make(map[string][]models.GameBooking),
		stored: make(map[string][]models.GameBooking),
	}
}

func listKey(date string, gameType models.GameType) string {
	return date + "|" + string(gameType)
}

func (f *fakeAvailability) GetAvailableSlots(context.Context, models.GameType, string) ([]models.Slot, error) {
	return nil, nil
}

func (f *fakeAvailability) Invalidate(_ context.Context, gameType models.GameType, date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, string(gameType)+":"+date)
}

func (f *fakeAvailability) CachedOpenGames(_ context.Context, date string, gameType models.GameType) ([]models.GameBooking, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	games, ok := f.cached[listKey(date, gameType)]
	return games, ok
}

func (f *fakeAvailability) StoreOpenGames(_ context.Context, date string, gameType models.GameType, games []models.GameBooking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[listKey(date, gameType)] = games
}

func (f *fakeAvailability) invalidations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}

// fakeNotifier records dispatched notifications.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) Notify(_ context.Context, attuid, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, attuid)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type testFixture struct {
	svc      *DefaultArenaService
	repo     *MockBookingRepo
	roster   *MockRoster
	scores   *MockScores
	avail    *fakeAvailability
	notifier *fakeNotifier
	leases   *lock.MemoryLeaseManager
}

func newFixture() *testFixture {
	f := &testFixture{
		repo:     new(MockBookingRepo),
		roster:   new(MockRoster),
		scores:   new(MockScores),
		avail:    newFakeAvailability(),
		notifier: &fakeNotifier{},
		leases:   lock.NewMemoryLeaseManager(time.Minute, time.Minute),
	}
	f.svc = &DefaultArenaService{
		Repo:         f.repo,
		Roster:       f.roster,
		Leases:       f.leases,
		Availability: f.avail,
		Scores:       f.scores,
		Notifier:     f.notifier,
		Logger:       zap.NewNop(),
		OpenHour:     9,
		CloseHour:    22,
	}
	return f
}

// futureSlot is tomorrow 10:00-10:30, always valid and in the future.
func futureSlot() models.Slot {
	return models.Slot{
		Date:      time.Now().AddDate(0, 0, 1).Format(models.DateLayout),
		StartTime: "10:00",
		EndTime:   "10:30",
	}
}

// inWindowSlot spans today end to end, so it has started and not ended.
func inWindowSlot() models.Slot {
	return models.Slot{
		Date:      time.Now().Format(models.DateLayout),
		StartTime: "00:00",
		EndTime:   "23:59",
	}
}

func pastSlot() models.Slot {
	return models.Slot{Date: "2020-01-01", StartTime: "10:00", EndTime: "11:00"}
}

func arenaBooking(slot models.Slot, players ...string) *models.GameBooking {
	b := &models.GameBooking{
		ID:          "b1",
		GameType:    models.GameChess,
		BookingType: models.BookingArena,
		Slot:        slot,
		Location:    "Arena 1",
	}
	for _, p := range players {
		b.Players = append(b.Players, models.Player{ATTUID: p})
	}
	return b
}

func TestCreateArenaGame(t *testing.T) {
	f := newFixture()
	slot := futureSlot()
	req := CreateBookingRequest{GameType: models.GameChess, Slot: slot, Location: "Arena 1"}

	f.roster.On("ValidateAll", mock.Anything, []string{"aa001"}).Return(nil)
	f.repo.On("FindLiveBySlot", mock.Anything, models.GameChess, slot.Date, slot.StartTime).
		Return(nil, bookingRepo.ErrNotFound)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	booking, err := f.svc.CreateArenaGame(context.Background(), "aa001", req)
	require.NoError(t, err)
	assert.Equal(t, models.BookingArena, booking.BookingType)
	assert.Equal(t, []models.Player{{ATTUID: "aa001"}}, booking.Players)
	assert.Contains(t, f.avail.invalidations(), "chess:"+slot.Date)

	require.Eventually(t, func() bool { return f.notifier.count() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestCreateArenaGame_RejectsInviteeList(t *testing.T) {
	f := newFixture()
	req := CreateBookingRequest{
		GameType: models.GameChess, Slot: futureSlot(), Location: "Arena 1",
		Colleagues: []string{"bb002"},
	}

	_, err := f.svc.CreateArenaGame(context.Background(), "aa001", req)
	assert.True(t, IsValidation(err))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePrivateGame(t *testing.T) {
	f := newFixture()
	slot := futureSlot()
	req := CreateBookingRequest{
		GameType: models.GameCarrom, Slot: slot, Location: "Arena 2",
		Colleagues: []string{"bb002", "cc003"},
	}

	f.roster.On("ValidateAll", mock.Anything, []string{"aa001", "bb002", "cc003"}).Return(nil)
	f.repo.On("FindLiveBySlot", mock.Anything, models.GameCarrom, slot.Date, slot.StartTime).
		Return(nil, bookingRepo.ErrNotFound)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	booking, err := f.svc.CreatePrivateGame(context.Background(), "aa001", req)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPrivate, booking.BookingType)
	assert.Len(t, booking.Players, 3)
	assert.Equal(t, "aa001", booking.Creator())
}

func TestCreatePrivateGame_PlayerBounds(t *testing.T) {
	tests := []struct {
		name       string
		colleagues []string
	}{
		{"no colleagues", nil},
		{"too many colleagues", []string{"b", "c", "d", "e"}},
		{"duplicate colleague", []string{"bb002", "bb002"}},
		{"creator listed as colleague", []string{"aa001"}},
		{"blank colleague", []string{" "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := CreateBookingRequest{
				GameType: models.GameChess, Slot: futureSlot(), Location: "Arena 1",
				Colleagues: tt.colleagues,
			}

			_, err := f.svc.CreatePrivateGame(context.Background(), "aa001", req)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_InputValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"unknown game type", CreateBookingRequest{GameType: "cricket", Slot: futureSlot(), Location: "Arena 1"}},
		{"missing location", CreateBookingRequest{GameType: models.GameChess, Slot: futureSlot()}},
		{"malformed slot", CreateBookingRequest{GameType: models.GameChess, Slot: models.Slot{Date: "soon", StartTime: "10:00", EndTime: "10:30"}, Location: "Arena 1"}},
		{"past slot", CreateBookingRequest{GameType: models.GameChess, Slot: pastSlot(), Location: "Arena 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.CreateArenaGame(context.Background(), "aa001", tt.req)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// A booking wider than one grid window would slip past every
// exclusivity layer, since the lease key, the live-slot re-check and
// the unique index all key on the start time alone. A live 10:00-11:00
// booking would not stop a 10:30-11:00 create.
func TestCreate_RejectsSlotSpanningMultipleWindows(t *testing.T) {
	f := newFixture()
	wide := futureSlot()
	wide.EndTime = "11:00"
	req := CreateBookingRequest{GameType: models.GameChess, Slot: wide, Location: "Arena 1"}

	_, err := f.svc.CreateArenaGame(context.Background(), "aa001", req)
	assert.True(t, IsValidation(err), "expected validation error, got %v", err)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "FindLiveBySlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_RejectsSlotOutsideArenaHours(t *testing.T) {
	early := futureSlot()
	early.StartTime, early.EndTime = "07:00", "07:30"
	late := futureSlot()
	late.StartTime, late.EndTime = "22:00", "22:30"

	for _, slot := range []models.Slot{early, late} {
		f := newFixture()
		req := CreateBookingRequest{GameType: models.GameChess, Slot: slot, Location: "Arena 1"}

		_, err := f.svc.CreateArenaGame(context.Background(), "aa001", req)
		assert.True(t, IsValidation(err), "expected validation error for %s, got %v", slot.StartTime, err)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestUpdateBooking_SlotValidatedLikeCreate(t *testing.T) {
	tests := []struct {
		name string
		slot models.Slot
	}{
		{"multi-window slot", models.Slot{Date: futureSlot().Date, StartTime: "10:00", EndTime: "11:00"}},
		{"outside arena hours", models.Slot{Date: futureSlot().Date, StartTime: "07:00", EndTime: "07:30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", mock.Anything, "b1").Return(arenaBooking(futureSlot(), "aa001"), nil)

			_, err := f.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{Slot: &tt.slot})
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			f.repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_UnknownColleagueLeavesNothingPersisted(t *testing.T) {
	f := newFixture()
	req := CreateBookingRequest{
		GameType: models.GameChess, Slot: futureSlot(), Location: "Arena 1",
		Colleagues: []string{"zz999"},
	}
	f.roster.On("ValidateAll", mock.Anything, mock.Anything).Return(roster.ErrUnknownIdentity)

	_, err := f.svc.CreatePrivateGame(context.Background(), "aa001", req)
	assert.ErrorIs(t, err, roster.ErrUnknownIdentity)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.avail.invalidations())
}

func TestCreate_SlotTakenOnAuthoritativeRecheck(t *testing.T) {
	f := newFixture()
	slot := futureSlot()
	req := CreateBookingRequest{GameType: models.GameChess, Slot: slot, Location: "Arena 1"}

	f.roster.On("ValidateAll", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindLiveBySlot", mock.Anything, models.GameChess, slot.Date, slot.StartTime).
		Return(arenaBooking(slot, "bb002"), nil)

	_, err := f.svc.CreateArenaGame(context.Background(), "aa001", req)
	assert.ErrorIs(t, err, ErrSlotTaken)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ConcurrentSameSlotSingleWinner(t *testing.T) {
	f := newFixture()
	slot := futureSlot()
	req := CreateBookingRequest{GameType: models.GameChess, Slot: slot, Location: "Arena 1"}

	f.roster.On("ValidateAll", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindLiveBySlot", mock.Anything, models.GameChess, slot.Date, slot.StartTime).
		Return(nil, bookingRepo.ErrNotFound)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	const callers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, held := 0, 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateArenaGame(context.Background(), "aa001", req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case err == ErrSlotHeld:
				held++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, held)
	f.repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestJoinArenaGame(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001")

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.roster.On("ValidateAll", mock.Anything, []string{"bb002"}).Return(nil)
	f.repo.On("Replace", mock.Anything, booking).Return(nil)

	got, err := f.svc.JoinArenaGame(context.Background(), "bb002", "b1")
	require.NoError(t, err)
	assert.Len(t, got.Players, 2)
	assert.True(t, got.HasPlayer("bb002"))
	assert.Contains(t, f.avail.invalidations(), "chess:"+booking.Slot.Date)
}

func TestJoinArenaGame_Rules(t *testing.T) {
	private := arenaBooking(futureSlot(), "aa001")
	private.BookingType = models.BookingPrivate

	full := arenaBooking(futureSlot(), "aa001", "bb002", "cc003", "dd004")
	started := arenaBooking(inWindowSlot(), "aa001")

	tests := []struct {
		name    string
		booking *models.GameBooking
		caller  string
		want    error
	}{
		{"private game", private, "bb002", ErrPrivateGame},
		{"full game", full, "ee005", ErrGameFull},
		{"already started", started, "bb002", ErrGameStarted},
		{"already joined", arenaBooking(futureSlot(), "aa001", "bb002"), "bb002", ErrAlreadyJoined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", mock.Anything, "b1").Return(tt.booking, nil)

			_, err := f.svc.JoinArenaGame(context.Background(), tt.caller, "b1")
			assert.ErrorIs(t, err, tt.want)
			f.repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
		})
	}
}

func TestJoinArenaGame_CapacityHoldsAcrossJoins(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001")

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.roster.On("ValidateAll", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Replace", mock.Anything, booking).Return(nil)

	for _, caller := range []string{"bb002", "cc003", "dd004"} {
		_, err := f.svc.JoinArenaGame(context.Background(), caller, "b1")
		require.NoError(t, err)
	}

	_, err := f.svc.JoinArenaGame(context.Background(), "ee005", "b1")
	assert.ErrorIs(t, err, ErrGameFull)
	assert.Len(t, booking.Players, models.MaxPlayers)
}

func TestJoinArenaGame_BusyWhileLeaseHeld(t *testing.T) {
	f := newFixture()

	ok, err := f.leases.AcquireBookingLease(context.Background(), "b1")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.JoinArenaGame(context.Background(), "bb002", "b1")
	assert.ErrorIs(t, err, ErrBookingBusy)
}

func TestJoinArenaGame_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, "nope").Return(nil, bookingRepo.ErrNotFound)

	_, err := f.svc.JoinArenaGame(context.Background(), "bb002", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckIn(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(inWindowSlot(), "aa001", "bb002")

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.repo.On("Replace", mock.Anything, booking).Return(nil)
	f.scores.On("RecordCheckinScore", mock.Anything, booking, "bb002").Return(nil)

	got, err := f.svc.CheckIn(context.Background(), "bb002", "b1")
	require.NoError(t, err)
	assert.True(t, got.Players[1].CheckedIn)
	f.scores.AssertExpectations(t)
}

func TestCheckIn_Rules(t *testing.T) {
	notStarted := arenaBooking(futureSlot(), "aa001")
	ended := arenaBooking(pastSlot(), "aa001")
	checked := arenaBooking(inWindowSlot(), "aa001")
	checked.Players[0].CheckedIn = true

	tests := []struct {
		name    string
		booking *models.GameBooking
		caller  string
		want    error
	}{
		{"not started", notStarted, "aa001", ErrNotStarted},
		{"already ended", ended, "aa001", ErrGameEnded},
		{"not a participant", arenaBooking(inWindowSlot(), "aa001"), "zz999", ErrNotParticipant},
		{"already checked in", checked, "aa001", ErrAlreadyCheckedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", mock.Anything, "b1").Return(tt.booking, nil)

			_, err := f.svc.CheckIn(context.Background(), tt.caller, "b1")
			assert.ErrorIs(t, err, tt.want)
			f.scores.AssertNotCalled(t, "RecordCheckinScore", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckIn_LedgerFailureDoesNotFailCheckin(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(inWindowSlot(), "aa001")

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.repo.On("Replace", mock.Anything, booking).Return(nil)
	f.scores.On("RecordCheckinScore", mock.Anything, booking, "aa001").
		Return(assert.AnError)

	got, err := f.svc.CheckIn(context.Background(), "aa001", "b1")
	require.NoError(t, err)
	assert.True(t, got.Players[0].CheckedIn)
}

func TestUpdateBooking_LocationOnly(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001")

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.repo.On("Replace", mock.Anything, mock.Anything).Return(nil)

	loc := "Arena 3"
	got, err := f.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Arena 3", got.Location)
	// No slot change means no new reservation round.
	f.repo.AssertNotCalled(t, "FindLiveBySlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBooking_Rules(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001", "bb002")
	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)

	loc := "Arena 3"
	_, err := f.svc.UpdateBooking(context.Background(), "bb002", "b1", UpdateBookingRequest{Location: &loc})
	assert.ErrorIs(t, err, ErrNotCreator)

	started := newFixture()
	started.repo.On("GetByID", mock.Anything, "b1").Return(arenaBooking(inWindowSlot(), "aa001"), nil)
	_, err = started.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{Location: &loc})
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestUpdateBooking_SlotMoveOntoTakenSlot(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001")
	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)

	newSlot := futureSlot()
	newSlot.StartTime, newSlot.EndTime = "11:00", "11:30"

	other := arenaBooking(newSlot, "bb002")
	other.ID = "b2"
	f.repo.On("FindLiveBySlot", mock.Anything, models.GameChess, newSlot.Date, newSlot.StartTime).
		Return(other, nil)

	_, err := f.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{Slot: &newSlot})
	assert.ErrorIs(t, err, ErrSlotTaken)
	f.repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestUpdateBooking_SlotMoveInvalidatesBothKeys(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001")
	oldDate := booking.Slot.Date
	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)

	newSlot := futureSlot()
	newSlot.StartTime, newSlot.EndTime = "14:00", "14:30"
	f.repo.On("FindLiveBySlot", mock.Anything, models.GameChess, newSlot.Date, newSlot.StartTime).
		Return(nil, bookingRepo.ErrNotFound)
	f.repo.On("Replace", mock.Anything, mock.Anything).Return(nil)

	got, err := f.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{Slot: &newSlot})
	require.NoError(t, err)
	assert.Equal(t, newSlot, got.Slot)

	inv := f.avail.invalidations()
	assert.Contains(t, inv, "chess:"+oldDate)
	assert.Contains(t, inv, "chess:"+newSlot.Date)
}

func TestUpdateBooking_ColleaguesPreserveCheckinFlags(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001", "bb002")
	booking.BookingType = models.BookingPrivate
	booking.Players[1].CheckedIn = true

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.roster.On("ValidateAll", mock.Anything, []string{"bb002", "cc003"}).Return(nil)
	f.repo.On("Replace", mock.Anything, mock.Anything).Return(nil)

	got, err := f.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{
		Colleagues: []string{"bb002", "cc003"},
	})
	require.NoError(t, err)
	require.Len(t, got.Players, 3)
	assert.True(t, got.Players[1].CheckedIn)  // retained player keeps flag
	assert.False(t, got.Players[2].CheckedIn) // new player starts unchecked
}

func TestUpdateBooking_ColleaguesRejectedForArenaGame(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, "b1").Return(arenaBooking(futureSlot(), "aa001"), nil)

	_, err := f.svc.UpdateBooking(context.Background(), "aa001", "b1", UpdateBookingRequest{
		Colleagues: []string{"bb002"},
	})
	assert.True(t, IsValidation(err))
}

func TestCancelBooking(t *testing.T) {
	f := newFixture()
	booking := arenaBooking(futureSlot(), "aa001", "bb002")

	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	f.repo.On("Delete", mock.Anything, "b1").Return(nil)

	err := f.svc.CancelBooking(context.Background(), "aa001", "b1")
	require.NoError(t, err)
	assert.Contains(t, f.avail.invalidations(), "chess:"+booking.Slot.Date)

	// Every prior participant hears about the cancellation.
	require.Eventually(t, func() bool { return f.notifier.count() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestCancelBooking_Rules(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, "b1").Return(arenaBooking(futureSlot(), "aa001"), nil)

	err := f.svc.CancelBooking(context.Background(), "bb002", "b1")
	assert.ErrorIs(t, err, ErrNotCreator)

	started := newFixture()
	started.repo.On("GetByID", mock.Anything, "b1").Return(arenaBooking(inWindowSlot(), "aa001"), nil)
	err = started.svc.CancelBooking(context.Background(), "aa001", "b1")
	assert.ErrorIs(t, err, ErrGameStarted)
	started.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMyBookings(t *testing.T) {
	f := newFixture()
	want := []models.GameBooking{*arenaBooking(futureSlot(), "aa001")}
	f.repo.On("FindByPlayer", mock.Anything, "aa001").Return(want, nil)

	got, err := f.svc.MyBookings(context.Background(), "aa001")
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenArenaGames_FiltersStartedAndCaches(t *testing.T) {
	f := newFixture()
	open := *arenaBooking(futureSlot(), "aa001")
	running := *arenaBooking(inWindowSlot(), "bb002")
	running.ID = "b2"

	f.repo.On("FindArenaGames", mock.Anything, "", models.GameType("")).
		Return([]models.GameBooking{open, running}, nil)

	got, err := f.svc.OpenArenaGames(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, open.ID, got[0].ID)
	assert.Equal(t, got, f.avail.stored[listKey("", "")])
}

func TestOpenArenaGames_ServesFromCache(t *testing.T) {
	f := newFixture()
	cached := []models.GameBooking{*arenaBooking(futureSlot(), "aa001")}
	f.avail.cached[listKey("", models.GameChess)] = cached

	got, err := f.svc.OpenArenaGames(context.Background(), "", models.GameChess)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	f.repo.AssertNotCalled(t, "FindArenaGames", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenArenaGames_FilterValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.OpenArenaGames(context.Background(), "not-a-date", "")
	assert.True(t, IsValidation(err))

	_, err = f.svc.OpenArenaGames(context.Background(), "", models.GameType("cricket"))
	assert.True(t, IsValidation(err))
}
