package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tollsim/internal/modules/payment"
	"tollsim/internal/modules/toll"
	"tollsim/internal/types"
)

// cycleSource returns 0, 1, 2, ... modulo n so routes are predictable.
type cycleSource struct{ next int }

func (c *cycleSource) IntN(n int) int {
	v := c.next % n
	c.next++
	return v
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches []Batch
	err     error
}

func (n *recordingNotifier) Notify(_ context.Context, b Batch) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, b)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.batches)
}

type memoryStore struct {
	booths []toll.Booth
	err    error
}

func (m *memoryStore) List(context.Context) ([]toll.Booth, error) { return m.booths, m.err }

func (m *memoryStore) Upsert(_ context.Context, b toll.Booth) error {
	if m.err != nil {
		return m.err
	}
	m.booths = append(m.booths, b)
	return nil
}

func newTestService(t *testing.T, gw payment.Gateway, opts Options, notifiers ...Notifier) *Service {
	t.Helper()
	booths, err := toll.NewRegistry(toll.DefaultBooths()...)
	require.NoError(t, err)
	svc, err := NewService(Deps{
		Evaluator: toll.NewEvaluator(5, fixedQuote(10), gw),
		Booths:    booths,
		Rand:      &cycleSource{},
		Notifiers: notifiers,
	}, opts)
	require.NoError(t, err)
	return svc
}

func TestNewService_Validation(t *testing.T) {
	booths, err := toll.NewRegistry(toll.DefaultBooths()...)
	require.NoError(t, err)
	empty, err := toll.NewRegistry()
	require.NoError(t, err)

	_, err = NewService(Deps{Booths: booths, Rand: &cycleSource{}}, Options{Vehicles: 0, NumPoints: 10})
	assert.ErrorIs(t, err, ErrInvalidVehicleCount)

	_, err = NewService(Deps{Booths: booths, Rand: &cycleSource{}}, Options{Vehicles: -2, NumPoints: 10})
	assert.ErrorIs(t, err, ErrInvalidVehicleCount)

	_, err = NewService(Deps{Booths: empty, Rand: &cycleSource{}}, Options{Vehicles: 3, NumPoints: 10})
	assert.ErrorIs(t, err, ErrNoBooths)

	_, err = NewService(Deps{Booths: booths, Rand: &cycleSource{}}, Options{Vehicles: 3, NumPoints: 0})
	assert.Error(t, err)
}

func TestService_InitialRoutes(t *testing.T) {
	svc := newTestService(t, constGateway(payment.ResultApproved), Options{Vehicles: 3, NumPoints: 10})
	snap := svc.Snapshot(context.Background())

	require.Len(t, snap.Vehicles, 3)
	booths := toll.DefaultBooths()
	// cycleSource picks (0,1), (2,0), (1,2).
	wantEnds := [][2]int{{0, 1}, {2, 0}, {1, 2}}
	for i, v := range snap.Vehicles {
		assert.Equal(t, i+1, v.ID)
		assert.Equal(t, 11, v.PathLen)
		assert.Equal(t, 0, v.Index)
		assert.Equal(t, booths[wantEnds[i][0]].Location, v.Path[0])
		assert.Equal(t, booths[wantEnds[i][1]].Location, v.Path[10])
		assert.NotEmpty(t, v.Route)
		require.NotNil(t, v.Position)
		assert.Equal(t, v.Path[0], *v.Position)
	}
	assert.False(t, snap.Tracking)
	assert.Len(t, snap.Booths, 3)
}

func TestService_TickRequiresStart(t *testing.T) {
	n := &recordingNotifier{}
	svc := newTestService(t, constGateway(payment.ResultApproved), Options{Vehicles: 2, NumPoints: 4}, n)
	ctx := context.Background()

	b := svc.Tick(ctx)
	assert.Empty(t, b.Results)
	assert.Equal(t, 0, n.count())

	require.NoError(t, svc.Start(ctx))
	b = svc.Tick(ctx)
	require.Len(t, b.Results, 2)
	assert.Equal(t, 1, b.Tick)
	assert.True(t, b.Tracking)
	assert.NotEmpty(t, b.Log)
	assert.Equal(t, 1, n.count())

	require.NoError(t, svc.Stop(ctx))
	assert.False(t, svc.Tracking())
	b = svc.Tick(ctx)
	assert.Empty(t, b.Results)
	assert.Equal(t, 1, n.count())
}

func TestService_NotifierErrorDoesNotAffectState(t *testing.T) {
	n := &recordingNotifier{err: errors.New("boom")}
	svc := newTestService(t, constGateway(payment.ResultApproved), Options{Vehicles: 1, NumPoints: 4}, n)
	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))

	svc.Tick(ctx)
	svc.Tick(ctx)

	assert.Equal(t, 2, n.count())
	assert.Equal(t, 2, svc.Snapshot(ctx).Vehicles[0].Index)
}

func TestService_DeniedStopsTracking(t *testing.T) {
	svc := newTestService(t, constGateway(payment.ResultDenied), Options{Vehicles: 3, NumPoints: 10})
	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))

	// Every route starts on a booth, so the first vehicle is charged at once.
	b := svc.Tick(ctx)

	require.Len(t, b.Results, 1)
	assert.True(t, b.Halted())
	assert.False(t, b.Tracking)
	assert.False(t, svc.Tracking())
	assert.Equal(t, []string{"Payment denied for Vehicle 1. Stopping tracking."}, b.Log)
	for _, v := range svc.Snapshot(ctx).Vehicles {
		assert.Equal(t, 0, v.Index)
		assert.Equal(t, types.Money(0), v.TotalToll)
	}
}

func TestService_Reset(t *testing.T) {
	svc := newTestService(t, constGateway(payment.ResultApproved), Options{Vehicles: 2, NumPoints: 3})
	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))
	svc.Tick(ctx)
	svc.Tick(ctx)
	before := svc.Snapshot(ctx)
	require.Equal(t, 2, before.Vehicles[0].Index)
	require.Greater(t, before.Vehicles[0].TotalToll, types.Money(0))

	require.NoError(t, svc.Reset(ctx))
	after := svc.Snapshot(ctx)

	assert.False(t, after.Tracking)
	assert.Equal(t, 0, after.Ticks)
	assert.NotEqual(t, before.RunID, after.RunID)
	for _, v := range after.Vehicles {
		assert.Equal(t, 0, v.Index)
		assert.Equal(t, types.Money(0), v.TotalToll)
		assert.Equal(t, 4, v.PathLen)
	}
}

func TestService_AddBooth(t *testing.T) {
	store := &memoryStore{}
	booths, err := toll.NewRegistry(toll.DefaultBooths()...)
	require.NoError(t, err)
	svc, err := NewService(Deps{
		Evaluator: toll.NewEvaluator(5, fixedQuote(10), constGateway(payment.ResultApproved)),
		Booths:    booths,
		Rand:      &cycleSource{},
		Store:     store,
	}, Options{Vehicles: 1, NumPoints: 2})
	require.NoError(t, err)
	ctx := context.Background()

	b, err := svc.AddBooth(ctx, "Booth4", "12.9716", "77.5946")
	require.NoError(t, err)
	assert.Equal(t, toll.Booth{Name: "Booth4", Location: types.Point{Lat: 12.9716, Lng: 77.5946}}, b)
	assert.Len(t, svc.Booths(ctx), 4)
	assert.Equal(t, []toll.Booth{b}, store.booths)

	for _, in := range [][3]string{{"", "1", "2"}, {"X", "abc", "2"}, {"X", "1", "east"}} {
		_, err := svc.AddBooth(ctx, in[0], in[1], in[2])
		assert.ErrorIs(t, err, toll.ErrInvalidBooth)
	}
	assert.Len(t, svc.Booths(ctx), 4, "rejected input must leave the registry unchanged")

	store.err = errors.New("db down")
	_, err = svc.AddBooth(ctx, "Booth5", "1", "2")
	assert.Error(t, err)
	assert.Len(t, svc.Booths(ctx), 4, "failed persistence must leave the registry unchanged")
}

func TestService_LoadBooths(t *testing.T) {
	store := &memoryStore{booths: []toll.Booth{
		{Name: "Stored", Location: types.Point{Lat: 1, Lng: 1}},
		{Name: "", Location: types.Point{}},
	}}
	booths, err := toll.NewRegistry(toll.DefaultBooths()...)
	require.NoError(t, err)
	svc, err := NewService(Deps{Booths: booths, Rand: &cycleSource{}, Store: store}, Options{Vehicles: 1, NumPoints: 2})
	require.NoError(t, err)

	require.NoError(t, svc.LoadBooths(context.Background()))
	got := svc.Booths(context.Background())
	require.Len(t, got, 4)
	assert.Equal(t, "Stored", got[3].Name)
}

func TestService_SchedulerRunsUntilStopped(t *testing.T) {
	n := &recordingNotifier{}
	svc := newTestService(t, constGateway(payment.ResultApproved), Options{Vehicles: 2, NumPoints: 2, Interval: 5 * time.Millisecond}, n)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.RunScheduler(ctx)
		close(done)
	}()

	require.NoError(t, svc.Start(ctx))
	require.Eventually(t, func() bool {
		snap := svc.Snapshot(ctx)
		return snap.Vehicles[0].Arrived && snap.Vehicles[1].Arrived
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, svc.Stop(ctx))
	time.Sleep(20 * time.Millisecond)
	ticks := svc.Snapshot(ctx).Ticks
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, ticks, svc.Snapshot(ctx).Ticks, "no ticks after stop")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not exit after cancel")
	}
}

func TestService_SchedulerStopsOnDenial(t *testing.T) {
	svc := newTestService(t, constGateway(payment.ResultDenied), Options{Vehicles: 1, NumPoints: 2, Interval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.RunScheduler(ctx)

	require.NoError(t, svc.Start(ctx))
	require.Eventually(t, func() bool { return !svc.Tracking() }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, svc.Snapshot(ctx).Ticks)
}
