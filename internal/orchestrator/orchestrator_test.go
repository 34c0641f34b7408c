package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls []string
	block chan struct{} // если задан, вызов ждет закрытия канала или отмены контекста
	err   error
}

func (f *fakeGateway) Analyze(ctx context.Context, h string) (*models.AnalysisResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, h)
	block := f.block
	err := f.err
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &models.AnalysisResult{Handle: h, Followers: 42000}, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func authenticatedGate() *session.Gate {
	gate := session.NewGate()
	gate.Set(models.Session{ID: "uid-1", Name: "Nina", OnboardingComplete: true})
	return gate
}

func waitForState(t *testing.T, o *Orchestrator, want State) Snapshot {
	t.Helper()
	var snap Snapshot
	require.Eventually(t, func() bool {
		snap = o.Snapshot()
		return snap.State == want
	}, time.Second, 5*time.Millisecond)
	return snap
}

func TestSubmit_InvalidInput(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, session.NewGate(), newNoopLogger())

	snap := o.Submit("   ")

	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, FailInvalidInput, snap.FailReason)
	assert.Equal(t, 0, gw.callCount())
}

func TestSubmit_AnonymousParksRequest(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, session.NewGate(), newNoopLogger())

	snap := o.Submit("@foodie_nina")

	assert.Equal(t, StateAwaitingAuth, snap.State)
	assert.Equal(t, "foodie_nina", snap.Handle)
	assert.Equal(t, 0, gw.callCount(), "analyzer must not be called before auth")
}

func TestSubmit_AuthenticatedStartsAnalysis(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, authenticatedGate(), newNoopLogger())

	snap := o.Submit("https://instagram.com/foodie_nina")
	assert.Equal(t, StateAnalyzing, snap.State)

	resolved := waitForState(t, o, StateResolved)
	require.NotNil(t, resolved.Result)
	assert.Equal(t, "foodie_nina", resolved.Result.Handle)
	assert.Equal(t, 1, gw.callCount())
}

func TestAuthSucceeded_ResumesParkedHandle(t *testing.T) {
	gw := &fakeGateway{}
	gate := session.NewGate()
	o := New(gw, gate, newNoopLogger())

	o.Submit("@foodie_nina")
	require.Equal(t, 0, gw.callCount())

	gate.Set(models.Session{ID: "uid-1", OnboardingComplete: true})
	snap := o.AuthSucceeded()
	assert.Equal(t, StateAnalyzing, snap.State)

	waitForState(t, o, StateResolved)
	assert.Equal(t, 1, gw.callCount(), "exactly one analyzer call after resume")
	assert.Equal(t, "foodie_nina", gw.lastCall())
}

func TestAuthSucceeded_OutsideAwaitingAuthIsNoop(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, authenticatedGate(), newNoopLogger())

	snap := o.AuthSucceeded()

	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, gw.callCount())
}

func TestAuthCancelled_DropsParkedRequest(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, session.NewGate(), newNoopLogger())

	o.Submit("@foodie_nina")
	snap := o.AuthCancelled()

	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Handle)
	assert.Equal(t, 0, gw.callCount())
}

func TestSubmit_SupersedesInFlightRequest(t *testing.T) {
	firstDone := make(chan struct{})
	gw := &fakeGateway{block: firstDone}
	o := New(gw, authenticatedGate(), newNoopLogger())

	o.Submit("@first")
	require.Eventually(t, func() bool { return gw.callCount() == 1 }, time.Second, 5*time.Millisecond)

	gw.mu.Lock()
	gw.block = nil
	gw.mu.Unlock()

	o.Submit("@second")
	resolved := waitForState(t, o, StateResolved)
	require.NotNil(t, resolved.Result)
	assert.Equal(t, "second", resolved.Result.Handle)

	// поздний результат первого запроса должен быть отброшен
	close(firstDone)
	time.Sleep(50 * time.Millisecond)

	snap := o.Snapshot()
	assert.Equal(t, StateResolved, snap.State)
	assert.Equal(t, "second", snap.Result.Handle)
}

func TestSignOut_ClearsResult(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, authenticatedGate(), newNoopLogger())

	o.Submit("@foodie_nina")
	waitForState(t, o, StateResolved)

	o.SignOut()

	snap := o.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Handle)
}

func TestSignOut_DiscardsLateResult(t *testing.T) {
	done := make(chan struct{})
	gw := &fakeGateway{block: done}
	o := New(gw, authenticatedGate(), newNoopLogger())

	o.Submit("@foodie_nina")
	require.Eventually(t, func() bool { return gw.callCount() == 1 }, time.Second, 5*time.Millisecond)

	o.SignOut()
	close(done)
	time.Sleep(50 * time.Millisecond)

	snap := o.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Result)
}

func TestSubmit_AnalysisFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("analyzer is down")}
	o := New(gw, authenticatedGate(), newNoopLogger())

	o.Submit("@foodie_nina")

	snap := waitForState(t, o, StateFailed)
	assert.Equal(t, FailAnalysisFailed, snap.FailReason)
	assert.Nil(t, snap.Result)
}
