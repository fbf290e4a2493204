package flash_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/flash/internal/bus"
	"github.com/matheus3301/flash/internal/flash"
	"go.uber.org/zap/zaptest"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherStartDispatchesBusEvents(t *testing.T) {
	b := bus.New()
	logger := zaptest.NewLogger(t)
	nav := flash.NewNavigationWatcher("pageShown", b, logger)
	nav.Start(context.Background())
	defer nav.Stop()

	svc := flash.NewService(flash.Config{NavigationEvent: "pageShown"}, nil, nav, b, logger)
	svc.Add("Hello", flash.Options{Duration: time.Hour})

	b.Emit("pageShownLater", nil)
	if n := svc.Len(flash.GlobalScope); n != 1 {
		t.Fatalf("Len() after unrelated event = %d, want 1", n)
	}
	b.Emit("pageShown", nil)
	if n := svc.Len(flash.GlobalScope); n != 0 {
		t.Errorf("Len() after navigation = %d, want 0", n)
	}
}

func TestWatcherSeesEveryBusNavigation(t *testing.T) {
	b := bus.New()
	nav := flash.NewNavigationWatcher("", b, nil)
	nav.Start(context.Background())
	defer nav.Stop()
	svc := flash.NewService(flash.DefaultConfig(), nil, nav, b, nil)

	// More navigations than any channel buffer holds, emitted back to back.
	svc.Add("sticky", flash.Options{Duration: time.Hour, Persist: 100})
	for range 100 {
		b.Emit(flash.DefaultNavigationEvent, nil)
	}
	if n := svc.Len(flash.GlobalScope); n != 1 {
		t.Fatalf("Len() after 100 navigations = %d, want 1", n)
	}
	b.Emit(flash.DefaultNavigationEvent, nil)
	if n := svc.Len(flash.GlobalScope); n != 0 {
		t.Errorf("Len() after 101 navigations = %d, want 0", n)
	}
}

func TestWatcherStopEndsSubscription(t *testing.T) {
	b := bus.New()
	nav := flash.NewNavigationWatcher("", b, nil)
	nav.Start(context.Background())
	if n := b.Subscribers(); n != 1 {
		t.Fatalf("Subscribers() = %d, want 1", n)
	}

	nav.Stop()
	nav.Stop()

	if n := b.Subscribers(); n != 0 {
		t.Errorf("Subscribers() after Stop = %d, want 0", n)
	}
}

func TestWatcherContextEndsSubscription(t *testing.T) {
	b := bus.New()
	nav := flash.NewNavigationWatcher("", b, nil)
	ctx, cancel := context.WithCancel(context.Background())
	nav.Start(ctx)

	cancel()

	waitFor(t, func() bool { return b.Subscribers() == 0 })
}

func TestRegisterDuringDispatchIsKept(t *testing.T) {
	nav := flash.NewNavigationWatcher("", nil, nil)
	calls := 0
	nav.Register(func() bool {
		nav.Register(func() bool {
			calls++
			return true
		})
		return true
	})

	nav.Dispatch(flash.DefaultNavigationEvent)
	if calls != 0 || nav.Len() != 1 {
		t.Fatalf("after first dispatch: calls = %d, listeners = %d, want 0 and 1", calls, nav.Len())
	}

	nav.Dispatch(flash.DefaultNavigationEvent)
	if calls != 1 || nav.Len() != 0 {
		t.Errorf("after second dispatch: calls = %d, listeners = %d, want 1 and 0", calls, nav.Len())
	}
}

func TestSystemSchedulerExpiry(t *testing.T) {
	svc := flash.NewService(flash.DefaultConfig(), flash.SystemScheduler{}, nil, nil, nil)
	svc.Add("soon", flash.Options{Duration: 10 * time.Millisecond})

	waitFor(t, func() bool { return svc.Len(flash.GlobalScope) == 0 })
}

// Timers, navigation and API calls racing on the same messages must leave
// the store consistent. Run with -race.
func TestConcurrentTriggers(t *testing.T) {
	nav := flash.NewNavigationWatcher("", nil, nil)
	svc := flash.NewService(flash.DefaultConfig(), flash.SystemScheduler{}, nav, nil, nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				m := svc.Add("msg", flash.Options{Duration: time.Millisecond, Persist: j % 2})
				if (i+j)%3 == 0 {
					m.Remove()
				}
				if j%5 == 0 {
					nav.Dispatch(flash.DefaultNavigationEvent)
				}
			}
		}()
	}
	wg.Wait()

	if n := svc.Len(flash.GlobalScope); n > 1 {
		t.Errorf("Len() = %d, dedup allows at most 1", n)
	}
	waitFor(t, func() bool { return svc.Len(flash.GlobalScope) == 0 })
}
