package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, _ int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *recordingNotifier) snapshot() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func newTestTimers(n Notifier) *TimerService {
	return NewTimerService(TimerConfig{
		MaxSeconds:  60,
		UpdateEvery: 2,
		MaxPerChat:  1,
		Unit:        time.Millisecond,
	}, n, rand.New(rand.NewSource(1)), zap.NewNop())
}

func TestTimerService_Start(t *testing.T) {
	n := &recordingNotifier{}
	svc := newTestTimers(n)

	timer, err := svc.Start(context.Background(), 1, "plank", 4)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if timer.Task != "plank" || timer.Seconds != 4 {
		t.Errorf("Start() = %+v, want plank for 4 seconds", timer)
	}

	svc.Wait()

	got := n.snapshot()
	// One update with a motivational line at 2 seconds left, then the final message.
	if len(got) != 3 {
		t.Fatalf("messages = %q, want 3", got)
	}
	if got[0] != "⏳ 2 seconds remaining for plank" {
		t.Errorf("messages[0] = %q", got[0])
	}
	if got[2] != "✅ Time's up for: plank" {
		t.Errorf("messages[2] = %q", got[2])
	}
	if svc.Active(1) != 0 {
		t.Errorf("Active() = %d, want 0", svc.Active(1))
	}
}

func TestTimerService_StartValidation(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		seconds int
	}{
		{name: "zero seconds", task: "plank", seconds: 0},
		{name: "negative seconds", task: "plank", seconds: -5},
		{name: "too long", task: "plank", seconds: 61},
		{name: "empty task", task: "  ", seconds: 5},
	}

	svc := newTestTimers(&recordingNotifier{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Start(context.Background(), 1, tt.task, tt.seconds); !errors.Is(err, ErrInvalidNumericInput) {
				t.Errorf("Start() error = %v, want %v", err, ErrInvalidNumericInput)
			}
		})
	}
}

func TestTimerService_LimitAndCancel(t *testing.T) {
	n := &recordingNotifier{}
	svc := NewTimerService(TimerConfig{
		MaxSeconds: 3600,
		MaxPerChat: 1,
		Unit:       time.Hour,
	}, n, nil, zap.NewNop())

	if _, err := svc.Start(context.Background(), 1, "plank", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Start(context.Background(), 1, "run", 10); !errors.Is(err, ErrTimerLimit) {
		t.Errorf("second Start() error = %v, want %v", err, ErrTimerLimit)
	}
	if _, err := svc.Start(context.Background(), 2, "run", 10); err != nil {
		t.Errorf("Start() for another chat error = %v", err)
	}

	if got := svc.Cancel(1); got != 1 {
		t.Errorf("Cancel() = %d, want 1", got)
	}
	svc.Cancel(2)
	svc.Wait()

	for _, msg := range n.snapshot() {
		if strings.HasPrefix(msg, "✅") {
			t.Errorf("cancelled timer finished: %q", msg)
		}
	}
}
