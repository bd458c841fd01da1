package core

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeTerminal struct {
	finiCount atomic.Int32
}

func (f *fakeTerminal) Fini() { f.finiCount.Add(1) }

func resetCrashState(t *testing.T) (*fakeTerminal, chan int) {
	t.Helper()

	term := &fakeTerminal{}
	exits := make(chan int, 4)

	crashOnce = sync.Once{}
	SetCrashTerminal(term)
	exitFunc = func(code int) { exits <- code }

	t.Cleanup(func() {
		crashOnce = sync.Once{}
		SetCrashTerminal(nil)
		exitFunc = os.Exit
	})
	return term, exits
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	term, exits := resetCrashState(t)

	HandleCrash(nil)

	if term.finiCount.Load() != 0 {
		t.Error("Expected terminal untouched for nil panic value")
	}
	select {
	case code := <-exits:
		t.Errorf("Unexpected exit with code %d", code)
	default:
	}
}

func TestHandleCrash_RestoresTerminalOnce(t *testing.T) {
	term, exits := resetCrashState(t)

	HandleCrash("boom")
	HandleCrash("second")

	if got := term.finiCount.Load(); got != 1 {
		t.Errorf("Expected Fini called once, got %d", got)
	}
	if code := <-exits; code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	term, exits := resetCrashState(t)

	Go(func() { panic("goroutine failure") })

	select {
	case code := <-exits:
		if code != 1 {
			t.Errorf("Expected exit code 1, got %d", code)
		}
	case <-time.After(time.Second):
		t.Fatal("Panic in goroutine was not handled")
	}

	if term.finiCount.Load() != 1 {
		t.Error("Expected terminal restored after goroutine panic")
	}
}
