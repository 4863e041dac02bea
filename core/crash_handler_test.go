package core

import (
	"sync"
	"testing"
)

type fakeTerminal struct {
	finis int
}

func (f *fakeTerminal) Fini() {
	f.finis++
}

func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prev := exitFunc
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		exitFunc = prev
		RegisterTerminal(nil)
	})
	return &code
}

func TestHandleCrashRestoresTerminalOnce(t *testing.T) {
	code := captureExit(t)
	term := &fakeTerminal{}
	RegisterTerminal(term)

	HandleCrash("boom")
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if term.finis != 1 {
		t.Errorf("Expected Fini once, got %d", term.finis)
	}

	// Terminal is released after the first crash
	HandleCrash("again")
	if term.finis != 1 {
		t.Errorf("Expected no second Fini, got %d", term.finis)
	}
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	code := captureExit(t)
	HandleCrash(nil)
	if *code != -1 {
		t.Errorf("Expected no exit, got %d", *code)
	}
}

func TestGoRecoversPanic(t *testing.T) {
	var mu sync.Mutex
	code := -1
	done := make(chan struct{})
	prev := exitFunc
	exitFunc = func(c int) {
		mu.Lock()
		code = c
		mu.Unlock()
		close(done)
	}
	defer func() { exitFunc = prev }()

	Go(func() { panic("worker failed") })
	<-done

	mu.Lock()
	defer mu.Unlock()
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}
