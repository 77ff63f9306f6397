package scheduler

import (
	"context"
	"errors"
	"testing"

	logx "dcptrack/pkg/logx"
)

func TestInvokeRecoversPanic(t *testing.T) {
	t.Parallel()
	s := New(Config{}, logx.Nop())
	s.runCtx = context.Background()

	def := &jobDef{name: "boom", run: func(ctx context.Context) error {
		panic("job exploded")
	}}
	// must not crash the test
	s.invoke(def)

	if def.running {
		t.Fatal("running flag stuck after panic")
	}
}

func TestInvokeSkipsWhenRunning(t *testing.T) {
	t.Parallel()
	s := New(Config{}, logx.Nop())
	s.runCtx = context.Background()

	called := false
	def := &jobDef{name: "poll", run: func(ctx context.Context) error {
		called = true
		return nil
	}}
	def.running = true
	s.invoke(def)
	if called {
		t.Fatal("overlapping run was not skipped")
	}
}

func TestInvokeRunsJob(t *testing.T) {
	t.Parallel()
	s := New(Config{}, logx.Nop())
	s.runCtx = context.Background()

	var got error
	def := &jobDef{name: "poll", run: func(ctx context.Context) error {
		got = errors.New("ran")
		return nil
	}}
	s.invoke(def)
	if got == nil {
		t.Fatal("job did not run")
	}
}

func TestStartRejectsBadTimezone(t *testing.T) {
	t.Parallel()
	s := New(Config{Timezone: "Not/AZone"}, logx.Nop())
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for bad timezone")
	}
}
