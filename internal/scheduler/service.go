// Package scheduler runs the tracker's recurring jobs (today just the inbox
// poll) on cron or interval schedules.
package scheduler

import (
	"context"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	logx "dcptrack/pkg/logx"
)

type Config struct {
	Timezone string // IANA TZ, e.g. "Asia/Seoul"; empty means local
}

type jobDef struct {
	name string
	spec ParsedSpec
	run  func(ctx context.Context) error

	mu      sync.Mutex
	running bool
}

type Service struct {
	cfg    Config
	log    logx.Logger
	parser cron.Parser

	mu   sync.Mutex
	defs []*jobDef
	c    *cron.Cron

	runCtx    context.Context
	runCancel context.CancelFunc
}

func New(cfg Config, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		cfg: cfg,
		log: log,
		// SecondOptional allows both 5-field and 6-field (with seconds) cron specs.
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Add registers a named job. Must be called before Start.
// The raw schedule accepts everything ParseSchedule does.
func (s *Service) Add(name, raw string, run func(ctx context.Context) error) error {
	spec, err := ParseSchedule(raw)
	if err != nil {
		return err
	}
	// Cron syntax is validated here rather than at Start so a bad config
	// fails fast.
	if spec.Kind == SpecCron {
		if _, err := s.parser.Parse(spec.Cron); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.defs = append(s.defs, &jobDef{name: name, spec: spec, run: run})
	s.mu.Unlock()
	return nil
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}

	loc := time.Local
	if tz := strings.TrimSpace(s.cfg.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return err
		}
		loc = l
	}

	s.runCtx, s.runCancel = context.WithCancel(ctx)
	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))

	for _, def := range s.defs {
		def := def
		fn := func() { s.invoke(def) }
		switch def.spec.Kind {
		case SpecCron:
			if _, err := s.c.AddFunc(def.spec.Cron, fn); err != nil {
				return err
			}
		case SpecInterval:
			s.c.Schedule(cron.Every(def.spec.Every), cron.FuncJob(fn))
		}
		s.log.Info("job scheduled",
			logx.String("job", def.name),
			logx.String("kind", def.spec.Source))
	}

	s.c.Start()
	s.log.Info("scheduler started", logx.Int("jobs", len(s.defs)), logx.String("tz", loc.String()))
	return nil
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	cancel := s.runCancel
	s.c = nil
	s.runCancel = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	if cancel != nil {
		cancel()
	}
	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	s.log.Info("scheduler stopped")
}

// invoke runs one job with overlap-skip and panic recovery.
func (s *Service) invoke(def *jobDef) {
	def.mu.Lock()
	if def.running {
		def.mu.Unlock()
		s.log.Warn("previous run still in progress; skipping", logx.String("job", def.name))
		return
	}
	def.running = true
	def.mu.Unlock()
	defer func() {
		def.mu.Lock()
		def.running = false
		def.mu.Unlock()
	}()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic in job",
				logx.String("job", def.name),
				logx.Any("panic", r),
				logx.String("stack", string(debug.Stack())))
		}
	}()

	s.mu.Lock()
	ctx := s.runCtx
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := def.run(ctx)
	took := time.Since(start)
	if err != nil {
		s.log.Error("job failed", logx.String("job", def.name), logx.Duration("took", took), logx.Err(err))
		return
	}
	s.log.Debug("job finished", logx.String("job", def.name), logx.Duration("took", took))
}
