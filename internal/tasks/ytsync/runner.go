// Package ytsync schedules the educator sync job for the standalone task binary.
package ytsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/robfig/cron/v3"
)

// BatchRunner runs one sync invocation.
type BatchRunner interface {
	RunBatch(ctx context.Context) (*vo.SyncBatchReport, error)
}

// RunnerParams injects the runner dependencies.
type RunnerParams struct {
	Job        BatchRunner
	Schedule   string        // standard 5-field cron spec or descriptor such as "@hourly"
	RunTimeout time.Duration // upper bound of one invocation
	RunOnStart bool          // trigger one invocation as soon as Run starts
	Logger     log.Logger
}

// Runner triggers the sync job on a cron schedule. Invocations never overlap: a tick
// that fires while the previous batch is still running is skipped.
type Runner struct {
	job        BatchRunner
	schedule   cron.Schedule
	spec       string
	runTimeout time.Duration
	runOnStart bool
	log        *log.Helper

	mu      sync.Mutex
	running bool
}

// NewRunner validates params and builds the runner.
func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Job == nil {
		return nil, fmt.Errorf("ytsync: job is required")
	}
	spec := params.Schedule
	if spec == "" {
		spec = "@hourly"
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("ytsync: parse schedule %q: %w", spec, err)
	}
	return &Runner{
		job:        params.Job,
		schedule:   schedule,
		spec:       spec,
		runTimeout: params.RunTimeout,
		runOnStart: params.RunOnStart,
		log:        log.NewHelper(params.Logger),
	}, nil
}

// RunOnce executes a single invocation bounded by the run timeout.
func (r *Runner) RunOnce(ctx context.Context) (*vo.SyncBatchReport, error) {
	if !r.acquire() {
		r.log.WithContext(ctx).Warn("ytsync: previous invocation still running, skipping")
		return nil, ErrAlreadyRunning
	}
	defer r.release()

	if r.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.runTimeout)
		defer cancel()
	}

	started := time.Now()
	report, err := r.job.RunBatch(ctx)
	if err != nil {
		r.log.WithContext(ctx).Errorw("msg", "ytsync invocation failed", "error", err, "elapsed", time.Since(started).String())
		return report, err
	}
	r.log.WithContext(ctx).Infow(
		"msg", "ytsync invocation finished",
		"processed", report.Processed(),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"interrupted", report.Interrupted,
		"elapsed", time.Since(started).String(),
	)
	return report, nil
}

// Run schedules invocations until ctx is cancelled, then waits for the in-flight one.
func (r *Runner) Run(ctx context.Context) error {
	c := cron.New(cron.WithLogger(cronLogger{helper: r.log}))
	c.Schedule(r.schedule, cron.FuncJob(func() {
		_, _ = r.RunOnce(ctx)
	}))

	r.log.Infof("ytsync runner started: schedule=%s next=%s", r.spec, r.schedule.Next(time.Now()).Format(time.RFC3339))
	c.Start()
	if r.runOnStart {
		go func() { _, _ = r.RunOnce(ctx) }()
	}

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	r.waitIdle()
	r.log.Info("ytsync runner stopped")
	return ctx.Err()
}

func (r *Runner) acquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) release() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

func (r *Runner) waitIdle() {
	for {
		r.mu.Lock()
		running := r.running
		r.mu.Unlock()
		if !running {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// cronLogger adapts the kratos helper to cron.Logger.
type cronLogger struct {
	helper *log.Helper
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.helper.Debugw(append([]interface{}{"msg", "cron: " + msg}, keysAndValues...)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.helper.Errorw(append([]interface{}{"msg", "cron: " + msg, "error", err}, keysAndValues...)...)
}
