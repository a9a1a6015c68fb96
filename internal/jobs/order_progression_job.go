package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ProgressionHandler runs one progression sweep.
type ProgressionHandler interface {
	Handle(ctx context.Context, cmd commands.ProgressOrdersCommand) (commands.ProgressionReport, error)
}

// OrderProgressionJob runs the progression sweep on a cron schedule. A tick
// that fires while the previous sweep is still running is skipped.
type OrderProgressionJob struct {
	handler  ProgressionHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderProgressionJob accepts a six field cron spec (seconds first) or a
// descriptor such as "@every 30s". An empty schedule disables the job.
func NewOrderProgressionJob(handler ProgressionHandler, schedule string, logger *slog.Logger) *OrderProgressionJob {
	logger = logger.With("component", "order_progression_job")

	return &OrderProgressionJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		logger: logger,
	}
}

func (j *OrderProgressionJob) Start() error {
	if j.schedule == "" {
		j.logger.InfoContext(context.Background(), "Order progression job disabled (empty schedule)")
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order progression job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and logs its outcome.
func (j *OrderProgressionJob) RunOnce(ctx context.Context) (commands.ProgressionReport, error) {
	report, err := j.handler.Handle(ctx, commands.NewProgressOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order progression job failed", "error", err)
		return report, err
	}

	if report.StepFailed() {
		for name, step := range report.StepResults {
			if !step.Success {
				j.logger.WarnContext(ctx, "Order progression step failed", "step", name, "message", step.Message)
			}
		}
	}

	j.logger.InfoContext(ctx, "Order progression job completed",
		"totalOrdersUpdated", report.TotalOrdersUpdated,
	)
	return report, nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *OrderProgressionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order progression job stopped")
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
