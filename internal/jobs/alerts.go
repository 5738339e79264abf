package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/rinkline/server/internal/metrics"
)

// AlertFunc is invoked when a job fails or panics.
type AlertFunc func(ctx context.Context, job *rivertype.JobRow, err error)

// AlertingErrorHandler counts, logs, and forwards job failures. Failures on
// the final attempt are the ones worth paging on; a failed discovery or
// digest run with retries left will be picked up by its retry policy.
type AlertingErrorHandler struct {
	Logger *slog.Logger
	Notify AlertFunc
}

func NewAlertingErrorHandler(logger *slog.Logger, notify AlertFunc) *AlertingErrorHandler {
	return &AlertingErrorHandler{
		Logger: logger,
		Notify: notify,
	}
}

func (h *AlertingErrorHandler) HandleError(ctx context.Context, job *rivertype.JobRow, err error) *river.ErrorHandlerResult {
	metrics.JobFailures.WithLabelValues(job.Kind, "error").Inc()
	h.report(ctx, job, err, "job failed")
	return nil
}

func (h *AlertingErrorHandler) HandlePanic(ctx context.Context, job *rivertype.JobRow, panicVal any, trace string) *river.ErrorHandlerResult {
	metrics.JobFailures.WithLabelValues(job.Kind, "panic").Inc()
	panicErr := fmt.Errorf("panic: %v", panicVal)
	if h.Logger != nil {
		h.Logger.Error("job panicked", "job_id", job.ID, "kind", job.Kind, "attempt", job.Attempt, "error", panicErr, "trace", trace)
	}
	if h.Notify != nil {
		h.Notify(ctx, job, panicErr)
	}
	return nil
}

func (h *AlertingErrorHandler) report(ctx context.Context, job *rivertype.JobRow, err error, msg string) {
	if h.Logger != nil {
		if job.Attempt >= job.MaxAttempts {
			h.Logger.Error(msg, "job_id", job.ID, "kind", job.Kind, "attempt", job.Attempt, "error", err, "retries_exhausted", true)
		} else {
			h.Logger.Warn(msg, "job_id", job.ID, "kind", job.Kind, "attempt", job.Attempt, "error", err)
		}
	}
	if h.Notify != nil {
		h.Notify(ctx, job, err)
	}
}
