// internal/common/camunda/worker.go
package camunda

import (
	"fmt"
	"time"

	"esign-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes, fails or throws on the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for opts.TaskType and starts polling.
func NewWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *CamundaWorker {
	step := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(handler.Handle).
		Name(fmt.Sprintf("%s-worker", opts.TaskType))

	if opts.MaxJobsActive > 0 {
		step = step.MaxJobsActive(opts.MaxJobsActive)
	}
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}

	w := &CamundaWorker{
		worker:   step.Open(),
		logger:   log,
		taskType: opts.TaskType,
	}

	log.Info("worker started", map[string]interface{}{
		"taskType":      opts.TaskType,
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})

	return w
}

// Stop closes the job worker and waits for in-flight jobs. The Zeebe client
// stays open.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
