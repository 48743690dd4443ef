package fabric

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/core"
	"github.com/lzjever/fabric-mdr/internal/observability"
)

// DefaultPollInterval is the cadence for polling a pending refresh.
const DefaultPollInterval = 30 * time.Second

// DefaultMaxWait bounds how long RefreshAndWait blocks by default.
const DefaultMaxWait = 30 * time.Minute

type OperationStatus string

const (
	OpStarted   OperationStatus = "STARTED"
	OpPending   OperationStatus = "PENDING"
	OpSucceeded OperationStatus = "SUCCEEDED"
	OpFailed    OperationStatus = "FAILED"
	OpTimedOut  OperationStatus = "TIMED_OUT"
)

// Operation tracks one refresh from trigger to terminal state. It
// lives for a single RefreshAndWait call and is never persisted.
type Operation struct {
	Status         OperationStatus
	StatusLocation string
	StartedAt      time.Time
}

// Orchestrator triggers the metadata refresh on a SQL endpoint and
// waits for it to reach a terminal state. Single-threaded; the only
// suspension point is the sleep between polls.
type Orchestrator struct {
	client       *Client
	pollInterval time.Duration
	log          *zap.Logger
}

func NewOrchestrator(client *Client, pollInterval time.Duration, log *zap.Logger) *Orchestrator {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Orchestrator{client: client, pollInterval: pollInterval, log: log}
}

// RefreshAndWait triggers refreshMetadata on the endpoint and blocks
// until the operation completes, fails, or maxWait elapses. A 202
// without a Location header counts as success: without a handle to
// poll, completion is assumed rather than failing the run.
//
// Failures are not retried; any unexpected status from the trigger or
// a poll is terminal.
func (o *Orchestrator) RefreshAndWait(ctx context.Context, workspaceID, endpointID string, maxWait time.Duration) error {
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	op := &Operation{Status: OpStarted, StartedAt: time.Now()}

	trigger, err := o.client.TriggerRefresh(ctx, workspaceID, endpointID)
	if err != nil {
		return err
	}

	switch trigger.StatusCode {
	case http.StatusOK:
		op.Status = OpSucceeded
		o.log.Info("refresh completed synchronously", zap.String("endpoint_id", endpointID))
		return nil
	case http.StatusAccepted:
		if trigger.Location == "" {
			op.Status = OpSucceeded
			o.log.Warn("accepted refresh carried no Location header, assuming completion",
				zap.String("endpoint_id", endpointID))
			return nil
		}
		op.Status = OpPending
		op.StatusLocation = trigger.Location
	default:
		op.Status = OpFailed
		return core.NewAppError(core.ErrTriggerFailed,
			fmt.Sprintf("refresh failed to start: %d - %s", trigger.StatusCode, trigger.Body))
	}

	o.log.Info("refresh accepted, polling",
		zap.String("endpoint_id", endpointID),
		zap.String("status_location", op.StatusLocation),
		zap.Duration("max_wait", maxWait))

	for time.Since(op.StartedAt) < maxWait {
		status, body, err := o.client.PollOperation(ctx, op.StatusLocation)
		if err != nil {
			return err
		}
		observability.RefreshPollsTotal.Inc()

		switch status {
		case http.StatusOK:
			op.Status = OpSucceeded
			o.log.Info("refresh completed",
				zap.String("endpoint_id", endpointID),
				zap.Duration("elapsed", time.Since(op.StartedAt)))
			return nil
		case http.StatusAccepted:
			o.log.Info("refresh still in progress",
				zap.Duration("elapsed", time.Since(op.StartedAt)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.pollInterval):
			}
		default:
			op.Status = OpFailed
			return core.NewAppError(core.ErrPollFailed,
				fmt.Sprintf("status check failed: %d - %s", status, body))
		}
	}

	op.Status = OpTimedOut
	return core.NewAppError(core.ErrRefreshTimeout,
		fmt.Sprintf("refresh timed out after %s, endpoint %s may still be refreshing", maxWait, endpointID))
}
