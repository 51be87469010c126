package usecase

import (
	"context"
	"time"

	"github.com/ciphernom/rektcast/pkg/logger"
	"github.com/ciphernom/rektcast/pkg/queue"
)

const RetrainMessageType = "model.retrain"

// RetrainPayload is the queue message that triggers a model refresh.
type RetrainPayload struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

// RetrainJob rebuilds the forecaster and sentiment scorer from the latest
// stored history when a retrain message arrives.
type RetrainJob struct {
	orchestrator *ForecastOrchestrator
	l            *logger.Logger
}

func NewRetrainJob(orchestrator *ForecastOrchestrator, l *logger.Logger) *RetrainJob {
	return &RetrainJob{orchestrator: orchestrator, l: l}
}

var _ queue.Job = (*RetrainJob)(nil)

func (j *RetrainJob) Name() string { return "forecast-retrain" }

func (j *RetrainJob) Type() string { return RetrainMessageType }

func (j *RetrainJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RetrainPayload](payload)
	if err != nil {
		j.l.Warn("retrain payload unreadable, retraining anyway", logger.Error(err))
		p = &RetrainPayload{Reason: "unknown"}
	}

	start := time.Now()
	if err := j.orchestrator.Retrain(ctx); err != nil {
		j.l.Error("model retrain failed",
			logger.String("reason", p.Reason),
			logger.Error(err))
		return err
	}

	j.l.Info("model retrained",
		logger.String("reason", p.Reason),
		logger.Duration("took", time.Since(start)))
	return nil
}

// RetrainScheduler publishes periodic retrain messages so consumers pick up
// fresh daily bars without restarting.
type RetrainScheduler struct {
	publisher queue.QueueService
	interval  time.Duration
	l         *logger.Logger
	stopCh    chan struct{}
}

func NewRetrainScheduler(publisher queue.QueueService, interval time.Duration, l *logger.Logger) *RetrainScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetrainScheduler{
		publisher: publisher,
		interval:  interval,
		l:         l,
		stopCh:    make(chan struct{}),
	}
}

func (s *RetrainScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				payload := RetrainPayload{Reason: "scheduled", RequestedAt: time.Now().UTC()}
				if err := s.publisher.PublishMessage(ctx, RetrainMessageType, payload); err != nil {
					s.l.Warn("retrain publish failed", logger.Error(err))
				}
			}
		}
	}()
}

func (s *RetrainScheduler) Stop() {
	close(s.stopCh)
}
