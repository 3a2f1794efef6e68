package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"DivSentinel/internal/pipeline"
	"DivSentinel/internal/queue"
)

// Run modes.
const (
	ModeDrain = "drain" // drain the queue until empty, then exit
	ModeCron  = "cron"  // fire a drain cycle on a cron expression
)

// Receiver is the queue side the scheduler drives.
type Receiver interface {
	ReceiveOne(ctx context.Context) (*queue.Job, error)
	Acknowledge(ctx context.Context, job *queue.Job) error
}

// Processor runs the analysis for one job body.
type Processor interface {
	Process(ctx context.Context, body string) (*pipeline.Result, error)
}

// Scheduler owns the outer loop: receive one job, process it end to end,
// acknowledge on success, cool down, repeat until the queue is empty.
type Scheduler struct {
	Queue    Receiver
	Pipeline Processor
	Cooldown time.Duration
	CronExpr string

	cron *cron.Cron
}

// NewScheduler creates a Scheduler.
func NewScheduler(q Receiver, p Processor, cooldown time.Duration, cronExpr string) *Scheduler {
	return &Scheduler{
		Queue:    q,
		Pipeline: p,
		Cooldown: cooldown,
		CronExpr: cronExpr,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// DrainOnce processes jobs one at a time until the queue reports empty
// or the context is cancelled. A job that fails fatally is logged and
// left unacknowledged for the queue's own redelivery; the loop moves on.
func (s *Scheduler) DrainOnce(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		job, err := s.Queue.ReceiveOne(ctx)
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}
		if job == nil {
			log.Println("[INFO] no messages to process")
			return nil
		}

		if _, err := s.Pipeline.Process(ctx, job.Body); err != nil {
			log.Printf("[ERROR] process message %s: %v (left for redelivery)", job.MessageID, err)
		} else if err := s.Queue.Acknowledge(ctx, job); err != nil {
			log.Printf("[ERROR] acknowledge message %s: %v", job.MessageID, err)
		}

		log.Printf("[INFO] cooling off for %v", s.Cooldown)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Cooldown):
		}
	}
}

// Run executes the configured mode. ModeDrain runs one drain cycle and
// returns; ModeCron registers drain cycles on the cron expression and
// blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, mode string) error {
	switch mode {
	case ModeDrain:
		return s.DrainOnce(ctx)
	case ModeCron:
		if _, err := s.cron.AddFunc(s.CronExpr, func() {
			if err := s.DrainOnce(ctx); err != nil && ctx.Err() == nil {
				log.Printf("[ERROR] drain cycle: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("register drain task: %w", err)
		}
		s.cron.Start()
		log.Printf("[INFO] scheduler started, drain on %q", s.CronExpr)
		<-ctx.Done()
		s.cron.Stop()
		log.Println("[INFO] scheduler stopped")
		return nil
	default:
		return fmt.Errorf("unknown run mode %q", mode)
	}
}
