package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DivSentinel/internal/pipeline"
	"DivSentinel/internal/queue"
)

type fakeQueue struct {
	jobs  []*queue.Job
	acked []string
}

func (f *fakeQueue) ReceiveOne(_ context.Context) (*queue.Job, error) {
	if len(f.jobs) == 0 {
		return nil, nil
	}
	job := f.jobs[0]
	f.jobs = f.jobs[1:]
	return job, nil
}

func (f *fakeQueue) Acknowledge(_ context.Context, job *queue.Job) error {
	f.acked = append(f.acked, job.MessageID)
	return nil
}

type fakeProcessor struct {
	errs  map[string]error
	calls []string
}

func (f *fakeProcessor) Process(_ context.Context, body string) (*pipeline.Result, error) {
	f.calls = append(f.calls, body)
	return nil, f.errs[body]
}

func TestDrainOnce_ProcessesUntilEmpty(t *testing.T) {
	q := &fakeQueue{jobs: []*queue.Job{
		{MessageID: "m1", Body: "b1", ReceiptHandle: "r1"},
		{MessageID: "m2", Body: "b2", ReceiptHandle: "r2"},
	}}
	p := &fakeProcessor{}
	s := NewScheduler(q, p, 0, "")

	require.NoError(t, s.DrainOnce(context.Background()))
	assert.Equal(t, []string{"b1", "b2"}, p.calls)
	assert.Equal(t, []string{"m1", "m2"}, q.acked)
}

func TestDrainOnce_FatalJobLeftForRedelivery(t *testing.T) {
	q := &fakeQueue{jobs: []*queue.Job{
		{MessageID: "m1", Body: "bad", ReceiptHandle: "r1"},
		{MessageID: "m2", Body: "good", ReceiptHandle: "r2"},
	}}
	p := &fakeProcessor{errs: map[string]error{"bad": errors.New("first page 500")}}
	s := NewScheduler(q, p, 0, "")

	require.NoError(t, s.DrainOnce(context.Background()))
	assert.Equal(t, []string{"bad", "good"}, p.calls, "a fatal job must not stop the drain")
	assert.Equal(t, []string{"m2"}, q.acked, "failed job must not be acknowledged")
}

func TestDrainOnce_StopsOnContextCancel(t *testing.T) {
	q := &fakeQueue{jobs: []*queue.Job{{MessageID: "m1", Body: "b1"}}}
	s := NewScheduler(q, &fakeProcessor{}, 0, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.DrainOnce(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, q.acked)
}

func TestRun_UnknownMode(t *testing.T) {
	s := NewScheduler(&fakeQueue{}, &fakeProcessor{}, 0, "")
	require.Error(t, s.Run(context.Background(), "weekly"))
}
