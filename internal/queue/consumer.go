package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-playground/validator/v10"

	"DivSentinel/internal/model"
)

// SQSAPI is the narrow slice of the SQS client the consumer needs.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Job is one dequeued analysis request, still owned by the queue until
// acknowledged.
type Job struct {
	MessageID     string
	Body          string
	ReceiptHandle string
}

// Consumer receives analysis jobs one at a time from an SQS queue.
type Consumer struct {
	Client   SQSAPI
	QueueURL string
	// WaitTime is the long-poll wait in seconds.
	WaitTime int32
}

// NewConsumer creates a Consumer with a 10 second long poll.
func NewConsumer(client SQSAPI, queueURL string) *Consumer {
	return &Consumer{Client: client, QueueURL: queueURL, WaitTime: 10}
}

// ReceiveOne fetches at most one message. A nil Job with nil error means
// the queue reported empty.
func (c *Consumer) ReceiveOne(ctx context.Context) (*Job, error) {
	out, err := c.Client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.QueueURL),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     c.WaitTime,
	})
	if err != nil {
		return nil, fmt.Errorf("receive message: %w", err)
	}
	if len(out.Messages) == 0 {
		return nil, nil
	}
	msg := out.Messages[0]
	job := &Job{
		MessageID:     aws.ToString(msg.MessageId),
		Body:          aws.ToString(msg.Body),
		ReceiptHandle: aws.ToString(msg.ReceiptHandle),
	}
	log.Printf("[INFO] got message %s: %s", job.MessageID, job.Body)
	return job, nil
}

// Acknowledge deletes a fully processed job from the queue.
func (c *Consumer) Acknowledge(ctx context.Context, job *Job) error {
	_, err := c.Client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.QueueURL),
		ReceiptHandle: aws.String(job.ReceiptHandle),
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	log.Printf("[INFO] message %s deleted", job.MessageID)
	return nil
}

var validate = validator.New()

// ParseRequest decodes and validates a job body. The yield field arrives
// as either a JSON number or a numeric string under the queue schema's
// spelling "yeild".
func ParseRequest(body string) (model.AnalysisRequest, error) {
	var req model.AnalysisRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return model.AnalysisRequest{}, fmt.Errorf("decode request: %w", err)
	}
	if err := validate.Struct(req); err != nil {
		return model.AnalysisRequest{}, fmt.Errorf("validate request: %w", err)
	}
	return req, nil
}
