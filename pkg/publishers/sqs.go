package publishers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/samvad-hq/kannur-news-digest/internal/logger"
)

type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// sqsPublisher queues one message per generated digest.
type sqsPublisher struct {
	id       string
	queueURL string
	client   sqsClient
	log      logger.Logger
}

func newSQSPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.SQS == nil {
		return nil, fmt.Errorf("publisher %q missing sqs configuration", cfg.ID)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.SQS.Region, cfg.SQS.Credentials)
	if err != nil {
		return nil, err
	}

	return &sqsPublisher{
		id:       cfg.ID,
		queueURL: cfg.SQS.QueueURL,
		client:   sqs.NewFromConfig(awsCfg, sqsEndpoint(cfg.SQS.Endpoint)),
		log:      logger.OrNop(log),
	}, nil
}

func sqsEndpoint(endpoint string) func(*sqs.Options) {
	return func(o *sqs.Options) {
		if ep := endpointOverride(endpoint); ep != nil {
			o.BaseEndpoint = ep
		}
	}
}

func (s *sqsPublisher) ID() string   { return s.id }
func (s *sqsPublisher) Type() string { return TypeSQS }

func (s *sqsPublisher) message(evt Event) (*sqs.SendMessageInput, error) {
	enc, err := encodeEvent(evt)
	if err != nil {
		return nil, err
	}
	return &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(enc.body),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			attrEventKind: {DataType: aws.String("String"), StringValue: aws.String(enc.kind)},
		},
	}, nil
}

func (s *sqsPublisher) Publish(ctx context.Context, evt Event) error {
	input, err := s.message(evt)
	if err != nil {
		return err
	}

	out, err := s.client.SendMessage(ctx, input)
	if err != nil {
		logFailed(s.log, s, err)
		return fmt.Errorf("send message to sqs: %w", err)
	}
	var messageID string
	if out != nil {
		messageID = aws.ToString(out.MessageId)
	}
	logDelivered(s.log, s, messageID)
	return nil
}
