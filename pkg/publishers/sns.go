package publishers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/samvad-hq/kannur-news-digest/internal/logger"
)

type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// snsPublisher fans digest events out through an SNS topic.
type snsPublisher struct {
	id       string
	topicARN string
	client   snsClient
	log      logger.Logger
}

func newSNSPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.SNS == nil {
		return nil, fmt.Errorf("publisher %q missing sns configuration", cfg.ID)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.SNS.Region, cfg.SNS.Credentials)
	if err != nil {
		return nil, err
	}

	return &snsPublisher{
		id:       cfg.ID,
		topicARN: cfg.SNS.TopicARN,
		client:   sns.NewFromConfig(awsCfg, snsEndpoint(cfg.SNS.Endpoint)),
		log:      logger.OrNop(log),
	}, nil
}

func snsEndpoint(endpoint string) func(*sns.Options) {
	return func(o *sns.Options) {
		if ep := endpointOverride(endpoint); ep != nil {
			o.BaseEndpoint = ep
		}
	}
}

func (s *snsPublisher) ID() string   { return s.id }
func (s *snsPublisher) Type() string { return TypeSNS }

func (s *snsPublisher) message(evt Event) (*sns.PublishInput, error) {
	enc, err := encodeEvent(evt)
	if err != nil {
		return nil, err
	}
	return &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(enc.body),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			attrEventKind: {DataType: aws.String("String"), StringValue: aws.String(enc.kind)},
		},
	}, nil
}

func (s *snsPublisher) Publish(ctx context.Context, evt Event) error {
	input, err := s.message(evt)
	if err != nil {
		return err
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		logFailed(s.log, s, err)
		return fmt.Errorf("publish to sns: %w", err)
	}
	var messageID string
	if out != nil {
		messageID = aws.ToString(out.MessageId)
	}
	logDelivered(s.log, s, messageID)
	return nil
}
