package publishers

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/samvad-hq/kannur-news-digest/internal/logger"
)

// pubsubPublisher sends digest events to a Google Cloud Pub/Sub topic.
type pubsubPublisher struct {
	id     string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    logger.Logger
}

// newPubSubPublisher dials Pub/Sub. PUBSUB_EMULATOR_HOST is honoured by the client library.
func newPubSubPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("publisher %q missing pubsub configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}
	if cfg.PubSub.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.PubSub.Endpoint))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubPublisher{
		id:     cfg.ID,
		client: client,
		topic:  client.Topic(cfg.PubSub.TopicID),
		log:    logger.OrNop(log),
	}, nil
}

func (p *pubsubPublisher) ID() string   { return p.id }
func (p *pubsubPublisher) Type() string { return TypePubSub }

func (p *pubsubPublisher) Publish(ctx context.Context, evt Event) error {
	enc, err := encodeEvent(evt)
	if err != nil {
		return err
	}

	res := p.topic.Publish(ctx, &pubsub.Message{
		Data:       []byte(enc.body),
		Attributes: map[string]string{attrEventKind: enc.kind},
	})
	serverID, err := res.Get(ctx)
	if err != nil {
		logFailed(p.log, p, err)
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	logDelivered(p.log, p, serverID)
	return nil
}

// Close flushes pending messages and releases the client connection.
func (p *pubsubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
