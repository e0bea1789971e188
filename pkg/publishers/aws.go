package publishers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// attrEventKind is the message attribute carrying Event.Kind on every sink.
const attrEventKind = "event_kind"

// loadAWSConfig resolves an aws.Config for region, pinning static credentials when configured.
func loadAWSConfig(ctx context.Context, region string, creds *AWSCredentials) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if creds.static() {
		provider := credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
		opts = append(opts, awscfg.WithCredentialsProvider(provider))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// encodedEvent is an Event serialised once for a queue or topic message.
type encodedEvent struct {
	body string
	kind string
}

func encodeEvent(evt Event) (encodedEvent, error) {
	if evt.Kind == "" {
		evt.Kind = EventKindDigestGenerated
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return encodedEvent{}, fmt.Errorf("marshal event: %w", err)
	}
	return encodedEvent{body: string(payload), kind: evt.Kind}, nil
}

// endpointOverride returns nil for an empty endpoint so the SDK resolver stays in charge.
func endpointOverride(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}
