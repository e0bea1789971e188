package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultDeliveryTimeout bounds one sink delivery so a hung sink cannot stall the run.
const DefaultDeliveryTimeout = 10 * time.Second

// Fanout announces a digest to every configured sink, in configuration order.
type Fanout struct {
	sinks   []Publisher
	timeout time.Duration
}

// NewFanout drops nil publishers and applies DefaultDeliveryTimeout.
func NewFanout(pubs []Publisher) *Fanout {
	sinks := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p != nil {
			sinks = append(sinks, p)
		}
	}
	return &Fanout{sinks: sinks, timeout: DefaultDeliveryTimeout}
}

// WithDeliveryTimeout overrides the per-sink deadline. Non-positive values are ignored.
func (f *Fanout) WithDeliveryTimeout(d time.Duration) *Fanout {
	if f != nil && d > 0 {
		f.timeout = d
	}
	return f
}

// Publish delivers evt to each sink under its own deadline and reports how many accepted it.
// One failing sink never prevents delivery to the others.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil {
		return 0, nil
	}

	delivered := 0
	var errs []error
	for _, p := range f.sinks {
		if err := f.deliver(ctx, p, evt); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}

func (f *Fanout) deliver(ctx context.Context, p Publisher, evt Event) error {
	sinkCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := p.Publish(sinkCtx, evt); err != nil {
		return fmt.Errorf("%s publisher %q: %w", p.Type(), p.ID(), err)
	}
	return nil
}

// Size returns the number of sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// Targets lists sinks as "type:id" for logging.
func (f *Fanout) Targets() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.sinks))
	for _, p := range f.sinks {
		out = append(out, p.Type()+":"+p.ID())
	}
	return out
}

// Close releases sinks that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, p := range f.sinks {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s publisher %q: %w", p.Type(), p.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
