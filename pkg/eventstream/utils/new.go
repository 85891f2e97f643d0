// Package eventstreamutils is the eventstream utility package
package eventstreamutils

import (
	"fmt"

	"github.com/ledgerlens/ledgerlens/pkg/eventstream"
	"github.com/ledgerlens/ledgerlens/pkg/eventstream/kafka"
	"github.com/ledgerlens/ledgerlens/pkg/eventstream/nop"
)

type NewPublisherOpts struct {
	ProviderType string
	Brokers      []string
	Topic        string
}

// NewPublisher creates the configured answer event publisher.
func NewPublisher(o *NewPublisherOpts) (eventstream.Publisher, error) {
	switch o.ProviderType {
	case "", "nop":
		return nop.NewPublisher(), nil
	case "kafka":
		return kafka.NewPublisher(kafka.Config{
			Brokers: o.Brokers,
			Topic:   o.Topic,
		})
	default:
		return nil, fmt.Errorf("unsupported eventstream provider: %s", o.ProviderType)
	}
}
