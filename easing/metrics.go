package easing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/plus3/glide/easing"

type instruments struct {
	windows       metric.Int64Counter
	invalidations metric.Int64Counter
	blended       metric.Int64Counter
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	windows, err := meter.Int64Counter(
		"glide.easing.windows",
		metric.WithDescription("Entity windows closed by the fixed-step capture phase"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating windows counter: %w", err)
	}

	invalidations, err := meter.Int64Counter(
		"glide.easing.invalidations",
		metric.WithDescription("Channels reset because their transform was written outside a window"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating invalidations counter: %w", err)
	}

	blended, err := meter.Int64Counter(
		"glide.easing.blended",
		metric.WithDescription("Display transforms written by the render-time blend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating blended counter: %w", err)
	}

	return &instruments{
		windows:       windows,
		invalidations: invalidations,
		blended:       blended,
	}, nil
}

func (i *instruments) addWindows(n int) {
	if n > 0 {
		i.windows.Add(context.Background(), int64(n))
	}
}

func (i *instruments) addBlended(n int) {
	if n > 0 {
		i.blended.Add(context.Background(), int64(n))
	}
}

func (i *instruments) addInvalidation(ch Channel) {
	i.invalidations.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("channel", ch.String())))
}
