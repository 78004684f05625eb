package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"insurance_desk/pkg/metrics"
	"insurance_desk/pkg/probe"
)

// Observability runs the liveness/readiness probe and the prometheus
// endpoint on their own ports. An empty address disables that server.
type Observability struct {
	Name                 string
	Version              string
	ProbeListenAddress   string
	MetricsListenAddress string
	Ready                probe.ReadinessFunc
}

func (o Observability) Run(ctx context.Context, g *errgroup.Group) {
	if o.ProbeListenAddress != "" {
		probeServer := probe.NewServer(
			o.ProbeListenAddress,
			probe.Options{
				Name:    o.Name,
				Version: o.Version,
			},
			o.Ready,
		)

		g.Go(func() error {
			if err := probeServer.Run(ctx); err != nil {
				return fmt.Errorf("probeServer.Run: %w", err)
			}

			return nil
		})
	}

	if o.MetricsListenAddress != "" {
		prometheusServer := metrics.NewPrometheusServer(o.MetricsListenAddress, nil)

		g.Go(func() error {
			if err := prometheusServer.Run(ctx); err != nil {
				return fmt.Errorf("prometheusServer.Run: %w", err)
			}

			return nil
		})
	}
}
