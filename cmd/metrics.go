package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v3"
)

// Metrics prints the client's request, retry and cache counters in the
// Prometheus text exposition format. Runtime collectors on the default
// registry are filtered out.
func (r *Runner) Metrics(ctx context.Context, cmd *cli.Command) error {
	families, err := r.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "dubplate_") {
			continue
		}
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}

	if buf.Len() == 0 {
		return r.writePlain("No metrics recorded\n")
	}
	return r.writePlain("%s", buf.String())
}
