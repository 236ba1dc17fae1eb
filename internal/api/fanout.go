package api

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

// PanelRequest names one call in a concurrent batch. The Name keys the
// result; it has no meaning to the backend.
type PanelRequest struct {
	Name string
	Op   Operation
	Req  Request
}

// PanelResult is one outcome of a batch.
type PanelResult struct {
	Name string
	Data json.RawMessage
	Err  error
}

// FetchAll issues the requests concurrently against d and returns results
// keyed by panel name. When any request fails the joined error of all
// failures is returned alongside the partial results. An optional limiter
// throttles the fan-out; pass nil for unbounded.
func FetchAll(ctx context.Context, d Doer, limiter *rate.Limiter, requests []PanelRequest) (map[string]PanelResult, error) {
	results := make(map[string]PanelResult, len(requests))
	ch := make(chan PanelResult, len(requests))

	var wg sync.WaitGroup
	for _, pr := range requests {
		wg.Add(1)
		go func(pr PanelRequest) {
			defer wg.Done()
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					ch <- PanelResult{Name: pr.Name, Err: err}
					return
				}
			}
			data, err := d.Call(ctx, pr.Op, pr.Req)
			ch <- PanelResult{Name: pr.Name, Data: data, Err: err}
		}(pr)
	}
	wg.Wait()
	close(ch)

	var errs []error
	for res := range ch {
		results[res.Name] = res
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return results, errors.Join(errs...)
}
