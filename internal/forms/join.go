package forms

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Channel is one dependent upload scheduled after the owning entity exists.
type Channel struct {
	Name string
	Run  func(ctx context.Context) error
}

// ChannelResult is the outcome of one channel.
type ChannelResult struct {
	Name string
	Err  error
}

func (r ChannelResult) OK() bool { return r.Err == nil }

// join runs every channel concurrently and waits for all of them. A failing
// channel never cancels its siblings. progress is called once per resolved
// channel with round(resolved/total*100), serialized and in increasing order.
func join(ctx context.Context, channels []Channel, progress func(int)) []ChannelResult {
	results := make([]ChannelResult, len(channels))
	if len(channels) == 0 {
		return results
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		resolved int
	)
	for i, ch := range channels {
		g.Go(func() error {
			err := ch.Run(ctx)
			mu.Lock()
			defer mu.Unlock()
			results[i] = ChannelResult{Name: ch.Name, Err: err}
			resolved++
			if progress != nil {
				progress(percent(resolved, len(channels)))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func percent(done, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
