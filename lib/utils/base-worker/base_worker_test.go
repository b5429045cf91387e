package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBaseWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run(`runs periodically and survives panic`, func(t *testing.T) {
		var calls int32
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		worker := NewInstance("test", time.Millisecond, time.Millisecond)
		go func() {
			defer close(done)
			worker.Run(ctx, func(ctx context.Context) {
				if atomic.AddInt32(&calls, 1) == 1 {
					panic("first run")
				}
			})
		}()
		require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, time.Millisecond)
		cancel()
		<-done
	})
}
