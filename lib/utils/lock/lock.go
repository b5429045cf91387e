package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMu  sync.Mutex
	lockMap = map[string]chan struct{}{}
)

// WithDelay выполняет safeCode под именованной блокировкой.
// Если блокировку не удалось получить за wait (или ctx завершился), возвращает success = false без выполнения
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		lockMu.Lock()
		held, locked := lockMap[key]
		if !locked {
			lockMap[key] = make(chan struct{})
			lockMu.Unlock()
			break
		}
		lockMu.Unlock()
		select {
		case <-held:
		case <-timer.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		}
	}
	defer unlock(key)
	return true, safeCode()
}

func unlock(key string) {
	lockMu.Lock()
	defer lockMu.Unlock()
	if held, ok := lockMap[key]; ok {
		close(held)
		delete(lockMap, key)
	}
}
