package lock

import (
	"context"
	"sync"
	"sync/atomic"
)

// Resource ограничивает одновременные обращения к внешнему генератору (ИИ)

var Resource = newResourceLock()

func InitResourceLock(ctx context.Context) {
	Resource = newResourceLock()
	resource := Resource
	go func() {
		<-ctx.Done()
		resource.Stop()
	}()
}

type ResourceLock struct {
	slot      chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
	mu        sync.Mutex
	holder    string
	waitCount int32
}

func newResourceLock() *ResourceLock {
	return &ResourceLock{
		slot:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Acquire захватывает ресурс для функции functionName.
// Возвращает false, если ctx завершился или блокировка остановлена
func (c *ResourceLock) Acquire(ctx context.Context, functionName string) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)

	select {
	case <-c.stopCh:
		return false
	default:
	}
	select {
	case c.slot <- struct{}{}:
	case <-ctx.Done():
		return false
	case <-c.stopCh:
		return false
	}
	c.mu.Lock()
	c.holder = functionName
	c.mu.Unlock()
	return true
}

// Release освобождает ресурс, вызов не владельцем игнорируется
func (c *ResourceLock) Release(functionName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.holder != functionName {
		return
	}
	c.holder = ""
	<-c.slot
}

// Stop будит все ожидающие горутины, новые захваты не выполняются
func (c *ResourceLock) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *ResourceLock) Holder() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holder
}

// WaitCount количество горутин в Acquire
func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
