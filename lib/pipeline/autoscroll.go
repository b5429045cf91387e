package pipeline

import (
	"sync"
	"time"
)

type ScrollConfig struct {
	EdgeZone  float64       // ширина зоны у края полосы колонок, px
	Step      float64       // сдвиг за один тик, px
	Interval  time.Duration // период тика
	MaxOffset float64       // 0 без ограничения справа
}

func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		EdgeZone: 100,
		Step:     15,
		Interval: 16 * time.Millisecond,
	}
}

// Direction вычисляет направление прокрутки по положению указателя x в полосе ширины width
func (c ScrollConfig) Direction(x, width float64) int {
	if width <= 0 {
		return 0
	}
	switch {
	case x < c.EdgeZone:
		return -1
	case x > width-c.EdgeZone:
		return 1
	}
	return 0
}

// autoScroller горутина тиков и, при заданном onScroll, горутина уведомлений.
// onScroll вызывается вне тиков, поэтому из него можно вызывать DragOver, DragEnd и Drop
type autoScroller struct {
	cfg      ScrollConfig
	onScroll func(offset float64)

	ctl  sync.Mutex // Set/Stop
	dir  int
	stop chan struct{}
	done chan struct{}

	callbacks sync.WaitGroup

	mu     sync.Mutex
	offset float64
}

func newAutoScroller(cfg ScrollConfig, onScroll func(offset float64)) *autoScroller {
	return &autoScroller{
		cfg:      cfg,
		onScroll: onScroll,
	}
}

// Set запускает прокрутку в направлении dir (-1, 1) или останавливает ее (0)
func (a *autoScroller) Set(dir int) {
	a.ctl.Lock()
	defer a.ctl.Unlock()
	if dir == a.dir {
		return
	}
	a.halt()
	if dir == 0 {
		return
	}
	a.dir = dir
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	var updates chan float64
	if a.onScroll != nil {
		updates = make(chan float64, 1)
		a.callbacks.Add(1)
		go a.dispatch(a.stop, updates)
	}
	go a.run(dir, a.stop, a.done, updates)
}

func (a *autoScroller) Stop() {
	a.ctl.Lock()
	defer a.ctl.Unlock()
	a.halt()
}

// Wait ожидает завершения уведомлений onScroll, из самого onScroll не вызывать
func (a *autoScroller) Wait() {
	a.callbacks.Wait()
}

func (a *autoScroller) Running() bool {
	a.ctl.Lock()
	defer a.ctl.Unlock()
	return a.dir != 0
}

func (a *autoScroller) Offset() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// halt вызывается под ctl, дожидается только горутины тиков
func (a *autoScroller) halt() {
	if a.stop == nil {
		a.dir = 0
		return
	}
	close(a.stop)
	<-a.done
	a.stop = nil
	a.done = nil
	a.dir = 0
}

func (a *autoScroller) run(dir int, stop <-chan struct{}, done chan<- struct{}, updates chan float64) {
	defer close(done)
	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			offset := a.tick(dir)
			if updates != nil {
				publish(updates, offset)
			}
		}
	}
}

// publish оставляет в канале только последнее смещение, отправитель один
func publish(updates chan float64, offset float64) {
	select {
	case updates <- offset:
		return
	default:
	}
	select {
	case <-updates:
	default:
	}
	updates <- offset
}

func (a *autoScroller) dispatch(stop <-chan struct{}, updates <-chan float64) {
	defer a.callbacks.Done()
	for {
		select {
		case <-stop:
			return
		case offset := <-updates:
			select {
			case <-stop:
				return
			default:
			}
			a.onScroll(offset)
		}
	}
}

func (a *autoScroller) tick(dir int) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offset += float64(dir) * a.cfg.Step
	if a.offset < 0 {
		a.offset = 0
	}
	if a.cfg.MaxOffset > 0 && a.offset > a.cfg.MaxOffset {
		a.offset = a.cfg.MaxOffset
	}
	return a.offset
}
