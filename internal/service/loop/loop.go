package loop

import (
	"context"
	"sync"
)

const defaultBuffer = 64

// Loop runs posted closures one at a time on a single goroutine. State touched
// only from inside posted closures needs no further locking.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

func New() *Loop {
	return &Loop{
		tasks: make(chan func(), defaultBuffer),
		done:  make(chan struct{}),
	}
}

// Post enqueues f. It reports false once the loop has stopped. Never call
// Post from inside a posted closure with a full buffer.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}
