package thread

import (
	"fmt"
	"sync/atomic"
)

// Factory creates threads on demand. NewThread may return nil when no thread
// can be created; callers treat that as a failed admission.
type Factory interface {
	NewThread(run func()) *Thread
}

type FactoryFunc func(run func()) *Thread

func (f FactoryFunc) NewThread(run func()) *Thread {
	return f(run)
}

var poolNumber atomic.Int64

type namedFactory struct {
	prefix       string
	threadNumber atomic.Int64
}

// DefaultFactory names threads pool-N-thread-M, N being unique per factory.
func DefaultFactory() Factory {
	return &namedFactory{prefix: fmt.Sprintf("pool-%d-thread-", poolNumber.Add(1))}
}

// NamedFactory names threads <prefix>-M.
func NamedFactory(prefix string) Factory {
	return &namedFactory{prefix: prefix + "-"}
}

func (f *namedFactory) NewThread(run func()) *Thread {
	return New(fmt.Sprintf("%s%d", f.prefix, f.threadNumber.Add(1)), run)
}
