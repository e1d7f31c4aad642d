package executor

import (
	"go.uber.org/zap"

	"github.com/tupyy/taskpool/pkg/thread"
)

type Option func(*Pool)

func WithThreadFactory(f thread.Factory) Option {
	return func(p *Pool) {
		p.threadFactory.Store(&factoryBox{f})
	}
}

func WithRejectedExecutionHandler(h RejectedExecutionHandler) Option {
	return func(p *Pool) {
		p.handler.Store(&handlerBox{h})
	}
}

func WithHooks(h Hooks) Option {
	return func(p *Pool) {
		p.hooks = h
	}
}

// WithCoreThreadTimeOut lets core workers time out like the others. It
// requires a positive keep-alive.
func WithCoreThreadTimeOut(v bool) Option {
	return func(p *Pool) {
		p.allowCoreThreadTimeOut.Store(v)
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Pool) {
		p.log = l
	}
}
