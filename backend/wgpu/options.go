package wgpu

import (
	"log/slog"
	"time"

	"github.com/gogpu/gputypes"
)

// Option configures an API.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	waitTimeout time.Duration
	labelPrefix string
	limits      gputypes.Limits
}

func defaultOptions() options {
	return options{
		waitTimeout: 5 * time.Second,
		labelPrefix: "wgsafe",
		limits:      gputypes.DefaultLimits(),
	}
}

// WithLogger sets the backend logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWaitTimeout bounds how long DevicePoll(wait=true) blocks per
// submission. The default is five seconds.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) {
		o.waitTimeout = d
	}
}

// WithLabelPrefix sets the prefix of hal debug labels.
func WithLabelPrefix(prefix string) Option {
	return func(o *options) {
		o.labelPrefix = prefix
	}
}

// WithLimits sets the limits requested when opening devices.
func WithLimits(limits gputypes.Limits) Option {
	return func(o *options) {
		o.limits = limits
	}
}
