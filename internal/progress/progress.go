// Package progress adapts long-running mesh operations to a host that wants
// coarse, rate-limited progress reports and cooperative cancellation.
package progress

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/internal/config"
	"github.com/Faultbox/meshlayer/internal/logger"
	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// Sink receives the reports that survive rate limiting.
type Sink func(percent int, msg string)

// Reporter turns a Sink into a mesh.CallBack.
//
// A report is dropped when its percent equals the previous one or when it
// arrives less than the configured interval after the last delivered report.
// Cancel may be called from any goroutine; the next report returns false.
type Reporter struct {
	interval time.Duration
	sink     Sink
	log      *zap.Logger
	logMsgs  bool
	now      func() time.Time

	lastPercent int
	lastSent    time.Time
	delivered   int
	canceled    atomic.Bool
}

// New creates a Reporter from the progress configuration. sink may be nil.
func New(cfg config.ProgressConfig, sink Sink) *Reporter {
	return &Reporter{
		interval:    cfg.MinInterval,
		sink:        sink,
		log:         logger.Named("progress"),
		logMsgs:     cfg.LogMessages,
		now:         time.Now,
		lastPercent: -1,
	}
}

// Report handles one progress report and tells the caller whether to go on.
func (r *Reporter) Report(percent int, msg string) bool {
	if r.canceled.Load() {
		return false
	}
	if percent == r.lastPercent {
		return true
	}
	r.lastPercent = percent

	now := r.now()
	if !r.lastSent.IsZero() && now.Sub(r.lastSent) < r.interval {
		return true
	}
	r.lastSent = now
	r.delivered++

	if r.logMsgs {
		r.log.Debug(msg, zap.Int("percent", percent))
	}
	if r.sink != nil {
		r.sink(percent, msg)
	}
	return !r.canceled.Load()
}

// CallBack returns Report as a mesh.CallBack.
func (r *Reporter) CallBack() mesh.CallBack {
	return r.Report
}

// Cancel makes every later report ask the operation to stop.
func (r *Reporter) Cancel() {
	r.canceled.Store(true)
}

// Canceled reports whether Cancel was called.
func (r *Reporter) Canceled() bool {
	return r.canceled.Load()
}

// Delivered returns how many reports reached the sink.
func (r *Reporter) Delivered() int {
	return r.delivered
}

// Reset rearms the reporter for a new operation.
func (r *Reporter) Reset() {
	r.lastPercent = -1
	r.lastSent = time.Time{}
	r.delivered = 0
	r.canceled.Store(false)
}
