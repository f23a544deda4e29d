package advisor

import (
	"context"
	"time"

	"github.com/theirongolddev/dials/internal/model"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// Generator turns a prompt into structured advice.
type Generator interface {
	Generate(ctx context.Context, prompt string) (model.Advice, error)
}

// Advisor wraps a Generator so that every failure degrades to
// model.FallbackAdvice. Concurrent requests for the same summary share one
// call.
type Advisor struct {
	gen     Generator
	log     *log.Logger
	timeout time.Duration
	group   singleflight.Group
}

// New returns an Advisor. A nil gen makes every call return the fallback.
func New(gen Generator, logger *log.Logger, timeout time.Duration) *Advisor {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Advisor{gen: gen, log: logger, timeout: timeout}
}

// Enabled reports whether a generator is configured.
func (a *Advisor) Enabled() bool {
	return a.gen != nil
}

// Advise returns advice for s. It never fails; substituted advice has
// Fallback set.
func (a *Advisor) Advise(ctx context.Context, s Summary) model.Advice {
	if a.gen == nil {
		a.log.Debug("no advice key configured, using fallback")
		return model.FallbackAdvice()
	}

	prompt, err := RenderPrompt(s)
	if err != nil {
		a.log.Error("building advice prompt", "err", err)
		return model.FallbackAdvice()
	}

	v, err, shared := a.group.Do(prompt, func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.gen.Generate(ctx, prompt)
	})
	if err != nil {
		a.log.Warn("advice request failed, using fallback", "err", err)
		return model.FallbackAdvice()
	}
	if shared {
		a.log.Debug("advice shared with an in-flight request")
	}

	adv := v.(model.Advice)
	out := adv
	out.Tips = append([]string(nil), adv.Tips...)
	out.Fallback = false
	return out
}
