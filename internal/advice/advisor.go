package advice

import (
	"context"
	"log"
	"time"
)

// Advisor never fails: errors and timeouts are logged and replaced by
// Fallback.
type Advisor struct {
	Provider Provider
	Timeout  time.Duration
}

func NewAdvisor(p Provider, timeout time.Duration) *Advisor {
	return &Advisor{Provider: p, Timeout: timeout}
}

func (a *Advisor) Get(ctx context.Context, mode, situation string) Advice {
	if nil == a || nil == a.Provider {
		return Fallback
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	adv, err := a.Provider.Advise(ctx, mode, situation)
	if nil != err {
		log.Println("unable to fetch advice:", err)
		return Fallback
	}
	return adv
}

// Fetch runs Get in the background and delivers exactly one Advice on the
// returned channel.
func (a *Advisor) Fetch(ctx context.Context, mode, situation string) <-chan Advice {
	ch := make(chan Advice, 1)
	go func() {
		ch <- a.Get(ctx, mode, situation)
	}()
	return ch
}
