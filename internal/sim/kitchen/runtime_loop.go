package kitchen

import (
	"context"
	"time"
)

// Run drives the round at one tick per TickMs until the round ends (returns nil), Stop is
// called (returns nil) or ctx is cancelled.
func (k *Kitchen) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(k.cfg.TickMs) * time.Millisecond)
	defer ticker.Stop()
	defer k.closeObservers()

	var pending []InputEvent

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-k.stop:
			return nil
		case ev := <-k.inputs:
			if !k.over {
				pending = append(pending, ev)
			}
		case req := <-k.observerJoin:
			k.handleObserverJoin(req)
		case id := <-k.observerLeave:
			k.handleObserverLeave(id)
		case <-ticker.C:
			k.step(pending)
			pending = pending[:0]
			if k.over {
				return nil
			}
		}
	}
}

func (k *Kitchen) Stop() { k.stopOnce.Do(func() { close(k.stop) }) }

// StepOnce advances the kitchen by a single tick with the same ordering as Run.
// It is intended for deterministic replays and tests.
func (k *Kitchen) StepOnce(inputs []InputEvent) (tick uint64, digest string) {
	tick = k.tick.Load()
	k.step(inputs)
	return tick, k.stateDigest(tick)
}

// sendLatest never blocks: when ch is full the oldest value is dropped.
func sendLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
