package kitchen

import (
	"encoding/json"
	"errors"
)

// TickLogEntry is one journal line: what went into a tick and the digest after it.
type TickLogEntry struct {
	Tick        uint64       `json:"tick"`
	Inputs      []InputEvent `json:"inputs,omitempty"`
	RemainingMs int          `json:"remaining_ms"`
	Score       int          `json:"score"`
	Over        bool         `json:"over,omitempty"`
	Digest      string       `json:"digest"`
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type teeLogger []TickLogger

// TeeTickLoggers fans each entry out to every non-nil logger. All loggers are written even
// when some fail; the errors are joined.
func TeeTickLoggers(loggers ...TickLogger) TickLogger {
	var t teeLogger
	for _, l := range loggers {
		if l != nil {
			t = append(t, l)
		}
	}
	return t
}

func (t teeLogger) WriteTick(e TickLogEntry) error {
	var errs []error
	for _, l := range t {
		if err := l.WriteTick(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (k *Kitchen) step(inputs []InputEvent) {
	if k.over {
		return
	}
	nowTick := k.tick.Load()

	var recorded []InputEvent
	if k.remainingMs <= 0 {
		k.endRound(nowTick)
	} else {
		recorded = make([]InputEvent, 0, len(inputs))
		for _, ev := range inputs {
			if k.player(ev.Player) == nil {
				continue
			}
			if _, ok := signalNames[ev.Signal]; !ok {
				continue
			}
			k.applyInput(ev)
			recorded = append(recorded, ev)
		}

		k.remainingMs = max(k.remainingMs-k.cfg.TickMs, 0)

		for _, p := range k.players {
			k.stepPlayer(p)
		}
		k.tickProcessors()
	}

	k.publish(nowTick)

	digest := k.stateDigest(nowTick)
	if k.tickLogger != nil {
		_ = k.tickLogger.WriteTick(TickLogEntry{
			Tick:        nowTick,
			Inputs:      recorded,
			RemainingMs: k.remainingMs,
			Score:       k.score,
			Over:        k.over,
			Digest:      digest,
		})
	}
	k.tick.Add(1)
}

func (k *Kitchen) stepPlayer(p *Player) {
	f := k.playerCell(p)
	it := k.itemTarget(p, f)
	st := k.stationTarget(p, f)
	k.move(p, st)
	if p.Interact {
		k.interact(p, st, it)
		p.Interact = false
	}
}

// endRound halts everyone, drops all items and freezes the score.
func (k *Kitchen) endRound(nowTick uint64) {
	for _, p := range k.players {
		p.VX, p.VY = 0, 0
		p.Interact = false
		p.Carrying = 0
	}
	for _, s := range k.stations {
		s.Held = 0
		s.TimerMs = s.MaxTimerMs
	}
	k.items.clear()
	k.over = true
	k.result = Result{
		RoundID:   k.cfg.RoundID,
		Players:   k.cfg.Players,
		Seed:      k.cfg.Seed,
		Score:     k.score,
		Ticks:     nowTick,
		RoundMs:   k.cfg.RoundMs,
		Delivered: k.delivered,
	}
}

// publish hands the tick's frame to the frame sink and to subscribed observers.
func (k *Kitchen) publish(nowTick uint64) {
	if k.frameSink == nil && len(k.observers) == 0 {
		return
	}
	frame := k.Frame()
	if k.frameSink != nil {
		sendLatest(k.frameSink, frame)
	}
	if len(k.observers) == 0 {
		return
	}
	b, err := json.Marshal(frame)
	if err != nil {
		return
	}
	for _, c := range k.sortedObservers() {
		if k.over || nowTick%c.every == 0 {
			sendLatest(c.out, b)
		}
	}
}
