package kitchen

import "sort"

// ObserverJoinRequest registers a read-only session that receives JSON FRAME messages on
// FrameOut. The kitchen closes FrameOut when the session leaves or the round ends.
type ObserverJoinRequest struct {
	SessionID   string
	FrameOut    chan []byte
	EveryNTicks int
}

type observerClient struct {
	id    string
	out   chan []byte
	every uint64
}

func (k *Kitchen) handleObserverJoin(req ObserverJoinRequest) {
	if req.SessionID == "" || req.FrameOut == nil {
		return
	}
	if req.EveryNTicks < 1 {
		req.EveryNTicks = 1
	}
	if old := k.observers[req.SessionID]; old != nil {
		close(old.out)
	}
	k.observers[req.SessionID] = &observerClient{
		id:    req.SessionID,
		out:   req.FrameOut,
		every: uint64(req.EveryNTicks),
	}
}

func (k *Kitchen) handleObserverLeave(sessionID string) {
	c := k.observers[sessionID]
	if c == nil {
		return
	}
	delete(k.observers, sessionID)
	close(c.out)
}

// RequestObserverLeave queues a leave without blocking. It is safe to call from any goroutine,
// including after Run has returned.
func (k *Kitchen) RequestObserverLeave(sessionID string) {
	select {
	case k.observerLeave <- sessionID:
	default:
	}
}

func (k *Kitchen) closeObservers() {
	for _, c := range k.sortedObservers() {
		delete(k.observers, c.id)
		close(c.out)
	}
}

func (k *Kitchen) sortedObservers() []*observerClient {
	out := make([]*observerClient, 0, len(k.observers))
	for _, c := range k.observers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
