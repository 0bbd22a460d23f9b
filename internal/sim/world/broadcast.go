package world

import "encoding/json"

// broadcast fans a message out to every connected session. Marshal once,
// drop-latest per client so one slow reader never stalls the tick.
func (w *World) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.log.Printf("broadcast marshal: %v", err)
		return
	}
	for _, cl := range w.clients {
		sendLatest(cl.Out, b)
	}
}

func (w *World) sendTo(playerID string, v any) {
	cl := w.clients[playerID]
	if cl == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	sendLatest(cl.Out, b)
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
