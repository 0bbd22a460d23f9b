package world

import "container/heap"

// Scheduled one-shot work, drained at tick boundaries. Re-arming a key
// cancels the previous pending task, so duplicate revivals cannot happen.
type taskKind int

const (
	taskRespawn taskKind = iota + 1
	taskGangWar
)

type task struct {
	fireTick  uint64
	seq       uint64 // FIFO tie-break for equal fire ticks
	kind      taskKind
	key       string // player id or war id
	cancelled bool
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].fireTick != q[j].fireTick {
		return q[i].fireTick < q[j].fireTick
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

func taskID(kind taskKind, key string) string {
	switch kind {
	case taskRespawn:
		return "respawn:" + key
	case taskGangWar:
		return "war:" + key
	}
	return key
}

func (w *World) scheduleTask(kind taskKind, key string, fireTick uint64) {
	id := taskID(kind, key)
	if prev := w.taskIndex[id]; prev != nil {
		prev.cancelled = true
	}
	w.taskSeq++
	t := &task{fireTick: fireTick, seq: w.taskSeq, kind: kind, key: key}
	w.taskIndex[id] = t
	heap.Push(&w.tasks, t)
}

func (w *World) cancelTask(kind taskKind, key string) {
	id := taskID(kind, key)
	if t := w.taskIndex[id]; t != nil {
		t.cancelled = true
		delete(w.taskIndex, id)
	}
}

// runTasks fires every task due at or before nowTick, in (fireTick, seq)
// order. Cancelled entries are skipped when popped.
func (w *World) runTasks(nowTick uint64) {
	for w.tasks.Len() > 0 && w.tasks[0].fireTick <= nowTick {
		t := heap.Pop(&w.tasks).(*task)
		if t.cancelled {
			continue
		}
		if w.taskIndex[taskID(t.kind, t.key)] == t {
			delete(w.taskIndex, taskID(t.kind, t.key))
		}
		switch t.kind {
		case taskRespawn:
			w.respawnPlayer(t.key)
		case taskGangWar:
			w.resolveGangWar(t.key)
		}
	}
}
