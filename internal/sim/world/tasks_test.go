package world

import (
	"container/heap"
	"testing"
)

func TestTaskQueue_OrdersByFireTickThenSeq(t *testing.T) {
	var q taskQueue
	heap.Push(&q, &task{fireTick: 30, seq: 1, key: "late"})
	heap.Push(&q, &task{fireTick: 10, seq: 3, key: "early"})
	heap.Push(&q, &task{fireTick: 10, seq: 2, key: "earlier"})

	want := []string{"earlier", "early", "late"}
	for _, key := range want {
		got := heap.Pop(&q).(*task)
		if got.key != key {
			t.Fatalf("pop = %s, want %s", got.key, key)
		}
	}
}

func TestScheduleTask_RearmCancelsPrevious(t *testing.T) {
	w := newTestWorld(t)
	p := joinPlayer(t, w, "timer")
	p.IsAlive = false

	w.scheduleTask(taskRespawn, p.ID, 5)
	w.scheduleTask(taskRespawn, p.ID, 9)

	// The superseded entry stays in the heap but is skipped when popped.
	w.runTasks(5)
	if p.IsAlive {
		t.Fatalf("cancelled task fired")
	}
	w.runTasks(9)
	if !p.IsAlive {
		t.Fatalf("re-armed task never fired")
	}
}

func TestCancelTask_UnknownKeyIsNoop(t *testing.T) {
	w := newTestWorld(t)
	w.cancelTask(taskRespawn, "P999999")
	w.runTasks(100)
}

func TestRunTasks_DoesNotFireFutureWork(t *testing.T) {
	w := newTestWorld(t)
	p := joinPlayer(t, w, "patient")
	p.IsAlive = false

	w.scheduleTask(taskRespawn, p.ID, 50)
	w.runTasks(49)
	if p.IsAlive {
		t.Fatalf("future task fired early")
	}
	if w.tasks.Len() != 1 {
		t.Fatalf("queue drained early: %d", w.tasks.Len())
	}
	w.runTasks(50)
	if !p.IsAlive {
		t.Fatalf("due task not fired")
	}
}
