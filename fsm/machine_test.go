package fsm

import (
	"strings"
	"testing"
)

// testActor records hook invocations so tests can assert ordering.
type testActor struct {
	calls []string
}

func newTestMachine(t *testing.T, a *testActor) *Machine[*testActor] {
	t.Helper()
	m := NewMachine(a, "test", StateIdle)

	idle := m.Configure(StateIdle, StateConfig[*testActor]{
		Name: "test_idle",
		OnEvent: func(owner *testActor, ev Event) {
			switch ev {
			case EventMove:
				m.ChangeState(StateWalking)
			case EventDie:
				m.ChangeState(StateDead)
			case EventNone:
				m.SyncPrevious()
			}
		},
		Entry: func(owner *testActor) { owner.calls = append(owner.calls, "enter_idle") },
		Exit:  func(owner *testActor) { owner.calls = append(owner.calls, "exit_idle") },
	})
	idle.Allow(StateWalking, StateDead)

	walking := m.Configure(StateWalking, StateConfig[*testActor]{
		Name: "test_walking",
		OnEvent: func(owner *testActor, ev Event) {
			if ev == EventNone {
				m.ChangeState(StateIdle)
			}
		},
		Entry: func(owner *testActor) { owner.calls = append(owner.calls, "enter_walking") },
		Exit:  func(owner *testActor) { owner.calls = append(owner.calls, "exit_walking") },
	})
	walking.Allow(StateIdle, StateDead)

	dead := m.Configure(StateDead, StateConfig[*testActor]{
		Name: "test_dead",
		Update: func(owner *testActor) {
			m.ChangeState(StateRespawn)
		},
	})
	dead.Allow(StateRespawn)

	respawn := m.Configure(StateRespawn, StateConfig[*testActor]{Name: "test_respawn"})
	respawn.Allow(StateIdle)

	return m
}

func TestChangeStateLegality(t *testing.T) {
	cases := []struct {
		name    string
		prep    func(m *Machine[*testActor])
		target  State
		want    bool
		current State
	}{
		{"idle_to_walking", nil, StateWalking, true, StateWalking},
		{"idle_to_dead", nil, StateDead, true, StateDead},
		{"idle_to_respawn_rejected", nil, StateRespawn, false, StateIdle},
		{"idle_to_shield_unwired_rejected", nil, StateShield, false, StateIdle},
		{
			"dead_to_walking_rejected",
			func(m *Machine[*testActor]) { m.ChangeState(StateDead) },
			StateWalking, false, StateDead,
		},
		{
			"dead_to_respawn",
			func(m *Machine[*testActor]) { m.ChangeState(StateDead) },
			StateRespawn, true, StateRespawn,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := &testActor{}
			m := newTestMachine(t, a)
			if c.prep != nil {
				c.prep(m)
			}
			if got := m.ChangeState(c.target); got != c.want {
				t.Fatalf("ChangeState(%s) = %v, want %v", c.target, got, c.want)
			}
			if m.Current() != c.current {
				t.Fatalf("current = %s, want %s", m.Current(), c.current)
			}
		})
	}
}

func TestChangeStateLifecycleOrder(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	if !m.ChangeState(StateWalking) {
		t.Fatal("legal transition rejected")
	}
	want := []string{"exit_idle", "enter_walking"}
	if len(a.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", a.calls, want)
	}
	for i := range want {
		if a.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", a.calls, want)
		}
	}
	if m.Previous() != StateIdle {
		t.Fatalf("previous = %s, want %s", m.Previous(), StateIdle)
	}
}

func TestRejectedTransitionLeavesStateUntouched(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	if m.ChangeState(StateRespawn) {
		t.Fatal("illegal transition accepted")
	}
	if len(a.calls) != 0 {
		t.Fatalf("hooks ran on rejected transition: %v", a.calls)
	}
	if m.Current() != StateIdle || m.Previous() != StateCount {
		t.Fatalf("state mutated on rejected transition: current=%s previous=%s", m.Current(), m.Previous())
	}
}

func TestCanEnterIsPure(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	for i := 0; i < 3; i++ {
		if !m.CanEnter(StateWalking) {
			t.Fatalf("CanEnter(walking) changed answer on call %d", i)
		}
		if m.CanEnter(StateRespawn) {
			t.Fatalf("CanEnter(respawn) changed answer on call %d", i)
		}
	}
	if m.Current() != StateIdle {
		t.Fatal("CanEnter mutated current state")
	}
}

func TestHandleEventDispatch(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	m.HandleEvent(EventMove)
	if m.Current() != StateWalking {
		t.Fatalf("EventMove in idle: current = %s, want %s", m.Current(), StateWalking)
	}
	if m.Previous() != StateIdle {
		t.Fatalf("previous = %s, want %s", m.Previous(), StateIdle)
	}

	// walking handler maps EventNone back to idle
	m.HandleEvent(EventNone)
	if m.Current() != StateIdle {
		t.Fatalf("EventNone in walking: current = %s, want %s", m.Current(), StateIdle)
	}
}

func TestHandleEventOnInertStateIsNoop(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	m.ChangeState(StateDead)
	m.UpdateState() // dead Update transitions to respawn, which has no handler
	if m.Current() != StateRespawn {
		t.Fatalf("current = %s, want %s", m.Current(), StateRespawn)
	}
	m.HandleEvent(EventAttack)
	m.HandleEvent(EventMove)
	if m.Current() != StateRespawn {
		t.Fatal("inert state reacted to events")
	}
}

func TestSyncPrevious(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	m.ChangeState(StateWalking)
	m.ChangeState(StateIdle)
	if m.Previous() != StateWalking {
		t.Fatalf("previous = %s, want %s", m.Previous(), StateWalking)
	}
	m.HandleEvent(EventNone) // idle handler resyncs
	if m.Previous() != StateIdle {
		t.Fatalf("previous after EventNone = %s, want %s", m.Previous(), StateIdle)
	}
}

func TestHookReentrancyRejected(t *testing.T) {
	old := logf
	defer func() { logf = old }()
	var logged []string
	logf = func(format string, args ...any) {
		logged = append(logged, format)
	}

	a := &testActor{}
	m := NewMachine(a, "reentrant", StateIdle)

	var chained bool
	idle := m.Configure(StateIdle, StateConfig[*testActor]{
		Name: "idle",
		Exit: func(owner *testActor) {
			// must be rejected: transitions cannot chain inside a hook
			chained = m.ChangeState(StateDead)
		},
	})
	idle.Allow(StateWalking, StateDead)
	walking := m.Configure(StateWalking, StateConfig[*testActor]{Name: "walking"})
	walking.Allow(StateIdle)
	m.Configure(StateDead, StateConfig[*testActor]{Name: "dead"})

	if !m.ChangeState(StateWalking) {
		t.Fatal("outer transition rejected")
	}
	if chained {
		t.Fatal("ChangeState succeeded inside an Exit hook")
	}
	if m.Current() != StateWalking {
		t.Fatalf("current = %s, want %s", m.Current(), StateWalking)
	}
	if len(logged) == 0 {
		t.Fatal("re-entrant attempt was not reported")
	}
}

func TestUpdateStateMayTransition(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	m.ChangeState(StateDead)
	m.UpdateState()
	if m.Current() != StateRespawn {
		t.Fatalf("dead Update: current = %s, want %s", m.Current(), StateRespawn)
	}
}

func TestDumpConfigListsWiredStates(t *testing.T) {
	a := &testActor{}
	m := newTestMachine(t, a)

	dump := m.DumpConfig()
	for _, want := range []string{"test_idle", "test_walking", "test_dead", "test_respawn"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("dump missing %q:\n%s", want, dump)
		}
	}
	if strings.Contains(dump, "shield") {
		t.Fatalf("dump lists unwired state:\n%s", dump)
	}
}
