package rsession

import "testing"

func TestCommitRunsEffectOnceForStableToken(t *testing.T) {
	c := NewEffectCommitter()
	runs := 0
	effects := []Effect{{Path: Path("App"), Key: "e1", DepsToken: "()", Run: func() Cleanup {
		runs++
		return nil
	}}}
	c.Commit(effects)
	c.Commit(effects)
	if runs != 1 {
		t.Fatalf("got %d runs, want 1", runs)
	}
}

func TestCommitRerunsCleanupThenEffectOnTokenChange(t *testing.T) {
	c := NewEffectCommitter()
	order := []string{}
	makeEffect := func(token string) Effect {
		return Effect{Path: Path("App"), Key: "e1", DepsToken: token, Run: func() Cleanup {
			order = append(order, "run:"+token)
			return func() { order = append(order, "cleanup:"+token) }
		}}
	}
	c.Commit([]Effect{makeEffect("a")})
	c.Commit([]Effect{makeEffect("b")})

	want := []string{"run:a", "cleanup:a", "run:b"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestCommitAlwaysRerunRunsEveryTime(t *testing.T) {
	c := NewEffectCommitter()
	runs := 0
	effect := Effect{Path: Path("App"), Key: "e1", AlwaysRerun: true, Run: func() Cleanup {
		runs++
		return nil
	}}
	c.Commit([]Effect{effect})
	c.Commit([]Effect{effect})
	if runs != 2 {
		t.Fatalf("got %d runs, want 2", runs)
	}
}

func TestEvictExceptRunsCleanupForDeadPaths(t *testing.T) {
	c := NewEffectCommitter()
	cleaned := false
	c.Commit([]Effect{{Path: Path("Dead"), Key: "e1", DepsToken: "()", Run: func() Cleanup {
		return func() { cleaned = true }
	}}})
	c.EvictExcept(map[Path]struct{}{})
	if !cleaned {
		t.Fatalf("expected cleanup to run for evicted path")
	}
}

func TestUnmountAllRunsEveryCleanup(t *testing.T) {
	c := NewEffectCommitter()
	n := 0
	c.Commit([]Effect{
		{Path: Path("A"), Key: "e1", DepsToken: "()", Run: func() Cleanup { return func() { n++ } }},
		{Path: Path("B"), Key: "e1", DepsToken: "()", Run: func() Cleanup { return func() { n++ } }},
	})
	c.UnmountAll()
	if n != 2 {
		t.Fatalf("got %d cleanups, want 2", n)
	}
}
