package compat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/parser"
	"github.com/toyz/apilint/internal/report"
	"github.com/toyz/apilint/internal/rules"
)

func parse(t *testing.T, dump string) models.API {
	t.Helper()
	api, err := parser.NewParser().ParseString(dump)
	require.NoError(t, err)
	return api
}

func messages(s *report.Store) []string {
	out := []string{}
	for _, f := range s.Sorted() {
		detail := ""
		if f.Detail != nil {
			detail = f.Detail.String()
		}
		out = append(out, fmt.Sprintf("%s|%s|%s", f.Class.FullName, detail, f.Message))
	}
	return out
}

func scheduled(version int) *rules.Config {
	cfg := rules.DefaultConfig()
	cfg.DeprecationScheduleAnnotation = "a.DeprecationSchedule"
	cfg.LibraryVersion = &version
	return &cfg
}

func TestCheckRemovedMethod(t *testing.T) {
	prev := parse(t, `package a {
  public class Foo {
    method public int getX();
    method @java.lang.Deprecated @a.DeprecationSchedule(id="x",version=74) public int getY();
  }
}`)
	cur := parse(t, `package a {
  public class Foo {
    method @java.lang.Deprecated @a.DeprecationSchedule(id="x",version=74) public int getY();
  }
}`)

	t.Run("unscheduled", func(t *testing.T) {
		assert.Equal(t, []string{
			"a.Foo|method public int getX()|Method removed or incompatible change",
		}, messages(Check(cur, prev, nil)))
	})

	scheduledPrev := parse(t, `package a {
  public class Foo {
    method @java.lang.Deprecated @a.DeprecationSchedule(id="x",version=74) public int getX();
  }
}`)
	empty := parse(t, `package a {
  public class Foo {
  }
}`)

	t.Run("scheduled for this version", func(t *testing.T) {
		assert.Equal(t, 0, Check(empty, scheduledPrev, scheduled(74)).Len())
	})

	t.Run("scheduled for a later version", func(t *testing.T) {
		assert.Equal(t, 1, Check(empty, scheduledPrev, scheduled(73)).Len())
	})
}

func TestCheckClassRemoval(t *testing.T) {
	prev := parse(t, `package a {
  public class Gone {
  }
  @a.DeprecationSchedule(id="s",version=5) public class Scheduled {
  }
  public class Kept {
  }
}`)
	cur := parse(t, `package a {
  public class Kept {
  }
}`)

	assert.Equal(t, []string{
		"a.Gone||Class removed or incompatible change",
	}, messages(Check(cur, prev, scheduled(5))))
}

func TestCheckFirstMissStops(t *testing.T) {
	prev := parse(t, `package a {
  public class Foo {
    ctor public Foo();
    ctor public Foo(int);
    method public void a();
    method public void b();
    field public int x;
    field public int y;
  }
}`)
	cur := parse(t, `package a {
  public class Foo {
  }
}`)

	assert.ElementsMatch(t, []string{
		"a.Foo|ctor public Foo()|Constructor removed or incompatible change",
		"a.Foo|method public void a()|Method removed or incompatible change",
		"a.Foo|field public int x|Field removed or incompatible change",
	}, messages(Check(cur, prev, nil)))
}

func TestCheckInheritedMethods(t *testing.T) {
	prev := parse(t, `package a {
  public class Base {
    method public void run();
  }
  public class Child extends a.Base {
  }
}`)
	cur := parse(t, `package a {
  public class Base {
  }
  public class Child extends a.Base {
    method public void run();
  }
}`)

	assert.Equal(t, []string{
		"a.Base|method public void run()|Method removed or incompatible change",
	}, messages(Check(cur, prev, nil)))
}

func TestCheckExtendsCycle(t *testing.T) {
	api := parse(t, `package a {
  public class A extends a.B {
    method public void a();
  }
  public class B extends a.A {
    method public void b();
  }
}`)

	assert.Len(t, allMethods(api, api["a.A"]), 2)
	assert.Equal(t, 0, Check(api, api, nil).Len())
}

func TestCheckAnnotations(t *testing.T) {
	prev := parse(t, `package a {
  @a.KeepClass public class Foo {
    ctor @a.KeepCtor public Foo();
    method @a.KeepMethod public void run();
  }
}`)
	cur := parse(t, `package a {
  public class Foo {
    ctor public Foo();
    method public void run();
  }
}`)

	failures := Check(cur, prev, nil)
	assert.Equal(t, 3, failures.Len())
	for _, f := range failures.Sorted() {
		assert.Equal(t, annotationRemoved, f.Message)
	}
}

func TestDeprecationsAtBirth(t *testing.T) {
	prev := parse(t, `package a {
  public class Old {
    method public deprecated void before();
  }
  public class Same {
    method public void run();
  }
}`)
	cur := parse(t, `package a {
  public class Old {
    method public deprecated void before();
    method public deprecated void added();
    field public deprecated int count;
  }
  public class Same {
    method public void run();
  }
  public deprecated class Fresh {
    ctor public deprecated Fresh();
  }
}`)

	assert.ElementsMatch(t, []string{
		"a.Old|method public deprecated void added()|Found API deprecation at birth",
		"a.Old|field public deprecated int count|Found API deprecation at birth",
		"a.Fresh||Found API deprecation at birth",
		"a.Fresh|ctor public deprecated Fresh()|Found API deprecation at birth",
	}, messages(DeprecationsAtBirth(cur, prev)))
	assert.Len(t, cur["a.Old"].Methods, 2)
}

func TestChanges(t *testing.T) {
	prev := parse(t, `package a {
  public class Same {
    method public void run();
  }
  public class Edited {
    method public void run();
  }
  public class Dropped {
  }
}`)
	cur := parse(t, `package a {
  public class Same {
    method public void run();
  }
  public class Edited {
    method public void run();
    method public void stop();
  }
  public class Added {
  }
}`)

	notice := func(api models.API) report.Noticed {
		n := report.Noticed{}
		for _, c := range api {
			n.Notice(c)
		}
		return n
	}
	curNoticed, prevNoticed := notice(cur), notice(prev)

	changed, removed := Changes(curNoticed, prevNoticed)
	assert.Equal(t, []string{"a.Added", "a.Edited"}, changed.Names())
	assert.Equal(t, []string{"a.Dropped"}, removed.Names())
	assert.Len(t, curNoticed, 3)

	diffs := DiffChanged(changed, prevNoticed)
	require.Len(t, diffs, 1)
	assert.Equal(t, "a.Edited", diffs[0].Class)
	assert.Equal(t, []string{"method public void stop()"}, diffs[0].Added)
	assert.Empty(t, diffs[0].Removed)
}

func TestDiffMembersIgnoresCosmeticChanges(t *testing.T) {
	prev := parse(t, `package a {
  public class Foo {
    method public static final void run() throws java.io.IOException;
  }
}`)
	cur := parse(t, `package a {
  public class Foo {
    method static public void run();
  }
}`)

	assert.True(t, DiffMembers(prev["a.Foo"], cur["a.Foo"]).Empty())
}
