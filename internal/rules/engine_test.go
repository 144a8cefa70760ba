package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/parser"
	"github.com/toyz/apilint/internal/report"
)

const widgetDump = `import androidx.annotation.AnyThread;
package org.example {
  public class Widget {
    ctor public Widget();
    method @AnyThread public void show();
    method public int getCount();
  }
}
`

func TestBuiltinRegistryOrder(t *testing.T) {
	names := BuiltinRegistry().List()
	require.Len(t, names, len(builtinRules))
	assert.Equal(t, "constants", names[0])
	assert.Equal(t, "deprecated_annotations", names[len(names)-1])
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Rule{Name: "x", Check: checkClone}))
	assert.Error(t, reg.Register(Rule{Name: "x", Check: checkClone}))
	assert.Error(t, reg.Register(Rule{Name: "y"}))
	assert.Equal(t, []string{"x"}, reg.List())
}

func TestNewEngineUnknownDisabledRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisabledRules = []string{"no_such_rule"}

	_, err := NewEngine(cfg)
	require.Error(t, err)

	var validation *apierrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDisabledRulesAreSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisabledRules = []string{"threading_annotations"}
	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	store, _ := engine.ExamineAPI(parse(t, widgetDump))
	for _, f := range store.Sorted() {
		assert.NotEqual(t, "GV3", f.Rule)
	}
}

func TestIgnoredPackagesAreNoticedOnly(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	store, noticed := engine.ExamineAPI(parse(t, `package java.util {
  public class badName {
    method public void Run();
  }
}`))

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, []string{"java.util.badName"}, noticed.Names())
}

func TestExaminerStreamsClasses(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	store := report.NewStore()
	noticed := report.Noticed{}
	_, err = parser.NewParser(parser.WithClassCallback(engine.Examiner(store, noticed))).ParseString(widgetDump)
	require.NoError(t, err)

	batch, _ := engine.ExamineAPI(parse(t, widgetDump))
	assert.Equal(t, batch.Len(), store.Len())
	assert.Equal(t, []string{"org.example.Widget"}, noticed.Names())
}

func TestRerunSuppressesKnownFindings(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	previous, _ := engine.ExamineAPI(parse(t, widgetDump))
	require.NotZero(t, previous.Len())

	current, _ := engine.ExamineAPI(parse(t, widgetDump))
	current.Subtract(previous)
	assert.Equal(t, 0, current.Len())

	changed := `import androidx.annotation.AnyThread;
package org.example {
  public class Widget {
    ctor public Widget();
    method @AnyThread public void show();
    method public int getCount();
    field public static final int badName = 1;
  }
}
`
	current, _ = engine.ExamineAPI(parse(t, changed))
	current.Subtract(previous)
	assert.Equal(t, []string{"error:C2:Constant field names must be FOO_NAME"}, summarize(current))
}
