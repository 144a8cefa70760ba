package annotations

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	require.NotNil(t, registry)
	assert.Empty(t, registry.ListFamilies())
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()
	assert.Same(t, registry, DefaultRegistry())

	assert.True(t, registry.Is(NullabilityFamily, "androidx.annotation.NonNull"))
	assert.True(t, registry.Is(ThreadingFamily, "android.support.annotation.AnyThread"))
	assert.True(t, registry.Is(EnumDefFamily, "androidx.annotation.StringDef"))
	assert.True(t, registry.Is(DeprecatedFamily, "java.lang.Deprecated"))
	assert.False(t, registry.Is(NullabilityFamily, "androidx.annotation.UiThread"))
	assert.Equal(t, []Family{NullabilityFamily, ThreadingFamily, EnumDefFamily, DeprecatedFamily}, registry.ListFamilies())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		family  Family
		names   []string
		wantErr bool
	}{
		{"valid", NullabilityFamily, []string{"org.jspecify.annotations.Nullable"}, false},
		{"unknown family", UnknownFamily, []string{"a.B"}, true},
		{"empty name", ThreadingFamily, []string{""}, true},
		{"duplicate", ThreadingFamily, []string{"a.Thread", "a.Thread"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.family, tt.names...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(ThreadingFamily, "b.Worker", "a.Ui"))

	assert.Equal(t, []string{"a.Ui", "b.Worker"}, registry.Names(ThreadingFamily))
	assert.Empty(t, registry.Names(NullabilityFamily))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = registry.Register(NullabilityFamily, string(rune('a'+i))+".NonNull")
		}(i)
		go func() {
			defer wg.Done()
			registry.Is(NullabilityFamily, "a.NonNull")
		}()
	}
	wg.Wait()

	assert.Len(t, registry.Names(NullabilityFamily), 20)
}

func TestParseFamily(t *testing.T) {
	for _, f := range []Family{NullabilityFamily, ThreadingFamily, EnumDefFamily, DeprecatedFamily} {
		parsed, err := ParseFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseFamily("bogus")
	assert.Error(t, err)
}
