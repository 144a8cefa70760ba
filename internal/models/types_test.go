package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType_Bounds(t *testing.T) {
	typ := ParseType("Map<T extends F & G>", nil)

	require.Len(t, typ.Generics, 1)
	bounds := typ.Generics[0].Extends
	require.Len(t, bounds, 2)
	assert.Equal(t, "F", bounds[0].Name)
	assert.Equal(t, "G", bounds[1].Name)
	assert.Equal(t, "T", typ.Generics[0].Name)
	assert.Equal(t, "Map", typ.Name)
}

func TestParseType_Resolution(t *testing.T) {
	imports := Imports{"D": "a.b.c.D", "int": "x.y.int"}

	assert.Equal(t, "a.b.c.D", ParseType("D", imports).Name)
	assert.Equal(t, "a.b.c.D.E", ParseType("D.E", imports).Name)
	assert.Equal(t, "int", ParseType("int", imports).Name, "primitives are never resolved")
	assert.Equal(t, "Other", ParseType("Other", imports).Name)
	assert.Equal(t, "a.b.c.D", ParseType("List<D>", imports).Generics[0].Name)
}

func TestImportsAdd(t *testing.T) {
	imports := Imports{}
	imports.Add("androidx.annotation.NonNull")
	imports.Add("  ")

	assert.Equal(t, Imports{"NonNull": "androidx.annotation.NonNull"}, imports)
}

func TestParseType_ArraysAndVarArgs(t *testing.T) {
	tests := []struct {
		raw      string
		name     string
		isArray  bool
		isVarArg bool
	}{
		{"int[]", "int", true, false},
		{"java.lang.String[][]", "java.lang.String", true, false},
		{"java.lang.String...", "java.lang.String", false, true},
		{"long", "long", false, false},
		// the array suffix after a generic group is lost with the group
		{"java.util.List<X>[]", "java.util.List", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			typ := ParseType(tt.raw, nil)
			assert.Equal(t, tt.name, typ.Name)
			assert.Equal(t, tt.isArray, typ.IsArray)
			assert.Equal(t, tt.isVarArg, typ.IsVarArg)
		})
	}
}

func TestParseType_IdentRoundTrip(t *testing.T) {
	inputs := []string{
		"java.util.Map<K,V>",
		"java.util.Map<K, V>",
		"Map<T extends F & G>",
		"java.util.List<? extends java.lang.Number>",
		"a.B<C<D, E>, F>",
		"T extends java.lang.Comparable<T>",
		"org.mozilla.geckoview.GeckoResult<java.lang.Void>",
		"java.lang.String",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			first := ParseType(raw, nil)
			second := ParseType(first.Ident(), nil)
			assert.Equal(t, first, second)
			assert.Equal(t, first.Ident(), second.Ident())
		})
	}
}

func TestTypeIdent(t *testing.T) {
	assert.Equal(t, "java.util.Map<K, V>", ParseType("java.util.Map<K,V>", nil).Ident())
	assert.Equal(t, "T extends A & B", ParseType("T extends A&B", nil).Ident())
	assert.Equal(t, "int", ParseType("int[]", nil).Ident())
}

func TestTypeWalk(t *testing.T) {
	var names []string
	ParseType("Map<K extends Foo, List<V>>", nil).Walk(func(t Type) {
		names = append(names, t.Name)
	})

	assert.Equal(t, []string{"Foo", "K", "V", "List", "Map"}, names)
}
