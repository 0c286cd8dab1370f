package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyWiring(t *testing.T) {
	c := New()

	err := c.ApplyWiring(Wiring{
		Define("Foo", constant("Foo!")),
		Define("Bar", constant("Bar!")),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Foo", "Bar"}, c.ServiceNames())
	assert.Equal(t, "Foo!", MustGet[string](c, "Foo"))
	assert.Equal(t, "Bar!", MustGet[string](c, "Bar"))
}

func TestApplyWiring_NilInstantiator(t *testing.T) {
	c := New()

	err := c.ApplyWiring(Wiring{
		Define("Foo", constant("Foo!")),
		Define("Bar", nil),
	})
	assert.ErrorIs(t, err, ErrInvalidInstantiator)
	assert.Contains(t, err.Error(), "Bar")
	assert.False(t, c.HasService("Foo"), "nothing is defined when validation fails")
}

func TestApplyWiring_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.DefineService("Bar", constant("Bar!")))

	err := c.ApplyWiring(Wiring{
		Define("Foo", constant("Foo!")),
		Define("Bar", constant("other")),
	})
	assert.ErrorIs(t, err, ErrServiceAlreadyDefinedSentinel)
	assert.True(t, c.HasService("Foo"))
}

func TestApplyWiring_DuplicateWithinWiring(t *testing.T) {
	c := New()

	err := c.ApplyWiring(Wiring{
		Define("Foo", constant("Foo!")),
		Define("Foo", constant("again")),
	})
	assert.ErrorIs(t, err, ErrServiceAlreadyDefined("Foo"))
}

func TestWiringFromMap(t *testing.T) {
	w := WiringFromMap(map[string]Instantiator{
		"b": constant("b"),
		"c": constant("c"),
		"a": constant("a"),
	})

	assert.Equal(t, []string{"a", "b", "c"}, w.Names())
}

func TestImportWiring(t *testing.T) {
	services := New()
	require.NoError(t, services.ApplyWiring(Wiring{
		Define("Foo", constant("Foo!")),
		Define("Bar", constant("Bar!")),
		Define("Car", constant("FUBAR!")),
	}))
	require.NoError(t, services.AddServiceManipulator("Foo", appendSuffix("+X")))
	require.NoError(t, services.AddServiceManipulator("Car", appendSuffix("+X")))

	newServices := New()

	// a service with its own manipulator
	require.NoError(t, newServices.DefineService("Foo", constant("Foo!")))
	require.NoError(t, newServices.AddServiceManipulator("Foo", appendSuffix("+Y")))

	// an instantiated service must survive the import
	require.NoError(t, newServices.DefineService("Car", constant("Car!")))
	_, err := newServices.GetService("Car")
	require.NoError(t, err)

	// extra wiring must not be lost
	require.NoError(t, newServices.DefineService("Xar", constant("Xar!")))

	require.NoError(t, newServices.ImportWiring(services, "Bar"))

	assert.NotContains(t, newServices.ServiceNames(), "Bar")
	assert.Equal(t, "Foo!+Y+X", MustGet[string](newServices, "Foo"))

	require.NoError(t, newServices.ImportWiring(services))

	assert.Contains(t, newServices.ServiceNames(), "Bar")
	assert.Equal(t, "Bar!", MustGet[string](newServices, "Bar"))
	assert.Equal(t, "Car!", MustGet[string](newServices, "Car"), "existing instance is kept")
	assert.Equal(t, "Xar!", MustGet[string](newServices, "Xar"), "predefined services are kept")
	assert.Equal(t, 2, newServices.Inspect("Car").Manipulators, "chain still grows for active services")
}

func TestImportWiring_KeepsUninstantiatedDefinition(t *testing.T) {
	source := New()
	require.NoError(t, source.DefineService("Foo", constant("source")))

	target := New()
	require.NoError(t, target.DefineService("Foo", constant("target")))

	require.NoError(t, target.ImportWiring(source))
	assert.Equal(t, "target", MustGet[string](target, "Foo"))
}

func TestImportWiring_ManipulatorsApplyAfterRedefine(t *testing.T) {
	source := New()
	require.NoError(t, source.DefineService("Car", constant("FUBAR!")))
	require.NoError(t, source.AddServiceManipulator("Car", appendSuffix("+X")))

	target := New()
	require.NoError(t, target.DefineService("Car", constant("Car!")))
	assert.Equal(t, "Car!", MustGet[string](target, "Car"))

	require.NoError(t, target.ImportWiring(source))
	assert.Equal(t, "Car!", MustGet[string](target, "Car"))

	require.NoError(t, target.DisableService("Car"))
	require.NoError(t, target.RedefineService("Car", constant("Car2!")))
	assert.Equal(t, "Car2!+X", MustGet[string](target, "Car"))
}

func TestImportWiring_IsLazy(t *testing.T) {
	source := New()
	count := 0
	require.NoError(t, source.DefineService("Foo", func(*Container, ...any) (any, error) {
		count++
		return "Foo!", nil
	}))

	target := New(WithExtraArgs("target"))
	require.NoError(t, target.ImportWiring(source))
	assert.Equal(t, 0, count)

	_, ok, err := target.PeekService("Foo")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "Foo!", MustGet[string](target, "Foo"))
	assert.Equal(t, 1, count)
}

func TestImportWiring_UsesTargetContainer(t *testing.T) {
	source := New(WithExtraArgs("source"))
	require.NoError(t, source.DefineService("Who", func(c *Container, extra ...any) (any, error) {
		return extra[0], nil
	}))

	target := New(WithExtraArgs("target"))
	require.NoError(t, target.ImportWiring(source))

	assert.Equal(t, "target", MustGet[string](target, "Who"))
}

func TestImportWiring_SourceChainNotAliased(t *testing.T) {
	source := New()
	require.NoError(t, source.DefineService("Foo", constant("Foo!")))
	require.NoError(t, source.AddServiceManipulator("Foo", appendSuffix("+A")))

	target := New()
	require.NoError(t, target.ImportWiring(source))
	require.NoError(t, target.AddServiceManipulator("Foo", appendSuffix("+B")))

	assert.Equal(t, "Foo!+A", MustGet[string](source, "Foo"))
	assert.Equal(t, "Foo!+A+B", MustGet[string](target, "Foo"))
}

func TestLoadWiring(t *testing.T) {
	c := New()

	err := c.LoadWiring(
		StaticWiring(Wiring{Define("Foo", constant("Foo!"))}),
		func() (Wiring, error) {
			return Wiring{Define("Bar", constant("Bar!"))}, nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "Foo!", MustGet[string](c, "Foo"))
	assert.Equal(t, "Bar!", MustGet[string](c, "Bar"))
}

func TestLoadWiring_Duplicate(t *testing.T) {
	c := New()
	source := StaticWiring(Wiring{Define("Foo", constant("Foo!"))})

	err := c.LoadWiring(source, source)
	assert.ErrorIs(t, err, ErrServiceAlreadyDefinedSentinel)
}

func TestLoadWiring_SourceError(t *testing.T) {
	c := New()
	expectedErr := errors.New("plugin unavailable")

	err := c.LoadWiring(
		StaticWiring(Wiring{Define("Foo", constant("Foo!"))}),
		func() (Wiring, error) { return nil, expectedErr },
	)
	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "wiring source 1")
	assert.True(t, c.HasService("Foo"))
}
