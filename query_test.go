package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQueryContainer(t *testing.T) *Container {
	t.Helper()

	c := New()
	require.NoError(t, c.ApplyWiring(Wiring{
		Define("db", constant(&mockService{name: "db"})),
		Define("cache", constant(&plainService{value: "cache"})),
		Define("mailer", constant(&plainService{value: "mailer"})),
		Define("legacy", constant(&plainService{value: "legacy"})),
	}))
	require.NoError(t, c.AddServiceManipulator("cache", func(s any, _ *Container, _ ...any) (any, error) {
		return s, nil
	}))

	_, err := c.GetService("db")
	require.NoError(t, err)
	_, err = c.GetService("cache")
	require.NoError(t, err)
	require.NoError(t, c.DisableService("legacy"))

	return c
}

func TestInspect(t *testing.T) {
	c := setupQueryContainer(t)

	db := c.Inspect("db")
	assert.Equal(t, StateActive, db.State)
	assert.Equal(t, "*services.mockService", db.Type)
	assert.True(t, db.Destructible)
	assert.False(t, db.Salvageable)

	cache := c.Inspect("cache")
	assert.Equal(t, StateActive, cache.State)
	assert.Equal(t, 1, cache.Manipulators)
	assert.False(t, cache.Destructible)

	mailer := c.Inspect("mailer")
	assert.Equal(t, StateDefined, mailer.State)
	assert.Empty(t, mailer.Type)

	assert.Equal(t, StateDisabled, c.Inspect("legacy").State)
	assert.Equal(t, StateUnknown, c.Inspect("missing").State)

	_, ok, err := c.PeekService("mailer")
	require.NoError(t, err)
	assert.False(t, ok, "inspect must not construct")
}

func TestQuery_ByState(t *testing.T) {
	c := setupQueryContainer(t)

	assert.Equal(t, []string{"db", "cache"}, QueryNames(c, ServiceQuery{State: StateActive}))
	assert.Equal(t, []string{"mailer"}, QueryNames(c, ServiceQuery{State: StateDefined}))
	assert.Equal(t, []string{"db", "cache", "mailer", "legacy"}, QueryNames(c, ServiceQuery{}))

	assert.Len(t, FindActive(c), 2)
	disabled := FindDisabled(c)
	require.Len(t, disabled, 1)
	assert.Equal(t, "legacy", disabled[0].Name)
}

func TestQuery_Destructible(t *testing.T) {
	c := setupQueryContainer(t)

	yes := true
	assert.Equal(t, []string{"db"}, QueryNames(c, ServiceQuery{Destructible: &yes}))

	no := false
	assert.Equal(t, []string{"cache"}, QueryNames(c, ServiceQuery{State: StateActive, Destructible: &no}))
}

func TestQuery_Empty(t *testing.T) {
	assert.Empty(t, QueryNames(New(), ServiceQuery{}))
}
