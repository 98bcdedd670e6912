package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "tag", Aliases: []string{"t"}, Handler: okHandler("tag")}))

	t.Run("duplicate name", func(t *testing.T) {
		assert.Error(t, r.Register(&Command{Name: "tag", Handler: okHandler("x")}))
	})

	t.Run("alias colliding with name", func(t *testing.T) {
		assert.Error(t, r.Register(&Command{Name: "tags", Aliases: []string{"tag"}, Handler: okHandler("x")}))
	})

	t.Run("name colliding with alias", func(t *testing.T) {
		assert.Error(t, r.Register(&Command{Name: "t", Handler: okHandler("x")}))
	})

	t.Run("missing handler", func(t *testing.T) {
		assert.Error(t, r.Register(&Command{Name: "broken"}))
	})

	t.Run("order preserved", func(t *testing.T) {
		require.NoError(t, r.Register(&Command{Name: "b", Handler: okHandler("b")}, &Command{Name: "a", Handler: okHandler("a")}))
		var names []string
		for _, c := range r.Commands() {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"tag", "b", "a"}, names)
	})

	assert.Panics(t, func() {
		r.MustRegister(&Command{Name: "tag", Handler: okHandler("x")})
	})
}
