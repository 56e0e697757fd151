package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }

func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Loads enabled features only", func(t *testing.T) {
		cards := &stubFeature{name: "cards", enabled: true}
		catalog := &stubFeature{name: "catalog", enabled: false}

		m := NewManager()
		m.Register(cards)
		m.Register(catalog)

		assert.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, cards.loaded)
		assert.False(t, catalog.loaded)
		assert.Len(t, m.Features(), 2)
	})

	t.Run("Stops at first failure", func(t *testing.T) {
		broken := &stubFeature{name: "broken", enabled: true, err: errors.New("boom")}
		after := &stubFeature{name: "after", enabled: true}

		m := NewManager()
		m.Register(broken)
		m.Register(after)

		err := m.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "broken")
		assert.False(t, after.loaded)
	})

	t.Run("Duplicate names are rejected", func(t *testing.T) {
		m := NewManager()
		m.Register(&stubFeature{name: "cards", enabled: true})
		m.Register(&stubFeature{name: "cards", enabled: true})

		assert.Error(t, m.LoadAll(fiber.New()))
	})
}
