package messaging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContact(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizeContact("+91 98765-43210"))
	assert.Equal(t, "918431123556", NormalizeContact("918431123556"))
	assert.Equal(t, "", NormalizeContact("n/a"))
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "a%20b", EncodeComponent("a b"))
	assert.Equal(t, "Qty%3A%202%0A", EncodeComponent("Qty: 2\n"))
	assert.Equal(t, "it's%20(ok)!*~", EncodeComponent("it's (ok)!*~"))
	assert.Equal(t, "a%2Bb%26c%3Dd", EncodeComponent("a+b&c=d"))
	assert.Equal(t, "%F0%9F%9B%92", EncodeComponent("🛒"))
}

func TestLinkBuilder(t *testing.T) {
	b := NewLinkBuilder("")

	link, err := b.Link("+91 98765 43210", "🛒 Order to Shop\nQty: 1")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/919876543210?text=%F0%9F%9B%92%20Order%20to%20Shop%0AQty%3A%201", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "🛒 Order to Shop\nQty: 1", u.Query().Get("text"))

	_, err = b.Link("none", "hi")
	assert.ErrorIs(t, err, ErrInvalidContact)

	custom := NewLinkBuilder("https://chat.example.com/send")
	link, err = custom.Link("123", "hi")
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com/send/123?text=hi", link)
}
