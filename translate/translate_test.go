package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	defer SetLanguage(Fallback)

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("pc 0x0a: 1,000 ticks", From("pc 0x%02x: %d ticks", 10, 1000))

	assert.NoError(SetLanguage("de-DE"))
	assert.Equal("pc 0x0a: 1.000 ticks", From("pc 0x%02x: %d ticks", 10, 1000))

	assert.Error(SetLanguage("!!"))
	assert.Equal("pc 0x0a: 1.000 ticks", From("pc 0x%02x: %d ticks", 10, 1000))

	_ = SetLanguage("")
	assert.NotEmpty(From("%d", 1))
}
