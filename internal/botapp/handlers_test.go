package botapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRoutes(t *testing.T) {
	var names []string
	for _, r := range textRoutes() {
		assert.NotNil(t, r.handler, r.command)
		names = append(names, r.command)
	}
	assert.Equal(t, []string{"/start", "/help", "/history", "/language", "/stats"}, names)
}
