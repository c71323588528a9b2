package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrivateBook(t *testing.T) {
	tests := []struct {
		kind byte
		want bool
	}{
		{kind: 0, want: true},
		{kind: BookKindPublic, want: false},
		{kind: 2, want: true},
		{kind: 0xFF, want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPrivateBook(tt.kind), "kind %d", tt.kind)
	}
}

func TestPortalTemplateID(t *testing.T) {
	assert.Equal(t, uint32(3891), PortalTemplateID(PortalEntrance))
	assert.Equal(t, uint32(6949), PortalTemplateID(PortalExit))
	assert.Zero(t, PortalTemplateID(PortalRole(7)))
}
