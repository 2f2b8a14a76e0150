package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPrefix(t *testing.T) {
	s := NewStore(nil, "worlds", "overworld/")
	assert.Equal(t, "overworld/sec.0.0", s.key("sec.0.0"))

	s = NewStore(nil, "worlds", "")
	assert.Equal(t, "sec.0.0", s.key("sec.0.0"))
}
