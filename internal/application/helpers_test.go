package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/debatekit/tabdml/internal/adapters/tabroom"
)

// mustSource decodes and indexes an export document for tests.
func mustSource(t *testing.T, input string) *tabroom.Source {
	t.Helper()
	doc, err := tabroom.Decode(strings.NewReader(input))
	require.NoError(t, err)
	return tabroom.NewSource(doc)
}
