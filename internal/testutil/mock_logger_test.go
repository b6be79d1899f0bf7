package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NolinearTang/data-correct/internal/infrastructure/monitoring/logging"
)

func TestMockLogger_Records(t *testing.T) {
	m := NewMockLogger()
	m.Info("loaded", logging.Int("records", 3))
	m.Warn("skipping row")

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "loaded", entries[0].Message)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "records", entries[0].Fields[0].Key)

	assert.Equal(t, []string{"skipping row"}, m.Messages("warn"))
	assert.Empty(t, m.Messages("error"))
}

func TestMockLogger_WithAttachesFields(t *testing.T) {
	m := NewMockLogger()
	m.With(logging.String("component", "loader"))
	m.Info("go")

	entries := m.Entries()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "component", entries[0].Fields[0].Key)
}

func TestMockLogger_Reset(t *testing.T) {
	m := NewMockLogger()
	m.Error("bad")
	m.Reset()
	assert.Empty(t, m.Entries())
}
