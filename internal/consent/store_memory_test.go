package consent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func (s *InMemoryStoreSuite) TestAbsentPairReadsFalse() {
	granted, err := s.store.IsGranted(context.Background(), "carol", "dr-bob")
	require.NoError(s.T(), err)
	assert.False(s.T(), granted)
}

func (s *InMemoryStoreSuite) TestSetAndRead() {
	require.NoError(s.T(), s.store.SetGrant(context.Background(), "carol", "dr-bob", true))

	granted, err := s.store.IsGranted(context.Background(), "carol", "dr-bob")
	require.NoError(s.T(), err)
	assert.True(s.T(), granted)

	// Pairs are directional: the reverse lookup stays false.
	granted, err = s.store.IsGranted(context.Background(), "dr-bob", "carol")
	require.NoError(s.T(), err)
	assert.False(s.T(), granted)
}

func (s *InMemoryStoreSuite) TestRevokedPairReadsFalse() {
	require.NoError(s.T(), s.store.SetGrant(context.Background(), "carol", "dr-bob", true))
	require.NoError(s.T(), s.store.SetGrant(context.Background(), "carol", "dr-bob", false))

	granted, err := s.store.IsGranted(context.Background(), "carol", "dr-bob")
	require.NoError(s.T(), err)
	assert.False(s.T(), granted)
}

func (s *InMemoryStoreSuite) TestSetGrantIdempotent() {
	require.NoError(s.T(), s.store.SetGrant(context.Background(), "carol", "dr-bob", true))
	require.NoError(s.T(), s.store.SetGrant(context.Background(), "carol", "dr-bob", true))

	granted, err := s.store.IsGranted(context.Background(), "carol", "dr-bob")
	require.NoError(s.T(), err)
	assert.True(s.T(), granted)
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}
