package services

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSeedAndListWithoutCache(t *testing.T) {
	db := newTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	catalog := NewCatalogService(db, nil, log)
	require.NoError(t, catalog.Seed())
	// Seeding twice does not duplicate.
	require.NoError(t, catalog.Seed())

	recipes, err := catalog.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "BBQ Pulled Pork", recipes[0].Name)
	assert.Contains(t, recipes[1].Tags, "Italian")

	games, err := catalog.ListGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 3)
}
