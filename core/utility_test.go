package core

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendBase64URL(t *testing.T) {
	table := schema.NewTable("repo_id", "url")
	table.Append(int64(1), "https://github.com/rails/rails.git")
	table.Append(int64(2), "bare-path/repo.git")

	got := appendBase64URL(table)

	require.Equal(t, []string{"repo_id", "url", "base64_url"}, got.Columns)
	assert.Equal(t, "github.com/rails/rails.git", got.Rows[0][1])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("github.com/rails/rails.git")), got.Rows[0][2])

	// URLs without a scheme pass through unchanged.
	assert.Equal(t, "bare-path/repo.git", got.Rows[1][1])
}

func TestGetRepoOwnerPattern(t *testing.T) {
	fake := &fakeWarehouse{}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	_, err := catalog.GetRepo(context.Background(), "rails", "rails")
	require.NoError(t, err)
	assert.Equal(t, "%rails_", fake.args[0]["owner"])
	assert.Equal(t, "rails", fake.args[0]["repo"])
}

func TestReposInGroupBindsGroup(t *testing.T) {
	fake := &fakeWarehouse{}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	_, err := catalog.ReposInGroup(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), fake.args[0]["repo_group_id"])
}
