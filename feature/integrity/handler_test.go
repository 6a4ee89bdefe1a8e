package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"game-importer/core/content"
	"game-importer/core/database"
	"game-importer/core/storage"
	"game-importer/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, content.Models()...))

	client := new(mocks.Client)
	feature := NewFeature(client, storage.Config{Bucket: "media"}, db, content.Models(), zap.NewNop())
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, client
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("BucketExists", mock.Anything, "media").Return(true, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, true, report["storage"]["exists"])
	assert.Equal(t, true, report["schema"]["matched"])
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("BucketExists", mock.Anything, "media").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "media", mock.Anything).Return(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	client.AssertCalled(t, "MakeBucket", mock.Anything, "media", mock.Anything)
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
