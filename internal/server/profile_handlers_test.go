package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"linksea/internal/config"
	"linksea/internal/models"
	"linksea/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileTestApp(profiles *MockProfileRepository, links *MockLinkRepository) *fiber.App {
	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret_test_secret_test_sec"},
		profileRepo: profiles,
		linkRepo:    links,
	}
	s.profileService = service.NewProfileService(profiles, links)

	app := fiber.New()
	app.Get("/api/p/:username", s.GetPublicProfile)
	me := app.Group("/api/users", asUser(1))
	me.Get("/me", s.GetMyProfile)
	me.Put("/me", s.UpdateMyProfile)
	me.Put("/me/visibility", s.SetProfileVisibility)
	app.Get("/api/users/check-username", s.CheckUsername)
	return app
}

func TestGetPublicProfile(t *testing.T) {
	t.Run("resolves profile with links", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByUsername", mock.Anything, "casey").Return(
			&models.Profile{ID: 3, Username: "casey", Bio: "hello"}, nil)
		links := new(MockLinkRepository)
		links.On("ListByUser", mock.Anything, uint(3)).Return([]models.Link{
			{ID: 1, UserID: 3, Title: "Blog", Position: 0},
		}, nil)

		app := newProfileTestApp(profiles, links)
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/p/casey", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page service.PublicProfile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		assert.Equal(t, "casey", page.Username)
		require.Len(t, page.Links, 1)
	})

	t.Run("disabled profile is 404", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByUsername", mock.Anything, "hidden").Return(
			&models.Profile{ID: 3, Username: "hidden", IsDisabled: true}, nil)

		app := newProfileTestApp(profiles, new(MockLinkRepository))
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/p/hidden", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing profile is 404", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByUsername", mock.Anything, "ghost").Return(
			nil, models.NewNotFoundError("Profile", "ghost"))

		app := newProfileTestApp(profiles, new(MockLinkRepository))
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/p/ghost", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateMyProfile(t *testing.T) {
	t.Run("username conflict maps to 409", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByID", mock.Anything, uint(1)).Return(
			&models.Profile{ID: 1, Username: "old_name"}, nil)
		profiles.On("UsernameTaken", mock.Anything, "claimed").Return(true, nil)

		app := newProfileTestApp(profiles, new(MockLinkRepository))
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", map[string]string{
			"username": "claimed",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("bio update", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("GetByID", mock.Anything, uint(1)).Return(
			&models.Profile{ID: 1, Username: "me"}, nil)
		profiles.On("Update", mock.Anything, mock.Anything).Return(nil)

		app := newProfileTestApp(profiles, new(MockLinkRepository))
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", map[string]string{
			"bio": "link collector",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
		assert.Equal(t, "link collector", profile.Bio)
	})
}

func TestSetProfileVisibility(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("GetByID", mock.Anything, uint(1)).Return(
		&models.Profile{ID: 1, Username: "me"}, nil)
	profiles.On("Update", mock.Anything, mock.Anything).Return(nil)

	app := newProfileTestApp(profiles, new(MockLinkRepository))

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me/visibility", map[string]bool{
		"is_disabled": true,
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.True(t, profile.IsDisabled)

	// Missing field is a validation error, not a silent default.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/users/me/visibility", map[string]string{}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckUsername(t *testing.T) {
	profiles := new(MockProfileRepository)
	profiles.On("UsernameTaken", mock.Anything, "fresh-name").Return(false, nil)
	profiles.On("UsernameTaken", mock.Anything, "claimed").Return(true, nil)

	app := newProfileTestApp(profiles, new(MockLinkRepository))

	tests := []struct {
		query          string
		expectedStatus int
		available      bool
	}{
		{"username=fresh-name", http.StatusOK, true},
		{"username=claimed", http.StatusOK, false},
		{"username=ab", http.StatusBadRequest, false},
		{"", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/check-username?"+tt.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.expectedStatus, resp.StatusCode, tt.query)
		if resp.StatusCode == http.StatusOK {
			var payload map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
			assert.Equal(t, tt.available, payload["available"])
		}
		_ = resp.Body.Close()
	}
}
