package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"room-service/internal/middleware"
	"room-service/internal/mocks"
)

func setupCleanupRouter(handler *CleanupHandler, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cleanup", middleware.CleanupAuth(secret), handler.Trigger)
	return r
}

func TestCleanupSuccess(t *testing.T) {
	sweeperMock := new(mocks.SweeperMock)
	router := setupCleanupRouter(NewCleanupHandler(sweeperMock), "topsecret")

	sweeperMock.On("Sweep", mock.Anything).Return(3, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Count)
	assert.Contains(t, resp.Message, "3")
	sweeperMock.AssertExpectations(t)
}

func TestCleanupUnauthorized(t *testing.T) {
	sweeperMock := new(mocks.SweeperMock)
	router := setupCleanupRouter(NewCleanupHandler(sweeperMock), "topsecret")

	cases := map[string]string{
		"missing header": "",
		"wrong secret":   "Bearer wrong",
		"not bearer":     "Basic topsecret",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
	sweeperMock.AssertNotCalled(t, "Sweep", mock.Anything)
}

func TestCleanupNoSecretConfigured(t *testing.T) {
	sweeperMock := new(mocks.SweeperMock)
	router := setupCleanupRouter(NewCleanupHandler(sweeperMock), "")

	req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	sweeperMock.AssertNotCalled(t, "Sweep", mock.Anything)
}

func TestCleanupSweepError(t *testing.T) {
	sweeperMock := new(mocks.SweeperMock)
	router := setupCleanupRouter(NewCleanupHandler(sweeperMock), "topsecret")

	sweeperMock.On("Sweep", mock.Anything).Return(0, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	sweeperMock.AssertExpectations(t)
}
