package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/journey/internal/auth/authtest"
)

var secretKey = []byte("test-secret")

type envelope struct {
	Status     string                 `json:"status"`
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data"`
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	AttachCatalogController(router, nil, secretKey)
	return router
}

func TestDashboard(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name              string
		authorization     string
		expectedStatus    int
		expectedDashboard string
	}{
		{
			name:              "given stay manager token should route to stay manager dashboard",
			authorization:     "Bearer " + authtest.Sign(t, secretKey, userID, "manager", "stay"),
			expectedStatus:    http.StatusOK,
			expectedDashboard: "stay-manager",
		},
		{
			name:              "given guide token should route to guide dashboard",
			authorization:     "Bearer " + authtest.Sign(t, secretKey, userID, "guide", ""),
			expectedStatus:    http.StatusOK,
			expectedDashboard: "guide",
		},
		{
			name:           "given missing token should be unauthorized",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "given token with unknown role should be unauthorized",
			authorization:  "Bearer " + authtest.Sign(t, secretKey, userID, "owner", ""),
			expectedStatus: http.StatusUnauthorized,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me/dashboard", nil)
			if test.authorization != "" {
				req.Header.Set("Authorization", test.authorization)
			}
			rec := httptest.NewRecorder()

			newRouter().ServeHTTP(rec, req)

			require.Equal(t, test.expectedStatus, rec.Code)
			body := envelope{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, test.expectedStatus, body.StatusCode)
			if test.expectedDashboard != "" {
				assert.Equal(t, test.expectedDashboard, body.Data["dashboard"])
				assert.Equal(t, userID.String(), body.Data["userId"])
			}
		})
	}
}

func TestWriteRoutesRequireToken(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodPost, path: "/experiences"},
		{method: http.MethodDelete, path: "/accommodations/" + uuid.NewString()},
		{method: http.MethodPost, path: "/menu-items"},
		{method: http.MethodPut, path: "/experiences/" + uuid.NewString()},
		{method: http.MethodPut, path: "/experiences/" + uuid.NewString() + "/slots/" + uuid.NewString()},
		{method: http.MethodPut, path: "/accommodations/" + uuid.NewString()},
		{method: http.MethodPut, path: "/menu-items/" + uuid.NewString()},
	}
	for _, test := range tests {
		t.Run("given "+test.method+" "+test.path+" without token should be unauthorized", func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, httptest.NewRequest(test.method, test.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestFindWithMalformedIdIsBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/experiences/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSlotWithMalformedSlotIdIsBadRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/experiences/"+uuid.NewString()+"/slots/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+authtest.Sign(t, secretKey, uuid.New(), "manager", "experience"))
	rec := httptest.NewRecorder()

	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
