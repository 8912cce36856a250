package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/moodtrack/internal/api"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/internal/service/mocks"
	"github.com/limbo/moodtrack/pkg/entity"
	jwtservice "github.com/limbo/moodtrack/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := api.GetUIDFromContext(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"uid": "` + uid.String() + `"}`))
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	jwtService := jwtservice.New("secret", time.Hour)
	serv := api.New(&api.ServicesList{
		UserService: uService,
		JwtService:  jwtService,
	})
	handler := serv.AuthMiddleware(http.HandlerFunc(testHandler))

	token, err := jwtService.GenerateToken(&entity.User{ID: uid, Email: email})
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &api.JWTClaims{
		UserID: uid.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	testCases := []struct {
		Desc         string
		Header       string
		ExpectedCode int
		MockPrepFunc func()
	}{
		{
			Desc:         "successful auth",
			Header:       "Bearer " + token,
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				uService.EXPECT().GetByID(gomock.Any(), uid).Return(&entity.User{ID: uid}, nil)
			},
		},
		{
			Desc:         "no header",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "wrong scheme",
			Header:       "Basic " + token,
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "expired token",
			Header:       "Bearer " + expired,
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "account removed",
			Header:       "Bearer " + token,
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {
				uService.EXPECT().GetByID(gomock.Any(), uid).Return(nil, errorvalues.ErrUserNotFound)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
			if tc.Header != "" {
				req.Header.Set("Authorization", tc.Header)
			}
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	serv := api.New(&api.ServicesList{JwtService: jwtservice.New("secret", time.Hour)})
	for _, target := range []string{"/getmoods", "/trends"} {
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode, target)
	}
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("any origin by default", func(t *testing.T) {
		serv := api.New(&api.ServicesList{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/submitmood", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		serv.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
	t.Run("configured origins only", func(t *testing.T) {
		serv := api.New(&api.ServicesList{}, api.WithAllowedOrigins([]string{"https://mood.example.com"}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://mood.example.com")
		serv.ServeHTTP(rr, req)
		assert.Equal(t, "https://mood.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

		rr = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		serv.ServeHTTP(rr, req)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	serv := api.New(&api.ServicesList{})

	rr := httptest.NewRecorder()
	serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	generated := rr.Header().Get("X-Request-ID")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	serv.ServeHTTP(rr, req)
	assert.Equal(t, "trace-42", rr.Header().Get("X-Request-ID"))
}

func TestRateLimiter(t *testing.T) {
	t.Run("nil limiter passes through", func(t *testing.T) {
		var rl *api.RateLimiter = api.NewRateLimiter("api", 0, 10)
		assert.Nil(t, rl)
		handler := rl.Middleware(http.HandlerFunc(testHandler))
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(rr, req.WithContext(api.WithUID(req.Context(), uid)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("burst exhausted per user", func(t *testing.T) {
		rl := api.NewRateLimiter("api", 0.001, 2)
		handler := rl.Middleware(http.HandlerFunc(testHandler))
		codes := make([]int, 0, 3)
		for range 3 {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			handler.ServeHTTP(rr, req.WithContext(api.WithUID(req.Context(), uid)))
			codes = append(codes, rr.Result().StatusCode)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

		other := uuid.New()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(rr, req.WithContext(api.WithUID(req.Context(), other)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("stale clients forgotten", func(t *testing.T) {
		rl := api.NewRateLimiter("api", 1, 1)
		handler := rl.Middleware(http.HandlerFunc(testHandler))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(api.WithUID(req.Context(), uid)))
		require.Equal(t, 1, rl.Len())

		rl.Cleanup(time.Now())
		assert.Equal(t, 1, rl.Len())
		rl.Cleanup(time.Now().Add(time.Hour))
		assert.Equal(t, 0, rl.Len())
	})
}

func TestAuthRoutesRateLimited(t *testing.T) {
	serv := api.New(&api.ServicesList{}, api.WithRateLimit(100, 100))
	last := 0
	for range 6 {
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
		last = rr.Result().StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
