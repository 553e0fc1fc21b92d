package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	dbadapter "celebnetwork/internal/adapters/database"
	"celebnetwork/internal/adapters/httpapi/middleware"
	redisadapter "celebnetwork/internal/adapters/redis"
	celebrityapp "celebnetwork/internal/core/celebrity/service"
	fanapp "celebnetwork/internal/core/fan/service"
	followingapp "celebnetwork/internal/core/following/service"
	userapp "celebnetwork/internal/core/user/service"
	"celebnetwork/internal/security"
	"celebnetwork/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	userSvc *userapp.UserService
}

func newTestServer(t *testing.T, limiter *middleware.IPRateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	celebrityRepo := dbadapter.NewCelebrityRepositoryDatabase(db)
	fanRepo := dbadapter.NewFanRepositoryDatabase(db)
	followingRepo := dbadapter.NewFollowingRepositoryDatabase(db)
	views := redisadapter.NewViewCounterRedis(client)
	cache := redisadapter.NewFeaturedCacheRedis(client, time.Minute)
	tokens := security.NewTokenManager([]byte("test-secret"), time.Hour)

	userSvc := userapp.NewUserService(userRepo, celebrityRepo, fanRepo, tokens, bcrypt.MinCost)
	userSvc.Cache = cache
	r := SetupRoutes(Dependencies{
		Users:       userSvc,
		Celebrities: celebrityapp.NewCelebrityService(celebrityRepo, userRepo, followingRepo, views, cache),
		Followings:  followingapp.NewFollowingService(followingRepo, fanRepo, cache),
		Fans:        fanapp.NewFanService(fanRepo),
		Tokens:      tokens,
		AuthLimiter: limiter,
	})
	return &testServer{t: t, handler: r, userSvc: userSvc}
}

func (s *testServer) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

type session struct {
	token  string
	userID string
}

func (s *testServer) register(body map[string]any) session {
	s.t.Helper()
	code, res := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(s.t, http.StatusCreated, code, res)
	user := res["user"].(map[string]any)
	return session{token: res["accessToken"].(string), userID: user["id"].(string)}
}

func (s *testServer) registerFan(email string) session {
	return s.register(map[string]any{
		"email": email, "password": "Passw0rd1", "role": "fan", "firstName": "Ann", "lastName": "Fan",
	})
}

func (s *testServer) registerCelebrity(email, stageName string) (session, string) {
	sess := s.register(map[string]any{
		"email": email, "password": "Passw0rd1", "role": "celebrity", "firstName": "Bea", "lastName": "Star",
		"stageName": stageName, "industries": []string{"Music"},
	})
	code, profile := s.do(http.MethodGet, "/api/users/profile", sess.token, nil)
	require.Equal(s.t, http.StatusOK, code)
	celeb := profile["celebrity"].(map[string]any)
	return sess, celeb["id"].(string)
}

func (s *testServer) admin() session {
	s.t.Helper()
	_, err := s.userSvc.CreateAdmin(context.Background(), "root@x.com", "Adm1nPass", "Root", "Admin")
	require.NoError(s.t, err)
	code, res := s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "root@x.com", "password": "Adm1nPass"})
	require.Equal(s.t, http.StatusOK, code)
	return session{token: res["accessToken"].(string), userID: res["user"].(map[string]any)["id"].(string)}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	code, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	s.registerFan("a@x.com")

	code, body := s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@x.com", "password": "Passw0rd1"})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["accessToken"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "fan", user["role"])
	assert.NotContains(t, user, "password")

	code, body = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@x.com", "password": "Wrong0000"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.NotContains(t, body, "accessToken")
	assert.EqualValues(t, http.StatusUnauthorized, body["statusCode"])

	code, body = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "a@x.com", "password": "Passw0rd1", "role": "fan", "firstName": "Ann", "lastName": "Fan",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Conflict", body["error"])

	code, _ = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "bad", "password": "Passw0rd1", "role": "fan", "firstName": "Ann", "lastName": "Fan",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "root@x.com", "password": "Passw0rd1", "role": "admin", "firstName": "Root", "lastName": "Admin",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProfileRequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	code, _ := s.do(http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	fan := s.registerFan("a@x.com")
	code, body := s.do(http.MethodPut, "/api/users/profile", fan.token, map[string]any{"bio": "hi", "role": "admin", "email": "evil@x.com"})
	require.Equal(t, http.StatusOK, code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "hi", user["bio"])
	assert.Equal(t, "fan", user["role"])
	assert.Equal(t, "a@x.com", user["email"])
}

func TestFeaturedScenario(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.admin()

	s.registerFan("a@x.com")
	_, bStar := s.registerCelebrity("b@x.com", "B Star")
	_, other := s.registerCelebrity("c@x.com", "C Star")

	// هنوز تایید نشده است
	code, body := s.do(http.MethodGet, "/api/celebrities/featured", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["celebrities"])

	code, _ = s.do(http.MethodPatch, "/api/celebrities/"+bStar+"/verify", admin.token, map[string]any{"verified": true})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPatch, "/api/celebrities/"+other+"/verify", admin.token, map[string]any{"verified": true})
	require.Equal(t, http.StatusOK, code)

	fan2 := s.registerFan("f2@x.com")
	code, _ = s.do(http.MethodPost, "/api/celebrities/"+other+"/follow", fan2.token, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = s.do(http.MethodGet, "/api/celebrities/featured?limit=5", "", nil)
	require.Equal(t, http.StatusOK, code)
	list := body["celebrities"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "C Star", list[0].(map[string]any)["stageName"])
	assert.Equal(t, "B Star", list[1].(map[string]any)["stageName"])

	code, body = s.do(http.MethodGet, "/api/celebrities/featured?limit=1", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["celebrities"].([]any), 1)

	code, body = s.do(http.MethodGet, "/api/celebrities?search=b%20st", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
}

func TestFollowEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	fan := s.registerFan("a@x.com")
	celeb, celebID := s.registerCelebrity("b@x.com", "B Star")

	code, body := s.do(http.MethodPost, "/api/celebrities/"+celebID+"/follow", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["following"])
	assert.EqualValues(t, 1, body["followersCount"])

	code, body = s.do(http.MethodPost, "/api/celebrities/"+celebID+"/follow", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["alreadyFollowing"])
	assert.EqualValues(t, 1, body["followersCount"])

	code, body = s.do(http.MethodGet, "/api/celebrities/"+celebID+"/follow-status", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["following"])

	code, body = s.do(http.MethodGet, "/api/celebrities/"+celebID+"/followers", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["followers"].([]any), 1)

	// سلبریتی نمی‌تواند دنبال کند
	code, _ = s.do(http.MethodPost, "/api/celebrities/"+celebID+"/follow", celeb.token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/celebrities/"+celebID+"/follow", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/celebrities/not-a-uuid/follow", fan.token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/celebrities/00000000-0000-4000-8000-000000000000/follow", fan.token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(http.MethodPost, "/api/celebrities/"+celebID+"/unfollow", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["wasFollowing"])
	assert.EqualValues(t, 0, body["followersCount"])

	code, body = s.do(http.MethodPost, "/api/celebrities/"+celebID+"/unfollow", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "wasFollowing")
	assert.EqualValues(t, 0, body["followersCount"])
}

func TestConcurrentFollowOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)

	fan := s.registerFan("a@x.com")
	_, celebID := s.registerCelebrity("b@x.com", "B Star")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/celebrities/"+celebID+"/follow", nil)
			req.Header.Set("Authorization", "Bearer "+fan.token)
			w := httptest.NewRecorder()
			s.handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	code, body := s.do(http.MethodGet, "/api/celebrities/"+celebID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["celebrity"].(map[string]any)["followersCount"])
}

func TestCelebrityUpdateAndVerifyPermissions(t *testing.T) {
	s := newTestServer(t, nil)

	owner, celebID := s.registerCelebrity("b@x.com", "B Star")
	intruder, _ := s.registerCelebrity("c@x.com", "C Star")
	fan := s.registerFan("a@x.com")

	code, _ := s.do(http.MethodPut, "/api/celebrities/"+celebID, intruder.token, map[string]any{"stageName": "Hacked"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body := s.do(http.MethodPut, "/api/celebrities/"+celebID, owner.token, map[string]any{"bio": "new bio", "isVerified": true})
	require.Equal(t, http.StatusOK, code)
	celeb := body["celebrity"].(map[string]any)
	assert.Equal(t, "new bio", celeb["bio"])
	assert.Equal(t, false, celeb["isVerified"])

	code, _ = s.do(http.MethodPatch, "/api/celebrities/"+celebID+"/verify", owner.token, map[string]any{"verified": true})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodPatch, "/api/celebrities/"+celebID+"/verify", fan.token, map[string]any{"verified": true})
	assert.Equal(t, http.StatusForbidden, code)

	admin := s.admin()
	code, _ = s.do(http.MethodPatch, "/api/celebrities/"+celebID+"/verify", admin.token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFanEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	fan := s.registerFan("a@x.com")
	other := s.registerFan("b@x.com")
	_, celebID := s.registerCelebrity("c@x.com", "C Star")

	code, profile := s.do(http.MethodGet, "/api/users/profile", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	fanID := profile["fan"].(map[string]any)["id"].(string)

	code, body := s.do(http.MethodGet, "/api/fans/"+fanID, other.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ann", body["fan"].(map[string]any)["firstName"])

	code, _ = s.do(http.MethodPut, "/api/fans/"+fanID, other.token, map[string]any{"location": "Elsewhere"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = s.do(http.MethodPut, "/api/fans/"+fanID, fan.token, map[string]any{
		"location": "Tehran", "interests": []string{"music"}, "dateOfBirth": "1999-04-12",
	})
	require.Equal(t, http.StatusOK, code)
	updated := body["fan"].(map[string]any)
	assert.Equal(t, "Tehran", updated["location"])
	assert.Equal(t, "1999-04-12", updated["dateOfBirth"])

	code, _ = s.do(http.MethodPost, "/api/celebrities/"+celebID+"/follow", fan.token, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = s.do(http.MethodGet, "/api/fans/"+fanID+"/following", fan.token, nil)
	require.Equal(t, http.StatusOK, code)
	list := body["celebrities"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "C Star", list[0].(map[string]any)["stageName"])

	code, _ = s.do(http.MethodGet, "/api/fans/"+fanID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, middleware.NewIPRateLimiter(0.001, 2))

	login := map[string]any{"email": "nobody@x.com", "password": "Passw0rd1"}
	code, _ := s.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.EqualValues(t, http.StatusTooManyRequests, body["statusCode"])

	// مسیرهای دیگر محدود نمی‌شوند
	code, _ = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
}
