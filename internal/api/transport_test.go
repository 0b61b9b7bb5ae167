package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/organizerhq/backoffice/internal/models"
	"github.com/organizerhq/backoffice/internal/repositories/session"
	"github.com/stretchr/testify/suite"
)

type TransportTestSuite struct {
	suite.Suite
	store session.Repository
	ctx   context.Context

	testOrganizer *models.Organizer
}

func (s *TransportTestSuite) SetupTest() {
	store, err := session.NewFile(&session.Config{
		Dir: s.T().TempDir(),
	})
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()

	s.testOrganizer = &models.Organizer{
		ID:    7,
		Email: "org@example.com",
		Role:  "organizer",
		Profile: models.Profile{
			Name: "Test Organization",
		},
	}
}

func TestTransportTestSuite(t *testing.T) {
	suite.Run(t, new(TransportTestSuite))
}

func (s *TransportTestSuite) saveTokens(access, refresh string) {
	err := s.store.Save(s.ctx, &session.SaveInput{
		Organizer: s.testOrganizer,
		Tokens:    &models.Tokens{Access: access, Refresh: refresh},
	})
	s.Require().NoError(err)
}

func (s *TransportTestSuite) client(serverURL string) *http.Client {
	return &http.Client{
		Transport: newTransport(nil, s.store, serverURL+refreshPath),
	}
}

func (s *TransportTestSuite) TestAttachesBearerToken() {
	s.saveTokens("a1", "r1")

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := s.client(server.URL).Get(server.URL + "/protected")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Bearer a1", gotAuth)
}

func (s *TransportTestSuite) TestNoSessionSendsUnauthenticated() {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	resp, err := s.client(server.URL).Get(server.URL + "/protected")
	s.Require().NoError(err)
	defer resp.Body.Close()

	// No token means no header and no refresh attempt; the 401 passes through
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Empty(gotAuth)
}

func (s *TransportTestSuite) TestRefreshAndRetryOn401() {
	s.saveTokens("stale", "r1")

	var protectedCalls, refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case refreshPath:
			atomic.AddInt32(&refreshCalls, 1)

			var payload map[string]string
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&payload))
			s.Equal("r1", payload["refresh"])

			_ = json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
		default:
			atomic.AddInt32(&protectedCalls, 1)
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	resp, err := s.client(server.URL).Get(server.URL + "/protected")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(int32(2), atomic.LoadInt32(&protectedCalls))
	s.Equal(int32(1), atomic.LoadInt32(&refreshCalls))

	// New access persisted, refresh token untouched
	sess, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(sess)
	s.Equal("fresh", sess.Tokens.Access)
	s.Equal("r1", sess.Tokens.Refresh)
}

func (s *TransportTestSuite) TestRetriesAtMostOnce() {
	s.saveTokens("stale", "r1")

	var protectedCalls, refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case refreshPath:
			atomic.AddInt32(&refreshCalls, 1)
			_ = json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
		default:
			// The backend keeps rejecting even the refreshed token
			atomic.AddInt32(&protectedCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	resp, err := s.client(server.URL).Get(server.URL + "/protected")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal(int32(2), atomic.LoadInt32(&protectedCalls))
	s.Equal(int32(1), atomic.LoadInt32(&refreshCalls))
}

func (s *TransportTestSuite) TestRefreshFailurePropagatesOriginal401() {
	s.saveTokens("stale", "r1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == refreshPath {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"refresh token expired"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"original"}`))
	}))
	defer server.Close()

	resp, err := s.client(server.URL).Get(server.URL + "/protected")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.JSONEq(`{"detail":"original"}`, string(body))
}

func (s *TransportTestSuite) TestRetryReplaysRequestBody() {
	s.saveTokens("stale", "r1")

	var bodies []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == refreshPath {
			_ = json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
			return
		}

		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, server.URL+"/events/", newJSONBody(`{"title":"Launch"}`))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client(server.URL).Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)
	s.Require().Len(bodies, 2)
	s.Equal(bodies[0], bodies[1])
}

// Two requests that 401 together each refresh on their own; there is no
// coalescing of concurrent refreshes.
func (s *TransportTestSuite) TestConcurrent401sRefreshIndependently() {
	s.saveTokens("stale", "r1")

	var refreshCalls int32
	var arrived sync.WaitGroup
	arrived.Add(2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case refreshPath:
			atomic.AddInt32(&refreshCalls, 1)
			_ = json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
		default:
			if r.Header.Get("Authorization") == "Bearer stale" {
				// Hold both first attempts until both are in flight so
				// neither sees the other's refreshed token
				arrived.Done()
				arrived.Wait()
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := s.client(server.URL)

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := client.Get(server.URL + "/protected")
			if err != nil {
				return
			}
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	s.Equal([]int{http.StatusOK, http.StatusOK}, statuses)
	s.Equal(int32(2), atomic.LoadInt32(&refreshCalls))
}
