package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dropDatabas3/hellokey/internal/oauth"
	"github.com/dropDatabas3/hellokey/internal/oauth/github"
)

func newFakeGitHub(t *testing.T, verifier string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" || r.PostForm.Get("client_secret") != "gh-secret" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`))
			return
		}
		if verifier != "" && r.PostForm.Get("code_verifier") != verifier {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "gh-access", "token_type": "bearer"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"id": 42, "login": "octo", "name": "Octo Cat"}`))
	})
	mux.HandleFunc("/user/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 42, "login": "octo", "name": null}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(srv *httptest.Server) *github.OAuth {
	return github.New(github.Config{
		ClientID:     "gh-client",
		ClientSecret: "gh-secret",
		RedirectURL:  "https://api.example.test/callback/github",
		AuthURL:      srv.URL + "/login/oauth/authorize",
		TokenURL:     srv.URL + "/login/oauth/access_token",
		APIURL:       srv.URL,
		HTTPClient:   srv.Client(),
	})
}

func TestAuthCodeURL(t *testing.T) {
	g := github.New(github.Config{ClientID: "gh-client", RedirectURL: "https://api.example.test/callback/github"})
	verifier := oauth2.GenerateVerifier()

	u, err := url.Parse(g.AuthCodeURL("csrf-123", verifier))
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "github.com", u.Host)
	assert.Equal(t, "gh-client", q.Get("client_id"))
	assert.Equal(t, "https://api.example.test/callback/github", q.Get("redirect_uri"))
	assert.Equal(t, "csrf-123", q.Get("state"))
	assert.Equal(t, "user:email read:user read:org public_repo", q.Get("scope"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(verifier), q.Get("code_challenge"))
}

func TestAuthCodeURL_WithoutPKCE(t *testing.T) {
	g := github.New(github.Config{ClientID: "gh-client", Scopes: []string{"read:user"}})
	u, err := url.Parse(g.AuthCodeURL("s", ""))
	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("code_challenge"))
	assert.Equal(t, "read:user", u.Query().Get("scope"))
}

func TestExchangeAndProfile(t *testing.T) {
	verifier := oauth2.GenerateVerifier()
	srv := newFakeGitHub(t, verifier)
	g := newProvider(srv)
	ctx := context.Background()

	tok, err := g.Exchange(ctx, "good-code", verifier)
	require.NoError(t, err)
	assert.Equal(t, "gh-access", tok)

	p, err := g.Profile(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), p.ExternalID)
	assert.Equal(t, "octo", p.LoginHandle)
	assert.Equal(t, "Octo Cat", p.DisplayName)
}

func TestExchange_Errors(t *testing.T) {
	verifier := oauth2.GenerateVerifier()
	srv := newFakeGitHub(t, verifier)
	g := newProvider(srv)

	_, err := g.Exchange(context.Background(), "bad-code", verifier)
	assert.ErrorIs(t, err, oauth.ErrExchange)

	_, err = g.Exchange(context.Background(), "good-code", "wrong-verifier")
	assert.ErrorIs(t, err, oauth.ErrExchange)
}

func TestProfile_Unauthorized(t *testing.T) {
	srv := newFakeGitHub(t, "")
	g := newProvider(srv)

	_, err := g.Profile(context.Background(), "nope")
	assert.ErrorIs(t, err, oauth.ErrProfile)
}

func TestProfileByID(t *testing.T) {
	srv := newFakeGitHub(t, "")
	g := newProvider(srv)

	p, err := g.ProfileByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), p.ExternalID)
	assert.Equal(t, "octo", p.LoginHandle)
	assert.Empty(t, p.DisplayName)

	_, err = g.ProfileByID(context.Background(), 7)
	assert.ErrorIs(t, err, oauth.ErrProfile)
}
