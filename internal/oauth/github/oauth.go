// Package github implements the GitHub OAuth 2.0 provider.
// GitHub does not issue ID tokens, so the profile comes from the REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	githubOAuth2 "golang.org/x/oauth2/github"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/oauth"
)

const (
	Name          = "github"
	defaultAPIURL = "https://api.github.com"
	userAgent     = "hellokey"
)

// DefaultScopes are requested when the config does not list any.
var DefaultScopes = []string{"user:email", "read:user", "read:org", "public_repo"}

// Config holds the registered GitHub OAuth app. AuthURL, TokenURL and APIURL
// default to github.com and only need overriding for GHE or tests.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	AuthURL  string
	TokenURL string
	APIURL   string

	HTTPClient *http.Client
}

// OAuth is the GitHub provider.
type OAuth struct {
	cfg    *oauth2.Config
	apiURL string
	http   *http.Client
}

var _ oauth.Provider = (*OAuth)(nil)

// New creates a new GitHub OAuth client.
func New(c Config) *OAuth {
	scopes := c.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	endpoint := githubOAuth2.Endpoint
	if c.AuthURL != "" {
		endpoint.AuthURL = c.AuthURL
	}
	if c.TokenURL != "" {
		endpoint.TokenURL = c.TokenURL
	}
	// el token endpoint de GitHub acepta credenciales en el form
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	apiURL := strings.TrimRight(c.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	return &OAuth{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		apiURL: apiURL,
		http:   hc,
	}
}

func (g *OAuth) Name() string { return Name }

// Scopes returns the scopes requested on the consent screen.
func (g *OAuth) Scopes() []string { return append([]string(nil), g.cfg.Scopes...) }

// AuthCodeURL builds the consent URL; a non-empty verifier adds the S256 challenge.
func (g *OAuth) AuthCodeURL(state, verifier string) string {
	opts := []oauth2.AuthCodeOption{}
	if verifier != "" {
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}
	return g.cfg.AuthCodeURL(state, opts...)
}

// Exchange trades the code for an access token at the token endpoint.
func (g *OAuth) Exchange(ctx context.Context, code, verifier string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.http)
	opts := []oauth2.AuthCodeOption{}
	if verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}
	tok, err := g.cfg.Exchange(ctx, code, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", oauth.ErrExchange, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: no access_token in response", oauth.ErrExchange)
	}
	return tok.AccessToken, nil
}

// Profile reads /user with the access token.
func (g *OAuth) Profile(ctx context.Context, accessToken string) (domain.IdentityProfile, error) {
	return g.getProfile(ctx, g.apiURL+"/user", accessToken)
}

// ProfileByID reads the public profile at /user/{id}. No token is sent.
func (g *OAuth) ProfileByID(ctx context.Context, id uint64) (domain.IdentityProfile, error) {
	return g.getProfile(ctx, g.apiURL+"/user/"+strconv.FormatUint(id, 10), "")
}

func (g *OAuth) getProfile(ctx context.Context, endpoint, accessToken string) (domain.IdentityProfile, error) {
	var p domain.IdentityProfile

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return p, fmt.Errorf("%w: %v", oauth.ErrProfile, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	// GitHub rechaza requests sin User-Agent
	req.Header.Set("User-Agent", userAgent)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return p, fmt.Errorf("%w: %v", oauth.ErrProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return p, fmt.Errorf("%w: status %d: %s", oauth.ErrProfile, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw struct {
		ID    uint64  `json:"id"`
		Login string  `json:"login"`
		Name  *string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return p, fmt.Errorf("%w: decode: %v", oauth.ErrProfile, err)
	}
	if raw.ID == 0 || raw.Login == "" {
		return p, fmt.Errorf("%w: incomplete profile", oauth.ErrProfile)
	}

	p.ExternalID = raw.ID
	p.LoginHandle = raw.Login
	if raw.Name != nil {
		p.DisplayName = *raw.Name
	}
	return p, nil
}
