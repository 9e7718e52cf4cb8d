package netclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/w1ncs/netcontrol/internal/models"
)

// GrantHeader mirrors the server's delegated-permission header
const GrantHeader = "X-Grant-Token"

// Caller invokes a named server-side procedure. SessionStore depends on this
// interface, so tests can substitute a fake backend.
type Caller interface {
	CallProcedure(ctx context.Context, name string, params interface{}, out interface{}) error
}

// Grant is a delegated permission set obtained via net.verify_passcode,
// held only in memory for the lifetime of the client
type Grant struct {
	Permissions models.PermissionSet
	Token       string
}

// Client talks to a NetControl server. It holds the access token and any
// passcode grants; neither survives the process.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu      sync.Mutex
	token   string
	profile *models.Profile
	grants  map[string]Grant // netID -> grant
}

// New creates a client for the given server base URL
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		grants:     make(map[string]Grant),
	}
}

// SetToken installs a previously obtained access token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Profile returns the signed-in profile, or nil
func (c *Client) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

type loginResponse struct {
	Tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"tokens"`
	Profile *models.Profile `json:"profile"`
}

// Login signs in with email and password and installs the access token
func (c *Client) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", "", body, &resp); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = resp.Tokens.AccessToken
	c.profile = resp.Profile
	c.mu.Unlock()
	return resp.Profile, nil
}

// Logout drops the token, profile and all in-memory grants
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.profile = nil
	c.grants = make(map[string]Grant)
}

// AccessToken returns the current access token (for persistence by CLIs)
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// CallProcedure invokes a named procedure with no grant attached
func (c *Client) CallProcedure(ctx context.Context, name string, params interface{}, out interface{}) error {
	return c.post(ctx, "/api/procedures/"+name, "", params, out)
}

// ForNet returns a Caller that attaches the stored passcode grant for the
// net (if any) to every procedure call
func (c *Client) ForNet(netID string) Caller {
	return &netCaller{client: c, netID: netID}
}

type netCaller struct {
	client *Client
	netID  string
}

func (nc *netCaller) CallProcedure(ctx context.Context, name string, params interface{}, out interface{}) error {
	nc.client.mu.Lock()
	grantToken := nc.client.grants[nc.netID].Token
	nc.client.mu.Unlock()
	return nc.client.post(ctx, "/api/procedures/"+name, grantToken, params, out)
}

// FetchRows reads a full entity collection, optionally filtered
func (c *Client) FetchRows(ctx context.Context, table string, query url.Values, out interface{}) error {
	path := "/api/rows/" + table
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.get(ctx, path, out)
}

// VerifyPasscode exchanges a passcode for a delegated grant. Returns false
// with no error when the passcode is rejected: absence of a grant, not an
// error, signals "wrong passcode".
func (c *Client) VerifyPasscode(ctx context.Context, netID, passcode string) (bool, error) {
	params := map[string]string{"netId": netID, "passcode": passcode}
	var grant *struct {
		NetID       string               `json:"netId"`
		Permissions models.PermissionSet `json:"permissions"`
		GrantToken  string               `json:"grantToken"`
	}
	if err := c.CallProcedure(ctx, "net.verify_passcode", params, &grant); err != nil {
		return false, err
	}
	if grant == nil {
		return false, nil
	}

	c.mu.Lock()
	c.grants[grant.NetID] = Grant{Permissions: grant.Permissions, Token: grant.GrantToken}
	c.mu.Unlock()
	return true, nil
}

// Grants returns a snapshot of the in-memory permission grants keyed by net
func (c *Client) Grants() map[string]models.PermissionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]models.PermissionSet, len(c.grants))
	for netID, g := range c.grants {
		out[netID] = g.Permissions
	}
	return out
}

func (c *Client) post(ctx context.Context, path, grantToken string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "failed to encode request", Details: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return normalizeError(0, nil, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if grantToken != "" {
		req.Header.Set(GrantHeader, grantToken)
	}
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return normalizeError(0, nil, err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return normalizeError(0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizeError(0, nil, err)
	}
	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, body, nil)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindServer, Message: "failed to decode response", Details: err.Error()}
	}
	return nil
}
