// Package client is the HTTP client for the forum API, pairing the local
// session store with the wire endpoints. All calls return either a decoded
// value or an *APIError carrying the server's status and details.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/summit-seekers/forum-service/internal/client/session"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/model"
)

type APIError struct {
	Status int
	Details string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Details)
}

type Client struct {
	baseURL string
	session *session.Store
	httpClient *http.Client
	token string
}

func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: store,
		httpClient: &http.Client{},
	}
}

// SetSecretKey registers the key with the server and persists it locally
// once the server accepts it, caching the returned session token. A key the
// server rejects never reaches the session file, so a stored key always
// signs in.
func (c *Client) SetSecretKey(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return session.ErrEmptySecretKey
	}

	var resp dto.SessionResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/identity/key", dto.RegisterKeyRequest{
		ID: c.session.Current().ID,
		SecretKey: key,
	}, &resp, false); err != nil {
		return err
	}

	if err := c.session.SetSecretKey(key); err != nil {
		return err
	}

	c.token = resp.Token
	return nil
}

// SignOut drops the local identity. The server keeps the identity's posts;
// they are simply no longer reachable from this profile.
func (c *Client) SignOut() error {
	c.token = ""
	return c.session.SignOut()
}

func (c *Client) Feed(ctx context.Context, sortKey string, searchTerm string, flags []string, limit int, offset int) ([]*model.FullPost, error) {
	query := url.Values{}
	if sortKey != "" {
		query.Set("sort", sortKey)
	}
	if searchTerm != "" {
		query.Set("q", searchTerm)
	}
	if len(flags) > 0 {
		query.Set("flags", strings.Join(flags, ","))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/v1/posts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var posts []*model.FullPost
	if err := c.do(ctx, http.MethodGet, path, nil, &posts, false); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Post(ctx context.Context, id int64) (*dto.GetPost, error) {
	var post dto.GetPost
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", id), nil, &post, c.session.Current().Authenticated()); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, input dto.CreatePostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodPost, "/api/v1/posts", input, &post, true); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) EditPost(ctx context.Context, id int64, input dto.EditPostRequest) (*model.FullPost, error) {
	var post model.FullPost
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/posts/%d", id), input, &post, true); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", id), nil, nil, true)
}

func (c *Client) Upvote(ctx context.Context, postID int64) (int64, error) {
	var resp dto.UpvoteResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/upvote", postID), nil, &resp, true); err != nil {
		return 0, err
	}
	return resp.Upvotes, nil
}

func (c *Client) Comments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/comments", postID), nil, &comments, false); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	var comment model.Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), dto.CreateCommentRequest{Content: content}, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ensureToken signs in with the stored credentials when no session token is
// cached yet.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" {
		return nil
	}

	current := c.session.Current()
	if !current.Authenticated() {
		return &APIError{Status: http.StatusUnauthorized, Details: "no secret key set"}
	}

	var resp dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/identity/session", dto.SessionRequest{
		ID: current.ID,
		SecretKey: current.SecretKey,
	}, &resp, false); err != nil {
		return err
	}

	c.token = resp.Token
	return nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}, authenticated bool) error {
	if authenticated {
		if err := c.ensureToken(ctx); err != nil {
			return err
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var basic dto.BasicResponse
		details := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&basic); err == nil && basic.Details != "" {
			details = basic.Details
		}
		return &APIError{Status: resp.StatusCode, Details: details}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
