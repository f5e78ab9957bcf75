package medium_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	pkgerrs "github.com/jamesprial/go-medium-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
	"github.com/jamesprial/go-medium-api-wrapper/test_helpers"
)

// TestAuthorizeAndPublishWorkflow runs the full flow: code exchange, profile
// lookup, listing, then publishing a draft.
func TestAuthorizeAndPublishWorkflow(t *testing.T) {
	tc := test_helpers.NewTestClient(nil)
	defer tc.Close()
	ms := tc.MockServer()
	ctx := context.Background()

	tok, err := tc.ExchangeAuthorizationCode(ctx, "the-code", "https://example.com/cb")
	if err != nil {
		t.Fatalf("ExchangeAuthorizationCode returned error: %v", err)
	}
	if tok.RefreshToken != test_helpers.MockRefreshToken {
		t.Errorf("unexpected refresh token %q", tok.RefreshToken)
	}

	tokenReq, err := ms.GetLastRequest(http.MethodPost, "/v1/oauth/tokens")
	if err != nil {
		t.Fatal(err)
	}
	form, err := url.ParseQuery(tokenReq.Body)
	if err != nil {
		t.Fatalf("token request body is not a form: %v", err)
	}
	wantForm := map[string]string{
		"code":          "the-code",
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
		"grant_type":    "authorization_code",
		"redirect_uri":  "https://example.com/cb",
	}
	for k, v := range wantForm {
		if form.Get(k) != v {
			t.Errorf("token form %s = %q, want %q", k, form.Get(k), v)
		}
	}

	user, err := tc.GetUser(ctx)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	meReq, _ := ms.GetLastRequest(http.MethodGet, "/v1/me")
	if got := meReq.Headers.Get("Authorization"); got != "Bearer "+test_helpers.MockAccessToken {
		t.Errorf("expected exchanged token on /me, got %q", got)
	}
	if got := meReq.Headers.Get("User-Agent"); got != "test-client/1.0" {
		t.Errorf("unexpected user agent %q", got)
	}

	posts, err := tc.GetPostsForUser(ctx, &types.PostsRequest{UserID: user.ID})
	if err != nil {
		t.Fatalf("GetPostsForUser returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].AuthorID != user.ID {
		t.Errorf("unexpected posts: %+v", posts)
	}

	post, err := tc.CreatePost(ctx, &types.CreatePostRequest{
		UserID:        user.ID,
		Title:         "Liverpool FC",
		Content:       "You'll never walk alone.",
		ContentFormat: types.ContentFormatMarkdown,
		Tags:          []string{"football"},
		PublishStatus: types.PublishStatusDraft,
	})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if post.PublishStatus != types.PublishStatusDraft {
		t.Errorf("unexpected post: %+v", post)
	}

	createReq, _ := ms.GetLastRequest(http.MethodPost, "/v1/users/"+user.ID+"/posts")
	var sent map[string]interface{}
	if err := json.Unmarshal([]byte(createReq.Body), &sent); err != nil {
		t.Fatalf("create body is not JSON: %v", err)
	}
	if len(sent) != 5 {
		t.Errorf("expected exactly the 5 supplied fields, got %v", sent)
	}
	if _, ok := sent["userId"]; ok {
		t.Error("userId must not be sent in the body")
	}

	if ms.TotalCalls() != 4 {
		t.Errorf("expected 4 requests, got %d", ms.TotalCalls())
	}
}

func TestPublicationWorkflow(t *testing.T) {
	tc := test_helpers.NewTestClient(nil)
	defer tc.Close()
	ctx := context.Background()

	tc.SetAccessToken("saved-token")

	pubs, err := tc.GetPublicationsForUser(ctx, &types.PublicationsRequest{UserID: test_helpers.MockUserID})
	if err != nil {
		t.Fatalf("GetPublicationsForUser returned error: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected one publication, got %d", len(pubs))
	}

	contributors, err := tc.GetContributorsForPublication(ctx, &types.PublicationRequest{PublicationID: pubs[0].ID})
	if err != nil {
		t.Fatalf("GetContributorsForPublication returned error: %v", err)
	}
	if len(contributors) != 1 || contributors[0].Role != "editor" {
		t.Errorf("unexpected contributors: %+v", contributors)
	}

	post, err := tc.CreatePostInPublication(ctx, &types.CreatePostRequest{
		PublicationID: pubs[0].ID,
		Title:         "Liverpool FC",
	})
	if err != nil {
		t.Fatalf("CreatePostInPublication returned error: %v", err)
	}
	if post.PublicationID != pubs[0].ID {
		t.Errorf("unexpected post: %+v", post)
	}
}

func TestRefreshTokenWorkflow(t *testing.T) {
	tc := test_helpers.NewTestClient(nil)
	defer tc.Close()
	ms := tc.MockServer()
	ctx := context.Background()

	tc.SetAccessToken("expired")

	ts := tc.TokenSource(ctx, "old-refresh")
	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("Token() returned error: %v", err)
	}
	if tok.AccessToken != test_helpers.MockAccessToken || tc.AccessToken() != test_helpers.MockAccessToken {
		t.Errorf("expected refreshed token, got %q / %q", tok.AccessToken, tc.AccessToken())
	}

	// The fixture token expires in 2100, so the source caches it.
	if _, err := ts.Token(); err != nil {
		t.Fatalf("second Token() returned error: %v", err)
	}
	if n := ms.GetCallCount(http.MethodPost, "/v1/oauth/tokens"); n != 1 {
		t.Errorf("expected one refresh, got %d", n)
	}
}

func TestServiceErrorsSurface(t *testing.T) {
	tc := test_helpers.NewTestClient(nil)
	defer tc.Close()
	ms := tc.MockServer()

	ms.SetupError(http.StatusUnauthorized, "Token was invalid.", 6003)

	_, err := tc.GetUser(context.Background())
	if !pkgerrs.IsAPI(err) || pkgerrs.CodeOf(err) != 6003 {
		t.Fatalf("expected API error 6003, got %v", err)
	}

	ms.SetDefaultResponse(&test_helpers.MockResponse{Status: http.StatusBadGateway, Body: "<html>bad gateway</html>"})
	_, err = tc.GetUser(context.Background())
	if pkgerrs.KindOf(err) != pkgerrs.KindParse || pkgerrs.CodeOf(err) != pkgerrs.SentinelCode {
		t.Fatalf("expected parse error with code -1, got %v", err)
	}
}

func TestSlowServerTimesOut(t *testing.T) {
	tc := test_helpers.NewTestClient(&test_helpers.MockClientConfig{
		UserAgent: "test-client/1.0",
		Timeout:   50 * time.Millisecond,
	})
	defer tc.Close()
	tc.MockServer().SetDelay(time.Second)

	start := time.Now()
	_, err := tc.GetUser(context.Background())
	if !pkgerrs.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if time.Since(start) > 900*time.Millisecond {
		t.Errorf("request was not cut short: %v", time.Since(start))
	}
}
