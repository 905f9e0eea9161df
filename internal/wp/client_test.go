package wp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(ts *httptest.Server) *Client {
	return &Client{
		baseURL:    ts.URL,
		username:   "admin",
		password:   "app-secret",
		httpClient: ts.Client(),
	}
}

func TestClient_Get_AuthHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "app-secret" {
			t.Errorf("BasicAuth = (%q, %q, %v), want (admin, app-secret, true)", user, pass, ok)
		}
		w.Write([]byte("{}"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if _, err := c.Get(context.Background(), "/wp-json/wp/v2/types", nil); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
}

func TestClient_Get_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"rest_cannot_access"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.Get(context.Background(), "/wp-json/wp/v2/types", nil)
	if err == nil {
		t.Fatal("Get should return error for 401")
	}
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error should be *HTTPError, got %T", err)
	}
	if he.Status != 401 {
		t.Errorf("Status = %d, want 401", he.Status)
	}
	if he.Body != `{"code":"rest_cannot_access"}` {
		t.Errorf("Body = %q, want the response body", he.Body)
	}
}

func TestClient_GetJSON_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	var dest map[string]interface{}
	err := c.GetJSON(context.Background(), "/wp-json/wp/v2/users/me", nil, &dest)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestClient_ListPostTypes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/types" {
			t.Errorf("path = %s, want /wp-json/wp/v2/types", r.URL.Path)
		}
		if r.URL.Query().Get("context") != "edit" {
			t.Errorf("context = %q, want edit", r.URL.Query().Get("context"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"post": map[string]interface{}{
				"name":      "Posts",
				"slug":      "post",
				"rest_base": "posts",
				"viewable":  true,
				"schema": map[string]interface{}{
					"properties": map[string]interface{}{
						"title": map[string]interface{}{"type": "object"},
					},
				},
			},
			"page": map[string]interface{}{
				"name":         "Pages",
				"slug":         "page",
				"rest_base":    "pages",
				"hierarchical": true,
			},
		})
	}))
	defer ts.Close()

	c := newTestClient(ts)
	types, err := c.ListPostTypes(context.Background())
	if err != nil {
		t.Fatalf("ListPostTypes returned error: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("got %d types, want 2", len(types))
	}
	post := types["post"]
	if post.RESTBase != "posts" || !post.Viewable {
		t.Errorf("post = %+v, want rest_base=posts viewable=true", post)
	}
	if _, ok := post.Schema["properties"]; !ok {
		t.Error("post schema should keep its properties map")
	}
	if !types["page"].Hierarchical {
		t.Error("page should be hierarchical")
	}
}

func TestClient_ValidateConnection(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer ok.Close()
	if !newTestClient(ok).ValidateConnection(context.Background()) {
		t.Error("ValidateConnection = false for healthy server")
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer bad.Close()
	if newTestClient(bad).ValidateConnection(context.Background()) {
		t.Error("ValidateConnection = true for 403, want false")
	}
}

func TestClient_FetchSampleItems_404IsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"rest_no_route"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, body, err := c.FetchSampleItems(context.Background(), "customthings")
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if items != nil || body != nil {
		t.Errorf("items, body = %v, %v, want nil, nil", items, body)
	}
}

func TestClient_FetchSampleItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/posts" {
			t.Errorf("path = %s, want /wp-json/wp/v2/posts", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"meta":{"subtitle":"x"}},{"id":2}]`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, body, err := c.FetchSampleItems(context.Background(), "posts")
	if err != nil {
		t.Fatalf("FetchSampleItems returned error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
	if len(body) == 0 {
		t.Error("raw body should be returned for custom-field probing")
	}
}

func TestClient_CreateItem_FailureCarriesStatusAndBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		if payload["title"] != "hello" {
			t.Errorf("payload title = %v, want hello", payload["title"])
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"rest_missing_callback_param"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	err := c.CreateItem(context.Background(), "posts", map[string]interface{}{"title": "hello"})
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error should be *HTTPError, got %T (%v)", err, err)
	}
	if he.Status != 400 {
		t.Errorf("Status = %d, want 400", he.Status)
	}
	if he.Body == "" {
		t.Error("Body should carry the response for display")
	}
}
