package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobmcallan/blog-portal/internal/cache"
	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

var testSession = session.Session{Token: "tok-123", UserID: "u1"}

func TestEndpoints_MethodPathAndBody(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(c *BlogClient) error
		wantMethod string
		wantURI    string
		wantBody   map[string]string
		wantAuth   bool
	}{
		{"register", func(c *BlogClient) error {
			_, err := c.Register(ctx, models.RegisterInput{FirstName: "Ada", LastName: "L", Email: "a@b.c", Password: "pw"})
			return err
		}, "POST", "/api/users/register", map[string]string{"firstName": "Ada", "email": "a@b.c", "password": "pw"}, false},
		{"block", func(c *BlogClient) error { _, err := c.BlockUser(ctx, testSession, "u9"); return err }, "PUT", "/api/users/block-user/u9", nil, true},
		{"unblock", func(c *BlogClient) error { _, err := c.UnblockUser(ctx, testSession, "u9"); return err }, "PUT", "/api/users/unblock-user/u9", nil, true},
		{"fetch users", func(c *BlogClient) error { _, err := c.FetchUsers(ctx, testSession, "ada l"); return err }, "GET", "/api/users?name=ada+l", nil, true},
		{"fetch profile", func(c *BlogClient) error { _, err := c.FetchProfile(ctx, testSession, "u2"); return err }, "GET", "/api/users/profile/u2", nil, true},
		{"fetch user details", func(c *BlogClient) error { _, err := c.FetchUserDetails(ctx, testSession, "u2"); return err }, "GET", "/api/users/u2", nil, true},
		{"follow", func(c *BlogClient) error { _, err := c.FollowUser(ctx, testSession, "u3"); return err }, "PUT", "/api/users/follow", map[string]string{"followId": "u3"}, true},
		{"unfollow", func(c *BlogClient) error { _, err := c.UnfollowUser(ctx, testSession, "u3"); return err }, "PUT", "/api/users/unfollow", map[string]string{"unfollowId": "u3"}, true},
		{"update profile", func(c *BlogClient) error {
			_, err := c.UpdateProfile(ctx, testSession, models.UpdateProfileInput{ID: "u1", Bio: "hi"})
			return err
		}, "PUT", "/api/users/update-profile/u1", map[string]string{"bio": "hi"}, true},
		{"update password", func(c *BlogClient) error { _, err := c.UpdatePassword(ctx, testSession, "new"); return err }, "PUT", "/api/users/update-password", map[string]string{"password": "new"}, true},
		{"forget password", func(c *BlogClient) error { _, err := c.ForgetPassword(ctx, "a@b.c"); return err }, "POST", "/api/users/forgetpassword", map[string]string{"email": "a@b.c"}, false},
		{"reset password", func(c *BlogClient) error {
			_, err := c.ResetPassword(ctx, models.ResetPasswordInput{Token: "rt", Password: "pw"})
			return err
		}, "PUT", "/api/users/resetpassword/rt", map[string]string{"password": "pw"}, false},
		{"generate verification token", func(c *BlogClient) error { _, err := c.GenerateVerificationToken(ctx, testSession); return err }, "GET", "/api/users/generate-verify-email-token", nil, true},
		{"verify account", func(c *BlogClient) error { _, err := c.VerifyAccount(ctx, testSession, "vt"); return err }, "PUT", "/api/users/verify-account", map[string]string{"token": "vt"}, true},
		{"fetch posts", func(c *BlogClient) error { _, err := c.FetchPosts(ctx, testSession, "c1"); return err }, "GET", "/api/posts?category=c1", nil, true},
		{"fetch post", func(c *BlogClient) error { _, err := c.FetchPost(ctx, testSession, "p1"); return err }, "GET", "/api/posts/p1", nil, true},
		{"edit post", func(c *BlogClient) error {
			_, err := c.EditPost(ctx, testSession, models.EditPostInput{ID: "p1", Title: "T", Description: "D", Category: "Go"})
			return err
		}, "PUT", "/api/posts/p1", map[string]string{"title": "T", "description": "D", "category": "Go"}, true},
		{"delete post", func(c *BlogClient) error { _, err := c.DeletePost(ctx, testSession, "p1"); return err }, "DELETE", "/api/posts/p1", nil, true},
		{"toggle like", func(c *BlogClient) error { _, err := c.ToggleLike(ctx, testSession, "p1"); return err }, "PUT", "/api/posts/toggle-add-like", map[string]string{"postId": "p1"}, true},
		{"toggle dislike", func(c *BlogClient) error { _, err := c.ToggleDislike(ctx, testSession, "p1"); return err }, "PUT", "/api/posts/toggle-add-dislike", map[string]string{"postId": "p1"}, true},
		{"create comment", func(c *BlogClient) error {
			_, err := c.CreateComment(ctx, testSession, models.CreateCommentInput{PostID: "p1", Description: "nice"})
			return err
		}, "POST", "/api/comments", map[string]string{"postId": "p1", "description": "nice"}, true},
		{"fetch comment", func(c *BlogClient) error { _, err := c.FetchComment(ctx, testSession, "c1"); return err }, "GET", "/api/comments/c1", nil, true},
		{"edit comment", func(c *BlogClient) error {
			_, err := c.EditComment(ctx, testSession, models.EditCommentInput{ID: "c1", Description: "edit"})
			return err
		}, "PUT", "/api/comments/update/c1", map[string]string{"description": "edit"}, true},
		{"delete comment", func(c *BlogClient) error { _, err := c.DeleteComment(ctx, testSession, "c1"); return err }, "DELETE", "/api/comments/delete/c1", nil, true},
		{"create category", func(c *BlogClient) error { _, err := c.CreateCategory(ctx, testSession, "Go"); return err }, "POST", "/api/categories", map[string]string{"title": "Go"}, true},
		{"fetch categories", func(c *BlogClient) error { _, err := c.FetchCategories(ctx, testSession); return err }, "GET", "/api/categories", nil, true},
		{"fetch category", func(c *BlogClient) error { _, err := c.FetchCategory(ctx, testSession, "k1"); return err }, "GET", "/api/categories/k1", nil, true},
		{"edit category", func(c *BlogClient) error {
			_, err := c.EditCategory(ctx, testSession, models.CategoryInput{ID: "k1", Title: "Rust"})
			return err
		}, "PUT", "/api/categories/update/k1", map[string]string{"title": "Rust"}, true},
		{"delete category", func(c *BlogClient) error { _, err := c.DeleteCategory(ctx, testSession, "k1"); return err }, "DELETE", "/api/categories/delete/k1", nil, true},
		{"send email", func(c *BlogClient) error {
			_, err := c.SendEmail(ctx, testSession, models.SendEmailInput{Email: "x@y.z", Subject: "s", Message: "m"})
			return err
		}, "POST", "/api/email", map[string]string{"email": "x@y.z", "subject": "s", "message": "m"}, true},
		{"fetch emails", func(c *BlogClient) error { _, err := c.FetchEmails(ctx, testSession); return err }, "GET", "/api/email", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				if r.Method != tt.wantMethod {
					t.Errorf("expected %s, got %s", tt.wantMethod, r.Method)
				}
				if r.URL.RequestURI() != tt.wantURI {
					t.Errorf("expected URI %s, got %s", tt.wantURI, r.URL.RequestURI())
				}

				auth := r.Header.Get("Authorization")
				if tt.wantAuth && auth != "Bearer tok-123" {
					t.Errorf("expected bearer token, got %q", auth)
				}
				if !tt.wantAuth && auth != "" {
					t.Errorf("public endpoint must not send Authorization, got %q", auth)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}

				if tt.wantBody != nil {
					if ct := r.Header.Get("Content-Type"); ct != "application/json" {
						t.Errorf("expected JSON content type, got %s", ct)
					}
					var got map[string]interface{}
					if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
						t.Fatalf("failed to decode body: %v", err)
					}
					for k, v := range tt.wantBody {
						if got[k] != v {
							t.Errorf("body[%s]: expected %q, got %v", k, v, got[k])
						}
					}
				}

				w.Header().Set("Content-Type", "application/json")
				if r.Method == http.MethodGet && !strings.Contains(r.URL.Path, "/generate-verify") && isList(r.URL.Path) {
					w.Write([]byte(`[]`))
					return
				}
				w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			c := NewBlogClient(srv.URL, 5*time.Second)
			if err := tt.call(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if calls != 1 {
				t.Errorf("expected exactly one request, got %d", calls)
			}
		})
	}
}

func isList(path string) bool {
	switch path {
	case "/api/users", "/api/posts", "/api/categories", "/api/email":
		return true
	}
	return false
}

func TestLogin_KeepsRawBodyAndOmitsToken(t *testing.T) {
	body := `{"_id":"u1","firstName":"Ada","email":"a@b.c","token":"jwt","isAdmin":true}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not send Authorization")
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewBlogClient(srv.URL, time.Second)
	ua, err := c.Login(context.Background(), models.LoginInput{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua.Token != "jwt" || !ua.IsAdmin {
		t.Errorf("unexpected auth: %+v", ua)
	}
	if string(ua.Raw) != body {
		t.Errorf("expected raw body preserved, got %s", ua.Raw)
	}
}

func TestAPIError_CarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := NewBlogClient(srv.URL, time.Second)
	_, err := c.Login(context.Background(), models.LoginInput{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid login credentials" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Error() != "request failed with status code 401" {
		t.Errorf("unexpected error string %q", apiErr.Error())
	}
}

func TestAPIError_NoMessageFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	_, err := NewBlogClient(srv.URL, time.Second).FetchPost(context.Background(), testSession, "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Internal Server Error" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if string(apiErr.Body) != "oops" {
		t.Errorf("expected raw body kept, got %s", apiErr.Body)
	}
}

func TestTransportError_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewBlogClient(url, time.Second).FetchCategories(context.Background(), testSession)
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %T %v", err, err)
	}
	if tErr.Method != http.MethodGet || tErr.Path != "/api/categories" {
		t.Errorf("unexpected transport error fields: %+v", tErr)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport error must not be an APIError")
	}
}

func TestTransportError_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewBlogClient(srv.URL, 50*time.Millisecond).FetchPosts(context.Background(), testSession, "")
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError on timeout, got %v", err)
	}
}

func TestTransportError_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBlogClient(srv.URL, time.Second).FetchEmails(ctx, testSession)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestTransportError_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewBlogClient(srv.URL, time.Second).FetchPost(context.Background(), testSession, "p1")
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError for malformed body, got %v", err)
	}
}

func TestCreatePost_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/posts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Error("expected bearer token")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart: %v", err)
		}
		if r.FormValue("title") != "Hello" || r.FormValue("description") != "World" || r.FormValue("category") != "Go" {
			t.Errorf("unexpected form values: %v", r.MultipartForm.Value)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image part: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "PNGDATA" {
			t.Errorf("unexpected image data %q", data)
		}
		if hdr.Filename != "cover.png" {
			t.Errorf("unexpected filename %s", hdr.Filename)
		}
		if hdr.Header.Get("Content-Type") != "image/png" {
			t.Errorf("unexpected part content type %s", hdr.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"_id":"p1","title":"Hello"}`))
	}))
	defer srv.Close()

	c := NewBlogClient(srv.URL, time.Second)
	p, err := c.CreatePost(context.Background(), testSession, models.CreatePostInput{
		Title:       "Hello",
		Description: "World",
		CategoryID:  "Go",
		Image:       &models.ImageFile{Filename: "cover.png", ContentType: "image/png", Data: []byte("PNGDATA")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("expected p1, got %s", p.ID)
	}
}

func TestUploadProfilePhoto_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/profile-photo/u1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart: %v", err)
		}
		if r.FormValue("userId") != "u1" {
			t.Errorf("expected userId u1, got %s", r.FormValue("userId"))
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("missing image part: %v", err)
		}
		w.Write([]byte(`{"_id":"u1","profilePhoto":"https://cdn/x.png"}`))
	}))
	defer srv.Close()

	u, err := NewBlogClient(srv.URL, time.Second).UploadProfilePhoto(context.Background(), testSession, "u1",
		&models.ImageFile{Filename: "me.jpg", Data: []byte{0xFF, 0xD8}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ProfilePhoto != "https://cdn/x.png" {
		t.Errorf("unexpected profile photo %s", u.ProfilePhoto)
	}
}

func TestCache_HitsAndInvalidation(t *testing.T) {
	var gets, puts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
			w.Write([]byte(`[{"_id":"p1","title":"Go"}]`))
			return
		}
		atomic.AddInt32(&puts, 1)
		w.Write([]byte(`{"_id":"p1"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewBlogClient(srv.URL, time.Second, WithCache(cache.New(time.Minute, 16)))

	for i := 0; i < 3; i++ {
		posts, err := c.FetchPosts(ctx, testSession, "")
		if err != nil {
			t.Fatalf("FetchPosts failed: %v", err)
		}
		if len(posts) != 1 || posts[0].Title != "Go" {
			t.Errorf("unexpected posts %+v", posts)
		}
	}
	if gets != 1 {
		t.Errorf("expected 1 backend GET with cache, got %d", gets)
	}

	other := session.Session{Token: "other", UserID: "u2"}
	if _, err := c.FetchPosts(ctx, other, ""); err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if gets != 2 {
		t.Errorf("cache must be per credential, expected 2 GETs, got %d", gets)
	}

	if _, err := c.ToggleLike(ctx, testSession, "p1"); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if _, err := c.FetchPosts(ctx, testSession, ""); err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if gets != 3 {
		t.Errorf("mutation should invalidate cached posts, expected 3 GETs, got %d", gets)
	}
}

func TestCache_ScopedByTokenWithoutUserID(t *testing.T) {
	var gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&gets, 1)
		if r.Header.Get("Authorization") != "Bearer admin" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"admins only"}`))
			return
		}
		w.Write([]byte(`[{"_id":"u1","firstName":"Ada"}]`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewBlogClient(srv.URL, time.Second, WithCache(cache.New(time.Minute, 16)))

	users, err := c.FetchUsers(ctx, session.Session{Token: "admin"}, "")
	if err != nil {
		t.Fatalf("admin FetchUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}

	_, err = c.FetchUsers(ctx, session.Session{Token: "nobody"}, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 APIError for a different token, got %v", err)
	}
	if gets != 2 {
		t.Errorf("expected the second token to reach the backend, got %d GETs", gets)
	}

	if _, err := c.FetchUsers(ctx, session.Session{Token: "admin"}, ""); err != nil {
		t.Fatalf("admin FetchUsers failed: %v", err)
	}
	if gets != 2 {
		t.Errorf("expected the admin list to be served from cache, got %d GETs", gets)
	}
}

func TestCredentialKey(t *testing.T) {
	if credentialKey("") != "" {
		t.Error("anonymous requests should use the empty scope")
	}
	a, b := credentialKey("admin"), credentialKey("nobody")
	if a == b {
		t.Error("different tokens must not share a scope")
	}
	if strings.Contains(a, "admin") || strings.Contains(a, ":") {
		t.Errorf("scope %q must not embed the token or a separator", a)
	}
}

func TestCache_VerificationTokenNeverCached(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`"sent"`))
	}))
	defer srv.Close()

	c := NewBlogClient(srv.URL, time.Second, WithCache(cache.New(time.Minute, 16)))
	c.GenerateVerificationToken(context.Background(), testSession)
	c.GenerateVerificationToken(context.Background(), testSession)
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
}

func TestResourceOf(t *testing.T) {
	tests := map[string]string{
		"/api/posts":                    "/api/posts",
		"/api/posts/p1":                 "/api/posts",
		"/api/posts?category=go":        "/api/posts",
		"/api/comments/update/c1":       "/api/comments",
		"/api/users/profile-photo/u1":   "/api/users",
		"/health":                       "/health",
	}
	for in, want := range tests {
		if got := resourceOf(in); got != want {
			t.Errorf("resourceOf(%q) = %q, want %q", in, got, want)
		}
	}
}
