package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserRef_UnmarshalID(t *testing.T) {
	var c Comment
	if err := json.Unmarshal([]byte(`{"_id":"c1","post":"p1","user":"u1"}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.User.ID != "u1" {
		t.Errorf("expected user id u1, got %s", c.User.ID)
	}
	if c.User.User != nil {
		t.Error("bare id should not populate User")
	}
}

func TestUserRef_UnmarshalPopulated(t *testing.T) {
	var p Post
	body := `{"_id":"p1","title":"Go","user":{"_id":"u2","firstName":"Ada","lastName":"Lovelace"}}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.User.ID != "u2" {
		t.Errorf("expected user id u2, got %s", p.User.ID)
	}
	if p.User.User == nil || p.User.User.FullName() != "Ada Lovelace" {
		t.Errorf("expected populated author, got %+v", p.User.User)
	}
}

func TestUserRef_UnmarshalNull(t *testing.T) {
	var c Category
	if err := json.Unmarshal([]byte(`{"_id":"c1","title":"Go","user":null}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.User.ID != "" || c.User.User != nil {
		t.Errorf("expected empty ref, got %+v", c.User)
	}
}

func TestUserRef_Marshal(t *testing.T) {
	tests := []struct {
		name string
		ref  UserRef
		want string
	}{
		{"empty", UserRef{}, `null`},
		{"id only", UserRef{ID: "u1"}, `"u1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.ref)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseUserAuth_KeepsRaw(t *testing.T) {
	body := []byte(`{"_id":"u1","email":"a@b.com","token":"tok","isAdmin":true,"extra":"kept"}`)

	ua, err := ParseUserAuth(body)
	if err != nil {
		t.Fatalf("ParseUserAuth failed: %v", err)
	}
	if ua.Token != "tok" || !ua.IsAdmin || ua.ID != "u1" {
		t.Errorf("unexpected decoded auth: %+v", ua)
	}
	if string(ua.Raw) != string(body) {
		t.Errorf("raw body not preserved: %s", ua.Raw)
	}

	body[0] = 'X'
	if ua.Raw[0] != '{' {
		t.Error("raw body should be a copy")
	}
}

func TestUserAuth_MarshalOmitsToken(t *testing.T) {
	ua, err := ParseUserAuth([]byte(`{"_id":"u1","firstName":"Ada","token":"SECRET-JWT"}`))
	if err != nil {
		t.Fatalf("ParseUserAuth failed: %v", err)
	}

	for _, v := range []interface{}{ua, *ua, map[string]interface{}{"userAuth": ua}} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(data), "SECRET-JWT") || strings.Contains(string(data), `"token"`) {
			t.Errorf("token leaked in %s", data)
		}
		if !strings.Contains(string(data), `"firstName":"Ada"`) {
			t.Errorf("profile fields missing in %s", data)
		}
	}

	if ua.Token != "SECRET-JWT" || !strings.Contains(string(ua.Raw), "SECRET-JWT") {
		t.Error("redaction must not touch the in-memory token or the raw body")
	}
}

func TestParseUserAuth_Invalid(t *testing.T) {
	if _, err := ParseUserAuth([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestPost_LikeSets(t *testing.T) {
	p := Post{Likes: []string{"u1"}, DisLikes: []string{"u2"}}
	if !p.LikedBy("u1") || p.DislikedBy("u1") {
		t.Error("u1 should only like")
	}
	if !p.DislikedBy("u2") || p.LikedBy("u2") {
		t.Error("u2 should only dislike")
	}
}

func TestUser_IsFollowing(t *testing.T) {
	u := User{Following: []string{"a", "b"}}
	if !u.IsFollowing("b") {
		t.Error("expected to follow b")
	}
	if u.IsFollowing("c") {
		t.Error("did not expect to follow c")
	}
}
