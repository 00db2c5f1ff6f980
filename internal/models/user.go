package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// User is a blog account as returned by the users endpoints.
type User struct {
	ID                string    `json:"_id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Bio               string    `json:"bio,omitempty"`
	ProfilePhoto      string    `json:"profilePhoto,omitempty"`
	IsAdmin           bool      `json:"isAdmin"`
	IsBlocked         bool      `json:"isBlocked"`
	IsAccountVerified bool      `json:"isAccountVerified"`
	Followers         []string  `json:"followers,omitempty"`
	Following         []string  `json:"following,omitempty"`
	PostCount         int       `json:"postCount,omitempty"`
	Posts             []Post    `json:"posts,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsFollowing reports whether userID appears in the following list.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

// UserAuth is the login response. Raw keeps the exact response body so it can
// be persisted and re-parsed unchanged. Token is read on decode but never
// written on encode; only Raw carries it.
type UserAuth struct {
	ID                string `json:"_id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	ProfilePhoto      string `json:"profilePhoto,omitempty"`
	IsAdmin           bool   `json:"isAdmin"`
	IsAccountVerified bool   `json:"isAccountVerified"`
	Token             string `json:"token,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// MarshalJSON encodes the login without its bearer token.
func (ua UserAuth) MarshalJSON() ([]byte, error) {
	type redacted UserAuth
	v := redacted(ua)
	v.Token = ""
	return json.Marshal(v)
}

// ParseUserAuth decodes a login response and keeps a copy of the raw bytes.
func ParseUserAuth(data []byte) (*UserAuth, error) {
	var ua UserAuth
	if err := json.Unmarshal(data, &ua); err != nil {
		return nil, err
	}
	ua.Raw = append(json.RawMessage(nil), data...)
	return &ua, nil
}

// UserRef is a reference to a user that the backend sends either as a bare id
// or as a populated document.
type UserRef struct {
	ID   string
	User *User
}

// UnmarshalJSON accepts "id", {"_id": ...} and null.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = UserRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id}
		return nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return err
	}
	*r = UserRef{ID: u.ID, User: &u}
	return nil
}

// MarshalJSON writes the populated document when present, the bare id otherwise.
func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// RegisterInput is the body of POST /api/users/register.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginInput is the body of POST /api/users/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput is the body of PUT /api/users/update-profile/:id.
type UpdateProfileInput struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// ResetPasswordInput carries the emailed reset token and the new password.
type ResetPasswordInput struct {
	Token    string `json:"-"`
	Password string `json:"password"`
}
