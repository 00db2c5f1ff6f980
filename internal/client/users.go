package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// Register creates an account. POST /api/users/register (public)
func (c *BlogClient) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	var u models.User
	if err := c.public(ctx, http.MethodPost, "/api/users/register", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and returns the login response with its raw body kept.
// POST /api/users/login (public)
func (c *BlogClient) Login(ctx context.Context, in models.LoginInput) (*models.UserAuth, error) {
	const path = "/api/users/login"
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	respBody, err := c.roundTrip(ctx, "", http.MethodPost, path, body, "application/json")
	if err != nil {
		return nil, err
	}
	ua, err := models.ParseUserAuth(respBody)
	if err != nil {
		return nil, &TransportError{Method: http.MethodPost, Path: path, Err: err}
	}
	return ua, nil
}

// BlockUser blocks a user. PUT /api/users/block-user/{id}
func (c *BlogClient) BlockUser(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	var u models.User
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/block-user/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UnblockUser unblocks a user. PUT /api/users/unblock-user/{id}
func (c *BlogClient) UnblockUser(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	var u models.User
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/unblock-user/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FetchUsers lists users matching name. GET /api/users?name={name}
func (c *BlogClient) FetchUsers(ctx context.Context, sess session.Session, name string) ([]models.User, error) {
	var users []models.User
	if err := c.authed(ctx, sess, http.MethodGet, "/api/users?name="+url.QueryEscape(name), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchProfile returns a user's public profile. GET /api/users/profile/{id}
func (c *BlogClient) FetchProfile(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	var u models.User
	if err := c.authed(ctx, sess, http.MethodGet, "/api/users/profile/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FetchUserDetails returns a user document. GET /api/users/{id}
func (c *BlogClient) FetchUserDetails(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	var u models.User
	if err := c.authed(ctx, sess, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UploadProfilePhoto sends the photo as multipart field "image".
// PUT /api/users/profile-photo/{userID}
func (c *BlogClient) UploadProfilePhoto(ctx context.Context, sess session.Session, userID string, img *models.ImageFile) (*models.User, error) {
	var u models.User
	fields := []formField{{"userId", userID}}
	if err := c.sendMultipart(ctx, sess, http.MethodPut, "/api/users/profile-photo/"+url.PathEscape(userID), fields, img, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FollowUser follows followID. PUT /api/users/follow
func (c *BlogClient) FollowUser(ctx context.Context, sess session.Session, followID string) (*models.User, error) {
	var u models.User
	in := map[string]string{"followId": followID}
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/follow", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UnfollowUser unfollows unfollowID. PUT /api/users/unfollow
func (c *BlogClient) UnfollowUser(ctx context.Context, sess session.Session, unfollowID string) (*models.User, error) {
	var u models.User
	in := map[string]string{"unfollowId": unfollowID}
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/unfollow", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile updates profile fields. PUT /api/users/update-profile/{id}
func (c *BlogClient) UpdateProfile(ctx context.Context, sess session.Session, in models.UpdateProfileInput) (*models.User, error) {
	var u models.User
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/update-profile/"+url.PathEscape(in.ID), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword changes the session user's password. PUT /api/users/update-password
func (c *BlogClient) UpdatePassword(ctx context.Context, sess session.Session, password string) (*models.User, error) {
	var u models.User
	in := map[string]string{"password": password}
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/update-password", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ForgetPassword asks the backend to mail a reset token. POST /api/users/forgetpassword (public)
func (c *BlogClient) ForgetPassword(ctx context.Context, email string) (json.RawMessage, error) {
	var out json.RawMessage
	in := map[string]string{"email": email}
	if err := c.public(ctx, http.MethodPost, "/api/users/forgetpassword", in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetPassword sets a new password using an emailed token. PUT /api/users/resetpassword/{token} (public)
func (c *BlogClient) ResetPassword(ctx context.Context, in models.ResetPasswordInput) (*models.User, error) {
	var u models.User
	if err := c.public(ctx, http.MethodPut, "/api/users/resetpassword/"+url.PathEscape(in.Token), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GenerateVerificationToken asks the backend to mail an account verification token.
// GET /api/users/generate-verify-email-token
func (c *BlogClient) GenerateVerificationToken(ctx context.Context, sess session.Session) (json.RawMessage, error) {
	var out json.RawMessage
	// Every call mails a fresh token, so never serve it from cache.
	if err := c.getUncached(ctx, sess, "/api/users/generate-verify-email-token", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyAccount confirms the account with the mailed token. PUT /api/users/verify-account
func (c *BlogClient) VerifyAccount(ctx context.Context, sess session.Session, token string) (*models.User, error) {
	var u models.User
	in := map[string]string{"token": token}
	if err := c.authed(ctx, sess, http.MethodPut, "/api/users/verify-account", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
