package actions

import (
	"context"
	"encoding/json"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
)

// Register creates an account.
func (d *Dispatcher) Register(ctx context.Context, _ session.Session, in models.RegisterInput) (*models.User, error) {
	return run(d, store.OpRegister, func() (*models.User, error) {
		return d.client.Register(ctx, in)
	})
}

// Login authenticates and persists the raw login response under userInfo.
func (d *Dispatcher) Login(ctx context.Context, _ session.Session, in models.LoginInput) (*models.UserAuth, error) {
	return run(d, store.OpLogin, func() (*models.UserAuth, error) {
		ua, err := d.client.Login(ctx, in)
		if err != nil {
			return nil, err
		}
		if err := d.persister.Save(background(ctx), ua); err != nil {
			d.logger.Warn().Err(err).Msg("failed to persist login")
		}
		return ua, nil
	})
}

// Logout forgets the login locally. No request is sent. The in-memory login
// is dropped even when the persisted copy cannot be deleted; that error lands
// in users.serverErr and is returned.
func (d *Dispatcher) Logout(ctx context.Context, _ session.Session) error {
	_, err := run(d, store.OpLogout, func() (*models.UserAuth, error) {
		if err := d.persister.Clear(background(ctx)); err != nil {
			d.store.Apply(store.Event{Op: store.OpLogout, Phase: store.Fulfilled})
			d.logger.Warn().Err(err).Msg("failed to clear persisted login")
			return nil, err
		}
		return nil, nil
	})
	return err
}

// BlockUser blocks the user with id.
func (d *Dispatcher) BlockUser(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	return run(d, store.OpBlockUser, func() (*models.User, error) {
		return d.client.BlockUser(ctx, sess, id)
	})
}

// UnblockUser unblocks the user with id.
func (d *Dispatcher) UnblockUser(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	return run(d, store.OpUnblockUser, func() (*models.User, error) {
		return d.client.UnblockUser(ctx, sess, id)
	})
}

// FetchUsers lists users whose name matches query.
func (d *Dispatcher) FetchUsers(ctx context.Context, sess session.Session, query string) ([]models.User, error) {
	return run(d, store.OpFetchUsers, func() ([]models.User, error) {
		return d.client.FetchUsers(ctx, sess, query)
	})
}

// FetchProfile loads a user's profile.
func (d *Dispatcher) FetchProfile(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	return run(d, store.OpFetchProfile, func() (*models.User, error) {
		return d.client.FetchProfile(ctx, sess, id)
	})
}

// FetchUserDetails loads a user document; an empty id means the session user.
func (d *Dispatcher) FetchUserDetails(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	return run(d, store.OpFetchUserDetails, func() (*models.User, error) {
		uid, err := userOrSession(id, sess)
		if err != nil {
			return nil, err
		}
		return d.client.FetchUserDetails(ctx, sess, uid)
	})
}

// UploadProfilePhoto replaces the session user's profile photo.
func (d *Dispatcher) UploadProfilePhoto(ctx context.Context, sess session.Session, img *models.ImageFile) (*models.User, error) {
	return run(d, store.OpUploadProfilePhoto, func() (*models.User, error) {
		uid, err := userOrSession("", sess)
		if err != nil {
			return nil, err
		}
		prepared, err := d.prepareImage(img)
		if err != nil {
			return nil, err
		}
		return d.client.UploadProfilePhoto(ctx, sess, uid, prepared)
	})
}

// FollowUser follows the user with id.
func (d *Dispatcher) FollowUser(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	return run(d, store.OpFollowUser, func() (*models.User, error) {
		return d.client.FollowUser(ctx, sess, id)
	})
}

// UnfollowUser unfollows the user with id.
func (d *Dispatcher) UnfollowUser(ctx context.Context, sess session.Session, id string) (*models.User, error) {
	return run(d, store.OpUnfollowUser, func() (*models.User, error) {
		return d.client.UnfollowUser(ctx, sess, id)
	})
}

// UpdateProfile updates profile fields; an empty ID means the session user.
func (d *Dispatcher) UpdateProfile(ctx context.Context, sess session.Session, in models.UpdateProfileInput) (*models.User, error) {
	return run(d, store.OpUpdateProfile, func() (*models.User, error) {
		uid, err := userOrSession(in.ID, sess)
		if err != nil {
			return nil, err
		}
		in.ID = uid
		return d.client.UpdateProfile(ctx, sess, in)
	})
}

// UpdatePassword changes the session user's password.
func (d *Dispatcher) UpdatePassword(ctx context.Context, sess session.Session, password string) (*models.User, error) {
	return run(d, store.OpUpdatePassword, func() (*models.User, error) {
		return d.client.UpdatePassword(ctx, sess, password)
	})
}

// ForgetPassword requests a password reset email.
func (d *Dispatcher) ForgetPassword(ctx context.Context, _ session.Session, email string) (json.RawMessage, error) {
	return run(d, store.OpForgetPassword, func() (json.RawMessage, error) {
		return d.client.ForgetPassword(ctx, email)
	})
}

// ResetPassword sets a new password with an emailed token.
func (d *Dispatcher) ResetPassword(ctx context.Context, _ session.Session, in models.ResetPasswordInput) (*models.User, error) {
	return run(d, store.OpResetPassword, func() (*models.User, error) {
		return d.client.ResetPassword(ctx, in)
	})
}

// GenerateVerificationToken requests an account verification email.
func (d *Dispatcher) GenerateVerificationToken(ctx context.Context, sess session.Session) (json.RawMessage, error) {
	return run(d, store.OpGenerateVerificationToken, func() (json.RawMessage, error) {
		return d.client.GenerateVerificationToken(ctx, sess)
	})
}

// VerifyAccount confirms the account with the emailed token.
func (d *Dispatcher) VerifyAccount(ctx context.Context, sess session.Session, token string) (*models.User, error) {
	return run(d, store.OpVerifyAccount, func() (*models.User, error) {
		return d.client.VerifyAccount(ctx, sess, token)
	})
}
