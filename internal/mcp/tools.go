package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/blog-portal/internal/actions"
	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/notify"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
)

// Tools exposes the dispatcher operations and store inspection as MCP tools.
type Tools struct {
	d   *actions.Dispatcher
	rec *notify.Recorder
}

// NewTools creates the tool set. rec may be nil, which disables recent_notifications output.
func NewTools(d *actions.Dispatcher, rec *notify.Recorder) *Tools {
	return &Tools{d: d, rec: rec}
}

type opFunc func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error)

// session returns the request override or the stored login.
func (t *Tools) session(ctx context.Context) session.Session {
	if s, ok := SessionFromContext(ctx); ok {
		return s
	}
	return t.d.Store().Session()
}

func (t *Tools) wrap(fn opFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		v, err := fn(ctx, t.session(ctx), r)
		if err != nil {
			return operationError(err), nil
		}
		return jsonResult(v), nil
	}
}

func id(desc string) mcp.ToolOption {
	return mcp.WithString("id", mcp.Required(), mcp.Description(desc))
}

// imageArg decodes the optional image_base64/image_filename pair.
func imageArg(r mcp.CallToolRequest) (*models.ImageFile, error) {
	encoded := r.GetString("image_base64", "")
	if encoded == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("image_base64 is not valid base64: %w", err)
	}
	return &models.ImageFile{
		Filename: r.GetString("image_filename", "upload"),
		Data:     data,
	}, nil
}

func imageOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("image_base64", mcp.Description("Image bytes, base64 encoded")),
		mcp.WithString("image_filename", mcp.Description("Image file name, used for the multipart part")),
	}
}

func with(opts []mcp.ToolOption, more ...mcp.ToolOption) []mcp.ToolOption {
	return append(more, opts...)
}

// Register adds every tool to s and returns how many were added.
func (t *Tools) Register(s *server.MCPServer) int {
	defs := t.userTools()
	defs = append(defs, t.postTools()...)
	defs = append(defs, t.commentTools()...)
	defs = append(defs, t.categoryTools()...)
	defs = append(defs, t.emailTools()...)
	defs = append(defs, t.stateTools()...)

	for _, d := range defs {
		s.AddTool(d.Tool, d.Handler)
	}
	return len(defs)
}

func (t *Tools) userTools() []server.ServerTool {
	d := t.d
	return []server.ServerTool{
		{Tool: mcp.NewTool("register",
			mcp.WithDescription("Create a blog account"),
			mcp.WithString("first_name", mcp.Required()),
			mcp.WithString("last_name", mcp.Required()),
			mcp.WithString("email", mcp.Required()),
			mcp.WithString("password", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			in := models.RegisterInput{
				FirstName: r.GetString("first_name", ""),
				LastName:  r.GetString("last_name", ""),
				Email:     r.GetString("email", ""),
				Password:  r.GetString("password", ""),
			}
			return d.Register(ctx, sess, in)
		})},
		{Tool: mcp.NewTool("login",
			mcp.WithDescription("Log in; the login is persisted and used by later tool calls"),
			mcp.WithString("email", mcp.Required()),
			mcp.WithString("password", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			email, err := r.RequireString("email")
			if err != nil {
				return nil, err
			}
			ua, err := d.Login(ctx, sess, models.LoginInput{Email: email, Password: r.GetString("password", "")})
			if err != nil {
				return nil, err
			}
			return ua, nil
		})},
		{Tool: mcp.NewTool("logout",
			mcp.WithDescription("Forget the persisted login"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			if err := d.Logout(ctx, sess); err != nil {
				return nil, err
			}
			return map[string]string{"status": "logged out"}, nil
		})},
		{Tool: mcp.NewTool("block_user",
			mcp.WithDescription("Block a user (admin)"), id("User id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.BlockUser(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("unblock_user",
			mcp.WithDescription("Unblock a user (admin)"), id("User id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.UnblockUser(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("list_users",
			mcp.WithDescription("List users, optionally filtered by name"),
			mcp.WithString("name", mcp.Description("Name filter")),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchUsers(ctx, sess, r.GetString("name", ""))
		})},
		{Tool: mcp.NewTool("get_profile",
			mcp.WithDescription("Get a user's profile with their posts"), id("User id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchProfile(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("get_user_details",
			mcp.WithDescription("Get a user document; defaults to the logged-in user"),
			mcp.WithString("id", mcp.Description("User id")),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchUserDetails(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("upload_profile_photo", with(imageOptions(),
			mcp.WithDescription("Upload a new profile photo for the logged-in user"),
		)...), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			img, err := imageArg(r)
			if err != nil {
				return nil, err
			}
			if img == nil {
				return nil, fmt.Errorf("image_base64 is required")
			}
			return d.UploadProfilePhoto(ctx, sess, img)
		})},
		{Tool: mcp.NewTool("follow_user",
			mcp.WithDescription("Follow a user"), id("User id to follow"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FollowUser(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("unfollow_user",
			mcp.WithDescription("Unfollow a user"), id("User id to unfollow"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.UnfollowUser(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("update_profile",
			mcp.WithDescription("Update profile fields; id defaults to the logged-in user"),
			mcp.WithString("id"),
			mcp.WithString("first_name"),
			mcp.WithString("last_name"),
			mcp.WithString("email"),
			mcp.WithString("bio"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.UpdateProfile(ctx, sess, models.UpdateProfileInput{
				ID:        r.GetString("id", ""),
				FirstName: r.GetString("first_name", ""),
				LastName:  r.GetString("last_name", ""),
				Email:     r.GetString("email", ""),
				Bio:       r.GetString("bio", ""),
			})
		})},
		{Tool: mcp.NewTool("update_password",
			mcp.WithDescription("Change the logged-in user's password"),
			mcp.WithString("password", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.UpdatePassword(ctx, sess, r.GetString("password", ""))
		})},
		{Tool: mcp.NewTool("forget_password",
			mcp.WithDescription("Email a password reset token"),
			mcp.WithString("email", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.ForgetPassword(ctx, sess, r.GetString("email", ""))
		})},
		{Tool: mcp.NewTool("reset_password",
			mcp.WithDescription("Set a new password using an emailed reset token"),
			mcp.WithString("token", mcp.Required()),
			mcp.WithString("password", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.ResetPassword(ctx, sess, models.ResetPasswordInput{
				Token:    r.GetString("token", ""),
				Password: r.GetString("password", ""),
			})
		})},
		{Tool: mcp.NewTool("generate_verification_token",
			mcp.WithDescription("Email an account verification token to the logged-in user"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.GenerateVerificationToken(ctx, sess)
		})},
		{Tool: mcp.NewTool("verify_account",
			mcp.WithDescription("Verify the account with the emailed token"),
			mcp.WithString("token", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.VerifyAccount(ctx, sess, r.GetString("token", ""))
		})},
	}
}

func (t *Tools) postTools() []server.ServerTool {
	d := t.d
	return []server.ServerTool{
		{Tool: mcp.NewTool("create_post", with(imageOptions(),
			mcp.WithDescription("Create a post with an optional image"),
			mcp.WithString("title", mcp.Required()),
			mcp.WithString("description", mcp.Required()),
			mcp.WithString("category", mcp.Required(), mcp.Description("Category title")),
		)...), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			img, err := imageArg(r)
			if err != nil {
				return nil, err
			}
			return d.CreatePost(ctx, sess, models.CreatePostInput{
				Title:       r.GetString("title", ""),
				Description: r.GetString("description", ""),
				CategoryID:  r.GetString("category", ""),
				Image:       img,
			})
		})},
		{Tool: mcp.NewTool("list_posts",
			mcp.WithDescription("List posts, optionally filtered by category"),
			mcp.WithString("category"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchPosts(ctx, sess, r.GetString("category", ""))
		})},
		{Tool: mcp.NewTool("list_post_categories",
			mcp.WithDescription("List the categories offered as post filters"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchPostsByCategory(ctx, sess)
		})},
		{Tool: mcp.NewTool("get_post",
			mcp.WithDescription("Get one post with its comments"), id("Post id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchPost(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("edit_post",
			mcp.WithDescription("Edit a post"), id("Post id"),
			mcp.WithString("title"),
			mcp.WithString("description"),
			mcp.WithString("category"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.EditPost(ctx, sess, models.EditPostInput{
				ID:          r.GetString("id", ""),
				Title:       r.GetString("title", ""),
				Description: r.GetString("description", ""),
				Category:    r.GetString("category", ""),
			})
		})},
		{Tool: mcp.NewTool("delete_post",
			mcp.WithDescription("Delete a post"), id("Post id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.DeletePost(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("toggle_like",
			mcp.WithDescription("Like a post, or remove the like"),
			mcp.WithString("post_id", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.ToggleLike(ctx, sess, r.GetString("post_id", ""))
		})},
		{Tool: mcp.NewTool("toggle_dislike",
			mcp.WithDescription("Dislike a post, or remove the dislike"),
			mcp.WithString("post_id", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.ToggleDislike(ctx, sess, r.GetString("post_id", ""))
		})},
	}
}

func (t *Tools) commentTools() []server.ServerTool {
	d := t.d
	return []server.ServerTool{
		{Tool: mcp.NewTool("create_comment",
			mcp.WithDescription("Comment on a post"),
			mcp.WithString("post_id", mcp.Required()),
			mcp.WithString("description", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.CreateComment(ctx, sess, models.CreateCommentInput{
				PostID:      r.GetString("post_id", ""),
				Description: r.GetString("description", ""),
			})
		})},
		{Tool: mcp.NewTool("get_comment",
			mcp.WithDescription("Get one comment"), id("Comment id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchComment(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("edit_comment",
			mcp.WithDescription("Edit a comment"), id("Comment id"),
			mcp.WithString("description", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.EditComment(ctx, sess, models.EditCommentInput{
				ID:          r.GetString("id", ""),
				Description: r.GetString("description", ""),
			})
		})},
		{Tool: mcp.NewTool("delete_comment",
			mcp.WithDescription("Delete a comment"), id("Comment id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.DeleteComment(ctx, sess, r.GetString("id", ""))
		})},
	}
}

func (t *Tools) categoryTools() []server.ServerTool {
	d := t.d
	return []server.ServerTool{
		{Tool: mcp.NewTool("create_category",
			mcp.WithDescription("Create a category (admin)"),
			mcp.WithString("title", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.CreateCategory(ctx, sess, r.GetString("title", ""))
		})},
		{Tool: mcp.NewTool("list_categories",
			mcp.WithDescription("List all categories"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchCategories(ctx, sess)
		})},
		{Tool: mcp.NewTool("get_category",
			mcp.WithDescription("Get one category"), id("Category id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchCategory(ctx, sess, r.GetString("id", ""))
		})},
		{Tool: mcp.NewTool("edit_category",
			mcp.WithDescription("Rename a category (admin)"), id("Category id"),
			mcp.WithString("title", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.EditCategory(ctx, sess, models.CategoryInput{
				ID:    r.GetString("id", ""),
				Title: r.GetString("title", ""),
			})
		})},
		{Tool: mcp.NewTool("delete_category",
			mcp.WithDescription("Delete a category (admin)"), id("Category id"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.DeleteCategory(ctx, sess, r.GetString("id", ""))
		})},
	}
}

func (t *Tools) emailTools() []server.ServerTool {
	d := t.d
	return []server.ServerTool{
		{Tool: mcp.NewTool("send_email",
			mcp.WithDescription("Send an email to a user (admin)"),
			mcp.WithString("email", mcp.Required(), mcp.Description("Recipient address")),
			mcp.WithString("subject", mcp.Required()),
			mcp.WithString("message", mcp.Required()),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.SendEmail(ctx, sess, models.SendEmailInput{
				Email:   r.GetString("email", ""),
				Subject: r.GetString("subject", ""),
				Message: r.GetString("message", ""),
			})
		})},
		{Tool: mcp.NewTool("list_emails",
			mcp.WithDescription("List sent emails (admin)"),
		), Handler: t.wrap(func(ctx context.Context, sess session.Session, r mcp.CallToolRequest) (interface{}, error) {
			return d.FetchEmails(ctx, sess)
		})},
	}
}

func (t *Tools) stateTools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: mcp.NewTool("get_state",
			mcp.WithDescription("Show the client state, or one slice of it"),
			mcp.WithString("slice", mcp.Description("users, posts, comments, categories or email")),
		), Handler: func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			v, err := t.d.Store().Snapshot().Slice(r.GetString("slice", ""))
			if err != nil {
				return errorResult(err.Error()), nil
			}
			return jsonResult(v), nil
		}},
		{Tool: mcp.NewTool("take_flag",
			mcp.WithDescription("Read and clear a one-shot success flag such as posts.isCreated"),
			mcp.WithString("flag", mcp.Required()),
		), Handler: func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := r.RequireString("flag")
			if err != nil {
				return errorResult(err.Error()), nil
			}
			f, err := store.ParseFlag(name)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			return jsonResult(map[string]interface{}{
				"flag":   f.String(),
				"raised": t.d.Store().TakeFlag(f),
			}), nil
		}},
		{Tool: mcp.NewTool("recent_notifications",
			mcp.WithDescription("List the most recent success and error notifications"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of notifications, newest last")),
		), Handler: func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if t.rec == nil {
				return jsonResult([]notify.Toast{}), nil
			}
			return jsonResult(t.rec.Recent(r.GetInt("limit", 20))), nil
		}},
	}
}
