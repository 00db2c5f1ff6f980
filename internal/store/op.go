// Package store holds the client-side state of the blog: one slice per
// domain, mutated only by applying lifecycle events and reset signals.
package store

import "fmt"

// Slice names a top-level state slice.
type Slice string

const (
	SliceUsers      Slice = "users"
	SlicePosts      Slice = "posts"
	SliceComments   Slice = "comments"
	SliceCategories Slice = "categories"
	SliceEmail      Slice = "email"
)

// Op identifies one asynchronous operation. Every operation has its own value.
type Op int

const (
	OpRegister Op = iota + 1
	OpLogin
	OpLogout
	OpBlockUser
	OpUnblockUser
	OpFetchUsers
	OpFetchProfile
	OpFetchUserDetails
	OpUploadProfilePhoto
	OpFollowUser
	OpUnfollowUser
	OpUpdateProfile
	OpUpdatePassword
	OpForgetPassword
	OpResetPassword
	OpGenerateVerificationToken
	OpVerifyAccount

	OpCreatePost
	OpFetchPosts
	OpFetchPostsByCategory
	OpFetchPost
	OpEditPost
	OpDeletePost
	OpToggleLike
	OpToggleDislike

	OpCreateComment
	OpFetchComment
	OpEditComment
	OpDeleteComment

	OpCreateCategory
	OpFetchCategories
	OpFetchCategory
	OpEditCategory
	OpDeleteCategory

	OpSendEmail
	OpFetchEmails

	opEnd
)

type opInfo struct {
	name  string
	slice Slice
	reset Flag
}

var ops = map[Op]opInfo{
	OpRegister:                  {"users/register", SliceUsers, FlagRegistered},
	OpLogin:                     {"users/login", SliceUsers, FlagLogin},
	OpLogout:                    {"users/logout", SliceUsers, 0},
	OpBlockUser:                 {"users/block", SliceUsers, FlagBlocked},
	OpUnblockUser:               {"users/unblock", SliceUsers, FlagUnblocked},
	OpFetchUsers:                {"users/list", SliceUsers, 0},
	OpFetchProfile:              {"users/profile", SliceUsers, 0},
	OpFetchUserDetails:          {"users/details", SliceUsers, 0},
	OpUploadProfilePhoto:        {"users/profile-photo-upload", SliceUsers, FlagUploaded},
	OpFollowUser:                {"users/follow", SliceUsers, 0},
	OpUnfollowUser:              {"users/unfollow", SliceUsers, 0},
	OpUpdateProfile:             {"users/update-profile", SliceUsers, FlagProfileUpdated},
	OpUpdatePassword:            {"users/update-password", SliceUsers, 0},
	OpForgetPassword:            {"users/forget-password", SliceUsers, 0},
	OpResetPassword:             {"users/reset-password", SliceUsers, 0},
	OpGenerateVerificationToken: {"users/generate-verification-token", SliceUsers, 0},
	OpVerifyAccount:             {"users/verify-account", SliceUsers, 0},

	OpCreatePost:           {"posts/create", SlicePosts, FlagPostCreated},
	OpFetchPosts:           {"posts/list", SlicePosts, 0},
	OpFetchPostsByCategory: {"posts/category-filter", SlicePosts, 0},
	OpFetchPost:            {"posts/details", SlicePosts, 0},
	OpEditPost:             {"posts/update", SlicePosts, FlagPostUpdated},
	OpDeletePost:           {"posts/delete", SlicePosts, FlagPostDeleted},
	OpToggleLike:           {"posts/like", SlicePosts, 0},
	OpToggleDislike:        {"posts/dislike", SlicePosts, 0},

	OpCreateComment: {"comments/create", SliceComments, 0},
	OpFetchComment:  {"comments/details", SliceComments, 0},
	OpEditComment:   {"comments/update", SliceComments, FlagCommentEdited},
	OpDeleteComment: {"comments/delete", SliceComments, 0},

	OpCreateCategory:  {"categories/create", SliceCategories, FlagCategoryCreated},
	OpFetchCategories: {"categories/list", SliceCategories, 0},
	OpFetchCategory:   {"categories/details", SliceCategories, 0},
	OpEditCategory:    {"categories/update", SliceCategories, FlagCategoryEdited},
	OpDeleteCategory:  {"categories/delete", SliceCategories, 0},

	OpSendEmail:   {"email/send", SliceEmail, FlagEmailSent},
	OpFetchEmails: {"email/list", SliceEmail, 0},
}

func (o Op) String() string {
	if info, ok := ops[o]; ok {
		return info.name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Slice returns the state slice the operation writes to.
func (o Op) Slice() Slice {
	return ops[o].slice
}

// ResetFlag returns the one-shot flag raised after the operation succeeds.
func (o Op) ResetFlag() (Flag, bool) {
	f := ops[o].reset
	return f, f != 0
}

// Ops returns every operation in declaration order.
func Ops() []Op {
	out := make([]Op, 0, len(ops))
	for o := OpRegister; o < opEnd; o++ {
		out = append(out, o)
	}
	return out
}
