package store

import (
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/blog-portal/internal/models"
)

// State is the whole client state. Payloads are stored as received and never
// mutated afterwards, so a shallow copy is a consistent snapshot.
type State struct {
	Users      UsersState      `json:"users"`
	Posts      PostsState      `json:"posts"`
	Comments   CommentsState   `json:"comments"`
	Categories CategoriesState `json:"categories"`
	Email      EmailState      `json:"email"`
}

// UsersState is the users slice. Follow and unfollow track their own status.
type UsersState struct {
	Loading   bool   `json:"loading"`
	AppErr    string `json:"appErr,omitempty"`
	ServerErr string `json:"serverErr,omitempty"`

	FollowLoading     bool   `json:"followLoading"`
	FollowAppErr      string `json:"followAppErr,omitempty"`
	FollowServerErr   string `json:"followServerErr,omitempty"`
	UnfollowLoading   bool   `json:"unfollowLoading"`
	UnfollowAppErr    string `json:"unfollowAppErr,omitempty"`
	UnfollowServerErr string `json:"unfollowServerErr,omitempty"`

	UserAuth          *models.UserAuth `json:"userAuth"`
	Registered        *models.User     `json:"registered,omitempty"`
	UserBlocked       *models.User     `json:"userBlocked,omitempty"`
	UserUnblocked     *models.User     `json:"userUnblocked,omitempty"`
	Users             []models.User    `json:"users,omitempty"`
	Profile           *models.User     `json:"profile,omitempty"`
	UserDetails       *models.User     `json:"userDetails,omitempty"`
	ProfileUploaded   *models.User     `json:"profileUploaded,omitempty"`
	Follow            *models.User     `json:"follow,omitempty"`
	Unfollow          *models.User     `json:"unfollow,omitempty"`
	ProfileUpdated    *models.User     `json:"profileUpdated,omitempty"`
	PasswordUpdated   *models.User     `json:"passwordUpdated,omitempty"`
	TokenSentToMail   json.RawMessage  `json:"tokenSentToMail,omitempty"`
	PasswordReset     *models.User     `json:"passwordReset,omitempty"`
	VerificationToken json.RawMessage  `json:"verificationToken,omitempty"`
	AccountVerified   *models.User     `json:"accountVerified,omitempty"`

	IsRegistered bool `json:"isRegistered"`
	IsLogin      bool `json:"isLogin"`
	IsBlocked    bool `json:"isBlocked"`
	IsUnblocked  bool `json:"isUnblocked"`
	IsUploaded   bool `json:"isUploaded"`
	IsUpdated    bool `json:"isUpdated"`
}

// PostsState is the posts slice.
type PostsState struct {
	PostLoading   bool   `json:"postLoading"`
	PostAppErr    string `json:"postAppErr,omitempty"`
	PostServerErr string `json:"postServerErr,omitempty"`

	PostCreated    *models.Post      `json:"postCreated,omitempty"`
	PostLists      []models.Post     `json:"postLists,omitempty"`
	CategoryFilter []models.Category `json:"categoryFilter,omitempty"`
	Post           *models.Post      `json:"post,omitempty"`
	PostEdited     *models.Post      `json:"postEdited,omitempty"`
	PostDeleted    *models.Post      `json:"postDeleted,omitempty"`
	Likes          *models.Post      `json:"likes,omitempty"`
	Dislikes       *models.Post      `json:"dislikes,omitempty"`

	IsCreated bool `json:"isCreated"`
	IsUpdated bool `json:"isUpdated"`
	IsDeleted bool `json:"isDeleted"`
}

// CommentsState is the comments slice.
type CommentsState struct {
	CommentLoading   bool   `json:"commentLoading"`
	CommentAppErr    string `json:"commentAppErr,omitempty"`
	CommentServerErr string `json:"commentServerErr,omitempty"`

	CommentCreated *models.Comment `json:"commentCreated,omitempty"`
	CommentDetails *models.Comment `json:"commentDetails,omitempty"`
	CommentUpdated *models.Comment `json:"commentUpdated,omitempty"`
	CommentDeleted *models.Comment `json:"commentDeleted,omitempty"`

	IsEdited bool `json:"isEdited"`
}

// CategoriesState is the categories slice.
type CategoriesState struct {
	Loading   bool   `json:"loading"`
	AppErr    string `json:"appErr,omitempty"`
	ServerErr string `json:"serverErr,omitempty"`

	CategoryCreated *models.Category  `json:"categoryCreated,omitempty"`
	CategoriesList  []models.Category `json:"categoriesList,omitempty"`
	CategoryDetails *models.Category  `json:"categoryDetails,omitempty"`
	CategoryUpdated *models.Category  `json:"categoryUpdated,omitempty"`
	CategoryDeleted *models.Category  `json:"categoryDeleted,omitempty"`

	IsCreated bool `json:"isCreated"`
	IsEdited  bool `json:"isEdited"`
}

// EmailState is the email slice.
type EmailState struct {
	Loading   bool   `json:"loading"`
	AppErr    string `json:"appErr,omitempty"`
	ServerErr string `json:"serverErr,omitempty"`

	EmailSent *models.EmailMessage  `json:"emailSent,omitempty"`
	Emails    []models.EmailMessage `json:"emails,omitempty"`

	IsEmailSent bool `json:"isEmailSent"`
}

// statusRef points at the loading/appErr/serverErr triplet an operation drives.
type statusRef struct {
	loading   *bool
	appErr    *string
	serverErr *string
}

func (s *State) status(op Op) statusRef {
	switch op {
	case OpFollowUser:
		u := &s.Users
		return statusRef{&u.FollowLoading, &u.FollowAppErr, &u.FollowServerErr}
	case OpUnfollowUser:
		u := &s.Users
		return statusRef{&u.UnfollowLoading, &u.UnfollowAppErr, &u.UnfollowServerErr}
	}

	switch op.Slice() {
	case SliceUsers:
		return statusRef{&s.Users.Loading, &s.Users.AppErr, &s.Users.ServerErr}
	case SlicePosts:
		return statusRef{&s.Posts.PostLoading, &s.Posts.PostAppErr, &s.Posts.PostServerErr}
	case SliceComments:
		return statusRef{&s.Comments.CommentLoading, &s.Comments.CommentAppErr, &s.Comments.CommentServerErr}
	case SliceCategories:
		return statusRef{&s.Categories.Loading, &s.Categories.AppErr, &s.Categories.ServerErr}
	case SliceEmail:
		return statusRef{&s.Email.Loading, &s.Email.AppErr, &s.Email.ServerErr}
	}
	return statusRef{}
}

func (s *State) flag(f Flag) *bool {
	switch f {
	case FlagRegistered:
		return &s.Users.IsRegistered
	case FlagLogin:
		return &s.Users.IsLogin
	case FlagBlocked:
		return &s.Users.IsBlocked
	case FlagUnblocked:
		return &s.Users.IsUnblocked
	case FlagUploaded:
		return &s.Users.IsUploaded
	case FlagProfileUpdated:
		return &s.Users.IsUpdated
	case FlagPostCreated:
		return &s.Posts.IsCreated
	case FlagPostUpdated:
		return &s.Posts.IsUpdated
	case FlagPostDeleted:
		return &s.Posts.IsDeleted
	case FlagCommentEdited:
		return &s.Comments.IsEdited
	case FlagCategoryCreated:
		return &s.Categories.IsCreated
	case FlagCategoryEdited:
		return &s.Categories.IsEdited
	case FlagEmailSent:
		return &s.Email.IsEmailSent
	}
	return nil
}

// as asserts a payload to T, yielding the zero value on mismatch.
func as[T any](payload interface{}) T {
	v, _ := payload.(T)
	return v
}

// store writes a fulfilled payload under the operation's key.
func (s *State) store(op Op, payload interface{}) {
	u, p, c, k, e := &s.Users, &s.Posts, &s.Comments, &s.Categories, &s.Email

	switch op {
	case OpRegister:
		u.Registered = as[*models.User](payload)
	case OpLogin:
		u.UserAuth = as[*models.UserAuth](payload)
	case OpLogout:
		u.UserAuth = nil
	case OpBlockUser:
		u.UserBlocked = as[*models.User](payload)
	case OpUnblockUser:
		u.UserUnblocked = as[*models.User](payload)
	case OpFetchUsers:
		u.Users = as[[]models.User](payload)
	case OpFetchProfile:
		u.Profile = as[*models.User](payload)
	case OpFetchUserDetails:
		u.UserDetails = as[*models.User](payload)
	case OpUploadProfilePhoto:
		u.ProfileUploaded = as[*models.User](payload)
	case OpFollowUser:
		u.Follow = as[*models.User](payload)
	case OpUnfollowUser:
		u.Unfollow = as[*models.User](payload)
	case OpUpdateProfile:
		u.ProfileUpdated = as[*models.User](payload)
	case OpUpdatePassword:
		u.PasswordUpdated = as[*models.User](payload)
	case OpForgetPassword:
		u.TokenSentToMail = as[json.RawMessage](payload)
	case OpResetPassword:
		u.PasswordReset = as[*models.User](payload)
	case OpGenerateVerificationToken:
		u.VerificationToken = as[json.RawMessage](payload)
	case OpVerifyAccount:
		u.AccountVerified = as[*models.User](payload)

	case OpCreatePost:
		p.PostCreated = as[*models.Post](payload)
	case OpFetchPosts:
		p.PostLists = as[[]models.Post](payload)
	case OpFetchPostsByCategory:
		p.CategoryFilter = as[[]models.Category](payload)
	case OpFetchPost:
		p.Post = as[*models.Post](payload)
	case OpEditPost:
		p.PostEdited = as[*models.Post](payload)
	case OpDeletePost:
		p.PostDeleted = as[*models.Post](payload)
	case OpToggleLike:
		p.Likes = as[*models.Post](payload)
	case OpToggleDislike:
		p.Dislikes = as[*models.Post](payload)

	case OpCreateComment:
		c.CommentCreated = as[*models.Comment](payload)
	case OpFetchComment:
		c.CommentDetails = as[*models.Comment](payload)
	case OpEditComment:
		c.CommentUpdated = as[*models.Comment](payload)
	case OpDeleteComment:
		c.CommentDeleted = as[*models.Comment](payload)

	case OpCreateCategory:
		k.CategoryCreated = as[*models.Category](payload)
	case OpFetchCategories:
		k.CategoriesList = as[[]models.Category](payload)
	case OpFetchCategory:
		k.CategoryDetails = as[*models.Category](payload)
	case OpEditCategory:
		k.CategoryUpdated = as[*models.Category](payload)
	case OpDeleteCategory:
		k.CategoryDeleted = as[*models.Category](payload)

	case OpSendEmail:
		e.EmailSent = as[*models.EmailMessage](payload)
	case OpFetchEmails:
		e.Emails = as[[]models.EmailMessage](payload)
	}
}

// Slice returns the named slice of s, or all of s for an empty name.
func (s State) Slice(name string) (interface{}, error) {
	switch Slice(name) {
	case "":
		return s, nil
	case SliceUsers:
		return s.Users, nil
	case SlicePosts:
		return s.Posts, nil
	case SliceComments:
		return s.Comments, nil
	case SliceCategories:
		return s.Categories, nil
	case SliceEmail:
		return s.Email, nil
	}
	return nil, fmt.Errorf("unknown slice %q", name)
}
