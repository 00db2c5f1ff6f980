package store

import "fmt"

// Flag is a one-shot signal raised after a successful operation and
// consumed by the presentation layer with Store.TakeFlag.
type Flag int

const (
	FlagRegistered Flag = iota + 1
	FlagLogin
	FlagBlocked
	FlagUnblocked
	FlagUploaded
	FlagProfileUpdated
	FlagPostCreated
	FlagPostUpdated
	FlagPostDeleted
	FlagCommentEdited
	FlagCategoryCreated
	FlagCategoryEdited
	FlagEmailSent

	flagEnd
)

var flagNames = map[Flag]string{
	FlagRegistered:      "users.isRegistered",
	FlagLogin:           "users.isLogin",
	FlagBlocked:         "users.isBlocked",
	FlagUnblocked:       "users.isUnblocked",
	FlagUploaded:        "users.isUploaded",
	FlagProfileUpdated:  "users.isUpdated",
	FlagPostCreated:     "posts.isCreated",
	FlagPostUpdated:     "posts.isUpdated",
	FlagPostDeleted:     "posts.isDeleted",
	FlagCommentEdited:   "comments.isEdited",
	FlagCategoryCreated: "categories.isCreated",
	FlagCategoryEdited:  "categories.isEdited",
	FlagEmailSent:       "email.isEmailSent",
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// ParseFlag resolves names such as "posts.isCreated".
func ParseFlag(name string) (Flag, error) {
	for f, n := range flagNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// Flags returns every flag in declaration order.
func Flags() []Flag {
	out := make([]Flag, 0, len(flagNames))
	for f := FlagRegistered; f < flagEnd; f++ {
		out = append(out, f)
	}
	return out
}
