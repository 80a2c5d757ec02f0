package user

import (
	Error "hoa/packages/common/errors"
	"hoa/packages/core/sieve"
	UserDTO "hoa/packages/core/user/DTO"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resident of the community.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Unit          string    `json:"unit"`
	IsBoardMember bool      `json:"isBoardMember"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const Table = "users"

var Fields = sieve.NewRegistry[User]("user", Table).
	UUID("Id", "id", func(u User) uuid.UUID { return u.ID }).
	String("Email", "email", func(u User) string { return u.Email }).
	String("FirstName", "first_name", func(u User) string { return u.FirstName }).
	String("LastName", "last_name", func(u User) string { return u.LastName }).
	String("Unit", "unit", func(u User) string { return u.Unit }).
	Bool("IsBoardMember", "is_board_member", func(u User) bool { return u.IsBoardMember }).
	Time("Created", "created_at", func(u User) time.Time { return u.CreatedAt }).
	Time("Updated", "updated_at", func(u User) time.Time { return u.UpdatedAt })

var ErrEmailTaken = Error.NewStatusError(
	"Resident with this E-Mail already exists",
	http.StatusConflict,
)

// Token is valid, but its subject isn't a resident of the community.
var ErrNotRegistered = Error.NewStatusError(
	"You aren't registered as a resident",
	http.StatusForbidden,
)

func New(payload *UserDTO.Payload) *User {
	now := time.Now().UTC()

	u := &User{
		ID:        uuid.New(),
		CreatedAt: now,
	}
	u.Apply(payload)
	u.UpdatedAt = now

	return u
}

func (u *User) Apply(payload *UserDTO.Payload) {
	u.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	u.FirstName = strings.TrimSpace(payload.FirstName)
	u.LastName = strings.TrimSpace(payload.LastName)
	u.Unit = strings.TrimSpace(payload.Unit)
	u.IsBoardMember = payload.IsBoardMember
	u.UpdatedAt = time.Now().UTC()
}
