package user

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core"
)

type Repository interface {
	core.Repository[User]

	// Returns E-Mails of all residents
	Emails(ctx context.Context) ([]string, *Error.Status)
}
