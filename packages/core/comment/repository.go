package comment

import "hoa/packages/core"

type Repository interface {
	core.Repository[Comment]
}
