package event

import "hoa/packages/core"

type Repository interface {
	core.Repository[Event]
}
