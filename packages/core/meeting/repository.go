package meeting

import "hoa/packages/core"

type Repository interface {
	core.Repository[BoardMeeting]
}
