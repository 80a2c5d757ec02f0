package minutes

import "hoa/packages/core"

type Repository interface {
	core.Repository[MeetingMinutes]
}
