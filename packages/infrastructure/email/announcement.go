package email

import (
	"hoa/packages/common/config"
	Error "hoa/packages/common/errors"
	"hoa/packages/common/validation"
	"hoa/packages/core/meeting"
	"hoa/packages/presentation/api"
	"net/http"
	"time"

	"gopkg.in/gomail.v2"
)

const scheduledAtLayout = "Monday, January 2, 2006 at 15:04 MST"

type meetingAnnouncementValues struct {
	CommunityName string
	Title         string
	Agenda        string
	Location      string
	ScheduledAt   string
	MeetingURL    string
}

// Notifies resident about scheduled board meeting.
type MeetingAnnouncement struct {
	to        string
	community string
	url       string
	meeting   *meeting.BoardMeeting
}

func NewMeetingAnnouncement(community string, to string, m *meeting.BoardMeeting, url string) (*MeetingAnnouncement, *Error.Status) {
	if err := validation.Email(to); err != nil {
		return nil, err.ToStatus("E-Mail is not specified", "Invalid E-Mail format: "+to)
	}

	return &MeetingAnnouncement{
		to:        to,
		community: community,
		url:       url,
		meeting:   m,
	}, nil
}

func (a *MeetingAnnouncement) To() string {
	return a.to
}

func (a *MeetingAnnouncement) Subject() string {
	return a.community + ": board meeting \"" + a.meeting.Title + "\""
}

func (a *MeetingAnnouncement) body() (string, error) {
	return renderTemplate(meetingAnnouncementTemplate, meetingAnnouncementValues{
		CommunityName: a.community,
		Title:         a.meeting.Title,
		Agenda:        a.meeting.Agenda,
		Location:      a.meeting.Location,
		ScheduledAt:   a.meeting.ScheduledAt.UTC().Format(scheduledAtLayout),
		MeetingURL:    a.url,
	})
}

func (a *MeetingAnnouncement) Message(from string) (*gomail.Message, error) {
	body, err := a.body()
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()

	msg.SetHeader("From", from)
	msg.SetHeader("To", a.to)
	msg.SetHeader("Subject", a.Subject())
	msg.SetDateHeader("Date", time.Now())
	msg.SetBody("text/html", body)

	return msg, nil
}

// Creates announcement of m for every recipient and pushes them into the main mailer.
// Invalid addresses are skipped.
func EnqueueMeetingAnnouncement(m *meeting.BoardMeeting, recipients []string) *Error.Status {
	if !isRunning {
		log.Warning("Email module isn't running, announcement of meeting "+m.ID.String()+" won't be sent", nil)
		return nil
	}

	return enqueueMeetingAnnouncement(MainMailer, config.App.CommunityName, api.URL("/meetings/"+m.ID.String()), m, recipients)
}

func enqueueMeetingAnnouncement(mailer *Mailer, community string, url string, m *meeting.BoardMeeting, recipients []string) *Error.Status {
	for _, to := range recipients {
		letter, err := NewMeetingAnnouncement(community, to, m, url)
		if err != nil {
			log.Warning("Skipping announcement recipient: "+err.Error(), nil)
			continue
		}

		if err := mailer.Push(letter); err != nil {
			return Error.NewStatusError(
				"Failed to queue meeting announcement: "+err.Error(),
				http.StatusServiceUnavailable,
			)
		}
	}

	return nil
}
