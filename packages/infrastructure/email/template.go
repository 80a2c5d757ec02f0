package email

import (
	"bytes"
	_ "embed"
	"html/template"
)

//go:embed templates/meeting-announcement.template.html
var rawMeetingAnnouncementTemplate string

// Templates are embedded, so they are parsed once at start up.
var meetingAnnouncementTemplate = mustParseTemplate("meeting-announcement", rawMeetingAnnouncementTemplate)

func mustParseTemplate(name string, raw string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(raw))
}

// Executes tmpl with v. Values are HTML-escaped.
func renderTemplate(tmpl *template.Template, v any) (string, error) {
	buf := new(bytes.Buffer)

	if err := tmpl.Execute(buf, v); err != nil {
		log.Error("Failed to render \""+tmpl.Name()+"\" email template", err.Error(), nil)
		return "", err
	}

	return buf.String(), nil
}
