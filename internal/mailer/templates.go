package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// TripMessage holds the data rendered into both confirmation email bodies.
type TripMessage struct {
	Destination      string
	StartsAt         time.Time
	EndsAt           time.Time
	ConfirmationLink string
}

// dateLayout matches the long-form date used in the email copy,
// e.g. "June 1, 2026".
const dateLayout = "January 2, 2006"

var tripConfirmationTmpl = template.Must(template.New("trip_confirmation").Parse(`
<div>
  <p>You requested the creation of a trip to <strong>{{.Destination}}</strong> from <strong>{{.Start}}</strong> to <strong>{{.End}}</strong>.</p>
  <br>
  <p>To confirm your trip, click the link below:</p>
  <br>
  <p><a href="{{.Link}}">Confirm trip</a></p>
  <br>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>
`))

var participantInvitationTmpl = template.Must(template.New("participant_invitation").Parse(`
<div>
  <p>You have been invited to join a trip to <strong>{{.Destination}}</strong> from <strong>{{.Start}}</strong> to <strong>{{.End}}</strong>.</p>
  <br>
  <p>To confirm your attendance, click the link below:</p>
  <br>
  <p><a href="{{.Link}}">Confirm attendance</a></p>
  <br>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>
`))

// RenderTripConfirmation builds the subject and HTML body of the email sent
// to the trip owner right after trip creation. The link points back at the
// API's confirm-trip endpoint.
func RenderTripConfirmation(msg TripMessage) (subject, body string, err error) {
	subject = fmt.Sprintf("Confirm your trip to %s on %s", msg.Destination, msg.StartsAt.Format(dateLayout))
	body, err = render(tripConfirmationTmpl, msg)
	return subject, body, err
}

// RenderParticipantInvitation builds the subject and HTML body of the email
// sent to each invited guest. The link points at that guest's individual
// confirm-attendance endpoint.
func RenderParticipantInvitation(msg TripMessage) (subject, body string, err error) {
	subject = fmt.Sprintf("Confirm your attendance on the trip to %s on %s", msg.Destination, msg.StartsAt.Format(dateLayout))
	body, err = render(participantInvitationTmpl, msg)
	return subject, body, err
}

func render(tmpl *template.Template, msg TripMessage) (string, error) {
	data := struct {
		Destination string
		Start       string
		End         string
		Link        string
	}{
		Destination: msg.Destination,
		Start:       msg.StartsAt.Format(dateLayout),
		End:         msg.EndsAt.Format(dateLayout),
		Link:        msg.ConfirmationLink,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("mailer: render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
