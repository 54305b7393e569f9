package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/SteveHoareau18/timetravelagency/internal/booking"
	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
	"github.com/SteveHoareau18/timetravelagency/internal/events"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

const departureLayout = "02/01/2006"

// BookingNotifier publishes confirmed bookings and emails the traveler.
type BookingNotifier struct {
	email     EmailSender
	publisher EventPublisher
	logger    *logging.Logger
}

// NewBookingNotifier creates a notifier. Either collaborator may be nil.
func NewBookingNotifier(email EmailSender, publisher EventPublisher, logger *logging.Logger) *BookingNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &BookingNotifier{email: email, publisher: publisher, logger: logger}
}

// NotifyBookingConfirmed publishes the event and, when the traveler left an
// email address, sends the confirmation email. Both are attempted.
func (n *BookingNotifier) NotifyBookingConfirmed(ctx context.Context, ev booking.ConfirmationEvent) error {
	var errs []error

	payload := BookingConfirmedEvent(ev)
	env, err := events.NewEnvelope("booking:"+ev.SessionID, ev.SessionID, payload, events.WithTimestamp(ev.ConfirmedAt))
	if err != nil {
		errs = append(errs, err)
	} else if err := n.publisher.Publish(ctx, events.RoutingKeyBookingConfirmed, env); err != nil {
		n.logger.Error("notify: failed to publish booking confirmation", "session_id", ev.SessionID, "error", err)
		errs = append(errs, err)
	}

	if n.email != nil && strings.TrimSpace(ev.Contact.Email) != "" {
		msg := ConfirmationEmail(ev)
		if err := n.email.Send(ctx, msg); err != nil {
			n.logger.Error("notify: failed to send confirmation email", "session_id", ev.SessionID, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// BookingConfirmedEvent maps a confirmation to its wire payload.
func BookingConfirmedEvent(ev booking.ConfirmationEvent) events.BookingConfirmedV1 {
	out := events.BookingConfirmedV1{
		SessionID:       ev.SessionID,
		DestinationID:   ev.DestinationID,
		DestinationName: ev.DestinationName,
		Travelers:       ev.State.Travelers,
		Tier:            string(ev.State.Tier),
		GuideIncluded:   ev.State.GuideIncluded,
		Extras:          append([]string{}, ev.State.Extras...),
		PriceEUR:        ev.Price,
		ContactName:     ev.Contact.Name,
		ContactEmail:    ev.Contact.Email,
		ConfirmedAt:     ev.ConfirmedAt,
	}
	if ev.State.DepartureDate != nil {
		out.DepartureDate = ev.State.DepartureDate.Format("2006-01-02")
	}
	return out
}

// ConfirmationEmail renders the French confirmation email.
func ConfirmationEmail(ev booking.ConfirmationEvent) EmailMessage {
	rows := confirmationRows(ev)

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Bonjour %s,\n\n", greetingName(ev.Contact.Name)))
	text.WriteString("Votre voyage temporel est confirmé.\n\n")
	for _, row := range rows {
		text.WriteString(fmt.Sprintf("%s : %s\n", row[0], row[1]))
	}
	text.WriteString("\nProchaines étapes :\n")
	for _, step := range booking.NextSteps {
		text.WriteString(fmt.Sprintf("- %s\n", step))
	}
	text.WriteString("\nÀ très bientôt à travers le temps,\nTimeTravel Agency\n")

	var table strings.Builder
	for _, row := range rows {
		table.WriteString(fmt.Sprintf(`<tr><td style="padding:6px 12px;font-weight:bold;">%s</td><td style="padding:6px 12px;">%s</td></tr>`+"\n",
			html.EscapeString(row[0]), html.EscapeString(row[1])))
	}
	var steps strings.Builder
	for _, step := range booking.NextSteps {
		steps.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(step)))
	}

	htmlBody := fmt.Sprintf(`<div style="font-family:sans-serif;max-width:600px;">
<h2 style="color:#b8860b;">Réservation confirmée</h2>
<p>Bonjour %s,</p>
<table style="border-collapse:collapse;width:100%%;">
%s</table>
<h3>Prochaines étapes</h3>
<ul>%s</ul>
<p style="color:#666;font-size:12px;">TimeTravel Agency</p>
</div>`,
		html.EscapeString(greetingName(ev.Contact.Name)),
		table.String(),
		steps.String(),
	)

	return EmailMessage{
		To:      ev.Contact.Email,
		ToName:  ev.Contact.Name,
		Subject: fmt.Sprintf("Confirmation de votre voyage : %s", ev.DestinationName),
		Body:    text.String(),
		HTML:    htmlBody,
	}
}

func confirmationRows(ev booking.ConfirmationEvent) [][2]string {
	departure := "N/A"
	if ev.State.DepartureDate != nil {
		departure = ev.State.DepartureDate.Format(departureLayout)
	}
	guide := "Non"
	if ev.State.GuideIncluded {
		guide = "Oui"
	}
	extras := make([]string, 0, len(ev.State.Extras))
	for _, id := range ev.State.Extras {
		if e, err := catalog.LookupExtra(id); err == nil {
			extras = append(extras, e.Label)
			continue
		}
		extras = append(extras, id)
	}
	extrasLabel := "Aucun"
	if len(extras) > 0 {
		extrasLabel = strings.Join(extras, ", ")
	}
	return [][2]string{
		{"Destination", ev.DestinationName},
		{"Départ", departure},
		{"Voyageurs", fmt.Sprintf("%d", ev.State.Travelers)},
		{"Protection", tierLabel(ev.State.Tier)},
		{"Guide expert", guide},
		{"Extras", extrasLabel},
		{"Total", catalog.FormatEUR(booking.DisplayPrice(ev.Price))},
	}
}

func tierLabel(t booking.Tier) string {
	switch t {
	case booking.TierStandard:
		return "Standard"
	case booking.TierUltimate:
		return "Ultimate"
	default:
		return "Premium"
	}
}

func greetingName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "voyageur"
	}
	return name
}
