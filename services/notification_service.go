package services

import (
	"fmt"
	"strings"

	"github.com/ClickswiftHQ/HeyBertie-sub000/config"
	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
)

// Booking notifications are informed after the fact. They are dispatched
// asynchronously from handlers; the booking stands whether or not delivery
// succeeds.

const bookingTimeFormat = "Monday, January 2, 2006 at 3:04 PM"

func bookingItemLines(booking *models.Booking) string {
	var lines []string
	for _, item := range booking.Items {
		lines = append(lines, fmt.Sprintf("- %s (%d min): %.2f", item.ServiceName, item.DurationMinutes, item.Price))
	}
	return strings.Join(lines, "\n")
}

// BuildBookingConfirmationEmail creates the customer-facing confirmation
func BuildBookingConfirmationEmail(booking *models.Booking, business *models.Business, manageURL string) *Email {
	when := booking.AppointmentDatetime.In(LocationTimezone(business)).Format(bookingTimeFormat)

	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking with %s is %s.\n\nReference: %s\nWhen: %s\nPet: %s (%s)\n\nServices:\n%s\n\nTotal: %.2f\n\nManage your booking: %s\n",
		booking.CustomerName, business.Name, booking.Status, booking.BookingReference,
		when, booking.PetName, booking.PetType, bookingItemLines(booking), booking.Price, manageURL)

	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking with <strong>%s</strong> is %s.</p><p>Reference: <strong>%s</strong><br>When: %s<br>Pet: %s (%s)</p><pre>%s</pre><p>Total: %.2f</p><p><a href=%q>Manage your booking</a></p>",
		booking.CustomerName, business.Name, booking.Status, booking.BookingReference,
		when, booking.PetName, booking.PetType, bookingItemLines(booking), booking.Price, manageURL)

	return &Email{
		To:       []string{booking.CustomerEmail},
		Subject:  fmt.Sprintf("Booking %s with %s", booking.BookingReference, business.Name),
		TextBody: text,
		HTMLBody: html,
	}
}

// BuildBookingCancelledEmail creates the cancellation notice
func BuildBookingCancelledEmail(booking *models.Booking, business *models.Business) *Email {
	when := booking.AppointmentDatetime.In(LocationTimezone(business)).Format(bookingTimeFormat)

	reason := ""
	if booking.CancellationReason != nil && *booking.CancellationReason != "" {
		reason = "\nReason: " + *booking.CancellationReason
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking %s with %s for %s has been cancelled.%s\n",
		booking.CustomerName, booking.BookingReference, business.Name, when, reason)

	return &Email{
		To:       []string{booking.CustomerEmail},
		Subject:  fmt.Sprintf("Booking %s cancelled", booking.BookingReference),
		TextBody: text,
	}
}

// BuildBookingRescheduledEmail creates the reschedule notice
func BuildBookingRescheduledEmail(booking *models.Booking, business *models.Business) *Email {
	when := booking.AppointmentDatetime.In(LocationTimezone(business)).Format(bookingTimeFormat)

	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking %s with %s has been moved to %s.\n",
		booking.CustomerName, booking.BookingReference, business.Name, when)

	return &Email{
		To:       []string{booking.CustomerEmail},
		Subject:  fmt.Sprintf("Booking %s rescheduled", booking.BookingReference),
		TextBody: text,
	}
}

// NotifyBookingCreated dispatches the confirmation email, fire-and-forget
func NotifyBookingCreated(cfg *config.Config, booking *models.Booking, business *models.Business) {
	manageURL := cfg.AppURL + "/bookings/" + booking.BookingReference
	SendEmailAsync(cfg, BuildBookingConfirmationEmail(booking, business, manageURL))
}

// NotifyBookingCancelled dispatches the cancellation email, fire-and-forget
func NotifyBookingCancelled(cfg *config.Config, booking *models.Booking, business *models.Business) {
	SendEmailAsync(cfg, BuildBookingCancelledEmail(booking, business))
}

// NotifyBookingRescheduled dispatches the reschedule email, fire-and-forget
func NotifyBookingRescheduled(cfg *config.Config, booking *models.Booking, business *models.Business) {
	SendEmailAsync(cfg, BuildBookingRescheduledEmail(booking, business))
}
