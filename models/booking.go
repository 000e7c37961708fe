package models

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no_show"
)

// bookingTransitions enumerates the allowed forward-only status moves.
// There is no path back to pending or confirmed once a booking is terminal.
var bookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusNoShow, BookingStatusCancelled},
}

// Booking represents a confirmed or pending reservation of a resource for an interval
type Booking struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID string   `gorm:"type:uuid;index;not null" json:"business_id"`
	LocationID string   `gorm:"type:uuid;index;not null" json:"location_id"`
	Location   Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	StaffMemberID *string      `gorm:"type:uuid;index" json:"staff_member_id,omitempty"`
	StaffMember   *StaffMember `gorm:"foreignKey:StaffMemberID" json:"staff_member,omitempty"`

	// Nullable when the booking spans multiple services; see BookingItem
	ServiceID *string `gorm:"type:uuid;index" json:"service_id,omitempty"`

	CustomerID string   `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// Customer snapshot (preserved even if customer data changes)
	CustomerName  string  `gorm:"size:200;not null" json:"customer_name"`
	CustomerEmail string  `gorm:"size:255;not null;index" json:"customer_email"`
	CustomerPhone *string `gorm:"size:20" json:"customer_phone,omitempty"`
	PetName       string  `gorm:"size:100" json:"pet_name"`
	PetType       string  `gorm:"size:50" json:"pet_type"`

	// Schedule. EndDatetime excludes the location buffer; conflict checks
	// extend it by booking_buffer_minutes.
	AppointmentDatetime time.Time `gorm:"not null;index" json:"appointment_datetime"`
	EndDatetime         time.Time `gorm:"not null;index" json:"end_datetime"`
	DurationMinutes     int       `gorm:"not null" json:"duration_minutes"`

	// Status
	Status             string     `gorm:"size:20;default:'pending';index" json:"status"`
	CancellationReason *string    `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *string    `gorm:"size:50" json:"cancelled_by,omitempty"` // "customer" or "business"

	// Human-facing code used in confirmation emails and manage links
	BookingReference string `gorm:"size:16;uniqueIndex;not null" json:"booking_reference"`

	// Money
	Price         float64 `gorm:"not null;default:0" json:"price"`
	DepositAmount float64 `gorm:"not null;default:0" json:"deposit_amount"`
	DepositPaid   bool    `gorm:"default:false" json:"deposit_paid"`

	Notes *string `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items,omitempty"`
}

// BeforeCreate hook to generate UUID and booking reference
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.BookingReference == "" {
		b.BookingReference = NewBookingReference()
	}
	if b.EndDatetime.IsZero() && !b.AppointmentDatetime.IsZero() && b.DurationMinutes > 0 {
		b.EndDatetime = b.AppointmentDatetime.Add(time.Duration(b.DurationMinutes) * time.Minute)
	}
	return nil
}

// TableName specifies the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}

// NewBookingReference generates a human-facing booking code like "HB-K7P2Q4RM"
func NewBookingReference() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to uuid entropy
		return "HB-" + strings.ToUpper(uuid.NewString()[:8])
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	return "HB-" + code
}

// IsValidBookingStatus checks if the status is valid
func IsValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the booking may move to the given status
func (b *Booking) CanTransitionTo(status string) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the booking has reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted || b.Status == BookingStatusNoShow
}

// IsModifiable reports whether the booking may still be cancelled or
// rescheduled: not terminal, and more than 24 hours before the appointment.
func (b *Booking) IsModifiable(now time.Time) bool {
	if b.IsTerminal() {
		return false
	}
	return b.AppointmentDatetime.After(now.Add(24 * time.Hour))
}

// OccupiedUntil returns the end of the booking's occupied interval for
// conflict purposes: end of the appointment plus the location buffer.
func (b *Booking) OccupiedUntil(bufferMinutes int) time.Time {
	return b.EndDatetime.Add(time.Duration(bufferMinutes) * time.Minute)
}

// TimeSlot represents an available time slot offered to a customer
type TimeSlot struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}
