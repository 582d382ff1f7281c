package model

const (
	RoleGuest = "guest"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Actor is the explicit capability context passed into the booking service.
// There is no ambient auth state in the core: callers say who they are
// acting as and the service applies role rules (e.g. only staff may
// register walk-in bookings with a past check-in).
type Actor struct {
	Role string `json:"role" validate:"required,oneof=guest staff admin"`
}

// CanBackfill reports whether the actor may create bookings whose check-in
// is already in the past (reception backfill of walk-ins).
func (a Actor) CanBackfill() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}

// GuestActor is the default capability for unauthenticated storefront calls.
func GuestActor() Actor {
	return Actor{Role: RoleGuest}
}
