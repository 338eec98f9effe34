package models

// UserRequest is the wire-level representation of a user draft accepted by
// the create and update endpoints. Validation rules are declared as
// `validate` struct tags and enforced at the HTTP layer before the service
// is invoked.
type UserRequest struct {
	// Username is the unique login identifier.
	Username string `json:"username" validate:"required,min=3,max=50"`

	// Email is the unique contact address.
	Email string `json:"email" validate:"required,email,max=100"`

	// FirstName is the user's given name.
	FirstName string `json:"firstName" validate:"required,max=100"`

	// LastName is the user's family name.
	LastName string `json:"lastName" validate:"required,max=100"`

	// Enabled is optional; a nil value means "default to true" on create
	// and "enabled" on update.
	Enabled *bool `json:"enabled,omitempty"`

	// Roles is optional on create; a nil or empty set defaults to {USER}.
	Roles []Role `json:"roles,omitempty" validate:"omitempty,dive,oneof=USER ADMIN"`
}

// ToUser converts the draft into a [User] entity, applying the creation
// defaults: Enabled is true unless explicitly set, and an absent role set
// becomes {USER} so that roles are never empty post-creation.
func (r UserRequest) ToUser() User {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	roles := dedupRoles(r.Roles)
	if len(roles) == 0 {
		roles = []Role{RoleUser}
	}

	return User{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Enabled:   enabled,
		Roles:     roles,
	}
}

// dedupRoles removes duplicate role tags while preserving first-seen order.
func dedupRoles(roles []Role) []Role {
	if len(roles) == 0 {
		return nil
	}

	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, role := range roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}

	return out
}

// UserResponse is the wire-level representation of a persisted user returned
// by every read endpoint. It is decoupled from the [User] entity: the HTTP
// layer never exposes or mutates entities directly.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Enabled   bool      `json:"enabled"`
	Roles     []Role    `json:"roles"`
	CreatedAt CivilTime `json:"createdAt"`
	UpdatedAt CivilTime `json:"updatedAt"`
}

// NewUserResponse projects a persisted [User] entity onto its transfer
// representation, deriving the read-only FullName field.
func NewUserResponse(user User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Enabled:   user.Enabled,
		Roles:     user.Roles,
		CreatedAt: CivilTime(user.CreatedAt),
		UpdatedAt: CivilTime(user.UpdatedAt),
	}
}
