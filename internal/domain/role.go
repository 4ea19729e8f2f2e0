package domain

// Role is the closed set of account roles. Authorization decisions go
// through Can so the capability table lives in one place instead of
// string comparisons scattered across handlers.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleClerk   Role = "clerk"
	RoleAdmin   Role = "admin"
)

type Capability string

const (
	CapManageArtists        Capability = "manage_artists"
	CapManageArtPieces      Capability = "manage_art_pieces"
	CapManageExhibitions    Capability = "manage_exhibitions"
	CapReviewRegistrations  Capability = "review_registrations"
	CapConfirmSetup         Capability = "confirm_setup"
	CapViewAllRegistrations Capability = "view_all_registrations"
	CapListUsers            Capability = "list_users"
)

var capabilities = map[Role]map[Capability]bool{
	RoleVisitor: {},
	RoleClerk: {
		CapManageArtPieces:      true,
		CapManageExhibitions:    true,
		CapReviewRegistrations:  true,
		CapConfirmSetup:         true,
		CapViewAllRegistrations: true,
	},
	RoleAdmin: {
		CapManageArtists:        true,
		CapManageArtPieces:      true,
		CapManageExhibitions:    true,
		CapReviewRegistrations:  true,
		CapConfirmSetup:         true,
		CapViewAllRegistrations: true,
		CapListUsers:            true,
	},
}

func (r Role) Valid() bool {
	return r == RoleVisitor || r == RoleClerk || r == RoleAdmin
}

func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// IsStaff reports whether the role may act on other visitors' data.
func (r Role) IsStaff() bool {
	return r == RoleClerk || r == RoleAdmin
}
