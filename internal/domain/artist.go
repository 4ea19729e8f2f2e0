package domain

type Artist struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"bio,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}
