package models

// UserProfile is the single local user's contact details.
type UserProfile struct {
	FullName        string `json:"fullName"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	ProfileImageURI string `json:"profileImageUri,omitempty"`
}

// DefaultProfile is used until the user edits their details.
func DefaultProfile() UserProfile {
	return UserProfile{
		FullName:    "Anderson",
		PhoneNumber: "+60134589525",
		Email:       "Anderson@email.com",
		Address:     "3 Addersion Court\nChino Hills, HO56824, United State",
	}
}
