package models

import "time"

// Identity is the redacted projection of a registered account. It never
// carries password material and is what the session exposes as "current".
type Identity struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"hirerName"`
	Title           string    `json:"hirerTitle"`
	CompanyName     string    `json:"companyName"`
	CompanyWebsite  string    `json:"companyWebsite"`
	CompanyLinkedIn string    `json:"companyLinkedIn"`
	CompanyLogo     string    `json:"companyLogo,omitempty"`
	OfficeLocations []string  `json:"officeLocations"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Account is a directory entry: the identity plus its credential.
// Password holds plaintext only for entries written by older portal builds;
// it is replaced by PasswordHash on the next successful login.
type Account struct {
	Identity
	PasswordHash string `json:"passwordHash,omitempty"`
	Password     string `json:"password,omitempty"`
}

// Redacted returns a copy of the account's identity.
func (a Account) Redacted() Identity {
	id := a.Identity
	id.OfficeLocations = append([]string(nil), a.OfficeLocations...)
	return id
}

// Registration is what a new hirer submits.
type Registration struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword,omitempty"`
	Name            string   `json:"hirerName"`
	Title           string   `json:"hirerTitle"`
	CompanyName     string   `json:"companyName"`
	CompanyWebsite  string   `json:"companyWebsite"`
	CompanyLinkedIn string   `json:"companyLinkedIn"`
	CompanyLogo     string   `json:"companyLogo,omitempty"`
	OfficeLocations []string `json:"officeLocations"`
}

// ProfileUpdate carries the profile fields to change; nil fields are kept.
type ProfileUpdate struct {
	Name            *string   `json:"hirerName,omitempty"`
	Title           *string   `json:"hirerTitle,omitempty"`
	CompanyName     *string   `json:"companyName,omitempty"`
	CompanyWebsite  *string   `json:"companyWebsite,omitempty"`
	CompanyLinkedIn *string   `json:"companyLinkedIn,omitempty"`
	CompanyLogo     *string   `json:"companyLogo,omitempty"`
	OfficeLocations *[]string `json:"officeLocations,omitempty"`
}

// Apply merges the non-nil fields of u into id.
func (u ProfileUpdate) Apply(id *Identity) {
	if u.Name != nil {
		id.Name = *u.Name
	}
	if u.Title != nil {
		id.Title = *u.Title
	}
	if u.CompanyName != nil {
		id.CompanyName = *u.CompanyName
	}
	if u.CompanyWebsite != nil {
		id.CompanyWebsite = *u.CompanyWebsite
	}
	if u.CompanyLinkedIn != nil {
		id.CompanyLinkedIn = *u.CompanyLinkedIn
	}
	if u.CompanyLogo != nil {
		id.CompanyLogo = *u.CompanyLogo
	}
	if u.OfficeLocations != nil {
		id.OfficeLocations = UniqueStrings(*u.OfficeLocations)
	}
}

// UniqueStrings returns in with duplicates removed, keeping first-seen order.
// The result is never nil.
func UniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
