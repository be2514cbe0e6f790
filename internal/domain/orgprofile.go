package domain

import "time"

// OrgProfile holds the organization settings that feed broadcast message
// defaults: the signature line and the callback number.
type OrgProfile struct {
	OrgName      string
	ContactPhone string
	Province     string
	District     string
	Municipality string
	UpdatedAt    time.Time
}
