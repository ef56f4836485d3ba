package domain

import (
	"github.com/google/uuid"
)

// PermissionLevel controls how much of a profile a specific viewer sees.
// Levels are cumulative: everything visible at level k stays visible at k+1.
type PermissionLevel int

const (
	// LevelStranger exposes nothing beyond the username.
	LevelStranger PermissionLevel = iota
	// LevelContact exposes name, social handles and bio. New connections
	// start here.
	LevelContact
	// LevelTrusted additionally exposes email and date of birth.
	LevelTrusted
	// LevelInner additionally exposes address and phone.
	LevelInner
)

// Valid reports whether l is one of the four defined levels.
func (l PermissionLevel) Valid() bool {
	return l >= LevelStranger && l <= LevelInner
}

// fieldRule binds a profile field to the minimum level required to see it.
type fieldRule struct {
	name  string
	level PermissionLevel
	value func(p *Profile) string
}

// disclosureRules is the single source of truth for field visibility.
// Rendering layers iterate the resolved result instead of hard-coding
// per-field conditionals.
var disclosureRules = []fieldRule{
	{"first_name", LevelContact, func(p *Profile) string { return p.FirstName }},
	{"last_name", LevelContact, func(p *Profile) string { return p.LastName }},
	{"facebook", LevelContact, func(p *Profile) string { return p.Facebook }},
	{"twitter", LevelContact, func(p *Profile) string { return p.Twitter }},
	{"instagram", LevelContact, func(p *Profile) string { return p.Instagram }},
	{"bio", LevelContact, func(p *Profile) string { return p.Bio }},
	{"email", LevelTrusted, func(p *Profile) string { return p.Email }},
	{"dob", LevelTrusted, func(p *Profile) string { return p.FormatDOB() }},
	{"address", LevelInner, func(p *Profile) string { return p.Address }},
	{"phone", LevelInner, func(p *Profile) string { return p.Phone }},
}

// VisibleProfile is the view of a profile after redaction. Fields holds
// the exposed field values keyed by field name; Hidden lists the field
// names the viewer's level does not reach, so the UI can render
// placeholders without the values ever leaving the server.
type VisibleProfile struct {
	Username       string            `json:"username"`
	Fields         map[string]string `json:"fields"`
	Hidden         []string          `json:"hidden,omitempty"`
	IsOwner        bool              `json:"is_owner"`
	Connected      bool              `json:"connected"`
	RequestPending bool              `json:"request_pending"`
}

// ResolveVisibility computes the viewer's redacted view of a profile.
// It is a pure function of its inputs: viewerID is nil for anonymous
// visitors, conn is nil when no connection row exists, and
// requestPending reports an outstanding request from the viewer to the
// owner (a UI hint only, it grants no visibility).
//
// Ownership overrides everything: the owner sees every field regardless
// of any stored connection level.
func ResolveVisibility(viewerID *uuid.UUID, p *Profile, conn *Connection, requestPending bool) *VisibleProfile {
	isOwner := viewerID != nil && *viewerID == p.CreatorID

	level := LevelStranger
	if conn != nil {
		level = conn.Level
	}

	vp := &VisibleProfile{
		Username:       p.Username,
		Fields:         make(map[string]string, len(disclosureRules)),
		IsOwner:        isOwner,
		Connected:      conn != nil,
		RequestPending: requestPending,
	}

	for _, rule := range disclosureRules {
		if isOwner || level >= rule.level {
			vp.Fields[rule.name] = rule.value(p)
		} else {
			vp.Hidden = append(vp.Hidden, rule.name)
		}
	}

	return vp
}
