// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import "strings"

// Role is a semantic slot in a palette. Code asks for a role, never a color.
type Role int

const (
	RoleHeading1 Role = iota
	RoleHeading2
	RoleHeading3
	RoleError
	RoleWarning
	RoleSuccess
	RoleInfo
	RoleEmphasis
	RoleCode
	RoleNormal
	RoleSubtle
	RoleHint
	RoleDebug
	RoleLink
	RoleQuote
	RoleCommentary

	roleCount
)

var roleNames = [roleCount]string{
	"heading1", "heading2", "heading3",
	"error", "warning", "success", "info",
	"emphasis", "code", "normal", "subtle", "hint",
	"debug", "link", "quote", "commentary",
}

var roleDescriptions = [roleCount]string{
	"Primary heading, highest prominence",
	"Secondary heading",
	"Tertiary heading",
	"Critical errors requiring immediate attention",
	"Important cautions or potential issues",
	"Positive completion or status messages",
	"General informational messages",
	"Text that needs to stand out",
	"Code snippets or commands",
	"Standard text, default prominence",
	"De-emphasized but clearly visible text",
	"Completion suggestions or placeholder text",
	"Development and diagnostic information",
	"Links and URLs",
	"Quoted text or citations",
	"Commentary or explanatory notes",
}

// AllRoles returns every role in declaration order.
func AllRoles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

func (r Role) valid() bool { return r >= 0 && r < roleCount }

// String returns the snake_case name used as the TOML palette key.
func (r Role) String() string {
	if !r.valid() {
		return "unknown"
	}
	return roleNames[r]
}

// Description is a one-line explanation for help screens and previews.
func (r Role) Description() string {
	if !r.valid() {
		return ""
	}
	return roleDescriptions[r]
}

// ParseRole is case-insensitive and tolerates "-" for "_".
func ParseRole(s string) (Role, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range roleNames {
		if name == key {
			return Role(i), nil
		}
	}
	return 0, &Error{Kind: KindFromStr, Message: "role " + s}
}
