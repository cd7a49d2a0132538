// Package authattr maps identity-provider attributes onto application roles.
package authattr

import (
	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
)

// Defaults match the provider's custom attribute convention: the admin flag
// lives in "custom:isAdmin" and only the exact value "1" grants admin.
const (
	DefaultAdminAttribute = "custom:isAdmin"
	DefaultAdminSentinel  = "1"
)

// SentinelRoleMapper grants admin when a single attribute carries an exact
// sentinel value. Any other value — including an absent attribute — maps to
// the standard role; there is no client-side elevation path.
type SentinelRoleMapper struct {
	Attribute string
	Sentinel  string
}

// NewSentinelRoleMapper returns a mapper with the default attribute and
// sentinel, overridable per field.
func NewSentinelRoleMapper(attribute, sentinel string) SentinelRoleMapper {
	if attribute == "" {
		attribute = DefaultAdminAttribute
	}
	if sentinel == "" {
		sentinel = DefaultAdminSentinel
	}
	return SentinelRoleMapper{Attribute: attribute, Sentinel: sentinel}
}

func (m SentinelRoleMapper) Map(attrs map[string]string) domainauth.Role {
	if v, ok := attrs[m.Attribute]; ok && v == m.Sentinel {
		return domainauth.RoleAdmin
	}
	return domainauth.RoleUser
}
