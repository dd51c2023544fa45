// Package policy centralizes the role-based permission model for the
// locus API. It is a set of pure decision functions with no state; both
// the HTTP layer and the locus service consult it so that role checks
// live in exactly one place.
package policy

import (
	"errors"

	"github.com/davranaff/locusd/pkg/auth"
)

// ErrSideloadForbidden is returned when a non-admin role requests any
// sideload option. It is a client error, not a server fault, and must
// abort the whole request.
var ErrSideloadForbidden = errors.New("role is not permitted to sideload related records")

// CanSideload decides whether the role may request the given sideload
// options. Admin may request anything; for every other role a non-empty
// option list is a policy violation, not a silent no-op.
func CanSideload(role auth.Role, options []string) error {
	if len(options) == 0 {
		return nil
	}
	if role == auth.RoleAdmin {
		return nil
	}
	return ErrSideloadForbidden
}

// ReceivesMemberData reports whether the role is eligible to receive
// member records in a response. Normal is excluded even when a sideload
// request would otherwise pass the gate; the rule is enforced here in
// addition to CanSideload so the assembler never attaches member rows
// for a normal-role caller.
func ReceivesMemberData(role auth.Role) bool {
	return role != auth.RoleNormal
}
