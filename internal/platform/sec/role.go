// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// UserRole is the catalog permission carried in a token.
type UserRole string

const (
	// RoleAdmin may also issue tokens.
	RoleAdmin UserRole = "admin"
	// RoleCurator may write genres, people and movies.
	RoleCurator UserRole = "curator"
	// RoleMember may browse and rate.
	RoleMember UserRole = "member"
)

// ladder lists roles from weakest to strongest.
var ladder = []UserRole{RoleMember, RoleCurator, RoleAdmin}

// Roles returns the role names accepted when issuing a token.
func Roles() []string {
	names := make([]string, len(ladder))
	for index, role := range ladder {
		names[index] = string(role)
	}
	return names
}

// AtLeast reports whether r grants everything target does. Unknown roles
// grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	rank := slices.Index(ladder, r)
	return rank >= 0 && rank >= slices.Index(ladder, target)
}
