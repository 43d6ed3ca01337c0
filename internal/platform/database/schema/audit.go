// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the catalog database.
package schema

// AuditColumns are shared by every root entity table.
type AuditColumns struct {
	CreatedAt string
	CreatedBy string
	UpdatedAt string
	UpdatedBy string
	IsDeleted string
}

// Audit is the schema definition of the audit columns
var Audit = AuditColumns{
	CreatedAt: "createdat",
	CreatedBy: "createdby",
	UpdatedAt: "updatedat",
	UpdatedBy: "updatedby",
	IsDeleted: "isdeleted",
}

func (a AuditColumns) Columns() []string {
	return []string{a.CreatedAt, a.CreatedBy, a.UpdatedAt, a.UpdatedBy, a.IsDeleted}
}
