// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data embeds the catalog schema migrations into the server binary.
package data

import "embed"

// MigrationsDir is the directory of [Migrations] holding the SQL files.
const MigrationsDir = "migrations"

// Migrations holds the numbered up/down migration pairs.
//
//go:embed migrations/*.sql
var Migrations embed.FS
