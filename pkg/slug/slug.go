// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives the URL slug stored with every movie
// ("Amélie" becomes "amelie", "Heat (1995)" becomes "heat-1995").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength matches the width of catalog.movie.slug.
const MaxLength = 320

// From lowercases s, strips accents, and joins the remaining ASCII letter and
// digit runs with single hyphens. The result is cut at a hyphen boundary
// to fit [MaxLength].
func From(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return truncate(builder.String(), MaxLength)
}

func truncate(slug string, limit int) string {
	if len(slug) <= limit {
		return slug
	}
	cut := slug[:limit]
	if index := strings.LastIndexByte(cut, '-'); index > 0 {
		cut = cut[:index]
	}
	return strings.TrimRight(cut, "-")
}
