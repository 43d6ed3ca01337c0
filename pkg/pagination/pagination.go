// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the page request, the result-set metadata and the
// out-of-band header used by every list endpoint and client.
//
// # Overview
//
// Metadata is always computed against the filtered but unpaginated query and is
// transmitted in the [HeaderName] response header, never inside the data payload.
// Callers fetch the page and its metadata independently and correlate them by
// request.
package pagination

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultRecordsPerPage is the page size used when neither the request nor the bounds specify one.
	DefaultRecordsPerPage = 10
	// MaxRecordsPerPage is the default upper bound for a page size.
	MaxRecordsPerPage = 50
	// DefaultPageNumber is the starting page (1-indexed).
	DefaultPageNumber = 1

	// HeaderName carries the JSON encoded [Metadata] of a paginated response.
	HeaderName = "X-Pagination"

	// ParamPageNumber and ParamRecordsPerPage are the query string keys.
	ParamPageNumber     = "pagenumber"
	ParamRecordsPerPage = "recordsperpage"
)

// Request holds the requested page number and page size.
type Request struct {
	PageNumber     int `json:"pageNumber"`
	RecordsPerPage int `json:"recordsPerPage"`
}

// Bounds is the application-defined page size policy.
type Bounds struct {
	Default int
	Max     int
}

// DefaultBounds is used when no configuration is supplied.
var DefaultBounds = Bounds{Default: DefaultRecordsPerPage, Max: MaxRecordsPerPage}

// Normalize applies defaults and clamps the page size to [1, bounds.Max].
//
// Non-positive bounds fall back to [DefaultBounds].
func (r Request) Normalize(bounds Bounds) Request {
	if bounds.Max <= 0 {
		bounds.Max = MaxRecordsPerPage
	}

	if bounds.Default <= 0 || bounds.Default > bounds.Max {
		bounds.Default = min(DefaultRecordsPerPage, bounds.Max)
	}

	if r.PageNumber < 1 {
		r.PageNumber = DefaultPageNumber
	}

	if r.RecordsPerPage < 1 {
		r.RecordsPerPage = bounds.Default
	}

	if r.RecordsPerPage > bounds.Max {
		r.RecordsPerPage = bounds.Max
	}

	return r
}

// Offset returns the number of rows to skip for this page.
func (r Request) Offset() int {
	if r.PageNumber <= 1 {
		return 0
	}
	return (r.PageNumber - 1) * r.RecordsPerPage
}

// Values encodes the request as query parameters.
func (r Request) Values() url.Values {
	values := url.Values{}
	values.Set(ParamPageNumber, strconv.Itoa(r.PageNumber))
	values.Set(ParamRecordsPerPage, strconv.Itoa(r.RecordsPerPage))
	return values
}

// Metadata describes a page relative to the full filtered result set.
type Metadata struct {
	TotalRecords   int  `json:"totalRecords"`
	PageNumber     int  `json:"pageNumber"`
	RecordsPerPage int  `json:"recordsPerPage"`
	TotalPages     int  `json:"totalPages"`
	HasPrevious    bool `json:"hasPrevious"`
	HasNext        bool `json:"hasNext"`
}

// NewMetadata computes page metadata for totalRecords rows.
//
// A page number past the last page is valid and yields HasNext == false.
func NewMetadata(totalRecords int, request Request) Metadata {
	totalPages := 0
	if request.RecordsPerPage > 0 {
		totalPages = (totalRecords + request.RecordsPerPage - 1) / request.RecordsPerPage
	}

	return Metadata{
		TotalRecords:   totalRecords,
		PageNumber:     request.PageNumber,
		RecordsPerPage: request.RecordsPerPage,
		TotalPages:     totalPages,
		HasPrevious:    request.PageNumber > 1,
		HasNext:        request.PageNumber < totalPages,
	}
}

// ItemCount returns how many rows the requested page holds out of totalRecords.
func ItemCount(totalRecords int, request Request) int {
	remaining := totalRecords - request.Offset()
	if remaining <= 0 {
		return 0
	}
	return min(remaining, request.RecordsPerPage)
}

// FromRequest parses "pagenumber" and "recordsperpage" query parameters.
//
// # Clamping
//
// Missing or invalid values fall back to the defaults and the page size is
// clamped to the bounds (see [Request.Normalize]).
func FromRequest(r *http.Request, bounds Bounds) Request {
	request := Request{
		PageNumber:     parseIntParam(r, ParamPageNumber, DefaultPageNumber),
		RecordsPerPage: parseIntParam(r, ParamRecordsPerPage, 0),
	}
	return request.Normalize(bounds)
}

// WriteHeader sets the [HeaderName] header on a response.
func WriteHeader(header http.Header, metadata Metadata) {
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return
	}
	header.Set(HeaderName, string(encoded))
}

// ReadHeader decodes the [HeaderName] header. The boolean reports presence.
func ReadHeader(header http.Header) (Metadata, bool, error) {
	raw := header.Get(HeaderName)
	if raw == "" {
		return Metadata{}, false, nil
	}

	var metadata Metadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return Metadata{}, true, fmt.Errorf("pagination: invalid %s header: %w", HeaderName, err)
	}

	return metadata, true, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
