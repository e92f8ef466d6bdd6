// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const maxFormMemory = 10 << 20 // 10MB

// File form fields recognized on multipart writes, in lookup order,
// mapped to the JSON key the stored reference lands under.
var fileFieldTargets = []struct {
	field  string
	target string
}{
	{"image_file", "image_url"},
	{"image", "image_url"},
	{"thumbnail_file", "thumbnail_url"},
	{"avatar_file", "avatar_url"},
	{"file", "file_url"},
}

// decodeBody unmarshals a request body into dst. JSON bodies decode
// directly. Multipart and urlencoded forms are converted field by
// field into a JSON object first: values that parse as JSON literals
// (numbers, booleans, objects, arrays) keep their type, everything
// else becomes a string. The "translations" field is always expected
// to be a JSON-encoded object when sent as a form value. Uploaded
// files are not persisted here; each recognized file field yields a
// generated reference path under /uploads.
func decodeBody(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	mediaType := ct
	if ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mediaType = mt
		}
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return fmt.Errorf("parsing multipart form: %w", err)
		}
		return decodeForm(r, dst)
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("parsing form: %w", err)
		}
		return decodeForm(r, dst)
	default:
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("parsing json body: %w", err)
		}
		return nil
	}
}

// decodeForm rebuilds the parsed form as a JSON object and unmarshals
// it into dst so form and JSON writes share one set of request structs.
func decodeForm(r *http.Request, dst any) error {
	obj := make(map[string]json.RawMessage, len(r.Form))
	for key, vals := range r.Form {
		if len(vals) == 0 {
			continue
		}
		obj[key] = formValueToJSON(key, vals[0])
	}

	if r.MultipartForm != nil {
		for _, ft := range fileFieldTargets {
			headers := r.MultipartForm.File[ft.field]
			if len(headers) == 0 {
				continue
			}
			if _, taken := obj[ft.target]; taken {
				continue
			}
			ref := uploadReference(headers[0].Filename)
			raw, _ := json.Marshal(ref)
			obj[ft.target] = raw
		}
	}

	buf, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encoding form fields: %w", err)
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return fmt.Errorf("parsing form fields: %w", err)
	}
	return nil
}

// Form fields carrying non-string values. Everything not listed here
// is treated as a plain string, so titles like "2024" survive intact.
var (
	intFormFields = map[string]bool{
		"position":         true,
		"category_id":      true,
		"series_id":        true,
		"reel_category_id": true,
		"episode_number":   true,
		"duration_seconds": true,
		"price_cents":      true,
		"rating":           true,
	}
	boolFormFields = map[string]bool{
		"is_active":           true,
		"is_featured_process": true,
	}
)

// formValueToJSON maps one form value onto a JSON literal according to
// the field's declared kind. The translations field must arrive as an
// encoded object; malformed values degrade to null rather than failing
// the whole request.
func formValueToJSON(key, val string) json.RawMessage {
	trimmed := strings.TrimSpace(val)
	switch {
	case key == "translations":
		if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
			return json.RawMessage(trimmed)
		}
		return json.RawMessage("null")
	case intFormFields[key]:
		if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return json.RawMessage(trimmed)
		}
		return json.RawMessage("null")
	case boolFormFields[key]:
		if trimmed == "true" || trimmed == "1" || trimmed == "on" {
			return json.RawMessage("true")
		}
		return json.RawMessage("false")
	default:
		raw, _ := json.Marshal(val)
		return raw
	}
}

// uploadReference generates the stored path for an uploaded file.
// Only the reference is recorded; byte storage is handled out of band
// by the CDN sync job.
func uploadReference(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "/uploads/" + uuid.New().String() + ext
}
