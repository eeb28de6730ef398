// Package media turns backend-supplied image references into fetchable URLs.
package media

import "strings"

const mediaRoot = "/media/"

// ImageRefs carries the image fields a catalog record may expose. Which ones are
// populated depends on the endpoint that produced the record.
type ImageRefs struct {
	MainImageURL string
	ImageURL     string
	MainImage    string
}

// Resolver resolves references against a fixed media origin.
type Resolver struct {
	mediaBase     string
	currentOrigin string
}

// NewResolver builds a Resolver. currentOrigin is used when mediaBase is empty.
func NewResolver(mediaBase, currentOrigin string) *Resolver {
	return &Resolver{
		mediaBase:     trimBase(mediaBase),
		currentOrigin: trimBase(currentOrigin),
	}
}

// MediaBase returns the origin references are resolved against.
func (r *Resolver) MediaBase() string {
	if r == nil {
		return ""
	}
	if r.mediaBase != "" {
		return r.mediaBase
	}
	return r.currentOrigin
}

// ResolveURL resolves a single reference. It reports false when there is no image.
func (r *Resolver) ResolveURL(path string) (string, bool) {
	if r == nil {
		return ResolveURL(path, "", "")
	}
	return ResolveURL(path, r.mediaBase, r.currentOrigin)
}

// ResolveProductImage resolves the first populated reference, in the order
// MainImageURL, ImageURL, MainImage.
func (r *Resolver) ResolveProductImage(refs ImageRefs) (string, bool) {
	for _, candidate := range []string{refs.MainImageURL, refs.ImageURL, refs.MainImage} {
		if isBlank(candidate) {
			continue
		}
		return r.ResolveURL(candidate)
	}
	return "", false
}

// ResolveURL maps path onto an absolute URL.
//
// Absolute http(s) URLs are returned unchanged. Root-relative paths are prefixed
// with the base; anything else is treated as a file under /media/. The base is
// mediaBase, or currentOrigin when mediaBase is empty. With neither available
// the path is returned as given.
func ResolveURL(path, mediaBase, currentOrigin string) (string, bool) {
	if isBlank(path) {
		return "", false
	}
	path = strings.TrimSpace(path)
	if IsAbsolute(path) {
		return path, true
	}

	base := trimBase(mediaBase)
	if base == "" {
		base = trimBase(currentOrigin)
	}
	if base == "" {
		return path, true
	}

	if strings.HasPrefix(path, "/") {
		return base + path, true
	}
	return base + mediaRoot + path, true
}

// IsAbsolute reports whether path already carries an http or https scheme.
func IsAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func trimBase(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}
