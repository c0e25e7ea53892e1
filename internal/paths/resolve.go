package paths

import (
	"path"
	"strings"
)

// StaticPrefix is the canonical URL prefix for copied content assets.
const StaticPrefix = "/static/"

// WikiPrefix marks a reference routed to Wikipedia instead of the content tree.
const WikiPrefix = "wiki:"

const wikipediaBase = "https://en.wikipedia.org/wiki/"

// WikipediaURL returns the external URL for a wiki:-namespace article name.
func WikipediaURL(article string) string {
	return wikipediaBase + article
}

// IsExternal reports whether a reference must never be rewritten: absolute
// URLs and site-absolute paths.
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "/")
}

// Resolver turns raw references into canonical output paths using the shared
// file index. The zero value is unusable; construct with NewResolver.
type Resolver struct {
	index *Index
}

// NewResolver wires a resolver to the given index.
func NewResolver(index *Index) *Resolver {
	return &Resolver{index: index}
}

// ResolveAsset resolves an image or other asset reference against the
// document at fromDoc (a slash-separated path relative to the content root).
//
// Absolute references pass through untouched. Explicitly relative references
// (./ or ../) resolve against the document's directory. A bare name is looked
// up in the file index; when the index has no match the reference falls back
// to plain relative resolution, so unresolved references are never dropped.
func (r *Resolver) ResolveAsset(ref, fromDoc string) string {
	if IsExternal(ref) {
		return ref
	}
	if !strings.Contains(ref, "/") {
		if matches := r.index.Lookup(ref); len(matches) > 0 {
			return StaticPrefix + SanitizeName(matches[0])
		}
	}
	return StaticPrefix + SanitizeName(resolveRelative(ref, fromDoc))
}

// ResolveDocLink resolves an internal link reference to a canonical document
// path. wiki:-prefixed references route to Wikipedia. Bare names (no path
// separator) resolve through the file index, preferring document matches.
func (r *Resolver) ResolveDocLink(ref string) string {
	if article, ok := strings.CutPrefix(ref, WikiPrefix); ok {
		return wikipediaBase + article
	}
	if IsExternal(ref) {
		return ref
	}
	if !strings.Contains(ref, "/") {
		if match, ok := r.index.LookupDoc(ref); ok {
			return DocPath(match)
		}
	}
	return DocPath(ref)
}

// DocPath normalizes a content-relative document reference into its canonical
// output path: the document extension is stripped, and an index document maps
// to its containing directory (the root index to /).
func DocPath(ref string) string {
	clean := strings.TrimSuffix(ref, DocExtension)
	if clean == "index" {
		return "/"
	}
	if strings.HasSuffix(clean, "/index") {
		return "/" + strings.TrimSuffix(clean, "/index")
	}
	return "/" + clean
}

// resolveRelative applies ./ and ../ segments against the directory of
// fromDoc. Each leading ../ ascends one level; ascending past the content
// root is a no-op. References without a leading ./ or ../ are returned as-is
// (they are already relative to the content root).
func resolveRelative(ref, fromDoc string) string {
	if !strings.HasPrefix(ref, "./") && !strings.HasPrefix(ref, "../") {
		return ref
	}

	dir := path.Dir(fromDoc)
	if dir == "." {
		dir = ""
	}

	segs := strings.Split(ref, "/")
	i := 0
	for ; i < len(segs); i++ {
		if segs[i] == "." {
			continue
		}
		if segs[i] == ".." {
			if dir != "" {
				dir = path.Dir(dir)
				if dir == "." {
					dir = ""
				}
			}
			continue
		}
		break
	}

	rest := strings.Join(segs[i:], "/")
	switch {
	case dir == "":
		return rest
	case rest == "":
		return dir
	default:
		return dir + "/" + rest
	}
}
