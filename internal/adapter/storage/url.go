package storage

import "strings"

// DisplayURL formats an attachment reference into a fetchable URL. Purely a
// formatting concern; it never touches the backend.
func DisplayURL(baseURL, ref string) string {
	if ref == "" || baseURL == "" {
		return ""
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + ref
}
