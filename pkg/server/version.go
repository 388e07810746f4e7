package server

import (
	"net/http"
	"strings"
)

// DefaultAPIVersion is used when the client does not ask for a version.
const DefaultAPIVersion = "v1"

const vendorMediaPrefix = "application/vnd.devengine."

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion reads a vendor media type such as
// application/vnd.devengine.v1+json from Accept. Anything else yields the
// default version.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		media := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if !strings.HasPrefix(media, vendorMediaPrefix) {
			continue
		}
		v := strings.TrimPrefix(media, vendorMediaPrefix)
		if i := strings.IndexByte(v, '+'); i >= 0 {
			v = v[:i]
		}
		if isValidAPIVersion(v) {
			return v
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(v string) bool {
	return supportedAPIVersions[v]
}
