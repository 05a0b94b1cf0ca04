package services

import "net/http"

// Allow is the owner-or-read-only predicate for owned resources. Safe
// methods are always allowed; unsafe methods only when the recorded
// owner is the requesting actor. Evaluated per request after the object
// has been located; stateless.
func Allow(method string, ownerID, actorID uint) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return ownerID == actorID
}
