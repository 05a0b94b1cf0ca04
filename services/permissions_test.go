package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowSafeMethods(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.True(t, Allow(method, 1, 2), method)
	}
}

func TestAllowUnsafeMethodsOwnerOnly(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.True(t, Allow(method, 1, 1), method)
		assert.False(t, Allow(method, 1, 2), method)
	}
}
