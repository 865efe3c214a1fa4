package utils

import (
	"net/http"
	"strings"

	"tripcraft/models"
)

// Lang reads the lng query parameter, defaulting to Armenian.
func Lang(r *http.Request) string {
	return models.NormalizeLang(r.URL.Query().Get("lng"))
}

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
