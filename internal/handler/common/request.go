package common

import (
	"net/http"
	"strconv"
	"strings"

	ierr "dearmind-backend/internal/errors"
)

// QueryInt reads a required integer query parameter.
func QueryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, ierr.BadRequestf("%s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ierr.BadRequestf("%s must be an integer", name)
	}
	return v, nil
}

// QueryList splits a comma separated query parameter, dropping blanks.
func QueryList(r *http.Request, name string) []string {
	out := []string{}
	for _, part := range strings.Split(r.URL.Query().Get(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
