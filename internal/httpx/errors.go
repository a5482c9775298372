package httpx

import (
	"net/http"

	"github.com/sundayezeilo/linkbio/internal/errx"
)

type kindMapping struct {
	status int
	code   string
}

var kindMappings = map[errx.Kind]kindMapping{
	errx.NotFound:     {http.StatusNotFound, "not_found"},
	errx.Conflict:     {http.StatusConflict, "conflict"},
	errx.Invalid:      {http.StatusBadRequest, "invalid_request"},
	errx.Unauthorized: {http.StatusUnauthorized, "unauthorized"},
	errx.Forbidden:    {http.StatusForbidden, "forbidden"},
	errx.Unavailable:  {http.StatusServiceUnavailable, "unavailable"},
}

var internalMapping = kindMapping{http.StatusInternalServerError, "internal_error"}

func mappingFor(kind errx.Kind) kindMapping {
	if m, ok := kindMappings[kind]; ok {
		return m
	}
	return internalMapping
}

// ErrorKindToStatus maps an errx.Kind to an HTTP status. Kinds without a
// mapping are 500.
func ErrorKindToStatus(kind errx.Kind) int { return mappingFor(kind).status }

// ErrorKindToCode maps an errx.Kind to the machine code in error payloads.
func ErrorKindToCode(kind errx.Kind) string { return mappingFor(kind).code }

// WriteKindError writes the status and code for kind with message.
func WriteKindError(w http.ResponseWriter, kind errx.Kind, message string) {
	m := mappingFor(kind)
	WriteError(w, m.status, m.code, message)
}
