// Package neterr maps transport failures onto the fixed set of error
// categories shown to the operator.
package neterr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	// StatusDefault marks an error that carries no usable transport status.
	StatusDefault = -1
	// StatusConnect marks a failure to reach the server at all.
	StatusConnect = 0

	defaultMessage = "Something went wrong. Please try again later"
)

// HTTPError is returned by transports for responses outside the 2xx range.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// NetworkError is the normalised view of a failed request.
type NetworkError struct {
	Status     int
	StatusCode string
	Message    string
}

// Classify converts err into a NetworkError.
func Classify(err error) NetworkError {
	fallback := NetworkError{
		Status:     StatusDefault,
		StatusCode: strconv.Itoa(StatusDefault),
		Message:    defaultMessage,
	}
	if err == nil {
		return fallback
	}

	if refusedDial(err) {
		return NetworkError{Status: StatusConnect, StatusCode: strconv.Itoa(StatusConnect), Message: defaultMessage}
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return fallback
	}

	message, ok := bodyMessage(httpErr.Body)
	if !ok {
		message = defaultMessage
	}

	return NetworkError{
		Status:     httpErr.StatusCode,
		StatusCode: strconv.Itoa(httpErr.StatusCode),
		Message:    message,
	}
}

// refusedDial reports a dial that reached no server. Lookup failures and dial
// timeouts are not connection errors.
func refusedDial(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) || opErr.Op != "dial" {
		return false
	}
	if opErr.Timeout() {
		return false
	}
	var dnsErr *net.DNSError
	return !errors.As(opErr.Err, &dnsErr)
}

func bodyMessage(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload struct {
		Message  string `json:"message"`
		Response struct {
			Message string `json:"message"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	switch {
	case strings.TrimSpace(payload.Message) != "":
		return strings.TrimSpace(payload.Message), true
	case strings.TrimSpace(payload.Response.Message) != "":
		return strings.TrimSpace(payload.Response.Message), true
	default:
		return defaultMessage, true
	}
}

// Category is the operator-facing class of a failure.
type Category int

const (
	CategoryDefault Category = iota
	CategoryNoConnectivity
	CategoryConnection
	CategoryInternal
	CategoryUnavailable
	CategoryOther
)

var categoryNames = map[Category]string{
	CategoryDefault:        "default",
	CategoryNoConnectivity: "no_connectivity",
	CategoryConnection:     "connection",
	CategoryInternal:       "internal",
	CategoryUnavailable:    "unavailable",
	CategoryOther:          "other",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Message returns the fixed message for c. CategoryOther has none and
// yields the default message.
func (c Category) Message() string {
	switch c {
	case CategoryNoConnectivity:
		return "No internet connection. Please check your connection and try again"
	case CategoryConnection:
		return "Unable to connect to the server. Please try again later"
	case CategoryInternal:
		return "The server ran into an internal issue. Please try again later"
	case CategoryUnavailable:
		return "The server is not available at the moment. Please try again later"
	default:
		return defaultMessage
	}
}

// Categorize picks the category for a classified error.
func Categorize(ne NetworkError) Category {
	switch ne.Status {
	case StatusDefault:
		return CategoryDefault
	case StatusConnect:
		return CategoryConnection
	case http.StatusInternalServerError:
		return CategoryInternal
	case http.StatusServiceUnavailable:
		return CategoryUnavailable
	default:
		return CategoryOther
	}
}

// Describe classifies err and returns its category with the message to show.
func Describe(err error) (Category, string) {
	ne := Classify(err)
	category := Categorize(ne)
	if category == CategoryOther {
		return category, ne.Message
	}
	return category, category.Message()
}
