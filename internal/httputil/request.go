package httputil

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidBody is returned when a request body cannot be decoded.
var ErrInvalidBody = errors.New("invalid request body")

const maxBodyBytes = 64 << 10

// DecodeBody fills dst from a JSON body, or from form values for
// form-encoded requests. Form fields are matched by the dst's JSON tag names
// through a JSON round trip, so dst must only hold string fields.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if mediaType == "multipart/form-data" {
			// ParseForm leaves multipart bodies unread; this also fills PostForm.
			err = r.ParseMultipartForm(maxBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return ErrInvalidBody
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			return ErrInvalidBody
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return ErrInvalidBody
		}
		return nil
	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return ErrInvalidBody
		}
		return nil
	}
}

// QueryInt64 parses an optional integer query parameter. ok is false when the
// parameter is absent; err is set when it is present but not an integer.
func QueryInt64(r *http.Request, name string) (value int64, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// RedirectBack redirects to the Referer when it points at this host, else to
// fallback. Cross-site referers are never followed.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	http.Redirect(w, r, BackTarget(r, fallback), http.StatusSeeOther)
}

// BackTarget resolves the RedirectBack destination.
func BackTarget(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != r.Host {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}
