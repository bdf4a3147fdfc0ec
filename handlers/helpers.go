package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"time"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON request body into v. An empty body leaves v at
// its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Clock is the time source shared by handlers that stamp or compare times.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// roundClamp rounds v to the nearest integer in [lo, hi]. The clamp happens
// on the float so out-of-range values never reach the int conversion.
func roundClamp(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	return int(math.Round(math.Max(float64(lo), math.Min(float64(hi), v))))
}
