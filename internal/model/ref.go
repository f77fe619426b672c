package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/google/uuid"
)

// Ref identifies an entity either by numeric id or by uuid. In JSON it may be a
// number or a string.
type Ref string

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("reference must be a number or a string")
	}
	*r = Ref(n.String())
	return nil
}

// ID returns the numeric form, if the reference is one.
func (r Ref) ID() (uint, bool) {
	n, err := strconv.ParseUint(string(r), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// UUID returns the uuid form, if the reference is one.
func (r Ref) UUID() (uuid.UUID, bool) {
	id, err := uuid.Parse(string(r))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (r Ref) String() string {
	return string(r)
}
