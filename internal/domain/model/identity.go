package model

import "encoding/json"

// UserID is a logical account identifier. The mobile client is inconsistent
// about whether it sends ids as JSON strings or numbers, so decoding accepts
// both; the server normalizes to the string form for map keys, exactly as the
// system this gateway replaces coerced ids with String().
type UserID string

func (u *UserID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*u = UserID(n.String())
	return nil
}

func (u UserID) String() string { return string(u) }
