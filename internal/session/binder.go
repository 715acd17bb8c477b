// Package session holds the per-visitor state this service keeps between
// requests: which of the owner's profiles is bound for editing, and the
// view-dedup marks used by the analytics recorder.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Values is the narrow slice of session state the binder needs. The Fiber
// session middleware's *session.Session satisfies it directly.
type Values interface {
	Get(key string) interface{}
	Set(key string, value interface{})
	Delete(key string)
}

const activeProfileKey = "active_profile_id"

// SetActive binds a profile for editing. Ownership must be checked by the
// caller before binding.
func SetActive(v Values, profileID uuid.UUID) {
	v.Set(activeProfileKey, profileID.String())
}

// ActiveID returns the bound profile id, if any. The id is only a hint: it
// must be re-validated against current ownership on every use.
func ActiveID(v Values) (uuid.UUID, bool) {
	raw, ok := v.Get(activeProfileKey).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ClearActive unbinds the active profile.
func ClearActive(v Values) {
	v.Delete(activeProfileKey)
}

func viewedKey(profileID uuid.UUID) string {
	return "viewed_" + profileID.String()
}

// MarkViewed records that this visitor's view of the profile was counted at
// the given time.
func MarkViewed(v Values, profileID uuid.UUID, at time.Time) {
	v.Set(viewedKey(profileID), at.Unix())
}

// ViewedWithin reports whether a counted view for the profile is already
// marked inside the window. Stale marks are cleared as a side effect.
func ViewedWithin(v Values, profileID uuid.UUID, now time.Time, window time.Duration) bool {
	raw, ok := v.Get(viewedKey(profileID)).(int64)
	if !ok {
		return false
	}
	if now.Sub(time.Unix(raw, 0)) < window {
		return true
	}
	v.Delete(viewedKey(profileID))
	return false
}
