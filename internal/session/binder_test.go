package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type memValues map[string]interface{}

func (m memValues) Get(key string) interface{}        { return m[key] }
func (m memValues) Set(key string, value interface{}) { m[key] = value }
func (m memValues) Delete(key string)                 { delete(m, key) }

func TestActiveBinding(t *testing.T) {
	v := memValues{}
	profileID := uuid.New()

	if _, ok := ActiveID(v); ok {
		t.Fatal("empty session reported an active profile")
	}

	SetActive(v, profileID)
	got, ok := ActiveID(v)
	if !ok || got != profileID {
		t.Fatalf("ActiveID = %s/%v, want %s/true", got, ok, profileID)
	}

	ClearActive(v)
	if _, ok := ActiveID(v); ok {
		t.Fatal("binding survived ClearActive")
	}
}

func TestActiveIDGarbageValue(t *testing.T) {
	v := memValues{"active_profile_id": "not-a-uuid"}
	if _, ok := ActiveID(v); ok {
		t.Fatal("garbage value parsed as an active profile")
	}

	v = memValues{"active_profile_id": 42}
	if _, ok := ActiveID(v); ok {
		t.Fatal("non-string value parsed as an active profile")
	}
}

func TestViewedWindow(t *testing.T) {
	v := memValues{}
	profileID := uuid.New()
	now := time.Now()
	window := 30 * time.Minute

	if ViewedWithin(v, profileID, now, window) {
		t.Fatal("unmarked profile reported as viewed")
	}

	MarkViewed(v, profileID, now)
	if !ViewedWithin(v, profileID, now.Add(29*time.Minute), window) {
		t.Error("mark inside the window not honored")
	}
	if ViewedWithin(v, profileID, now.Add(31*time.Minute), window) {
		t.Error("mark outside the window still honored")
	}
	// The stale mark is cleared on the way out.
	if _, present := v["viewed_"+profileID.String()]; present {
		t.Error("stale mark was not cleared")
	}
}

func TestViewedMarksArePerProfile(t *testing.T) {
	v := memValues{}
	a, b := uuid.New(), uuid.New()
	now := time.Now()
	window := 30 * time.Minute

	MarkViewed(v, a, now)
	if ViewedWithin(v, b, now, window) {
		t.Error("mark for one profile leaked to another")
	}
}
