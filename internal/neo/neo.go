// Package neo defines the record types for near-Earth objects and their
// close approaches to Earth. A NearEarthObject carries the physical and
// semantic parameters NASA publishes for a small body; a CloseApproach is a
// single recorded pass near Earth. The two are linked into a bidirectional
// association by the database package — records are constructed unlinked.
package neo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// TimeLayout is the minute-resolution timestamp format used everywhere a
// close-approach time is rendered. The source data carries no seconds.
const TimeLayout = "2006-01-02 15:04"

// NearEarthObject is a single tracked near-Earth object.
//
// Designation is NASA's primary designation and is unique across a dataset.
// Name is the optional IAU name; the empty string means unnamed. Diameter is
// in kilometers and is NaN when no measured value exists — most small bodies
// have none. Approaches starts empty and is populated exactly once per
// associated close approach during database construction.
type NearEarthObject struct {
	Designation string  `json:"designation"`
	Name        string  `json:"name"`
	Diameter    float64 `json:"diameter_km"`
	Hazardous   bool    `json:"potentially_hazardous"`

	Approaches []*CloseApproach `json:"-"`
}

// Named reports whether this object has an IAU name.
func (n *NearEarthObject) Named() bool {
	return n.Name != ""
}

// Fullname returns the designation, with the name appended when one exists,
// e.g. "433 (Eros)".
func (n *NearEarthObject) Fullname() string {
	if n.Named() {
		return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
	}
	return n.Designation
}

// HasDiameter reports whether a measured diameter exists for this object.
func (n *NearEarthObject) HasDiameter() bool {
	return !math.IsNaN(n.Diameter)
}

// Serialize returns the flat key-value form of this object used by the
// export writers. An unnamed object serializes its name as "no name".
func (n *NearEarthObject) Serialize() map[string]any {
	name := n.Name
	if name == "" {
		name = "no name"
	}
	return map[string]any{
		"designation":           n.Designation,
		"name":                  name,
		"diameter_km":           n.Diameter,
		"potentially_hazardous": n.Hazardous,
	}
}

func (n *NearEarthObject) String() string {
	hazard := "is not considered potentially hazardous"
	if n.Hazardous {
		hazard = "is considered potentially hazardous"
	}
	if n.HasDiameter() {
		return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s", n.Fullname(), n.Diameter, hazard)
	}
	return fmt.Sprintf("NEO %s has an unknown diameter and %s", n.Fullname(), hazard)
}

// CloseApproach is one recorded close approach to Earth by an NEO.
//
// Designation is the foreign key naming the approaching object; it is set at
// ingestion, before linking. Time is UTC at minute precision. Distance is the
// nominal approach distance in astronomical units and Velocity the relative
// approach velocity in km/s. NEO is nil until the database constructor links
// the record, and is never reassigned afterward.
type CloseApproach struct {
	Designation string    `json:"designation"`
	Time        time.Time `json:"datetime_utc"`
	Distance    float64   `json:"distance_au"`
	Velocity    float64   `json:"velocity_km_s"`

	NEO *NearEarthObject `json:"-"`
}

// TimeStr returns the approach time formatted at minute resolution.
func (ca *CloseApproach) TimeStr() string {
	return ca.Time.Format(TimeLayout)
}

// NaturalKey returns a stable hex-encoded digest of the approach time and
// designation. No two distinct approaches in a dataset share both, so the
// digest serves as a portable identity for external dedup (the sqlite
// archive keys on it). The core never uses it for lookups.
func (ca *CloseApproach) NaturalKey() string {
	sum := sha256.Sum256([]byte(ca.TimeStr() + ca.Designation))
	return hex.EncodeToString(sum[:])
}

// Serialize returns the flat key-value form of this approach used by the
// export writers. NEO attributes are not included; writers merge in the
// linked object's Serialize output.
func (ca *CloseApproach) Serialize() map[string]any {
	return map[string]any{
		"datetime_utc":  ca.TimeStr(),
		"distance_au":   ca.Distance,
		"velocity_km_s": ca.Velocity,
	}
}

func (ca *CloseApproach) String() string {
	subject := ca.Designation
	if ca.NEO != nil {
		subject = ca.NEO.Fullname()
	}
	return fmt.Sprintf("On %s, %s approaches Earth at a distance of %.2f au and a velocity of %.2f km/s",
		ca.TimeStr(), subject, ca.Distance, ca.Velocity)
}
