package lights

import (
	"fmt"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// LightList stores virtual lights in one slice per kind. The global index of
// a light orders omni lights first, then directional, then oriented.
type LightList struct {
	Omni        []OmniDirLight
	Directional []DirLight
	Oriented    []OrientedLight
}

// NewLightList creates an empty list
func NewLightList() *LightList {
	return &LightList{}
}

// Add appends a light to the slice of its kind
func (l *LightList) Add(light Light) {
	switch v := light.(type) {
	case OmniDirLight:
		l.Omni = append(l.Omni, v)
	case DirLight:
		l.Directional = append(l.Directional, v)
	case OrientedLight:
		l.Oriented = append(l.Oriented, v)
	}
}

// Len returns the total number of lights
func (l *LightList) Len() int {
	return len(l.Omni) + len(l.Directional) + len(l.Oriented)
}

// Counts returns the number of lights of each kind
func (l *LightList) Counts() (omni, directional, oriented int) {
	return len(l.Omni), len(l.Directional), len(l.Oriented)
}

// At returns the light with global index i
func (l *LightList) At(i int) Light {
	if i < len(l.Omni) {
		return l.Omni[i]
	}
	i -= len(l.Omni)
	if i < len(l.Directional) {
		return l.Directional[i]
	}
	i -= len(l.Directional)
	if i < len(l.Oriented) {
		return l.Oriented[i]
	}
	panic(fmt.Sprintf("light index %d out of range [0, %d)", i+len(l.Omni)+len(l.Directional), l.Len()))
}

// Clear removes every light, keeping the allocated storage
func (l *LightList) Clear() {
	l.Omni = l.Omni[:0]
	l.Directional = l.Directional[:0]
	l.Oriented = l.Oriented[:0]
}

func (l *LightList) String() string {
	return fmt.Sprintf("LightList{omni=%d directional=%d oriented=%d}", len(l.Omni), len(l.Directional), len(l.Oriented))
}

// ScaledLight is a representative light standing in for a cluster. Weight
// scales its contribution per channel.
type ScaledLight struct {
	LightIndex int
	Weight     core.Vec3
}
