package lights

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// Kind identifies the variant of a virtual light
type Kind int

const (
	KindOmni Kind = iota
	KindDirectional
	KindOriented
)

func (k Kind) String() string {
	switch k {
	case KindOmni:
		return "omni"
	case KindDirectional:
		return "directional"
	case KindOriented:
		return "oriented"
	}
	return "unknown"
}

// Light is a virtual light. The set of implementations is closed: only the
// three value types of this package satisfy it.
type Light interface {
	Kind() Kind
	isLight()
}

// OmniDirLight emits Intensity uniformly in every direction from Position
type OmniDirLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// DirLight is a light at infinity. Normal is the direction light travels in.
type DirLight struct {
	Normal   core.Vec3
	Radiance core.Vec3
}

// OrientedLight is a cosine emitter on the hemisphere around Normal
type OrientedLight struct {
	Position core.Vec3
	Normal   core.Vec3
	Radiance core.Vec3
}

func (OmniDirLight) Kind() Kind  { return KindOmni }
func (DirLight) Kind() Kind      { return KindDirectional }
func (OrientedLight) Kind() Kind { return KindOriented }

func (OmniDirLight) isLight()  {}
func (DirLight) isLight()      {}
func (OrientedLight) isLight() {}

// VirtualLightCache is the sink light generation writes into
type VirtualLightCache interface {
	Add(light Light)
	Len() int
}

// Tracer is the part of the scene light generation needs
type Tracer interface {
	Intersect(ray core.Ray) (*material.SurfaceInteraction, bool)
	BoundingBox() core.AABB
}
