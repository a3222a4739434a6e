package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Rand exposes the underlying generator for integer draws
func (r *RandomSampler) Rand() *rand.Rand {
	return r.random
}

// Seed streams keep the RNG of every parallel task independent.
const (
	StreamShoot uint64 = iota + 1
	StreamGroup
	StreamCluster
	StreamFinal
	StreamLights
)

// DeriveSeed mixes a base seed, a stream id and a task index into a
// per-task seed with splitmix64, so neighbouring indices get unrelated streams.
func DeriveSeed(base int64, stream uint64, index int) int64 {
	z := uint64(base) ^ (stream * 0x9e3779b97f4a7c15) ^ (uint64(index) * 0xbf58476d1ce4e5b9)
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z >> 1)
}

// NewTaskRand returns a generator owned by a single task
func NewTaskRand(base int64, stream uint64, index int) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(base, stream, index)))
}

// OrthonormalBasis builds two tangents perpendicular to the unit vector n
func OrthonormalBasis(n Vec3) (Vec3, Vec3) {
	var nt Vec3
	if math.Abs(n.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(n).Normalize()
	bitangent := n.Cross(tangent)
	return tangent, bitangent
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	z := math.Sqrt(math.Max(0, 1.0-sample.Y))

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SamplePointInUnitDisk maps a square sample to the unit disk (concentric mapping)
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	ux, uy := 2*sample.X-1, 2*sample.Y-1
	if ux == 0 && uy == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(ux) > math.Abs(uy) {
		r = ux
		theta = math.Pi / 4 * (uy / ux)
	} else {
		r = uy
		theta = math.Pi/2 - math.Pi/4*(ux/uy)
	}
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// StratifiedSample returns the jittered position of sub-sample index inside a
// strata x strata grid over the unit square.
func StratifiedSample(index, strata int, jitter Vec2) Vec2 {
	if strata <= 1 {
		return jitter
	}
	sx := index % strata
	sy := (index / strata) % strata
	inv := 1.0 / float64(strata)
	return NewVec2((float64(sx)+jitter.X)*inv, (float64(sy)+jitter.Y)*inv)
}

// StrataFor returns the side of the smallest square grid holding n samples
func StrataFor(n int) int {
	s := int(math.Ceil(math.Sqrt(float64(n))))
	return max(1, s)
}
