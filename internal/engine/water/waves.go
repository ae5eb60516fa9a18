package water

import "github.com/chewxy/math32"

// Gravity is the acceleration used by the deep-water dispersion relation.
const Gravity = 9.81

// StokesHeight returns the third-order Stokes surface elevation for amplitude
// a, wavenumber k, spatial phase k·x and time t.
//
//	η = a(cos θ + ½ka cos 2θ + ⅜(ka)² cos 3θ),  θ = phase - ωt
//	ω = √(gk(1 + (ka)²))
func StokesHeight(a, k, phase, t float32) float32 {
	if k <= 0 || a == 0 {
		return 0
	}
	ka := k * a
	omega := math32.Sqrt(Gravity * k * (1 + ka*ka))
	theta := phase - omega*t

	h := a * (math32.Cos(theta) + 0.5*ka*math32.Cos(2*theta) + 0.375*ka*ka*math32.Cos(3*theta))
	return saturate(h)
}

// GerstnerDisplacement returns the horizontal displacement along the wave
// direction and the vertical displacement of a Gerstner (trochoidal) wave.
//
//	X = -a sin θ,  Z = a cos θ,  θ = phase - ωt,  ω = √(gk)
func GerstnerDisplacement(a, k, phase, t float32) (x, z float32) {
	if k <= 0 || a == 0 {
		return 0, 0
	}
	omega := math32.Sqrt(Gravity * k)
	s, c := math32.Sincos(phase - omega*t)
	return saturate(-a * s), saturate(a * c)
}

// saturate maps NaN and ±Inf to zero so degenerate input never reaches the
// vertex buffer.
func saturate(f float32) float32 {
	if math32.IsNaN(f) || math32.IsInf(f, 0) {
		return 0
	}
	return f
}

func pow10(x float32) float32 {
	return saturate(math32.Pow(10, x))
}
