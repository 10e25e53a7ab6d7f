package animation

import (
	"math"

	"github.com/shardwm/shardwm/config"
	"github.com/tanema/gween/ease"
)

// penner adapts a progress-only easing curve (t in [0,1], value in roughly
// [0,1]) to gween's ease.TweenFunc signature (t, begin, change, duration),
// which is what gween.New expects for every tween channel.
func penner(curve func(t float64) float64) ease.TweenFunc {
	return func(t, begin, change, duration float32) float32 {
		if duration <= 0 {
			return begin + change
		}
		progress := float64(t) / float64(duration)
		if progress < 0 {
			progress = 0
		} else if progress > 1 {
			progress = 1
		}
		return begin + change*float32(curve(progress))
	}
}

// outBounce is shared between the in/out/in_out bounce variants; n1/d1 are
// configurable so the bounce curve's tightness can be tuned.
func outBounce(p config.EasingParams, x float64) float64 {
	switch {
	case x < 1/p.D1:
		return p.N1 * x * x
	case x < 2/p.D1:
		x -= 1.5 / p.D1
		return p.N1*x*x + 0.75
	case x < 2.5/p.D1:
		x -= 2.25 / p.D1
		return p.N1*x*x + 0.9375
	default:
		x -= 2.625 / p.D1
		return p.N1*x*x + 0.984375
	}
}

// curveFor returns the progress->value curve for the named easing function.
// Unknown names fall back to linear rather than panicking; the fallback is
// not logged.
func curveFor(name config.EasingName, p config.EasingParams) func(t float64) float64 {
	switch name {
	case config.EaseLinear:
		return func(t float64) float64 { return t }
	case config.EaseInSine:
		return func(t float64) float64 { return 1 - math.Cos((t*math.Pi)/2) }
	case config.EaseOutSine:
		return func(t float64) float64 { return math.Sin((t * math.Pi) / 2) }
	case config.EaseInOutSine:
		return func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }
	case config.EaseInQuad:
		return func(t float64) float64 { return t * t }
	case config.EaseOutQuad:
		return func(t float64) float64 { return 1 - (1-t)*(1-t) }
	case config.EaseInOutQuad:
		return func(t float64) float64 {
			if t < 0.5 {
				return 2 * t * t
			}
			return 1 - math.Pow(-2*t+2, 2)/2
		}
	case config.EaseInCubic:
		return func(t float64) float64 { return t * t * t }
	case config.EaseOutCubic:
		return func(t float64) float64 { return 1 - math.Pow(1-t, 3) }
	case config.EaseInOutCubic:
		return func(t float64) float64 {
			if t < 0.5 {
				return 4 * t * t * t
			}
			return 1 - math.Pow(-2*t+2, 3)/2
		}
	case config.EaseInQuart:
		return func(t float64) float64 { return t * t * t * t }
	case config.EaseOutQuart:
		return func(t float64) float64 { return 1 - math.Pow(1-t, 4) }
	case config.EaseInOutQuart:
		return func(t float64) float64 {
			if t < 0.5 {
				return 8 * t * t * t * t
			}
			return 1 - math.Pow(-2*t+2, 4)/2
		}
	case config.EaseInQuint:
		return func(t float64) float64 { return t * t * t * t * t }
	case config.EaseOutQuint:
		return func(t float64) float64 { return 1 - math.Pow(1-t, 5) }
	case config.EaseInOutQuint:
		return func(t float64) float64 {
			if t < 0.5 {
				return 16 * t * t * t * t * t
			}
			return 1 - math.Pow(-2*t+2, 5)/2
		}
	case config.EaseInExpo:
		return func(t float64) float64 {
			if t == 0 {
				return 0
			}
			return math.Pow(2, 10*t-10)
		}
	case config.EaseOutExpo:
		return func(t float64) float64 {
			if t == 1 {
				return 1
			}
			return 1 - math.Pow(2, -10*t)
		}
	case config.EaseInOutExpo:
		return func(t float64) float64 {
			switch {
			case t == 0:
				return 0
			case t == 1:
				return 1
			case t < 0.5:
				return math.Pow(2, 20*t-10) / 2
			default:
				return (2 - math.Pow(2, -20*t+10)) / 2
			}
		}
	case config.EaseInCirc:
		return func(t float64) float64 { return 1 - math.Sqrt(1-math.Pow(t, 2)) }
	case config.EaseOutCirc:
		return func(t float64) float64 { return math.Sqrt(1 - math.Pow(t-1, 2)) }
	case config.EaseInOutCirc:
		return func(t float64) float64 {
			if t < 0.5 {
				return (1 - math.Sqrt(1-math.Pow(2*t, 2))) / 2
			}
			return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
		}
	case config.EaseInBack:
		return func(t float64) float64 { return p.C3*t*t*t - p.C1*t*t }
	case config.EaseOutBack:
		return func(t float64) float64 { return 1 + p.C3*math.Pow(t-1, 3) + p.C1*math.Pow(t-1, 2) }
	case config.EaseInOutBack:
		return func(t float64) float64 {
			if t < 0.5 {
				return (math.Pow(2*t, 2) * ((p.C2+1)*2*t - p.C2)) / 2
			}
			return (math.Pow(2*t-2, 2)*((p.C2+1)*(t*2-2)+p.C2) + 2) / 2
		}
	case config.EaseInElastic:
		return func(t float64) float64 {
			switch t {
			case 0:
				return 0
			case 1:
				return 1
			default:
				return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*p.C4)
			}
		}
	case config.EaseOutElastic:
		return func(t float64) float64 {
			switch t {
			case 0:
				return 0
			case 1:
				return 1
			default:
				return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*p.C4) + 1
			}
		}
	case config.EaseInOutElastic:
		return func(t float64) float64 {
			switch {
			case t == 0:
				return 0
			case t == 1:
				return 1
			case t < 0.5:
				return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*p.C5)) / 2
			default:
				return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*p.C5))/2 + 1
			}
		}
	case config.EaseInBounce:
		return func(t float64) float64 { return 1 - outBounce(p, 1-t) }
	case config.EaseOutBounce:
		return func(t float64) float64 { return outBounce(p, t) }
	case config.EaseInOutBounce:
		return func(t float64) float64 {
			if t < 0.5 {
				return (1 - outBounce(p, 1-2*t)) / 2
			}
			return (1 + outBounce(p, 2*t-1)) / 2
		}
	default:
		return func(t float64) float64 { return t }
	}
}

// TweenFunc returns the gween-compatible easing function for name/params.
func TweenFunc(name config.EasingName, params config.EasingParams) ease.TweenFunc {
	return penner(curveFor(name, params))
}
