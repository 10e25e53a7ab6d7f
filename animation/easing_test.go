package animation

import (
	"math"
	"testing"

	"github.com/shardwm/shardwm/config"
)

func TestCurveEndpointsAreZeroAndOne(t *testing.T) {
	params := config.DefaultEasingParams()
	names := []config.EasingName{
		config.EaseLinear, config.EaseInSine, config.EaseOutSine, config.EaseInOutSine,
		config.EaseInQuad, config.EaseOutQuad, config.EaseInOutQuad,
		config.EaseInCubic, config.EaseOutCubic, config.EaseInOutCubic,
		config.EaseInQuart, config.EaseOutQuart, config.EaseInOutQuart,
		config.EaseInQuint, config.EaseOutQuint, config.EaseInOutQuint,
		config.EaseInExpo, config.EaseOutExpo, config.EaseInOutExpo,
		config.EaseInCirc, config.EaseOutCirc, config.EaseInOutCirc,
		config.EaseInBack, config.EaseOutBack, config.EaseInOutBack,
		config.EaseInElastic, config.EaseOutElastic, config.EaseInOutElastic,
		config.EaseInBounce, config.EaseOutBounce, config.EaseInOutBounce,
	}

	for _, name := range names {
		curve := curveFor(name, params)
		if got := curve(0); math.Abs(got) > 0.01 {
			t.Errorf("%s(0) = %f, want ~0", name, got)
		}
		if got := curve(1); math.Abs(got-1) > 0.01 {
			t.Errorf("%s(1) = %f, want ~1", name, got)
		}
	}
}

func TestOutCubicAheadOfLinearAtMidpoint(t *testing.T) {
	params := config.DefaultEasingParams()
	linear := curveFor(config.EaseLinear, params)
	outCubic := curveFor(config.EaseOutCubic, params)

	if outCubic(0.5) <= linear(0.5) {
		t.Errorf("out_cubic(0.5)=%f should be ahead of linear(0.5)=%f", outCubic(0.5), linear(0.5))
	}
}

func TestOutBackOvershootsPastOne(t *testing.T) {
	params := config.DefaultEasingParams()
	curve := curveFor(config.EaseOutBack, params)

	overshot := false
	for i := 1; i <= 99; i++ {
		if curve(float64(i)/100) > 1.0 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("out_back should overshoot past 1.0 before settling, per its configured c1/c3 constants")
	}
}

func TestOutBounceNeverExceedsOne(t *testing.T) {
	params := config.DefaultEasingParams()
	curve := curveFor(config.EaseOutBounce, params)

	for i := 0; i <= 100; i++ {
		v := curve(float64(i) / 100)
		if v > 1.001 {
			t.Errorf("out_bounce(%f) = %f, should never exceed 1", float64(i)/100, v)
		}
	}
}

func TestUnknownEasingFallsBackToLinear(t *testing.T) {
	params := config.DefaultEasingParams()
	curve := curveFor(config.EasingName("not_a_real_curve"), params)

	if got := curve(0.25); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("unknown easing should fall back to linear, got curve(0.25)=%f", got)
	}
}

func TestTweenFuncRespectsDuration(t *testing.T) {
	params := config.DefaultEasingParams()
	fn := TweenFunc(config.EaseLinear, params)

	if got := fn(0, 10, 90, 2); got != 10 {
		t.Errorf("fn(t=0) = %f, want begin (10)", got)
	}
	if got := fn(2, 10, 90, 2); got != 100 {
		t.Errorf("fn(t=duration) = %f, want begin+change (100)", got)
	}
	if got := fn(1, 10, 90, 2); got != 55 {
		t.Errorf("fn(t=duration/2) = %f, want midpoint (55)", got)
	}
}

func TestTweenFuncZeroDurationJumpsToEnd(t *testing.T) {
	params := config.DefaultEasingParams()
	fn := TweenFunc(config.EaseOutElastic, params)

	if got := fn(0, 5, 15, 0); got != 20 {
		t.Errorf("zero-duration tween should jump straight to begin+change, got %f", got)
	}
}
