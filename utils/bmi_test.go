package utils

import (
	"math"
	"testing"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(171, 64.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(bmi-22.06) > 0.01 {
		t.Errorf("bmi = %.2f, want ~22.06", bmi)
	}

	for _, c := range []struct{ h, w float64 }{
		{0, 70}, {170, 0}, {-170, 70}, {30, 70}, {170, 500},
	} {
		if _, err := CalculateBMI(c.h, c.w); err == nil {
			t.Errorf("CalculateBMI(%v, %v) should error", c.h, c.w)
		}
	}
}

func TestBMICategory(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{17, "Underweight"},
		{18.5, "Normal weight"},
		{24.9, "Normal weight"},
		{27, "Overweight"},
		{32, "Obesity class I"},
		{37, "Obesity class II"},
		{45, "Obesity class III"},
	}
	for _, c := range cases {
		if got := BMICategory(c.bmi); got != c.want {
			t.Errorf("BMICategory(%v) = %q, want %q", c.bmi, got, c.want)
		}
	}
}
