package entities

import "math"

// BMICategory is the WHO weight class for a BMI value.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// BMIReport is the result of a body-mass-index calculation.
type BMIReport struct {
	Value    float64
	Category BMICategory
	AgeGroup AgeGroup // empty when age was not given
}

// AgeGroup buckets an age for the advice shown next to a BMI.
type AgeGroup string

const (
	AgeYouth  AgeGroup = "youth"  // under 18
	AgeAdult  AgeGroup = "adult"  // 18-39
	AgeMiddle AgeGroup = "middle" // 40-59
	AgeSenior AgeGroup = "senior" // 60+
)

// ComputeBMI calculates BMI from weight in kilograms and height in meters.
// age <= 0 means unknown. ok is false when weight or height are not positive numbers.
func ComputeBMI(weightKg, heightM float64, age int) (report BMIReport, ok bool) {
	if !ValidMeasurement(weightKg) || !ValidMeasurement(heightM) {
		return BMIReport{}, false
	}

	bmi := weightKg / (heightM * heightM)
	report = BMIReport{Value: bmi, Category: categorize(bmi)}
	if age > 0 {
		report.AgeGroup = ageGroup(age)
	}
	return report, true
}

func categorize(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func ageGroup(age int) AgeGroup {
	switch {
	case age < 18:
		return AgeYouth
	case age < 40:
		return AgeAdult
	case age < 60:
		return AgeMiddle
	default:
		return AgeSenior
	}
}

// ValidMeasurement reports whether v is a usable body measurement.
func ValidMeasurement(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
