package calc

import "math"

// Sex selects the sex-specific constants of the BMR and body-fat formulas.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// BMIClass is the WHO adult weight class for a BMI value.
type BMIClass string

const (
	BMIUnderweight BMIClass = "underweight"
	BMINormal      BMIClass = "normal"
	BMIOverweight  BMIClass = "overweight"
	BMIObese       BMIClass = "obese"
)

// BMIInput is the BMI form.
type BMIInput struct {
	WeightKg float64 `json:"weight_kg" validate:"finite,gt=0,lte=700"`
	HeightCm float64 `json:"height_cm" validate:"finite,gt=0,lte=300"`
}

// BMIResult is the computed body mass index.
type BMIResult struct {
	BMI          float64  `json:"bmi"`
	Class        BMIClass `json:"class"`
	HealthyMinKg float64  `json:"healthy_min_kg"`
	HealthyMaxKg float64  `json:"healthy_max_kg"`
}

// ClassifyBMI maps a BMI value onto the WHO classes.
func ClassifyBMI(bmi float64) BMIClass {
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

// BMI computes weight / height² together with the healthy weight range for the height.
func BMI(in BMIInput) (BMIResult, error) {
	if err := check(in); err != nil {
		return BMIResult{}, err
	}

	m := in.HeightCm / 100
	bmi := in.WeightKg / (m * m)
	return BMIResult{
		BMI:          bmi,
		Class:        ClassifyBMI(bmi),
		HealthyMinKg: 18.5 * m * m,
		HealthyMaxKg: 24.9 * m * m,
	}, nil
}

// ActivityLevel is the TDEE multiplier applied to BMR.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// BMRInput is the BMR form. Activity is optional and defaults to sedentary.
type BMRInput struct {
	Sex      Sex           `json:"sex" validate:"required,oneof=male female"`
	WeightKg float64       `json:"weight_kg" validate:"finite,gt=0,lte=700"`
	HeightCm float64       `json:"height_cm" validate:"finite,gt=0,lte=300"`
	AgeYears int           `json:"age_years" validate:"gt=0,lte=150"`
	Activity ActivityLevel `json:"activity,omitempty" validate:"omitempty,oneof=sedentary light moderate active very_active"`
}

// BMRResult holds the basal metabolic rate and total daily energy expenditure, in kcal/day.
type BMRResult struct {
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
}

// BMR applies the Mifflin-St Jeor equation.
func BMR(in BMRInput) (BMRResult, error) {
	if err := check(in); err != nil {
		return BMRResult{}, err
	}

	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears)
	if in.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	activity := in.Activity
	if activity == "" {
		activity = ActivitySedentary
	}
	return BMRResult{BMR: bmr, TDEE: bmr * activityFactors[activity]}, nil
}

// BodyFatInput holds tape measurements in centimetres. HipCm is only used for women.
type BodyFatInput struct {
	Sex      Sex     `json:"sex" validate:"required,oneof=male female"`
	HeightCm float64 `json:"height_cm" validate:"finite,gt=0,lte=300"`
	NeckCm   float64 `json:"neck_cm" validate:"finite,gt=0"`
	WaistCm  float64 `json:"waist_cm" validate:"finite,gt=0"`
	HipCm    float64 `json:"hip_cm,omitempty" validate:"finite,gte=0"`
}

// BodyFatResult is the estimated body fat share.
type BodyFatResult struct {
	Percent float64 `json:"percent"`
}

// BodyFatNavy estimates body fat with the US Navy circumference method.
func BodyFatNavy(in BodyFatInput) (BodyFatResult, error) {
	if err := check(in); err != nil {
		return BodyFatResult{}, err
	}

	var pct float64
	switch in.Sex {
	case SexMale:
		if in.WaistCm <= in.NeckCm {
			return BodyFatResult{}, invalid("waist_cm", "must be larger than neck_cm")
		}
		pct = 495/(1.0324-0.19077*math.Log10(in.WaistCm-in.NeckCm)+0.15456*math.Log10(in.HeightCm)) - 450
	default:
		if in.HipCm <= 0 {
			return BodyFatResult{}, invalid("hip_cm", "is required for women")
		}
		if in.WaistCm+in.HipCm <= in.NeckCm {
			return BodyFatResult{}, invalid("waist_cm", "waist plus hip must be larger than neck_cm")
		}
		pct = 495/(1.29579-0.35004*math.Log10(in.WaistCm+in.HipCm-in.NeckCm)+0.22100*math.Log10(in.HeightCm)) - 450
	}

	if pct < 0 {
		pct = 0
	}
	return BodyFatResult{Percent: pct}, nil
}
