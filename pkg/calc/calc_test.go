package calc

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireInputError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput), "error should match ErrInvalidInput: %v", err)

	var ie *InputError
	require.True(t, errors.As(err, &ie), "error should be *InputError: %v", err)
	assert.Equal(t, field, ie.Field)
}

// --- health ---

func TestBMI(t *testing.T) {
	res, err := BMI(BMIInput{WeightKg: 70, HeightCm: 175})
	require.NoError(t, err)

	assert.InDelta(t, 22.857, res.BMI, 0.001)
	assert.Equal(t, BMINormal, res.Class)
	assert.InDelta(t, 56.66, res.HealthyMinKg, 0.01)
	assert.InDelta(t, 76.26, res.HealthyMaxKg, 0.01)
}

func TestBMI_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    BMIInput
		field string
	}{
		{"zero weight", BMIInput{WeightKg: 0, HeightCm: 175}, "weight_kg"},
		{"negative height", BMIInput{WeightKg: 70, HeightCm: -1}, "height_cm"},
		{"NaN weight", BMIInput{WeightKg: math.NaN(), HeightCm: 175}, "weight_kg"},
		{"absurd height", BMIInput{WeightKg: 70, HeightCm: 400}, "height_cm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BMI(tt.in)
			requireInputError(t, err, tt.field)
		})
	}
}

func TestClassifyBMI(t *testing.T) {
	assert.Equal(t, BMIUnderweight, ClassifyBMI(18.4))
	assert.Equal(t, BMINormal, ClassifyBMI(18.5))
	assert.Equal(t, BMIOverweight, ClassifyBMI(25))
	assert.Equal(t, BMIObese, ClassifyBMI(30))
}

func TestBMR(t *testing.T) {
	male, err := BMR(BMRInput{Sex: SexMale, WeightKg: 80, HeightCm: 180, AgeYears: 30})
	require.NoError(t, err)
	assert.InDelta(t, 1780, male.BMR, 1e-9)
	assert.InDelta(t, 2136, male.TDEE, 1e-9, "default activity is sedentary")

	female, err := BMR(BMRInput{Sex: SexFemale, WeightKg: 60, HeightCm: 165, AgeYears: 25, Activity: ActivityModerate})
	require.NoError(t, err)
	assert.InDelta(t, 1345.25, female.BMR, 1e-9)
	assert.InDelta(t, 2085.1375, female.TDEE, 1e-9)
}

func TestBMR_RejectsUnknownSexAndActivity(t *testing.T) {
	_, err := BMR(BMRInput{Sex: "other", WeightKg: 80, HeightCm: 180, AgeYears: 30})
	requireInputError(t, err, "sex")

	_, err = BMR(BMRInput{Sex: SexMale, WeightKg: 80, HeightCm: 180, AgeYears: 30, Activity: "couch"})
	requireInputError(t, err, "activity")
}

func TestBodyFatNavy(t *testing.T) {
	male, err := BodyFatNavy(BodyFatInput{Sex: SexMale, HeightCm: 178, NeckCm: 38, WaistCm: 85})
	require.NoError(t, err)
	assert.InDelta(t, 16.44, male.Percent, 0.01)

	female, err := BodyFatNavy(BodyFatInput{Sex: SexFemale, HeightCm: 165, NeckCm: 33, WaistCm: 70, HipCm: 95})
	require.NoError(t, err)
	assert.InDelta(t, 24.33, female.Percent, 0.01)
}

func TestBodyFatNavy_InvalidMeasurements(t *testing.T) {
	_, err := BodyFatNavy(BodyFatInput{Sex: SexMale, HeightCm: 178, NeckCm: 40, WaistCm: 40})
	requireInputError(t, err, "waist_cm")

	_, err = BodyFatNavy(BodyFatInput{Sex: SexFemale, HeightCm: 165, NeckCm: 33, WaistCm: 70})
	requireInputError(t, err, "hip_cm")
}

// --- loan ---

func TestAnnuity(t *testing.T) {
	s, err := Annuity(LoanInput{Principal: 100000, AnnualRatePercent: 12, Months: 12})
	require.NoError(t, err)

	require.Len(t, s.Payments, 12)
	assert.Equal(t, LoanAnnuity, s.Kind)
	assert.InDelta(t, 8884.88, s.MonthlyPayment(), 0.01)
	assert.InDelta(t, 6618.55, s.TotalInterest, 0.01)
	assert.InDelta(t, 106618.55, s.TotalPaid, 0.01)
	assert.Equal(t, 0.0, s.Payments[11].Balance)

	var principal float64
	for i, p := range s.Payments {
		assert.Equal(t, i+1, p.Period)
		principal += p.Principal
	}
	assert.InDelta(t, 100000, principal, 1e-6, "principal parts must sum to the loan")
}

func TestAnnuity_ZeroRate(t *testing.T) {
	s, err := Annuity(LoanInput{Principal: 1200, Months: 12})
	require.NoError(t, err)

	assert.InDelta(t, 100, s.MonthlyPayment(), 1e-9)
	assert.InDelta(t, 0, s.TotalInterest, 1e-9)
	assert.InDelta(t, 1200, s.TotalPaid, 1e-9)
}

func TestDifferentiated(t *testing.T) {
	s, err := Differentiated(LoanInput{Principal: 1200, AnnualRatePercent: 12, Months: 12})
	require.NoError(t, err)

	require.Len(t, s.Payments, 12)
	assert.InDelta(t, 112, s.Payments[0].Payment, 1e-9)
	assert.InDelta(t, 101, s.Payments[11].Payment, 1e-9)
	assert.InDelta(t, 78, s.TotalInterest, 1e-9)
	assert.Equal(t, 0.0, s.Payments[11].Balance)

	for i := 1; i < len(s.Payments); i++ {
		assert.Less(t, s.Payments[i].Payment, s.Payments[i-1].Payment, "payments must decrease")
	}
}

func TestLoan_Dispatch(t *testing.T) {
	in := LoanInput{Principal: 1000, AnnualRatePercent: 5, Months: 10}

	s, err := Loan("", in)
	require.NoError(t, err)
	assert.Equal(t, LoanAnnuity, s.Kind)

	s, err = Loan(LoanDifferentiated, in)
	require.NoError(t, err)
	assert.Equal(t, LoanDifferentiated, s.Kind)

	_, err = Loan("balloon", in)
	requireInputError(t, err, "kind")

	_, err = Loan(LoanAnnuity, LoanInput{Principal: 1000, AnnualRatePercent: 101, Months: 10})
	requireInputError(t, err, "annual_rate_percent")

	_, err = Loan(LoanAnnuity, LoanInput{Principal: 1000, Months: 0})
	requireInputError(t, err, "months")
}

// --- fuel ---

func TestFuelConsumption(t *testing.T) {
	res, err := FuelConsumption(FuelInput{DistanceKm: 500, Litres: 40, PricePerLitre: 1.5})
	require.NoError(t, err)

	assert.InDelta(t, 8, res.LitresPer100Km, 1e-9)
	assert.InDelta(t, 29.40, res.MPG, 0.01)
	assert.InDelta(t, 12.5, res.KmPerLitre, 1e-9)
	assert.InDelta(t, 60, res.Cost, 1e-9)
	assert.InDelta(t, 0.12, res.CostPerKm, 1e-9)

	_, err = FuelConsumption(FuelInput{DistanceKm: 0, Litres: 40})
	requireInputError(t, err, "distance_km")
}

func TestTripCost(t *testing.T) {
	res, err := TripCost(TripInput{DistanceKm: 300, LitresPer100Km: 6, PricePerLitre: 2, Passengers: 3})
	require.NoError(t, err)
	assert.InDelta(t, 18, res.Litres, 1e-9)
	assert.InDelta(t, 36, res.Cost, 1e-9)
	assert.InDelta(t, 12, res.CostPerPassenger, 1e-9)

	solo, err := TripCost(TripInput{DistanceKm: 300, LitresPer100Km: 6, PricePerLitre: 2})
	require.NoError(t, err)
	assert.InDelta(t, 36, solo.CostPerPassenger, 1e-9)
}

func TestMPGToLitresPer100Km(t *testing.T) {
	l100, err := MPGToLitresPer100Km(29.4018)
	require.NoError(t, err)
	assert.InDelta(t, 8, l100, 0.001)

	_, err = MPGToLitresPer100Km(0)
	requireInputError(t, err, "mpg")
}

// --- age ---

func TestAgeAt(t *testing.T) {
	age, err := AgeAt(date(1990, time.May, 15), date(2024, time.March, 10))
	require.NoError(t, err)

	assert.Equal(t, 33, age.Years)
	assert.Equal(t, 9, age.Months)
	assert.Equal(t, 24, age.Days)
	assert.Equal(t, 66, age.DaysToNextBirthday)
	assert.Equal(t, 12353, age.TotalDays)
}

func TestAgeAt_LeapDayBirthday(t *testing.T) {
	age, err := AgeAt(date(2000, time.February, 29), date(2023, time.February, 28))
	require.NoError(t, err)

	assert.Equal(t, 23, age.Years, "29 Feb falls on 28 Feb in a common year")
	assert.Equal(t, 0, age.Months)
	assert.Equal(t, 0, age.Days)
	assert.Equal(t, 0, age.DaysToNextBirthday)

	age, err = AgeAt(date(2000, time.February, 29), date(2023, time.February, 27))
	require.NoError(t, err)
	assert.Equal(t, 1, age.DaysToNextBirthday)
}

func TestAgeAt_MonthEndBirthdays(t *testing.T) {
	tests := []struct {
		name                string
		birth, ref          time.Time
		years, months, days int
	}{
		{"jan 31 to mar 1", date(2023, time.January, 31), date(2023, time.March, 1), 0, 1, 1},
		{"jan 31 to mar 1 leap year", date(2024, time.January, 31), date(2024, time.March, 1), 0, 1, 1},
		{"jan 31 to feb 28", date(2023, time.January, 31), date(2023, time.February, 28), 0, 1, 0},
		{"jan 31 to feb 27", date(2023, time.January, 31), date(2023, time.February, 27), 0, 0, 27},
		{"mar 31 to may 1", date(2000, time.March, 31), date(2024, time.May, 1), 24, 1, 1},
		{"mar 31 to apr 30", date(2000, time.March, 31), date(2024, time.April, 30), 24, 1, 0},
		{"dec 31 to jan 1", date(2023, time.December, 31), date(2024, time.January, 1), 0, 0, 1},
		{"same day", date(2024, time.May, 5), date(2024, time.May, 5), 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, err := AgeAt(tt.birth, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.years, age.Years)
			assert.Equal(t, tt.months, age.Months)
			assert.Equal(t, tt.days, age.Days)
			assert.GreaterOrEqual(t, age.Days, 0)
			assert.Equal(t, int(tt.ref.Sub(tt.birth).Hours()/24), age.TotalDays)
		})
	}
}

func TestAgeAt_BirthdayToday(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	age, err := AgeAt(date(2000, time.June, 1), time.Date(2020, time.June, 1, 23, 59, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, 20, age.Years)
	assert.Equal(t, 0, age.Months)
	assert.Equal(t, 0, age.Days)
	assert.Equal(t, 0, age.DaysToNextBirthday)
}

func TestAgeAt_FutureBirth(t *testing.T) {
	_, err := AgeAt(date(2030, time.January, 1), date(2024, time.January, 1))
	requireInputError(t, err, "birth_date")
}

// --- units ---

func TestPxRem(t *testing.T) {
	rem, err := PxToRem(24, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, rem, 1e-9)

	px, err := RemToPx(2, 10)
	require.NoError(t, err)
	assert.InDelta(t, 20, px, 1e-9)

	_, err = PxToRem(16, -1)
	requireInputError(t, err, "root_px")
}

func TestConvertUnit(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{1, "mi", "km", 1.609344},
		{12, "in", "ft", 1},
		{1, "KG", "lb", 2.20462},
		{100, "c", "f", 212},
		{32, "f", "c", 0},
		{0, "k", "c", -273.15},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := ConvertUnit(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestConvertUnit_Errors(t *testing.T) {
	_, err := ConvertUnit(1, "kg", "m")
	requireInputError(t, err, "to")

	_, err = ConvertUnit(1, "parsec", "m")
	requireInputError(t, err, "from")

	_, err = ConvertUnit(-300, "c", "k")
	requireInputError(t, err, "value")
}

func TestUnits(t *testing.T) {
	assert.Equal(t, []string{"c", "f", "k"}, Units(DimensionTemperature))
	assert.Contains(t, Units(DimensionLength), "mi")
	assert.Empty(t, Units("volume"))
}

// --- percent ---

func TestPercent(t *testing.T) {
	assert.InDelta(t, 15, PercentOf(15, 100), 1e-9)

	change, err := PercentChange(80, 100)
	require.NoError(t, err)
	assert.InDelta(t, 25, change, 1e-9)

	ratio, err := PercentRatio(1, 4)
	require.NoError(t, err)
	assert.InDelta(t, 25, ratio, 1e-9)

	_, err = PercentChange(0, 10)
	requireInputError(t, err, "before")

	_, err = PercentRatio(1, 0)
	requireInputError(t, err, "whole")
}

// --- text ---

func TestCountText(t *testing.T) {
	stats := CountText("Hello world. How are you?\n\nFine!")

	assert.Equal(t, 6, stats.Words)
	assert.Equal(t, 3, stats.Sentences)
	assert.Equal(t, 2, stats.Paragraphs)
	assert.Equal(t, 32, stats.Characters)
	assert.Equal(t, 26, stats.CharactersNoSpaces)
	assert.Equal(t, 2*time.Second, stats.ReadingTime)
}

func TestCountText_Empty(t *testing.T) {
	assert.Equal(t, TextStats{Characters: 4}, CountText("  \n "))
}

func TestConvertCase(t *testing.T) {
	tests := []struct {
		c    TextCase
		in   string
		want string
	}{
		{CaseUpper, "hello", "HELLO"},
		{CaseLower, "HeLLo", "hello"},
		{CaseTitle, "the QUICK fox", "The Quick Fox"},
		{CaseCamel, "Hello world-example", "helloWorldExample"},
		{CasePascal, "hello_world", "HelloWorld"},
		{CaseSnake, "helloWorld example", "hello_world_example"},
		{CaseKebab, "Hello World", "hello-world"},
	}
	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			got, err := ConvertCase(tt.in, tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ConvertCase("x", "sponge")
	requireInputError(t, err, "case")
}

// --- number base ---

func TestConvertBase(t *testing.T) {
	got, err := ConvertBase("0xFF", 16)
	require.NoError(t, err)
	assert.Equal(t, BaseConversion{Binary: "11111111", Octal: "377", Decimal: "255", Hex: "FF"}, got)

	got, err = ConvertBase("-1010", 2)
	require.NoError(t, err)
	assert.Equal(t, "-10", got.Decimal)
	assert.Equal(t, "-A", got.Hex)

	got, err = ConvertBase("1_000", 10)
	require.NoError(t, err)
	assert.Equal(t, "3E8", got.Hex)
}

func TestConvertBase_Errors(t *testing.T) {
	_, err := ConvertBase("12", 3)
	requireInputError(t, err, "from")

	_, err = ConvertBase("102", 2)
	requireInputError(t, err, "value")

	_, err = ConvertBase("-", 10)
	requireInputError(t, err, "value")
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.14, Round(math.Pi, 2))
}
