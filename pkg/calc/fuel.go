package calc

// litresPer100KmToMPG converts between L/100km and US miles per gallon (both directions).
const litresPer100KmToMPG = 235.214583

// FuelInput is the fuel form: distance driven, fuel used and optionally the fuel price.
type FuelInput struct {
	DistanceKm    float64 `json:"distance_km" validate:"finite,gt=0"`
	Litres        float64 `json:"litres" validate:"finite,gt=0"`
	PricePerLitre float64 `json:"price_per_litre,omitempty" validate:"finite,gte=0"`
}

// FuelResult is the consumption of a trip in both unit systems and its cost.
type FuelResult struct {
	LitresPer100Km float64 `json:"litres_per_100km"`
	MPG            float64 `json:"mpg"`
	KmPerLitre     float64 `json:"km_per_litre"`
	Cost           float64 `json:"cost"`
	CostPerKm      float64 `json:"cost_per_km"`
}

// FuelConsumption computes consumption and cost from a completed trip.
func FuelConsumption(in FuelInput) (FuelResult, error) {
	if err := check(in); err != nil {
		return FuelResult{}, err
	}

	l100 := in.Litres / in.DistanceKm * 100
	cost := in.Litres * in.PricePerLitre
	return FuelResult{
		LitresPer100Km: l100,
		MPG:            litresPer100KmToMPG / l100,
		KmPerLitre:     in.DistanceKm / in.Litres,
		Cost:           cost,
		CostPerKm:      cost / in.DistanceKm,
	}, nil
}

// TripInput plans a trip from a known consumption.
type TripInput struct {
	DistanceKm     float64 `json:"distance_km" validate:"finite,gt=0"`
	LitresPer100Km float64 `json:"litres_per_100km" validate:"finite,gt=0"`
	PricePerLitre  float64 `json:"price_per_litre" validate:"finite,gte=0"`
	Passengers     int     `json:"passengers,omitempty" validate:"gte=0"`
}

// TripResult is the fuel needed for a planned trip and its cost.
type TripResult struct {
	Litres           float64 `json:"litres"`
	Cost             float64 `json:"cost"`
	CostPerPassenger float64 `json:"cost_per_passenger"`
}

// TripCost estimates fuel and cost for a planned trip. Zero passengers counts as one.
func TripCost(in TripInput) (TripResult, error) {
	if err := check(in); err != nil {
		return TripResult{}, err
	}

	litres := in.DistanceKm * in.LitresPer100Km / 100
	cost := litres * in.PricePerLitre
	people := in.Passengers
	if people < 1 {
		people = 1
	}
	return TripResult{Litres: litres, Cost: cost, CostPerPassenger: cost / float64(people)}, nil
}

// MPGToLitresPer100Km converts US miles per gallon into L/100km.
func MPGToLitresPer100Km(mpg float64) (float64, error) {
	if mpg <= 0 {
		return 0, invalid("mpg", "must be greater than 0")
	}
	return litresPer100KmToMPG / mpg, nil
}
