package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/calc"
)

const dateLayout = "2006-01-02"

func newAgeCmd() *cobra.Command {
	var (
		on         string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "age <birth-date>",
		Short:   "Age in years, months and days",
		Example: `  widgetspec calc age 1990-05-15 --on 2024-03-10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := time.Parse(dateLayout, args[0])
			if err != nil {
				return fmt.Errorf("birth date must be YYYY-MM-DD: %w", err)
			}
			ref := time.Now()
			if on != "" {
				if ref, err = time.Parse(dateLayout, on); err != nil {
					return fmt.Errorf("--on must be YYYY-MM-DD: %w", err)
				}
			}

			age, err := calc.AgeAt(birth, ref)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, age)
			}
			fmt.Fprintf(out, "%dy %dm %dd, %d days total, next birthday in %d days\n",
				age.Years, age.Months, age.Days, age.TotalDays, age.DaysToNextBirthday)
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Reference date (default today)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newBMRCmd() *cobra.Command {
	var sex, activity string

	cmd := &cobra.Command{
		Use:   "bmr <weight-kg> <height-cm> <age-years>",
		Short: "Basal metabolic rate and daily energy expenditure",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args[:2])
			if err != nil {
				return err
			}
			years, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("age must be a whole number: %w", err)
			}
			res, err := calc.BMR(calc.BMRInput{
				Sex:      calc.Sex(sex),
				WeightKg: v[0],
				HeightCm: v[1],
				AgeYears: years,
				Activity: calc.ActivityLevel(activity),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BMR %.0f kcal/day, TDEE %.0f kcal/day\n", res.BMR, res.TDEE)
			return nil
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	cmd.Flags().StringVar(&activity, "activity", "", "sedentary, light, moderate, active or very_active")
	_ = cmd.MarkFlagRequired("sex")
	return cmd
}

func newBodyFatCmd() *cobra.Command {
	var sex string

	cmd := &cobra.Command{
		Use:   "bodyfat <height-cm> <neck-cm> <waist-cm> [hip-cm]",
		Short: "Body fat estimate from tape measurements (US Navy method)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			in := calc.BodyFatInput{Sex: calc.Sex(sex), HeightCm: v[0], NeckCm: v[1], WaistCm: v[2]}
			if len(v) == 4 {
				in.HipCm = v[3]
			}
			res, err := calc.BodyFatNavy(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "body fat %.1f%%\n", res.Percent)
			return nil
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	_ = cmd.MarkFlagRequired("sex")
	return cmd
}

func newFuelCmd() *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "fuel <distance-km> <litres>",
		Short: "Fuel consumption and cost of a completed trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			res, err := calc.FuelConsumption(calc.FuelInput{DistanceKm: v[0], Litres: v[1], PricePerLitre: price})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f L/100km, %.2f mpg, %.2f km/L, cost %.2f\n",
				res.LitresPer100Km, res.MPG, res.KmPerLitre, res.Cost)
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Fuel price per litre")
	return cmd
}

func newTripCmd() *cobra.Command {
	var (
		price      float64
		passengers int
	)

	cmd := &cobra.Command{
		Use:   "trip <distance-km> <litres-per-100km>",
		Short: "Fuel and cost of a planned trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			res, err := calc.TripCost(calc.TripInput{
				DistanceKm:     v[0],
				LitresPer100Km: v[1],
				PricePerLitre:  price,
				Passengers:     passengers,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f L, cost %.2f, %.2f per passenger\n",
				res.Litres, res.Cost, res.CostPerPassenger)
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Fuel price per litre")
	cmd.Flags().IntVar(&passengers, "passengers", 1, "People sharing the cost")
	return cmd
}

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "units <value> <from> <to>",
		Short:   "Convert length, mass or temperature",
		Example: `  widgetspec calc units 1 mi km`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args[:1])
			if err != nil {
				return err
			}
			res, err := calc.ConvertUnit(v[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v %s = %v %s\n", v[0], args[1], calc.Round(res, 6), args[2])
			return nil
		},
	}
}

func newPercentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "percent (of|change|ratio) <a> <b>",
		Short: "Percent of a value, change between two values, or ratio of part to whole",
		Example: `  widgetspec calc percent of 15 200
  widgetspec calc percent change 50 75
  widgetspec calc percent ratio 1 4`,
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"of", "change", "ratio"},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch args[0] {
			case "of":
				fmt.Fprintln(out, calc.Round(calc.PercentOf(v[0], v[1]), 4))
				return nil
			case "change":
				res, err := calc.PercentChange(v[0], v[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%v%%\n", calc.Round(res, 4))
				return nil
			case "ratio":
				res, err := calc.PercentRatio(v[0], v[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%v%%\n", calc.Round(res, 4))
				return nil
			default:
				return fmt.Errorf("unknown mode %q: use of, change or ratio", args[0])
			}
		},
	}
}
