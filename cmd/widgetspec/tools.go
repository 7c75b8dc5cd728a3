package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/calc"
	"github.com/gnana997/widgetspec/pkg/color"
	"github.com/gnana997/widgetspec/pkg/cssgen"
	"github.com/gnana997/widgetspec/pkg/sysinfo"
	"github.com/gnana997/widgetspec/pkg/timer"
)

func newColorCmd(_ *environment) *cobra.Command {
	var (
		contrast   string
		cmyk       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "color [value]",
		Short: "Convert a color between HEX, RGB, HSL, CMYK, XYZ and LAB",
		Example: `  widgetspec color "#ff5733"
  widgetspec color "hsl(11, 100%, 60%)" --contrast "#ffffff"
  widgetspec color --cmyk 0,66,80,0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				c     colorful.Color
				input string
				err   error
			)
			switch {
			case cmyk != "" && len(args) == 0:
				input = "cmyk(" + cmyk + ")"
				v, perr := parseFloats(strings.Split(cmyk, ","))
				if perr != nil {
					return perr
				}
				if len(v) != 4 {
					return fmt.Errorf("--cmyk needs four comma-separated percentages")
				}
				c, err = color.FromCMYK(v[0], v[1], v[2], v[3])
			case cmyk == "" && len(args) == 1:
				input = strings.TrimSpace(args[0])
				c, err = color.Parse(input)
			default:
				return fmt.Errorf("give either a color value or --cmyk")
			}
			if err != nil {
				return err
			}
			conv := color.FromColor(c, input)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, conv)
			}
			fmt.Fprintf(out, "HEX   %s\n", conv.Hex)
			fmt.Fprintf(out, "RGB   %s\n", conv.RGB)
			fmt.Fprintf(out, "HSL   %s\n", conv.HSL)
			fmt.Fprintf(out, "CMYK  %s\n", conv.CMYK)
			fmt.Fprintf(out, "XYZ   %v, %v, %v\n", conv.XYZ.X, conv.XYZ.Y, conv.XYZ.Z)
			fmt.Fprintf(out, "LAB   %v, %v, %v\n", conv.LAB.L, conv.LAB.A, conv.LAB.B)

			if contrast != "" {
				other, err := color.Parse(contrast)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Contrast with %s  %v:1\n", contrast, color.Contrast(c, other))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contrast, "contrast", "", "Also print the WCAG contrast ratio against this color")
	cmd.Flags().StringVar(&cmyk, "cmyk", "", "Start from CMYK percentages c,m,y,k instead of a color value")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newRemCmd(_ *environment) *cobra.Command {
	var rootPx float64

	cmd := &cobra.Command{
		Use:   "rem [px...]",
		Short: "Print a px to rem table",
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := parseFloats(args)
			if err != nil {
				return err
			}
			if len(sizes) == 0 {
				sizes = cssgen.DefaultTableSizes
			}
			rows, err := cssgen.PxToRemTable(rootPx, sizes...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(out, "%6vpx  %s\n", r.Px, r.CSS)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&rootPx, "root", calc.DefaultRootFontPx, "Root font size in px")
	return cmd
}

func newCalcCmd(_ *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run one of the calculators",
	}

	bmi := &cobra.Command{
		Use:   "bmi <weight-kg> <height-cm>",
		Short: "Body mass index and healthy weight range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			res, err := calc.BMI(calc.BMIInput{WeightKg: v[0], HeightCm: v[1]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BMI %v (%s), healthy weight %v to %v kg\n",
				calc.Round(res.BMI, 1), res.Class, calc.Round(res.HealthyMinKg, 1), calc.Round(res.HealthyMaxKg, 1))
			return nil
		},
	}

	var (
		loanKind     string
		showSchedule bool
	)
	loan := &cobra.Command{
		Use:   "loan <principal> <annual-rate-percent> <months>",
		Short: "Monthly payment and total interest of a loan",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args[:2])
			if err != nil {
				return err
			}
			months, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("months must be a whole number: %w", err)
			}
			sched, err := calc.Loan(calc.LoanKind(loanKind), calc.LoanInput{
				Principal:         v[0],
				AnnualRatePercent: v[1],
				Months:            months,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: first payment %.2f, total paid %.2f, interest %.2f\n",
				sched.Kind, sched.MonthlyPayment(), sched.TotalPaid, sched.TotalInterest)
			if showSchedule {
				fmt.Fprintf(out, "%6s  %12s  %12s  %12s  %12s\n", "PERIOD", "PAYMENT", "PRINCIPAL", "INTEREST", "BALANCE")
				for _, p := range sched.Payments {
					fmt.Fprintf(out, "%6d  %12.2f  %12.2f  %12.2f  %12.2f\n", p.Period, p.Payment, p.Principal, p.Interest, p.Balance)
				}
			}
			return nil
		},
	}
	loan.Flags().StringVar(&loanKind, "kind", string(calc.LoanAnnuity), "annuity or differentiated")
	loan.Flags().BoolVar(&showSchedule, "schedule", false, "Print the payment schedule")

	var fromBase int
	base := &cobra.Command{
		Use:   "base <value>",
		Short: "Convert an integer between bases 2, 8, 10 and 16",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := calc.ConvertBase(args[0], fromBase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BIN  %s\nOCT  %s\nDEC  %s\nHEX  %s\n", conv.Binary, conv.Octal, conv.Decimal, conv.Hex)
			return nil
		},
	}
	base.Flags().IntVar(&fromBase, "from", 10, "Base of the input")

	var textCase string
	text := &cobra.Command{
		Use:   "text <text...>",
		Short: "Count words and characters, or convert the case of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			if textCase != "" {
				converted, err := calc.ConvertCase(s, calc.TextCase(textCase))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, converted)
				return nil
			}
			st := calc.CountText(s)
			fmt.Fprintf(out, "words %d, characters %d (%d without spaces), sentences %d, paragraphs %d, reading time %s\n",
				st.Words, st.Characters, st.CharactersNoSpaces, st.Sentences, st.Paragraphs, st.ReadingTime)
			return nil
		},
	}
	text.Flags().StringVar(&textCase, "case", "", "Convert to upper, lower, title, camel, pascal, snake or kebab")

	cmd.AddCommand(
		bmi, loan, base, text,
		newAgeCmd(),
		newBMRCmd(),
		newBodyFatCmd(),
		newFuelCmd(),
		newTripCmd(),
		newUnitsCmd(),
		newPercentCmd(),
	)
	return cmd
}

func newClockCmd(_ *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "clock [zones...]",
		Short: "Show the current time in several IANA time zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := timer.WorldClock(time.Now(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			zoneW := 0
			for _, r := range rows {
				zoneW = max(zoneW, len(r.Zone))
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%-*s  %s  %-5s  UTC%+03d:%02d\n", zoneW, r.Zone,
					r.Time.Format("2006-01-02 15:04"), r.Abbrev, r.OffsetMinutes/60, abs(r.OffsetMinutes%60))
			}
			return nil
		},
	}
}

func newTimerCmd(env *environment) *cobra.Command {
	var (
		pomodoro bool
		tick     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "timer [duration]",
		Short: "Run a countdown (or a Pomodoro cycle with --pomodoro) in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				t   *timer.Timer
				err error
			)
			switch {
			case pomodoro:
				t, err = timer.NewPomodoro(timer.DefaultPomodoro, nil)
			case len(args) == 1:
				var d time.Duration
				d, err = time.ParseDuration(args[0])
				if err == nil {
					t, err = timer.NewCountdown(d, nil)
				}
			default:
				return fmt.Errorf("give a duration such as 25m, or --pomodoro")
			}
			if err != nil {
				return err
			}
			if err := t.Start(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var lastPhase timer.Phase
			err = timer.Run(cmd.Context(), t, tick, func(s timer.Snapshot) {
				if s.Phase != lastPhase && s.Phase != "" {
					env.logger.Info("Pomodoro phase", "phase", s.Phase, "completed", s.CompletedSessions)
					lastPhase = s.Phase
				}
				fmt.Fprintf(out, "\r%s remaining  ", s.Remaining.Round(time.Second))
			})
			fmt.Fprintln(out)
			if err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pomodoro, "pomodoro", false, "Run 25/5/15 Pomodoro cycles until interrupted")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Display refresh interval")
	return cmd
}

func newSysinfoCmd(_ *environment) *cobra.Command {
	var userAgent string

	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Report host and runtime facts, or parse a User-Agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userAgent != "" {
				return writeJSON(cmd.OutOrStdout(), sysinfo.ParseUserAgent(userAgent))
			}
			return writeJSON(cmd.OutOrStdout(), sysinfo.Collect())
		},
	}

	cmd.Flags().StringVar(&userAgent, "user-agent", "", "Parse this User-Agent string instead")
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out[i] = v
	}
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
