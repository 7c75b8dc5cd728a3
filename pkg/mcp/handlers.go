package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/widgetspec/pkg/calc"
	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/color"
	"github.com/gnana997/widgetspec/pkg/syntax"
)

// widgetSummary is the compact widget shape used in list results.
type widgetSummary struct {
	ID         string             `json:"id"`
	Path       string             `json:"path"`
	Category   catalog.Category   `json:"category"`
	Difficulty catalog.Difficulty `json:"difficulty"`
	Tags       []string           `json:"tags"`
	UseCase    string             `json:"use_case,omitempty"`
}

func summarize(ws []catalog.Widget) []widgetSummary {
	out := make([]widgetSummary, len(ws))
	for i, w := range ws {
		out[i] = widgetSummary{
			ID:         w.ID,
			Path:       w.Path,
			Category:   w.Category,
			Difficulty: w.Difficulty,
			Tags:       w.Tags,
			UseCase:    w.UseCase,
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func notFound(id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("widget %q not found", id))
}

// inputError turns a calculator or parser rejection into a tool error
// result; anything else is a transport error.
func inputError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, calc.ErrInvalidInput) || errors.Is(err, color.ErrInvalidColor) ||
		errors.Is(err, syntax.ErrUnsupportedLanguage) || errors.Is(err, syntax.ErrTooLarge) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

func (s *Server) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.Query().ListCategories())
}

func (s *Server) handleListWidgets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := catalog.WidgetFilter{
		Category:   catalog.Category(req.GetString("category", "")),
		Difficulty: catalog.Difficulty(req.GetString("difficulty", "")),
		Tag:        strings.TrimSpace(req.GetString("tag", "")),
	}
	if f.Category != "" && !f.Category.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", f.Category)), nil
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown difficulty %q", f.Difficulty)), nil
	}
	return jsonResult(summarize(s.Query().FilterWidgets(f)))
}

func (s *Server) handleGetWidget(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	path := strings.TrimSpace(req.GetString("path", ""))

	qs := s.Query()
	switch {
	case id != "":
		if w, ok := qs.GetWidgetByID(id); ok {
			return jsonResult(w)
		}
		return notFound(id), nil
	case path != "":
		if w, ok := qs.GetWidgetByPath(path); ok {
			return jsonResult(w)
		}
		return mcp.NewToolResultError(fmt.Sprintf("no widget at path %q", path)), nil
	default:
		return mcp.NewToolResultError("id or path is required"), nil
	}
}

func (s *Server) handleGetRecommendedWidgets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	qs := s.Query()
	if _, ok := qs.GetWidgetByID(id); !ok {
		return notFound(id), nil
	}
	return jsonResult(summarize(qs.GetRecommendedWidgets(id)))
}

func (s *Server) handleGetWidgetFAQs(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	locale := catalog.Locale(strings.ToLower(req.GetString("locale", string(catalog.LocaleEN))))
	if !locale.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported locale %q", locale)), nil
	}

	qs := s.Query()
	if _, ok := qs.GetWidgetByID(id); !ok {
		return notFound(id), nil
	}
	return jsonResult(qs.GetWidgetFAQs(id, locale))
}

func (s *Server) handleSearchWidgets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := s.Query().SearchWidgets(query)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no widgets found matching %q", query)), nil
	}

	type hit struct {
		widgetSummary
		MatchReason string `json:"match_reason"`
	}
	hits := make([]hit, len(matches))
	for i, m := range matches {
		hits[i] = hit{widgetSummary: summarize([]catalog.Widget{*m.Widget})[0], MatchReason: m.MatchReason}
	}
	return jsonResult(hits)
}

func (s *Server) handleCalculateBMI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight_kg")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	height, err := req.RequireFloat("height_cm")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := calc.BMI(calc.BMIInput{WeightKg: weight, HeightCm: height})
	if err != nil {
		return inputError(err)
	}
	res.BMI = calc.Round(res.BMI, 1)
	res.HealthyMinKg = calc.Round(res.HealthyMinKg, 1)
	res.HealthyMaxKg = calc.Round(res.HealthyMaxKg, 1)
	return jsonResult(res)
}

type loanSummary struct {
	Kind           calc.LoanKind  `json:"kind"`
	MonthlyPayment float64        `json:"monthly_payment"`
	TotalPaid      float64        `json:"total_paid"`
	TotalInterest  float64        `json:"total_interest"`
	Payments       []calc.Payment `json:"payments,omitempty"`
}

func (s *Server) handleCalculateLoan(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	principal, err := req.RequireFloat("principal")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rate, err := req.RequireFloat("annual_rate_percent")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	months, err := req.RequireFloat("months")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if months != float64(int(months)) {
		return mcp.NewToolResultError("months must be a whole number"), nil
	}

	in := calc.LoanInput{Principal: principal, AnnualRatePercent: rate, Months: int(months)}
	sched, err := calc.Loan(calc.LoanKind(req.GetString("kind", "")), in)
	if err != nil {
		return inputError(err)
	}

	out := loanSummary{
		Kind:           sched.Kind,
		MonthlyPayment: calc.Round(sched.MonthlyPayment(), 2),
		TotalPaid:      calc.Round(sched.TotalPaid, 2),
		TotalInterest:  calc.Round(sched.TotalInterest, 2),
	}
	if req.GetBool("include_schedule", false) {
		out.Payments = make([]calc.Payment, len(sched.Payments))
		for i, p := range sched.Payments {
			out.Payments[i] = calc.Payment{
				Period:    p.Period,
				Payment:   calc.Round(p.Payment, 2),
				Principal: calc.Round(p.Principal, 2),
				Interest:  calc.Round(p.Interest, 2),
				Balance:   calc.Round(p.Balance, 2),
			}
		}
	}
	return jsonResult(out)
}

func (s *Server) handleConvertColor(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conv, err := color.Convert(value)
	if err != nil {
		return inputError(err)
	}
	return jsonResult(conv)
}

func (s *Server) handleCheckSyntax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.checker == nil {
		return mcp.NewToolResultError("syntax checking is not available on this server"), nil
	}
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lang, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.checker.CheckString(ctx, source, lang)
	if err != nil {
		return inputError(err)
	}
	return jsonResult(res)
}
