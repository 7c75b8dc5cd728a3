package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/widgetspec/pkg/calc"
	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/syntax"
)

func enumOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("Returns every widget category with its widget count and widget ids."),
	)
}

func listWidgetsTool() mcp.Tool {
	return mcp.NewTool("list_widgets",
		mcp.WithDescription("Lists widgets, optionally filtered by category, difficulty and tag. Filters combine with AND."),
		mcp.WithString("category",
			mcp.Description("Only widgets in this category"),
			mcp.Enum(enumOf(catalog.Categories)...),
		),
		mcp.WithString("difficulty",
			mcp.Description("Only widgets at this difficulty"),
			mcp.Enum(enumOf(catalog.Difficulties)...),
		),
		mcp.WithString("tag",
			mcp.Description("Only widgets carrying this tag (case-insensitive)"),
		),
	)
}

func getWidgetTool() mcp.Tool {
	return mcp.NewTool("get_widget",
		mcp.WithDescription("Returns the full metadata of one widget, looked up by id or by routing path."),
		mcp.WithString("id", mcp.Description("Widget id, e.g. bmi-calculator")),
		mcp.WithString("path", mcp.Description("Routing path, e.g. /bmi-calculator; used when id is empty")),
	)
}

func getRecommendedWidgetsTool() mcp.Tool {
	return mcp.NewTool("get_recommended_widgets",
		mcp.WithDescription("Returns the widgets recommended alongside a widget, in catalog order."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
	)
}

func getWidgetFAQsTool() mcp.Tool {
	return mcp.NewTool("get_widget_faqs",
		mcp.WithDescription("Returns the FAQ entries of a widget for one locale. A locale without entries yields an empty list."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Widget id")),
		mcp.WithString("locale",
			mcp.Description("FAQ locale (default en)"),
			mcp.Enum(enumOf(catalog.Locales)...),
		),
	)
}

func searchWidgetsTool() mcp.Tool {
	return mcp.NewTool("search_widgets",
		mcp.WithDescription("Case-insensitive search over widget ids, paths, tags, use cases and descriptions."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	)
}

func calculateBMITool() mcp.Tool {
	return mcp.NewTool("calculate_bmi",
		mcp.WithDescription("Computes body mass index, its WHO class and the healthy weight range."),
		mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Body weight in kilograms")),
		mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimetres")),
	)
}

func calculateLoanTool() mcp.Tool {
	return mcp.NewTool("calculate_loan",
		mcp.WithDescription("Builds an annuity or differentiated repayment plan."),
		mcp.WithNumber("principal", mcp.Required(), mcp.Description("Loan amount")),
		mcp.WithNumber("annual_rate_percent", mcp.Required(), mcp.Description("Nominal yearly interest rate, in percent")),
		mcp.WithNumber("months", mcp.Required(), mcp.Description("Term in months")),
		mcp.WithString("kind",
			mcp.Description("Repayment scheme (default annuity)"),
			mcp.Enum(string(calc.LoanAnnuity), string(calc.LoanDifferentiated)),
		),
		mcp.WithBoolean("include_schedule", mcp.Description("Include every monthly payment (default false)")),
	)
}

func convertColorTool() mcp.Tool {
	return mcp.NewTool("convert_color",
		mcp.WithDescription("Converts a color given as #hex, rgb() or hsl() into HEX, RGB, HSL, CMYK, XYZ and LAB."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Color, e.g. #ff5733 or hsl(10, 100%, 60%)")),
	)
}

func checkSyntaxTool() mcp.Tool {
	return mcp.NewTool("check_syntax",
		mcp.WithDescription("Checks source for syntax errors and reports each with line and column."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source text to check")),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Source language"),
			mcp.Enum(enumOf(syntax.Languages())...),
		),
	)
}
