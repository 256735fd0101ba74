package fundamental

// Field definitions of the builtin catalog. Each metric is data, not a type:
// a stem, its declared periods and its default period.
var (
	PaymentTurnover = MustDefinition("OperationRatios.PaymentTurnover", OneYear,
		[]Period{OneYear, ThreeMonths, SixMonths}, Ratio,
		"Cost of Goods Sold / Average Accounts Payables")

	ReceivableTurnover = MustDefinition("OperationRatios.ReceivableTurnover", OneYear,
		[]Period{OneYear, ThreeMonths, SixMonths}, Ratio,
		"Revenue / Average Accounts Receivables")

	InventoryTurnover = MustDefinition("OperationRatios.InventoryTurnover", OneYear,
		[]Period{OneYear, ThreeMonths, SixMonths}, Ratio,
		"Cost of Goods Sold / Average Inventory")

	CurrentRatio = MustDefinition("OperationRatios.CurrentRatio", OneYear,
		[]Period{OneYear, ThreeMonths}, Ratio,
		"Current Assets / Current Liabilities")

	TotalDebtEquityRatio = MustDefinition("OperationRatios.TotalDebtEquityRatio", OneYear,
		[]Period{OneYear, ThreeMonths}, Ratio,
		"Total Debt / Total Equity")

	ROE = MustDefinition("OperationRatios.ROE", OneYear,
		[]Period{OneYear, ThreeMonths, SixMonths}, Percent,
		"Net Income / Average Common Equity")

	GrossMargin = MustDefinition("OperationRatios.GrossMargin", OneYear,
		[]Period{OneYear, ThreeMonths, SixMonths, NineMonths, TwelveMonths}, Percent,
		"Gross Profit / Revenue")

	RevenueGrowth = MustDefinition("OperationRatios.RevenueGrowth", OneYear,
		[]Period{OneYear, ThreeMonths, ThreeYears, FiveYears}, Percent,
		"Growth of Revenue over the period")

	BasicEPS = MustDefinition("EarningReports.BasicEPS", TwelveMonths,
		[]Period{OneMonth, TwoMonths, ThreeMonths, SixMonths, NineMonths, TwelveMonths}, Amount,
		"Net Income attributable to common shareholders / Weighted average basic shares")

	TotalRevenue = MustDefinition("FinancialStatements.IncomeStatement.TotalRevenue", TwelveMonths,
		[]Period{ThreeMonths, SixMonths, NineMonths, TwelveMonths}, Amount,
		"All sales, business revenues and income that the company makes from its business operations")

	TotalAssets = MustDefinition("FinancialStatements.BalanceSheet.TotalAssets", TwelveMonths,
		[]Period{ThreeMonths, TwelveMonths}, Amount,
		"Total assets of the company at the end of the period")

	FreeCashFlow = MustDefinition("FinancialStatements.CashFlowStatement.FreeCashFlow", TwelveMonths,
		[]Period{ThreeMonths, SixMonths, NineMonths, TwelveMonths}, Amount,
		"Operating Cash Flow - Capital Expenditure")
)

var builtin = func() *Catalog {
	c, err := NewCatalog(
		PaymentTurnover,
		ReceivableTurnover,
		InventoryTurnover,
		CurrentRatio,
		TotalDebtEquityRatio,
		ROE,
		GrossMargin,
		RevenueGrowth,
		BasicEPS,
		TotalRevenue,
		TotalAssets,
		FreeCashFlow,
	)
	if err != nil {
		panic(err)
	}
	return c
}()

// Builtin returns the catalog of builtin field definitions.
func Builtin() *Catalog { return builtin }
