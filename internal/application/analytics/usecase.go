package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
	"github.com/gestockhq/gestock-api/internal/domain/stock"
)

// Tipos de serie aceptados por Trends.
const (
	TrendBoth          = "both"
	TrendSalesExpenses = "sales_expenses"
	TrendWallet        = "wallet"
)

// Query parámetros comunes de los endpoints analíticos.
type Query struct {
	Period    string // today | 7 | 30 | year | all | custom
	StartDate string // YYYY-MM-DD, solo con custom
	EndDate   string // YYYY-MM-DD, solo con custom
}

// UseCase consultas analíticas de solo lectura sobre el libro mayor:
// estadísticas, series, comparaciones, KPIs y predicciones de
// reabastecimiento. Nada se cachea entre peticiones.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
	txRepo        repository.TransactionRepository
	articleRepo   repository.ArticleRepository
	settingRepo   repository.SettingRepository

	// now es inyectable para fijar el reloj en los tests.
	now func() time.Time
}

// NewUseCase construye el caso de uso analítico.
func NewUseCase(analyticsRepo repository.AnalyticsRepository, txRepo repository.TransactionRepository, articleRepo repository.ArticleRepository, settingRepo repository.SettingRepository) *UseCase {
	return &UseCase{
		analyticsRepo: analyticsRepo,
		txRepo:        txRepo,
		articleRepo:   articleRepo,
		settingRepo:   settingRepo,
		now:           time.Now,
	}
}

// Overview totales de ventas, gastos y revenu neto del período.
func (uc *UseCase) Overview(ctx context.Context, userID string, q Query) (*dto.OverviewDTO, error) {
	start, end, err := DateRange(q.Period, q.StartDate, q.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	sales, expenses, err := uc.sums(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.OverviewDTO{
		NetRevenue:    sales.Sub(expenses),
		TotalSales:    sales,
		TotalExpenses: expenses,
		Period:        q.Period,
		StartDate:     start.Format(dateLayout),
		EndDate:       end.Format(dateLayout),
	}, nil
}

// Trends series temporales para los gráficos. Las ventas y gastos se agrupan
// por día, semana ISO o mes según la longitud del rango; la caja acumulada es
// una suma prefija por día (o por mes en rangos largos) calculada en una sola
// consulta con funciones de ventana.
func (uc *UseCase) Trends(ctx context.Context, userID, trendType string, q Query) (*dto.TrendsDTO, error) {
	start, end, err := DateRange(q.Period, q.StartDate, q.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	out := &dto.TrendsDTO{}

	if trendType == TrendBoth || trendType == TrendSalesExpenses {
		bucket := BucketFor(start, end)
		sales, err := uc.analyticsRepo.SeriesByBucket(ctx, userID, entity.TransactionTypeSale, bucket, start, end)
		if err != nil {
			return nil, err
		}
		expenses, err := uc.analyticsRepo.SeriesByBucket(ctx, userID, entity.TransactionTypeExpense, bucket, start, end)
		if err != nil {
			return nil, err
		}
		out.SalesExpenses = &dto.SalesExpensesDTO{
			Sales:    toTrendPoints(sales),
			Expenses: toTrendPoints(expenses),
		}
	}

	if trendType == TrendBoth || trendType == TrendWallet {
		series, err := uc.analyticsRepo.WalletSeries(ctx, userID, walletBucketFor(start, end), start, end)
		if err != nil {
			return nil, err
		}
		out.Wallet = toTrendPoints(series)
	}
	return out, nil
}

// Comparisons compara el período con la ventana previa de igual duración.
// "all" no tiene ventana previa y devuelve una comparación neutra.
func (uc *UseCase) Comparisons(ctx context.Context, userID string, q Query) (*dto.ComparisonsDTO, error) {
	if q.Period == PeriodAll {
		neutral := dto.ComparisonEntryDTO{ChangeType: "neutral"}
		return &dto.ComparisonsDTO{Sales: neutral, Expenses: neutral, NetRevenue: neutral}, nil
	}

	start, end, err := DateRange(q.Period, q.StartDate, q.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	prevStart, prevEnd := previousWindow(q.Period, start, end)

	curSales, curExpenses, err := uc.sums(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	prevSales, prevExpenses, err := uc.sums(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	curNet := curSales.Sub(curExpenses)
	prevNet := prevSales.Sub(prevExpenses)

	salesChange := changePercent(curSales, prevSales)
	expensesChange := changePercent(curExpenses, prevExpenses)
	netChange := netChangePercent(curNet, prevNet)

	return &dto.ComparisonsDTO{
		Sales: dto.ComparisonEntryDTO{
			Current: curSales, Previous: prevSales,
			Change: salesChange, ChangeType: changeType(salesChange),
		},
		Expenses: dto.ComparisonEntryDTO{
			Current: curExpenses, Previous: prevExpenses,
			Change: expensesChange, ChangeType: changeType(expensesChange),
		},
		NetRevenue: dto.ComparisonEntryDTO{
			Current: curNet, Previous: prevNet,
			Change: netChange, ChangeType: changeType(netChange),
		},
	}, nil
}

// KPIs indicadores financieros del período.
func (uc *UseCase) KPIs(ctx context.Context, userID string, q Query) (*dto.KPIsDTO, error) {
	start, end, err := DateRange(q.Period, q.StartDate, q.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	sales, expenses, err := uc.sums(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	salesCount, err := uc.analyticsRepo.CountByType(ctx, userID, entity.TransactionTypeSale, start, end)
	if err != nil {
		return nil, err
	}
	days := int64(daysBetween(start, end)) + 1

	hundred := decimal.NewFromInt(100)
	netMargin := decimal.Zero
	if sales.IsPositive() {
		netMargin = sales.Sub(expenses).Div(sales).Mul(hundred).Round(2)
	}
	averageBasket := decimal.Zero
	if salesCount > 0 {
		averageBasket = sales.Div(decimal.NewFromInt(salesCount)).Round(2)
	}
	averagePerDay := sales.Div(decimal.NewFromInt(days)).Round(2)
	expenseRate := decimal.Zero
	if total := sales.Add(expenses); total.IsPositive() {
		expenseRate = expenses.Div(total).Mul(hundred).Round(2)
	}

	return &dto.KPIsDTO{
		NetMargin:          netMargin,
		AverageBasket:      averageBasket,
		AverageSalesPerDay: averagePerDay,
		ExpenseRate:        expenseRate,
		SalesCount:         salesCount,
		Days:               days,
	}, nil
}

// CategoryAnalysis reparto de ventas por tipo de artículo y top 5 de
// productos por cantidad vendida.
func (uc *UseCase) CategoryAnalysis(ctx context.Context, userID string, q Query) (*dto.CategoryAnalysisDTO, error) {
	start, end, err := DateRange(q.Period, q.StartDate, q.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	byType, err := uc.analyticsRepo.SalesByArticleType(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	top, err := uc.analyticsRepo.TopArticles(ctx, userID, start, end, 5)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	for _, t := range byType {
		totalSales = totalSales.Add(t.Total)
	}
	salesByType := make([]dto.TypeSalesDTO, 0, len(byType))
	for _, t := range byType {
		pct := decimal.Zero
		if totalSales.IsPositive() {
			pct = t.Total.Div(totalSales).Mul(decimal.NewFromInt(100)).Round(2)
		}
		salesByType = append(salesByType, dto.TypeSalesDTO{Type: t.ArticleType, Total: t.Total, Percentage: pct})
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		topProducts = append(topProducts, dto.TopProductDTO{
			ID:            t.ArticleID,
			Name:          t.Name,
			Type:          t.ArticleType,
			TotalQuantity: t.TotalQuantity,
			TotalAmount:   t.TotalAmount,
		})
	}
	return &dto.CategoryAnalysisDTO{SalesByType: salesByType, TopProducts: topProducts}, nil
}

// Transactions reporte paginado del libro mayor con filtros de período, tipo
// y búsqueda por nombre (de la transacción o de su artículo).
func (uc *UseCase) Transactions(ctx context.Context, userID string, q Query, txType, search string, page, perPage int) (*dto.TransactionListResponse, error) {
	start, end, err := DateRange(q.Period, q.StartDate, q.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}

	items, total, err := uc.txRepo.List(ctx, userID, repository.TransactionFilter{
		Type:   txType,
		Search: search,
		Start:  start,
		End:    end,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, err
	}

	responses, err := uc.projectTransactions(ctx, userID, items)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionListResponse{
		Transactions: responses,
		Pagination:   dto.NewPagination(page, perPage, total),
	}, nil
}

// Predictions extrapola la fecha de reabastecimiento de cada artículo con al
// menos una venta. El ritmo es cantidad vendida / días entre la primera y la
// última venta (mínimo 1 día). Los artículos agotados van primero, el resto
// por días restantes ascendente.
func (uc *UseCase) Predictions(ctx context.Context, userID string) ([]dto.PredictionDTO, error) {
	stats, err := uc.analyticsRepo.ArticleSaleStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	outOfStock := make([]dto.PredictionDTO, 0)
	inStock := make([]dto.PredictionDTO, 0)
	for _, s := range stats {
		remaining := stock.Remaining(s.Quantity, s.SoldQuantity)
		if remaining <= 0 {
			outOfStock = append(outOfStock, dto.PredictionDTO{
				ArticleID:         s.ArticleID,
				ArticleName:       s.Name,
				Type:              s.ArticleType,
				CurrentQuantity:   s.Quantity,
				SoldQuantity:      s.SoldQuantity,
				RemainingQuantity: 0,
				SalesPercentage:   decimal.NewFromInt(100),
				Status:            dto.PredictionOutOfStock,
				DaysUntilReorder:  0,
				SalesRatePerDay:   decimal.Zero,
			})
			continue
		}

		totalDays := int64(daysBetween(s.FirstSaleAt, s.LastSaleAt))
		if totalDays == 0 {
			totalDays = 1
		}
		rate := decimal.NewFromInt(s.SoldQuantity).Div(decimal.NewFromInt(totalDays))
		if !rate.IsPositive() {
			continue
		}
		daysUntil := decimal.NewFromInt(remaining).Div(rate)
		daysUntilInt := daysUntil.Round(0).IntPart()
		daysFloat, _ := daysUntil.Float64()
		predicted := now.Add(time.Duration(daysFloat * 24 * float64(time.Hour))).Format(dateLayout)

		inStock = append(inStock, dto.PredictionDTO{
			ArticleID:            s.ArticleID,
			ArticleName:          s.Name,
			Type:                 s.ArticleType,
			CurrentQuantity:      s.Quantity,
			SoldQuantity:         s.SoldQuantity,
			RemainingQuantity:    remaining,
			SalesPercentage:      stock.SalesPercentage(s.Quantity, s.SoldQuantity),
			Status:               dto.PredictionInStock,
			PredictedReorderDate: &predicted,
			DaysUntilReorder:     daysUntilInt,
			SalesRatePerDay:      rate.Round(2),
		})
	}

	// Agotados primero, el resto por urgencia ascendente.
	preds := append(outOfStock, inStock...)
	sort.SliceStable(preds, func(i, j int) bool {
		a, b := preds[i], preds[j]
		if a.Status != b.Status {
			return a.Status == dto.PredictionOutOfStock
		}
		return a.DaysUntilReorder < b.DaysUntilReorder
	})
	return preds, nil
}

func (uc *UseCase) sums(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	sales, err := uc.analyticsRepo.SumAmount(ctx, userID, entity.TransactionTypeSale, start, end)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expenses, err := uc.analyticsRepo.SumAmount(ctx, userID, entity.TransactionTypeExpense, start, end)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return sales, expenses, nil
}

func (uc *UseCase) projectTransactions(ctx context.Context, userID string, items []*entity.Transaction) ([]dto.TransactionResponse, error) {
	soldByArticle, err := uc.txRepo.SoldQuantitiesByArticle(ctx, userID)
	if err != nil {
		return nil, err
	}
	threshold := entity.DefaultLowStockThreshold
	if settings, err := uc.settingRepo.GetByUser(ctx, userID); err != nil {
		return nil, err
	} else if settings != nil {
		threshold = settings.LowStockThreshold
	}

	articles := make(map[string]*entity.Article)
	out := make([]dto.TransactionResponse, 0, len(items))
	for _, t := range items {
		resp := dto.NewTransactionResponse(t)
		if t.ArticleID != nil {
			article, ok := articles[*t.ArticleID]
			if !ok {
				article, err = uc.articleRepo.GetByID(ctx, *t.ArticleID)
				if err != nil {
					return nil, err
				}
				articles[*t.ArticleID] = article
			}
			if article != nil {
				ar := dto.NewArticleResponse(article, soldByArticle[article.ID], threshold)
				resp.Article = &ar
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func toTrendPoints(series []repository.BucketAmount) []dto.TrendPointDTO {
	out := make([]dto.TrendPointDTO, 0, len(series))
	for _, p := range series {
		out = append(out, dto.TrendPointDTO{Date: p.Bucket, Amount: p.Amount})
	}
	return out
}
