package transaction_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/transaction"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Motor de mutación del libro mayor, probado contra repositorios en memoria.
// Las propiedades clave: el stock se valida contra lo realmente vendido, la
// edición excluye a la propia venta del cálculo, el borrado libera stock sin
// escritura compensatoria y la alerta de stock bajo es one-shot.
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeArticleRepo struct {
	articles map[string]*entity.Article
}

func (r *fakeArticleRepo) Create(_ context.Context, a *entity.Article) error {
	r.articles[a.ID] = a
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	return r.articles[id], nil
}

func (r *fakeArticleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeArticleRepo) ListByUser(_ context.Context, userID string) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.articles {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) ListAll(_ context.Context) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.articles {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, a *entity.Article) error {
	r.articles[a.ID] = a
	return nil
}

func (r *fakeArticleRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	r.articles[id].Quantity = quantity
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id string) error {
	delete(r.articles, id)
	return nil
}

type fakeVariationRepo struct {
	variations map[string]*entity.Variation
}

func (r *fakeVariationRepo) Create(_ context.Context, v *entity.Variation) error {
	r.variations[v.ID] = v
	return nil
}

func (r *fakeVariationRepo) GetByID(_ context.Context, id string) (*entity.Variation, error) {
	return r.variations[id], nil
}

func (r *fakeVariationRepo) ListByArticle(_ context.Context, articleID string) ([]*entity.Variation, error) {
	var out []*entity.Variation
	for _, v := range r.variations {
		if v.ArticleID == articleID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVariationRepo) ListByUser(context.Context, string) ([]*entity.Variation, error) {
	return nil, nil
}

func (r *fakeVariationRepo) GetByArticleAndName(_ context.Context, articleID, name, excludeID string) (*entity.Variation, error) {
	for _, v := range r.variations {
		if v.ArticleID == articleID && v.Name == name && v.ID != excludeID {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVariationRepo) SumQuantityByArticle(_ context.Context, articleID, excludeID string) (int64, error) {
	var sum int64
	for _, v := range r.variations {
		if v.ArticleID == articleID && v.ID != excludeID {
			sum += v.Quantity
		}
	}
	return sum, nil
}

func (r *fakeVariationRepo) Update(_ context.Context, v *entity.Variation) error {
	r.variations[v.ID] = v
	return nil
}

func (r *fakeVariationRepo) Delete(_ context.Context, id string) error {
	delete(r.variations, id)
	return nil
}

type fakeTransactionRepo struct {
	transactions map[string]*entity.Transaction
}

func (r *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	return r.transactions[id], nil
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, userID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, userID string, _ repository.TransactionFilter) ([]*entity.Transaction, int64, error) {
	items, err := r.ListByUser(ctx, userID)
	return items, int64(len(items)), err
}

func (r *fakeTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id string) error {
	delete(r.transactions, id)
	return nil
}

func (r *fakeTransactionRepo) SoldQuantityByArticle(_ context.Context, articleID, excludeID string) (int64, error) {
	var sum int64
	for _, t := range r.transactions {
		if t.IsSale() && t.ArticleID != nil && *t.ArticleID == articleID && t.ID != excludeID && t.Quantity != nil {
			sum += *t.Quantity
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) SoldQuantityByVariation(_ context.Context, variationID, excludeID string) (int64, error) {
	var sum int64
	for _, t := range r.transactions {
		if t.IsSale() && t.VariationID != nil && *t.VariationID == variationID && t.ID != excludeID && t.Quantity != nil {
			sum += *t.Quantity
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) SoldQuantitiesByArticle(_ context.Context, userID string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, t := range r.transactions {
		if t.UserID == userID && t.IsSale() && t.ArticleID != nil && t.Quantity != nil {
			out[*t.ArticleID] += *t.Quantity
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) SoldQuantitiesByVariation(_ context.Context, userID string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, t := range r.transactions {
		if t.UserID == userID && t.IsSale() && t.VariationID != nil && t.Quantity != nil {
			out[*t.VariationID] += *t.Quantity
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications map[string]*entity.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) GetByIDAndUser(_ context.Context, id, userID string) (*entity.Notification, error) {
	n := r.notifications[id]
	if n == nil || n.UserID != userID {
		return nil, nil
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]*entity.Notification, int64, error) {
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) HasUnreadLowStock(_ context.Context, userID, articleID string) (bool, error) {
	for _, n := range r.notifications {
		if n.UserID == userID && n.Type == entity.NotificationTypeWarning && !n.Read &&
			n.ArticleID != nil && *n.ArticleID == articleID && n.Title == entity.LowStockTitle {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n := r.notifications[id]; n != nil {
		n.Read = true
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	delete(r.notifications, id)
	return nil
}

type fakeSettingRepo struct {
	settings map[string]*entity.UserSetting
}

func (r *fakeSettingRepo) GetByUser(_ context.Context, userID string) (*entity.UserSetting, error) {
	return r.settings[userID], nil
}

func (r *fakeSettingRepo) Upsert(_ context.Context, s *entity.UserSetting) error {
	r.settings[s.UserID] = s
	return nil
}

// fakeTxRunner ejecuta el callback directamente con los mismos fakes; la
// atomicidad real se prueba contra PostgreSQL, aquí interesa la lógica.
type fakeTxRunner struct {
	articles   *fakeArticleRepo
	variations *fakeVariationRepo
	txs        *fakeTransactionRepo
	notifs     *fakeNotificationRepo
	settings   *fakeSettingRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ArticleRepository,
	repository.VariationRepository,
	repository.TransactionRepository,
	repository.NotificationRepository,
	repository.SettingRepository,
) error) error {
	return fn(r.articles, r.variations, r.txs, r.notifs, r.settings)
}

// ── arranque ──────────────────────────────────────────────────────────────────

type engine struct {
	uc         *transaction.UseCase
	txs        *fakeTransactionRepo
	notifs     *fakeNotificationRepo
	variations *fakeVariationRepo
}

func newEngine(articles ...*entity.Article) *engine {
	articleRepo := &fakeArticleRepo{articles: make(map[string]*entity.Article)}
	for _, a := range articles {
		articleRepo.articles[a.ID] = a
	}
	variationRepo := &fakeVariationRepo{variations: make(map[string]*entity.Variation)}
	txRepo := &fakeTransactionRepo{transactions: make(map[string]*entity.Transaction)}
	notifRepo := &fakeNotificationRepo{notifications: make(map[string]*entity.Notification)}
	settingRepo := &fakeSettingRepo{settings: make(map[string]*entity.UserSetting)}
	runner := &fakeTxRunner{
		articles:   articleRepo,
		variations: variationRepo,
		txs:        txRepo,
		notifs:     notifRepo,
		settings:   settingRepo,
	}
	return &engine{
		uc:         transaction.NewUseCase(runner, txRepo, articleRepo, settingRepo),
		txs:        txRepo,
		notifs:     notifRepo,
		variations: variationRepo,
	}
}

func simpleArticle(id string, price int64, quantity int64) *entity.Article {
	return &entity.Article{
		ID:        id,
		UserID:    testUserID,
		Name:      "Maillot",
		SalePrice: decimal.NewFromInt(price),
		Quantity:  quantity,
		Type:      entity.ArticleTypeSimple,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func intPtr(v int64) *int64 { return &v }

// ── ventas ────────────────────────────────────────────────────────────────────

func TestCreateSale_Simple(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 2500, 100))

	resp, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type:      entity.TransactionTypeSale,
		ArticleID: "art-1",
		Quantity:  intPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, "Vente de 10 Maillot", resp.Name, "el nombre de la venta se genera automáticamente")
	assert.Equal(t, "25000", resp.Amount.String(), "amount = precio × cantidad")
	require.NotNil(t, resp.SalePrice)
	assert.Equal(t, "2500", resp.SalePrice.String(), "el precio queda capturado en la línea")
	require.NotNil(t, resp.Article)
	assert.Equal(t, int64(90), resp.Article.RemainingQuantity)
}

func TestCreateSale_PrecioOverride(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 2500, 100))
	override := decimal.NewFromInt(2000)

	resp, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type:      entity.TransactionTypeSale,
		ArticleID: "art-1",
		Quantity:  intPtr(3),
		SalePrice: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, "6000", resp.Amount.String(), "el override de precio manda sobre el precio del artículo")
}

func TestCreateSale_StockInsuficiente(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 1000, 10))
	ctx := context.Background()

	_, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(8),
	})
	require.NoError(t, err)

	_, err = e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(5),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *transaction.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(2), insufficientErr.Available, "el error informa lo realmente disponible")
}

func TestCreateSale_ArticuloAjeno(t *testing.T) {
	article := simpleArticle("art-1", 1000, 10)
	article.UserID = "otro-usuario"
	e := newEngine(article)

	_, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un artículo ajeno es indistinguible de uno inexistente")
}

func TestCreateSale_SimpleRechazaVariacion(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 1000, 10))

	_, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type:        entity.TransactionTypeSale,
		ArticleID:   "art-1",
		VariationID: "var-1",
		Quantity:    intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_VariableExigeVariacion(t *testing.T) {
	article := simpleArticle("art-1", 1000, 100)
	article.Type = entity.ArticleTypeVariable
	e := newEngine(article)

	_, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_Variacion(t *testing.T) {
	article := simpleArticle("art-1", 1000, 100)
	article.Type = entity.ArticleTypeVariable
	e := newEngine(article)
	e.variations.variations["var-1"] = &entity.Variation{
		ID: "var-1", ArticleID: "art-1", Name: "Rouge", Quantity: 20,
	}
	ctx := context.Background()

	resp, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type:        entity.TransactionTypeSale,
		ArticleID:   "art-1",
		VariationID: "var-1",
		Quantity:    intPtr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, "Vente de 15 Maillot Rouge", resp.Name)

	// El stock se valida contra la variación, no contra el techo del artículo.
	_, err = e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type:        entity.TransactionTypeSale,
		ArticleID:   "art-1",
		VariationID: "var-1",
		Quantity:    intPtr(6),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *transaction.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(5), insufficientErr.Available)
}

func TestCreateSale_VariacionDeOtroArticulo(t *testing.T) {
	article := simpleArticle("art-1", 1000, 100)
	article.Type = entity.ArticleTypeVariable
	e := newEngine(article)
	e.variations.variations["var-x"] = &entity.Variation{
		ID: "var-x", ArticleID: "art-otro", Name: "Bleu", Quantity: 5,
	}

	_, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type:        entity.TransactionTypeSale,
		ArticleID:   "art-1",
		VariationID: "var-x",
		Quantity:    intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── gastos ────────────────────────────────────────────────────────────────────

func TestCreateExpense_CamposNulos(t *testing.T) {
	e := newEngine()
	amount := decimal.NewFromInt(5000)

	resp, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type:   entity.TransactionTypeExpense,
		Name:   "Loyer",
		Amount: &amount,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.ArticleID, "un gasto nunca referencia artículo")
	assert.Nil(t, resp.VariationID)
	assert.Nil(t, resp.Quantity)
	assert.Nil(t, resp.SalePrice)
	assert.Equal(t, "5000", resp.Amount.String())
}

func TestCreateExpense_SinNombre(t *testing.T) {
	e := newEngine()
	amount := decimal.NewFromInt(100)

	_, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeExpense, Amount: &amount,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── edición ───────────────────────────────────────────────────────────────────

func TestUpdateSale_ExcluyeLaPropiaVenta(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 1000, 10))
	ctx := context.Background()

	created, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(10),
	})
	require.NoError(t, err)

	// Reescribir la misma cantidad nunca se rechaza: la propia venta queda
	// fuera de la suma de lo vendido.
	resp, err := e.uc.Update(ctx, testUserID, created.ID, dto.UpdateTransactionRequest{
		Name: created.Name, Quantity: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), *resp.Quantity)

	_, err = e.uc.Update(ctx, testUserID, created.ID, dto.UpdateTransactionRequest{
		Name: created.Name, Quantity: intPtr(11),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *transaction.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(10), insufficientErr.Available)
}

func TestUpdateSale_RecalculaConPrecioActual(t *testing.T) {
	article := simpleArticle("art-1", 1000, 100)
	e := newEngine(article)
	ctx := context.Background()

	created, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "5000", created.Amount.String())

	// El artículo cambia de precio entre la venta y la edición.
	article.SalePrice = decimal.NewFromInt(1200)

	resp, err := e.uc.Update(ctx, testUserID, created.ID, dto.UpdateTransactionRequest{
		Name: "Vente corrigée", Quantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "6000", resp.Amount.String(), "la edición recaptura el precio actual del artículo")
}

func TestUpdateExpense_Sobreescribe(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	amount := decimal.NewFromInt(5000)

	created, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeExpense, Name: "Loyer", Amount: &amount,
	})
	require.NoError(t, err)

	newAmount := decimal.NewFromInt(5500)
	resp, err := e.uc.Update(ctx, testUserID, created.ID, dto.UpdateTransactionRequest{
		Name: "Loyer novembre", Amount: &newAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, "Loyer novembre", resp.Name)
	assert.Equal(t, "5500", resp.Amount.String())
}

// ── borrado ───────────────────────────────────────────────────────────────────

func TestDeleteSale_LiberaStock(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 1000, 10))
	ctx := context.Background()

	created, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(10),
	})
	require.NoError(t, err)

	require.NoError(t, e.uc.Delete(ctx, testUserID, created.ID))

	// Como lo vendido se deriva del libro mayor, borrar la venta devuelve
	// todo el stock sin ninguna escritura compensatoria.
	_, err = e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(10),
	})
	assert.NoError(t, err)
}

func TestDelete_TransaccionAjena(t *testing.T) {
	e := newEngine()
	err := e.uc.Delete(context.Background(), testUserID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── stock bajo ────────────────────────────────────────────────────────────────

func TestCreateSale_AlertaStockBajoOneShot(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 1000, 100))
	ctx := context.Background()

	// 85 de 100 vendidos: 85% ≥ umbral de 80.
	_, err := e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(85),
	})
	require.NoError(t, err)
	require.Len(t, e.notifs.notifications, 1, "la primera venta que cruza el umbral crea la alerta")

	for _, n := range e.notifs.notifications {
		assert.Equal(t, entity.NotificationTypeWarning, n.Type)
		assert.Equal(t, "Stock faible", n.Title)
		assert.Contains(t, n.Message, "Maillot")
		assert.False(t, n.Read)
	}

	// Otra venta con la alerta todavía sin leer no duplica.
	_, err = e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.Len(t, e.notifs.notifications, 1, "como mucho una alerta no leída por artículo")

	// Tras marcarla leída, la siguiente venta puede volver a alertar.
	for id := range e.notifs.notifications {
		require.NoError(t, e.notifs.MarkRead(ctx, id))
	}
	_, err = e.uc.Create(ctx, testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.Len(t, e.notifs.notifications, 2)
}

func TestCreateSale_SinAlertaBajoUmbral(t *testing.T) {
	e := newEngine(simpleArticle("art-1", 1000, 100))

	_, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeSale, ArticleID: "art-1", Quantity: intPtr(50),
	})
	require.NoError(t, err)
	assert.Empty(t, e.notifs.notifications)
}
