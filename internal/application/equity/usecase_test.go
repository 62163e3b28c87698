package equity_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/equity"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Motor de participaciones. La propiedad central es el invariante de equidad:
// después de cualquier alta o baja, CompanyShare + Σ Part == 100, y ninguna
// operación puede sobreasignar la participación disponible del propietario.
// ──────────────────────────────────────────────────────────────────────────────

const ownerID = "owner-1"

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateCompanyShare(_ context.Context, id string, share decimal.Decimal) error {
	r.users[id].CompanyShare = share
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.users[id].PasswordHash = hash
	return nil
}

type fakeCollaboratorRepo struct {
	collaborators map[string]*entity.Collaborator
}

func (r *fakeCollaboratorRepo) Create(_ context.Context, c *entity.Collaborator) error {
	r.collaborators[c.ID] = c
	return nil
}

func (r *fakeCollaboratorRepo) GetByIDAndUser(_ context.Context, id, userID string) (*entity.Collaborator, error) {
	c := r.collaborators[id]
	if c == nil || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCollaboratorRepo) ListByUser(_ context.Context, userID string) ([]*entity.Collaborator, error) {
	var out []*entity.Collaborator
	for _, c := range r.collaborators {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCollaboratorRepo) Update(_ context.Context, c *entity.Collaborator) error {
	r.collaborators[c.ID] = c
	return nil
}

func (r *fakeCollaboratorRepo) Delete(_ context.Context, id string) error {
	delete(r.collaborators, id)
	return nil
}

// fakeAnalyticsRepo solo implementa las sumas que el motor necesita para el
// wallet; el resto no se usa aquí.
type fakeAnalyticsRepo struct {
	totalSales    decimal.Decimal
	totalExpenses decimal.Decimal
}

func (r *fakeAnalyticsRepo) SumAmount(_ context.Context, _, txType string, _, _ time.Time) (decimal.Decimal, error) {
	if txType == entity.TransactionTypeSale {
		return r.totalSales, nil
	}
	return r.totalExpenses, nil
}

func (r *fakeAnalyticsRepo) CountByType(context.Context, string, string, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeAnalyticsRepo) SeriesByBucket(context.Context, string, string, string, time.Time, time.Time) ([]repository.BucketAmount, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) WalletSeries(context.Context, string, string, time.Time, time.Time) ([]repository.BucketAmount, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) SalesByArticleType(context.Context, string, time.Time, time.Time) ([]repository.TypeSalesResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) TopArticles(context.Context, string, time.Time, time.Time, int) ([]repository.TopArticleResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) ArticleSaleStats(context.Context, string) ([]repository.ArticleSaleStats, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) UserTotals(context.Context, string, int) (*repository.UserTotalsResult, error) {
	return &repository.UserTotalsResult{}, nil
}

type fakeEquityRunner struct {
	users   *fakeUserRepo
	collabs *fakeCollaboratorRepo
}

func (r *fakeEquityRunner) RunEquity(_ context.Context, fn func(
	repository.UserRepository,
	repository.CollaboratorRepository,
) error) error {
	return fn(r.users, r.collabs)
}

// lockingEquityRunner serializa las transacciones con un mutex, modelando el
// FOR UPDATE sobre la fila del propietario.
type lockingEquityRunner struct {
	mu      sync.Mutex
	users   *fakeUserRepo
	collabs *fakeCollaboratorRepo
}

func (r *lockingEquityRunner) RunEquity(_ context.Context, fn func(
	repository.UserRepository,
	repository.CollaboratorRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.users, r.collabs)
}

type harness struct {
	uc      *equity.UseCase
	users   *fakeUserRepo
	collabs *fakeCollaboratorRepo
}

func newHarness(totalSales, totalExpenses int64) *harness {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		ownerID: {
			ID:           ownerID,
			Email:        "owner@example.com",
			CompanyShare: decimal.NewFromInt(100),
		},
	}}
	collabRepo := &fakeCollaboratorRepo{collaborators: make(map[string]*entity.Collaborator)}
	runner := &fakeEquityRunner{users: userRepo, collabs: collabRepo}
	analytics := &fakeAnalyticsRepo{
		totalSales:    decimal.NewFromInt(totalSales),
		totalExpenses: decimal.NewFromInt(totalExpenses),
	}
	return &harness{
		uc:      equity.NewUseCase(runner, userRepo, collabRepo, analytics),
		users:   userRepo,
		collabs: collabRepo,
	}
}

// equitySum CompanyShare del propietario más las partes de sus colaboradores.
func (h *harness) equitySum() decimal.Decimal {
	sum := h.users.users[ownerID].CompanyShare
	for _, c := range h.collabs.collaborators {
		sum = sum.Add(c.Part)
	}
	return sum
}

func TestAdd_CedeParticipacion(t *testing.T) {
	h := newHarness(0, 0)

	resp, err := h.uc.Add(context.Background(), ownerID, dto.CreateCollaboratorRequest{
		Name:  "Awa",
		Phone: "+221770000000",
		Part:  decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	assert.Equal(t, "30", resp.Part.String())
	assert.Equal(t, "70", h.users.users[ownerID].CompanyShare.String(),
		"la participación cedida sale del CompanyShare del propietario")
	assert.True(t, h.equitySum().Equal(decimal.NewFromInt(100)),
		"invariante: CompanyShare + Σ parts == 100")
}

func TestAdd_ParticipacionInsuficiente(t *testing.T) {
	h := newHarness(0, 0)
	ctx := context.Background()

	_, err := h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(70),
	})
	require.NoError(t, err)

	_, err = h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Moussa", Phone: "+221770000001", Part: decimal.NewFromInt(40),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientEquity)

	var insufficientErr *equity.InsufficientEquityError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "30", insufficientErr.Available.String(), "el error informa la participación disponible")

	// El alta fallida no dejó rastro.
	assert.Len(t, h.collabs.collaborators, 1)
	assert.True(t, h.equitySum().Equal(decimal.NewFromInt(100)))
}

func TestAdd_ParteFueraDeRango(t *testing.T) {
	h := newHarness(0, 0)
	ctx := context.Background()

	_, err := h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nadie puede llevarse el 100%%")
}

func TestRemove_DevuelveParticipacion(t *testing.T) {
	h := newHarness(0, 0)
	ctx := context.Background()

	created, err := h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	resp, err := h.uc.Remove(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "25", resp.ReturnedPart.String())
	assert.Equal(t, "100", h.users.users[ownerID].CompanyShare.String())
	assert.Empty(t, h.collabs.collaborators)
}

func TestUpdate_ParteInmutable(t *testing.T) {
	h := newHarness(0, 0)
	ctx := context.Background()

	created, err := h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	part := decimal.NewFromInt(50)
	_, err = h.uc.Update(ctx, ownerID, created.ID, dto.UpdateCollaboratorRequest{Part: &part})
	assert.ErrorIs(t, err, domain.ErrImmutableField)

	wallet := decimal.NewFromInt(9999)
	_, err = h.uc.Update(ctx, ownerID, created.ID, dto.UpdateCollaboratorRequest{Wallet: &wallet})
	assert.ErrorIs(t, err, domain.ErrImmutableField, "el wallet es derivado, no se fija")
}

func TestUpdate_CamposNoFinancieros(t *testing.T) {
	h := newHarness(0, 0)
	ctx := context.Background()

	created, err := h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	newName := "Awa Diop"
	resp, err := h.uc.Update(ctx, ownerID, created.ID, dto.UpdateCollaboratorRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Awa Diop", resp.Name)
	assert.Equal(t, "25", resp.Part.String(), "la parte no se mueve")
}

func TestAdd_AltasConcurrentesNoSobreasignan(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		ownerID: {
			ID:           ownerID,
			Email:        "owner@example.com",
			CompanyShare: decimal.NewFromInt(100),
		},
	}}
	collabRepo := &fakeCollaboratorRepo{collaborators: make(map[string]*entity.Collaborator)}
	runner := &lockingEquityRunner{users: userRepo, collabs: collabRepo}
	uc := equity.NewUseCase(runner, userRepo, collabRepo, &fakeAnalyticsRepo{})

	// 12 altas de 15 puntos cada una compiten por los 100 disponibles: solo
	// 6 pueden entrar (90 cedidos, quedan 10), el resto debe fallar sin
	// dejar rastro, sea cual sea el orden de llegada.
	const attempts = 12
	part := decimal.NewFromInt(15)

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Add(context.Background(), ownerID, dto.CreateCollaboratorRequest{
				Name: "Colab", Phone: "+221770000000", Part: part,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, rejected int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientEquity)
		rejected++
	}
	assert.Equal(t, 6, ok)
	assert.Equal(t, 6, rejected)

	sum := userRepo.users[ownerID].CompanyShare
	for _, c := range collabRepo.collaborators {
		sum = sum.Add(c.Part)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(100)),
		"invariante bajo concurrencia: CompanyShare + Σ parts == 100")
	assert.Equal(t, "10", userRepo.users[ownerID].CompanyShare.String())
	assert.Len(t, collabRepo.collaborators, 6)
}

func TestWallet_RebanadaDeLaCaja(t *testing.T) {
	// Caja calculada: 1000 − 400 = 600; parte del 30% → 180.00.
	h := newHarness(1000, 400)

	resp, err := h.uc.Add(context.Background(), ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "180.00", resp.Wallet.StringFixed(2))
}

func TestList_WalletsPorColaborador(t *testing.T) {
	h := newHarness(1000, 400)
	ctx := context.Background()

	_, err := h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Awa", Phone: "+221770000000", Part: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	_, err = h.uc.Add(ctx, ownerID, dto.CreateCollaboratorRequest{
		Name: "Moussa", Phone: "+221770000001", Part: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	list, err := h.uc.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	wallets := map[string]string{}
	for _, c := range list {
		wallets[c.Name] = c.Wallet.StringFixed(2)
	}
	assert.Equal(t, "180.00", wallets["Awa"])
	assert.Equal(t, "120.00", wallets["Moussa"])
}
