package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granjapro/granja-api/internal/application/transfer"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
	"github.com/granjapro/granja-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional (clonar, ejecutar, volcar)
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	lotes  map[string]*entity.Lote
	costos []*entity.CostEntry
	events []*entity.TransferEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{lotes: make(map[string]*entity.Lote)}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, l := range s.lotes {
		copia := *l
		c.lotes[id] = &copia
	}
	c.costos = append([]*entity.CostEntry(nil), s.costos...)
	c.events = append([]*entity.TransferEvent(nil), s.events...)
	return c
}

type storeLoteRepo struct{ s *fakeStore }

func (r storeLoteRepo) Create(_ context.Context, l *entity.Lote) error {
	copia := *l
	r.s.lotes[l.ID] = &copia
	return nil
}

func (r storeLoteRepo) GetByID(_ context.Context, id string) (*entity.Lote, error) {
	l, ok := r.s.lotes[id]
	if !ok {
		return nil, nil
	}
	copia := *l
	return &copia, nil
}

func (r storeLoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lote, error) {
	return r.GetByID(ctx, id)
}

func (r storeLoteRepo) ListByUser(_ context.Context, userID string) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, l := range r.s.lotes {
		if l.UserID == userID {
			copia := *l
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r storeLoteRepo) Update(_ context.Context, l *entity.Lote) error {
	copia := *l
	r.s.lotes[l.ID] = &copia
	return nil
}

type storeCostRepo struct{ s *fakeStore }

func (r storeCostRepo) Create(_ context.Context, e *entity.CostEntry) error {
	copia := *e
	r.s.costos = append(r.s.costos, &copia)
	return nil
}

func (r storeCostRepo) ListByLote(_ context.Context, loteID string) ([]*entity.CostEntry, error) {
	var out []*entity.CostEntry
	for _, e := range r.s.costos {
		if e.LoteID == loteID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r storeCostRepo) SumByLote(_ context.Context, loteID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.s.costos {
		if e.LoteID == loteID {
			total = total.Add(e.Monto)
		}
	}
	return total, nil
}

type storeEventRepo struct{ s *fakeStore }

func (r storeEventRepo) Create(_ context.Context, e *entity.TransferEvent) error {
	copia := *e
	r.s.events = append(r.s.events, &copia)
	return nil
}

func (r storeEventRepo) ListByLote(_ context.Context, loteID string) ([]*entity.TransferEvent, error) {
	var out []*entity.TransferEvent
	for _, e := range r.s.events {
		if e.LoteOrigenID == loteID || e.LoteDestinoID == loteID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTxRunner struct{ s *fakeStore }

func (r fakeTxRunner) RunTransfer(_ context.Context, fn func(
	loteRepo repository.LoteRepository,
	costRepo repository.CostEntryRepository,
	eventRepo repository.TransferEventRepository,
) error) error {
	staging := r.s.clone()
	if err := fn(storeLoteRepo{staging}, storeCostRepo{staging}, storeEventRepo{staging}); err != nil {
		return err
	}
	r.s.lotes = staging.lotes
	r.s.costos = staging.costos
	r.s.events = staging.events
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// storeConLevante arma un lote de levante con la edad y los costos indicados.
func storeConLevante(cantidad int64, semanas int, costos ...string) *fakeStore {
	s := newFakeStore()
	now := time.Now()
	s.lotes["origen"] = &entity.Lote{
		ID:              "origen",
		UserID:          testUserID,
		Nombre:          "Lote Levante",
		Raza:            "Isa Brown",
		Etapa:           entity.EtapaLevante,
		CantidadInicial: cantidad,
		CantidadActual:  cantidad,
		FechaNacimiento: now.AddDate(0, 0, -semanas*7),
		FechaInicio:     now.AddDate(0, 0, -semanas*7),
		Estado:          entity.EstadoLoteActivo,
	}
	for i, monto := range costos {
		s.costos = append(s.costos, &entity.CostEntry{
			ID:       "c" + string(rune('0'+i)),
			UserID:   testUserID,
			LoteID:   "origen",
			Concepto: entity.CostoAlimento,
			Monto:    dec(monto),
			Fecha:    now,
		})
	}
	return s
}

func usecaseSobre(s *fakeStore) *transfer.TransferLotUseCase {
	return transfer.NewTransferLotUseCase(
		fakeTxRunner{s},
		storeLoteRepo{s},
		transfer.DefaultConfig(),
		nil,
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslado — camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferLot_TrasladaYConservaElTotalDeAves(t *testing.T) {
	s := storeConLevante(100, 17)
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 60, "galpon 3", "")
	require.NoError(t, err)

	assert.Equal(t, int64(40), resp.Origen.CantidadActual)
	assert.Equal(t, int64(60), resp.Destino.CantidadActual)
	assert.Equal(t, entity.EtapaPonedora, resp.Destino.Etapa)
	assert.Equal(t, entity.EstadoLoteActivo, resp.Origen.Estado, "el origen sigue activo con aves restantes")

	// Conservación: las aves ni se crean ni se destruyen.
	total := s.lotes["origen"].CantidadActual + s.lotes[resp.Destino.ID].CantidadActual
	assert.Equal(t, int64(100), total)

	// Los lotes quedan enlazados en ambas direcciones.
	assert.Equal(t, resp.Destino.ID, s.lotes["origen"].LoteDestinoID)
	assert.Equal(t, "origen", s.lotes[resp.Destino.ID].LoteOrigenID)

	// Y el evento de traslado quedó registrado.
	require.Len(t, s.events, 1)
	assert.Equal(t, int64(60), s.events[0].Cantidad)
}

func TestTransferLot_TrasladoTotalMarcaOrigenTrasladado(t *testing.T) {
	s := storeConLevante(50, 18)
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 50, "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Origen.CantidadActual)
	assert.Equal(t, entity.EstadoLoteTrasladado, resp.Origen.Estado)
	assert.Equal(t, int64(50), resp.Destino.CantidadActual)
}

// El destino hereda la fecha de nacimiento del origen: la edad de las aves
// no se reinicia con el traslado.
func TestTransferLot_DestinoHeredaFechaNacimiento(t *testing.T) {
	s := storeConLevante(30, 20)
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 30, "", "")
	require.NoError(t, err)

	assert.Equal(t, s.lotes["origen"].FechaNacimiento.Format("2006-01-02"), resp.Destino.FechaNacimiento)
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo heredado
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferLot_CostoHeredadoEsLaSumaDeCostos(t *testing.T) {
	// 120000 + 45000 + 35000 = 200000 repartidos entre 40 aves: 5000 c/u.
	s := storeConLevante(100, 18, "120000", "45000", "35000")
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 40, "", "")
	require.NoError(t, err)

	assert.Equal(t, "200000", resp.CostBasis.Total.String())
	assert.True(t, dec("5000").Equal(resp.CostBasis.PorUnidad),
		"por unidad: obtuvo %s", resp.CostBasis.PorUnidad)
	assert.Equal(t, int64(40), resp.CostBasis.CantidadTrasladada)
	assert.Equal(t, int64(100), resp.CostBasis.CantidadInicial)

	// El costo también queda en el lote destino y en el evento.
	destino := s.lotes[resp.Destino.ID]
	require.NotNil(t, destino.CostBasis)
	assert.True(t, dec("200000").Equal(destino.CostBasis.Total))
	assert.True(t, dec("200000").Equal(s.events[0].CostoTotal))
}

func TestTransferLot_CostoPorUnidadRedondeaACuatroDecimales(t *testing.T) {
	// 100000 / 3 = 33333.3333...
	s := storeConLevante(10, 18, "100000")
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 3, "", "")
	require.NoError(t, err)

	assert.True(t, dec("33333.3333").Equal(resp.CostBasis.PorUnidad),
		"por unidad: obtuvo %s", resp.CostBasis.PorUnidad)
}

func TestTransferLot_SinCostosRegistradosHeredaCero(t *testing.T) {
	s := storeConLevante(20, 18)
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 10, "", "")
	require.NoError(t, err)

	assert.True(t, resp.CostBasis.Total.IsZero())
	assert.True(t, resp.CostBasis.PorUnidad.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Advertencia por edad — informa, no bloquea
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferLot_LoteJovenTrasladaConAdvertencia(t *testing.T) {
	s := storeConLevante(50, 12) // por debajo de las 16 recomendadas
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 50, "", "")
	require.NoError(t, err, "la edad no bloquea el traslado")

	assert.NotEmpty(t, resp.Advertencia)
	assert.Contains(t, resp.Advertencia, "12 semanas")
}

func TestTransferLot_LoteEnEdadSinAdvertencia(t *testing.T) {
	s := storeConLevante(50, 16)
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 50, "", "")
	require.NoError(t, err)
	assert.Empty(t, resp.Advertencia)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones — rechazos sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func assertSinEfectos(t *testing.T, s *fakeStore, cantidadOriginal int64) {
	t.Helper()
	assert.Len(t, s.lotes, 1, "no debe crearse lote destino")
	assert.Equal(t, cantidadOriginal, s.lotes["origen"].CantidadActual)
	assert.Empty(t, s.events)
}

func TestTransferLot_CantidadCeroRechazada(t *testing.T) {
	s := storeConLevante(50, 18)
	uc := usecaseSobre(s)

	_, err := uc.TransferLot(context.Background(), testUserID, "origen", 0, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assertSinEfectos(t, s, 50)
}

func TestTransferLot_CantidadMayorADisponibleRechazada(t *testing.T) {
	s := storeConLevante(50, 18)
	uc := usecaseSobre(s)

	_, err := uc.TransferLot(context.Background(), testUserID, "origen", 51, "", "")
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assertSinEfectos(t, s, 50)
}

func TestTransferLot_PonedoraNoSeTraslada(t *testing.T) {
	s := storeConLevante(50, 20)
	s.lotes["origen"].Etapa = entity.EtapaPonedora
	uc := usecaseSobre(s)

	_, err := uc.TransferLot(context.Background(), testUserID, "origen", 10, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assertSinEfectos(t, s, 50)
}

func TestTransferLot_LoteVendidoRechazado(t *testing.T) {
	s := storeConLevante(50, 18)
	s.lotes["origen"].Estado = entity.EstadoLoteVendido
	uc := usecaseSobre(s)

	_, err := uc.TransferLot(context.Background(), testUserID, "origen", 10, "", "")
	assert.ErrorIs(t, err, domain.ErrLoteAlreadySold)
}

func TestTransferLot_LoteYaTrasladadoRechazado(t *testing.T) {
	s := storeConLevante(50, 18)
	s.lotes["origen"].Estado = entity.EstadoLoteTrasladado
	s.lotes["origen"].CantidadActual = 0
	uc := usecaseSobre(s)

	_, err := uc.TransferLot(context.Background(), testUserID, "origen", 10, "", "")
	assert.ErrorIs(t, err, domain.ErrLoteAlreadySold)
}

func TestTransferLot_LoteInexistente(t *testing.T) {
	uc := usecaseSobre(newFakeStore())

	_, err := uc.TransferLot(context.Background(), testUserID, "fantasma", 10, "", "")
	assert.ErrorIs(t, err, domain.ErrLoteNotFound)
}

func TestTransferLot_LoteDeOtroUsuarioRechazado(t *testing.T) {
	s := storeConLevante(50, 18)
	s.lotes["origen"].UserID = "user-2"
	uc := usecaseSobre(s)

	_, err := uc.TransferLot(context.Background(), testUserID, "origen", 10, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTransferLot_SinUsuarioRechazado(t *testing.T) {
	uc := usecaseSobre(storeConLevante(50, 18))

	_, err := uc.TransferLot(context.Background(), "", "origen", 10, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Engorde también puede pasar a ponedora (granjas de doble propósito).
func TestTransferLot_EngordeTambienSeTraslada(t *testing.T) {
	s := storeConLevante(50, 18)
	s.lotes["origen"].Etapa = entity.EtapaEngorde
	uc := usecaseSobre(s)

	resp, err := uc.TransferLot(context.Background(), testUserID, "origen", 20, "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.EtapaPonedora, resp.Destino.Etapa)
}
