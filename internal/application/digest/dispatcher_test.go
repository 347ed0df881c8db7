package digest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

var today = time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos del dispatcher
// ──────────────────────────────────────────────────────────────────────────────

type fakeSubscribers struct {
	subs []*entity.User
	err  error
}

func (f *fakeSubscribers) ListSubscribers() ([]*entity.User, error) { return f.subs, f.err }

type fakeReagents struct {
	reagents []*entity.Reagent
	calls    int
}

func (f *fakeReagents) ListActive() ([]*entity.Reagent, error) {
	f.calls++
	return f.reagents, nil
}

type fakeLots struct {
	lots  []*entity.Lot
	calls int
}

func (f *fakeLots) ListExpiring(cutoff time.Time) ([]*entity.Lot, error) {
	f.calls++
	return f.lots, nil
}

type fakeNotifications struct {
	created  []*entity.AlertNotification
	sentByUser map[string]bool // usuarios con registro "sent" previo del día
	createErr  error
	existsErr  error
}

func (f *fakeNotifications) Create(n *entity.AlertNotification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotifications) ExistsSentSince(userID string, since time.Time) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.sentByUser[userID], nil
}

type fakeMail struct {
	sent    []digest.Message
	failFor map[string]error // por email destino
}

func (f *fakeMail) Send(_ context.Context, msg digest.Message) error {
	if err, ok := f.failFor[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func subscriber(id, email, name string) *entity.User {
	return &entity.User{ID: id, Email: email, Name: name, Status: "active", ReceiveAlerts: true}
}

// Inventario con dos alertas: un reactivo agotado y un lote crítico.
func alertingInventory() ([]*entity.Reagent, []*entity.Lot) {
	expiry := today.AddDate(0, 0, 3)
	reagents := []*entity.Reagent{
		{ID: "r1", Name: "Etanol", Reference: "ET-0500", TotalQuantity: 0, MinimumStock: 2, Active: true},
	}
	lots := []*entity.Lot{
		{ID: "l1", ReagentID: "r1", ReagentName: "Etanol", LotNumber: "L-1", ExpiryDate: &expiry, Quantity: 1, Active: true},
	}
	return reagents, lots
}

func newDispatcher(subs *fakeSubscribers, notifs *fakeNotifications, mail *fakeMail) (*digest.Dispatcher, *fakeReagents, *fakeLots) {
	reagents, lots := alertingInventory()
	fr := &fakeReagents{reagents: reagents}
	fl := &fakeLots{lots: lots}
	return digest.NewDispatcher(subs, fr, fl, notifs, mail, nil), fr, fl
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_SinSuscriptoresNoCargaInventario(t *testing.T) {
	subs := &fakeSubscribers{}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{}
	d, fr, fl := newDispatcher(subs, notifs, mail)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 0, res.TotalAlerts)
	assert.Equal(t, 0, fr.calls, "sin suscriptores no se debe consultar inventario")
	assert.Equal(t, 0, fl.calls)
	assert.Empty(t, mail.sent)
	assert.Empty(t, notifs.created)
}

func TestRun_SinAlertasNoEnviaNiRegistra(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{subscriber("u1", "a@lab.local", "Ana")}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{}
	fr := &fakeReagents{reagents: []*entity.Reagent{
		{ID: "r1", Name: "Sano", TotalQuantity: 10, MinimumStock: 2, Active: true},
	}}
	fl := &fakeLots{}
	d := digest.NewDispatcher(subs, fr, fl, notifs, mail, nil)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 0, res.TotalAlerts)
	assert.Empty(t, mail.sent)
	assert.Empty(t, notifs.created)
}

func TestRun_ErrorCargandoSuscriptoresAbortaLaCorrida(t *testing.T) {
	subs := &fakeSubscribers{err: errors.New("db caída")}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{}
	d, fr, _ := newDispatcher(subs, notifs, mail)

	_, err := d.Run(context.Background(), today)

	require.Error(t, err)
	assert.Equal(t, 0, fr.calls)
	assert.Empty(t, mail.sent)
}

func TestRun_EnviaYRegistraPorSuscriptor(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{
		subscriber("u1", "a@lab.local", "Ana"),
		subscriber("u2", "b@lab.local", "Bruno"),
	}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{}
	d, fr, fl := newDispatcher(subs, notifs, mail)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 2, res.TotalAlerts)

	// El inventario se carga una sola vez por corrida, no por suscriptor.
	assert.Equal(t, 1, fr.calls)
	assert.Equal(t, 1, fl.calls)

	require.Len(t, mail.sent, 2)
	assert.Contains(t, mail.sent[0].Subject, "2 elementos")
	assert.Contains(t, mail.sent[0].HTML, "Etanol")
	assert.Contains(t, mail.sent[0].Text, "Ana")
	assert.Contains(t, mail.sent[1].Text, "Bruno")

	require.Len(t, notifs.created, 2)
	for _, n := range notifs.created {
		assert.Equal(t, entity.NotificationSent, n.Status)
		assert.Equal(t, 1, n.OutOfStockCount)
		assert.Equal(t, 1, n.ExpiringSoonCount)
		assert.Equal(t, 0, n.LowStockCount)
		assert.Equal(t, 0, n.ExpiredCount)
	}
}

// Dedup por día UTC: quien ya recibió el digest hoy queda fuera, pero el
// resto de suscriptores sigue recibiendo el suyo.
func TestRun_DedupSoloOmiteAlYaNotificado(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{
		subscriber("u1", "a@lab.local", "Ana"),
		subscriber("u2", "b@lab.local", "Bruno"),
	}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{"u1": true}}
	mail := &fakeMail{}
	d, _, _ := newDispatcher(subs, notifs, mail)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 2, res.TotalAlerts)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "b@lab.local", mail.sent[0].To)
	require.Len(t, notifs.created, 1)
	assert.Equal(t, "u2", notifs.created[0].UserID)
}

// Una segunda corrida el mismo día no reenvía a nadie.
func TestRun_SegundaCorridaDelDiaEsIdempotente(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{subscriber("u1", "a@lab.local", "Ana")}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{}
	d, _, _ := newDispatcher(subs, notifs, mail)

	res1, err := d.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 1, res1.Sent)

	// Simula la persistencia: el registro "sent" de la primera corrida.
	notifs.sentByUser["u1"] = true

	res2, err := d.Run(context.Background(), today.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, res2.Sent)
	assert.Equal(t, 2, res2.TotalAlerts, "las alertas se siguen contando aunque no se envíe")
	assert.Len(t, mail.sent, 1)
}

// Un fallo de entrega queda aislado: se registra como failed con el texto del
// error y los demás suscriptores reciben su correo.
func TestRun_FalloDeEnvioAisladoPorSuscriptor(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{
		subscriber("u1", "falla@lab.local", "Ana"),
		subscriber("u2", "b@lab.local", "Bruno"),
	}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{failFor: map[string]error{
		"falla@lab.local": errors.New("mail: SMTP 550 buzón inexistente"),
	}}
	d, _, _ := newDispatcher(subs, notifs, mail)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 2, res.TotalAlerts)

	require.Len(t, notifs.created, 2)
	failed := notifs.created[0]
	assert.Equal(t, entity.NotificationFailed, failed.Status)
	assert.Equal(t, "u1", failed.UserID)
	assert.Contains(t, failed.ErrorMessage, "550")

	sent := notifs.created[1]
	assert.Equal(t, entity.NotificationSent, sent.Status)
	assert.Equal(t, "u2", sent.UserID)
}

// Si el registro del envío falla después de que el correo salió, el envío se
// sigue contando: el correo ya está en el buzón del suscriptor.
func TestRun_FalloDePersistenciaTrasEnvioSigueContando(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{subscriber("u1", "a@lab.local", "Ana")}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}, createErr: errors.New("db caída")}
	mail := &fakeMail{}
	d, _, _ := newDispatcher(subs, notifs, mail)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Len(t, mail.sent, 1)
}

// Un error al consultar el dedup omite a ese suscriptor (no reenvía a ciegas)
// sin afectar al resto.
func TestRun_ErrorDeDedupOmiteSuscriptor(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{subscriber("u1", "a@lab.local", "Ana")}}
	notifs := &fakeNotifications{existsErr: errors.New("timeout")}
	mail := &fakeMail{}
	d, _, _ := newDispatcher(subs, notifs, mail)

	res, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Empty(t, mail.sent)
}

func TestRun_AsuntoSingular(t *testing.T) {
	subs := &fakeSubscribers{subs: []*entity.User{subscriber("u1", "a@lab.local", "Ana")}}
	notifs := &fakeNotifications{sentByUser: map[string]bool{}}
	mail := &fakeMail{}
	fr := &fakeReagents{reagents: []*entity.Reagent{
		{ID: "r1", Name: "Etanol", TotalQuantity: 0, MinimumStock: 2, Active: true},
	}}
	fl := &fakeLots{}
	d := digest.NewDispatcher(subs, fr, fl, notifs, mail, nil)

	_, err := d.Run(context.Background(), today)

	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].Subject, "1 elemento del inventario requiere atención")
}
