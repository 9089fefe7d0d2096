//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"staybook/internal/domain/inventory"
	"staybook/internal/domain/reservation"
	"staybook/internal/infra"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory double for the persistence layer. Within serializes on a single
// mutex and restores a snapshot on error, which mirrors the isolation and
// rollback the real transactional store provides.

type invKey struct {
	hotelID    uuid.UUID
	roomTypeID uuid.UUID
	day        string
}

type idemKey struct {
	hotelID uuid.UUID
	key     uuid.UUID
}

func dayKey(hotelID, roomTypeID uuid.UUID, day time.Time) invKey {
	return invKey{hotelID: hotelID, roomTypeID: roomTypeID, day: day.Format("2006-01-02")}
}

type fakeStore struct {
	mu           sync.Mutex
	inventory    map[invKey]*inventory.Day
	reservations map[uuid.UUID]*reservation.Reservation
	idempotency  map[idemKey]*shared.IdempotencyRecord
	transitions  []shared.TransitionRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inventory:    make(map[invKey]*inventory.Day),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		idempotency:  make(map[idemKey]*shared.IdempotencyRecord),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for k, v := range s.inventory {
		c := *v
		snap.inventory[k] = &c
	}
	for k, v := range s.reservations {
		c := *v
		snap.reservations[k] = &c
	}
	for k, v := range s.idempotency {
		c := *v
		snap.idempotency[k] = &c
	}
	snap.transitions = append([]shared.TransitionRecord(nil), s.transitions...)
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.inventory = snap.inventory
	s.reservations = snap.reservations
	s.idempotency = snap.idempotency
	s.transitions = snap.transitions
}

// inventoryDay reads a counter row for assertions.
func (s *fakeStore) inventoryDay(hotelID, roomTypeID uuid.UUID, day time.Time) inventory.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.inventory[dayKey(hotelID, roomTypeID, day)]; ok {
		return *d
	}
	return inventory.Day{}
}

func (s *fakeStore) reservationByID(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reservations[id]; ok {
		c := *r
		return &c
	}
	return nil
}

func (s *fakeStore) seedInventory(hotelID, roomTypeID uuid.UUID, from, to time.Time, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		s.inventory[dayKey(hotelID, roomTypeID, d)] = &inventory.Day{
			HotelID: hotelID, RoomTypeID: roomTypeID, Day: d, Capacity: capacity,
		}
	}
}

func (s *fakeStore) seedReservation(res *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *res
	s.reservations[res.ID()] = &c
}

type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snap := u.store.snapshot()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func (u *fakeUoW) Idempotency() shared.IdempotencyRepository {
	return &fakeIdempotencyRepo{store: u.store, locking: true}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{store: t.store}
}

func (t *fakeTx) Inventory() shared.InventoryRepository {
	return &fakeInventoryRepo{store: t.store}
}

func (t *fakeTx) Idempotency() shared.IdempotencyRepository {
	return &fakeIdempotencyRepo{store: t.store}
}

func (t *fakeTx) Transitions() shared.TransitionRepository {
	return &fakeTransitionRepo{store: t.store}
}

type fakeInventoryRepo struct {
	store *fakeStore
}

func (r *fakeInventoryRepo) ensure(hotelID, roomTypeID uuid.UUID, day time.Time, defaultCapacity int) *inventory.Day {
	key := dayKey(hotelID, roomTypeID, day)
	if d, ok := r.store.inventory[key]; ok {
		return d
	}
	d := &inventory.Day{HotelID: hotelID, RoomTypeID: roomTypeID, Day: day, Capacity: defaultCapacity}
	r.store.inventory[key] = d
	return d
}

func (r *fakeInventoryRepo) LockDays(_ context.Context, hotelID, roomTypeID uuid.UUID, days []time.Time, defaultCapacity int) ([]inventory.Day, error) {
	locked := make([]inventory.Day, 0, len(days))
	for _, day := range days {
		locked = append(locked, *r.ensure(hotelID, roomTypeID, day, defaultCapacity))
	}
	return locked, nil
}

func (r *fakeInventoryRepo) AdjustHeld(_ context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, delta int, defaultCapacity int) error {
	d := r.ensure(hotelID, roomTypeID, day, defaultCapacity)
	d.Held += delta
	if err := d.CheckInvariant(); err != nil {
		d.Held -= delta
		return infra.WrapRepoErr("check constraint violated", err, infra.KindCheckViolated)
	}
	return nil
}

func (r *fakeInventoryRepo) AdjustReserved(_ context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, delta int, defaultCapacity int) error {
	d := r.ensure(hotelID, roomTypeID, day, defaultCapacity)
	d.Reserved += delta
	if err := d.CheckInvariant(); err != nil {
		d.Reserved -= delta
		return infra.WrapRepoErr("check constraint violated", err, infra.KindCheckViolated)
	}
	return nil
}

func (r *fakeInventoryRepo) TransferHeldToReserved(_ context.Context, hotelID, roomTypeID uuid.UUID, day time.Time) error {
	d, ok := r.store.inventory[dayKey(hotelID, roomTypeID, day)]
	if !ok {
		return infra.WrapRepoErr("inventory day not found", nil, infra.KindNotFound)
	}
	d.Held--
	d.Reserved++
	if err := d.CheckInvariant(); err != nil {
		d.Held++
		d.Reserved--
		return infra.WrapRepoErr("check constraint violated", err, infra.KindCheckViolated)
	}
	return nil
}

func (r *fakeInventoryRepo) SetCapacity(_ context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, capacity int) error {
	d := r.ensure(hotelID, roomTypeID, day, capacity)
	prev := d.Capacity
	d.Capacity = capacity
	if err := d.CheckInvariant(); err != nil {
		d.Capacity = prev
		return infra.WrapRepoErr("check constraint violated", err, infra.KindCheckViolated)
	}
	return nil
}

type fakeReservationRepo struct {
	store *fakeStore
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	c := *res
	r.store.reservations[res.ID()] = &c
	return nil
}

func (r *fakeReservationRepo) GetForUpdate(_ context.Context, hotelID, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok || res.HotelID() != hotelID {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	c := *res
	return &c, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.store.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	c := *res
	r.store.reservations[res.ID()] = &c
	return nil
}

func (r *fakeReservationRepo) FindExpiredPending(_ context.Context, now time.Time, limit int) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.store.reservations {
		if len(out) >= limit {
			break
		}
		if res.IsPendingPayment() && res.HoldExpired(now) {
			c := *res
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeIdempotencyRepo struct {
	store   *fakeStore
	locking bool
}

func (r *fakeIdempotencyRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, hotelID, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	defer r.lock()()
	k := idemKey{hotelID: hotelID, key: key}
	if _, ok := r.store.idempotency[k]; ok {
		return false, nil
	}
	r.store.idempotency[k] = &shared.IdempotencyRecord{
		HotelID:     hotelID,
		Key:         key,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		Status:      shared.IdempotencyStatusProcessing,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *fakeIdempotencyRepo) Get(_ context.Context, hotelID, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	defer r.lock()()
	rec, ok := r.store.idempotency[idemKey{hotelID: hotelID, key: key}]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	c := *rec
	return &c, nil
}

func (r *fakeIdempotencyRepo) MarkCompleted(_ context.Context, hotelID, key uuid.UUID, responseBody []byte, resultReservationID uuid.UUID) error {
	defer r.lock()()
	rec, ok := r.store.idempotency[idemKey{hotelID: hotelID, key: key}]
	if !ok || rec.Status != shared.IdempotencyStatusProcessing {
		return infra.WrapRepoErr("idempotency key not in processing state", nil, infra.KindNotFound)
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResponseBody = responseBody
	id := resultReservationID
	rec.ResultReservationID = &id
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(_ context.Context) (int64, error) {
	defer r.lock()()
	now := time.Now()
	var deleted int64
	for k, rec := range r.store.idempotency {
		if rec.ExpiresAt.Before(now) {
			delete(r.store.idempotency, k)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTransitionRepo struct {
	store *fakeStore
}

func (r *fakeTransitionRepo) Record(_ context.Context, rec shared.TransitionRecord) error {
	r.store.transitions = append(r.store.transitions, rec)
	return nil
}

// fakeReservationQueries serves read-after-write views straight from the
// store.
type fakeReservationQueries struct {
	store *fakeStore
}

func (q *fakeReservationQueries) GetByID(_ context.Context, hotelID, id uuid.UUID) (*queries.ReservationView, error) {
	res := q.store.reservationByID(id)
	if res == nil || res.HotelID() != hotelID {
		return nil, queries.ErrReservationNotFound
	}
	return &queries.ReservationView{
		ID:               res.ID(),
		HotelID:          res.HotelID(),
		RoomTypeID:       res.RoomTypeID(),
		CheckIn:          res.Stay().CheckIn(),
		CheckOut:         res.Stay().CheckOut(),
		Status:           res.Status().String(),
		HoldExpiresAt:    res.HoldExpiresAt(),
		PaymentIntentID:  res.PaymentIntentID(),
		TotalAmountCents: res.Total().AmountCents(),
		Currency:         res.Total().Currency(),
		GuestName:        res.Guest().Name(),
		GuestEmail:       res.Guest().Email(),
	}, nil
}

func (q *fakeReservationQueries) ListByHotel(_ context.Context, hotelID uuid.UUID, status *string, _ int) ([]*queries.ReservationListItem, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	var items []*queries.ReservationListItem
	for _, res := range q.store.reservations {
		if res.HotelID() != hotelID {
			continue
		}
		if status != nil && res.Status().String() != *status {
			continue
		}
		items = append(items, &queries.ReservationListItem{
			ID:               res.ID(),
			RoomTypeID:       res.RoomTypeID(),
			CheckIn:          res.Stay().CheckIn(),
			CheckOut:         res.Stay().CheckOut(),
			Status:           res.Status().String(),
			TotalAmountCents: res.Total().AmountCents(),
			GuestName:        res.Guest().Name(),
		})
	}
	return items, nil
}
