package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/repo"
	"github.com/mboehm/travellog/internal/service"
)

// mockDestinationRepo is a hand-written test double for repo.DestinationRepo.
// Each method is a function field — set only the ones your test needs.
type mockDestinationRepo struct {
	listByOwner func(ctx context.Context, owner uuid.UUID) ([]domain.Destination, error)
	create      func(ctx context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error)
	getByID     func(ctx context.Context, owner uuid.UUID, id string) (domain.Destination, error)
	update      func(ctx context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error)
	delete      func(ctx context.Context, owner uuid.UUID, id string) error
}

func (m *mockDestinationRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Destination, error) {
	if m.listByOwner == nil {
		return nil, nil
	}
	return m.listByOwner(ctx, owner)
}
func (m *mockDestinationRepo) Create(ctx context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error) {
	return m.create(ctx, owner, data)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, owner uuid.UUID, id string) (domain.Destination, error) {
	return m.getByID(ctx, owner, id)
}
func (m *mockDestinationRepo) Update(ctx context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error) {
	return m.update(ctx, owner, id, data)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	return m.delete(ctx, owner, id)
}

// compile-time check: mockDestinationRepo must satisfy repo.DestinationRepo.
var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var testOwner = uuid.MustParse("5f6f3a9e-7c1d-4a40-90dd-0123456789ab")

func testIdentity() domain.Identity {
	return domain.Identity{ID: testOwner, Email: "family@example.com", Name: "Family Account"}
}

func validCreateData() domain.CreateDestinationData {
	return domain.CreateDestinationData{
		Name:    "Paris",
		Country: "France",
		Lat:     48.8566,
		Lng:     2.3522,
		Status:  domain.StatusVisited,
		Notes:   "Loved the Louvre",
		Photos:  []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"},
	}
}

// echoRepo persists nothing: it echoes inputs back with a synthetic id and
// timestamps, which is all the validation and collection-ordering tests need.
func echoRepo() *mockDestinationRepo {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &mockDestinationRepo{
		create: func(_ context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error) {
			return domain.Destination{
				ID:        uuid.NewString(),
				OwnerID:   owner,
				Name:      data.Name,
				Country:   data.Country,
				Lat:       data.Lat,
				Lng:       data.Lng,
				Status:    data.Status,
				Date:      data.Date,
				Notes:     data.Notes,
				Photos:    data.Photos,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},
		update: func(_ context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error) {
			return domain.Destination{
				ID:      id,
				OwnerID: owner,
				Name:    data.Name,
				Country: data.Country,
				Lat:     data.Lat,
				Lng:     data.Lng,
				Status:  data.Status,
				Date:    data.Date,
				Notes:   data.Notes,
				Photos:  data.Photos,
			}, nil
		},
	}
}

func newSession(t *testing.T, remote *mockDestinationRepo) *service.Session {
	t.Helper()
	svc := service.NewDestinationService(remote, &mockDestinationRepo{}, service.Config{MaxPhotos: 5}, nil)
	return svc.Open(context.Background(), testIdentity())
}

// ---- Create tests ----------------------------------------------------------

func TestSession_Create_InsertsAtHeadWithPhotosIntact(t *testing.T) {
	sess := newSession(t, echoRepo())

	first, err := sess.Create(context.Background(), validCreateData())
	require.NoError(t, err)

	second := validCreateData()
	second.Name = "Kyoto"
	second.Country = "Japan"
	second.Photos = []string{"data:image/png;base64,CCCC"}
	_, err = sess.Create(context.Background(), second)
	require.NoError(t, err)

	list := sess.List()
	require.Len(t, list, 2)
	// Newest-created first, without a reload.
	assert.Equal(t, "Kyoto", list[0].Name)
	assert.Equal(t, "Paris", list[1].Name)
	// Submitted photo payloads come back verbatim and in order.
	assert.Equal(t, []string{"data:image/png;base64,CCCC"}, list[0].Photos)
	assert.Equal(t, validCreateData().Photos, first.Photos)
}

func TestSession_Create_ZeroCoordinates_NeverCallsRepo(t *testing.T) {
	called := false
	remote := echoRepo()
	inner := remote.create
	remote.create = func(ctx context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error) {
		called = true
		return inner(ctx, owner, data)
	}
	sess := newSession(t, remote)

	data := validCreateData()
	data.Lat, data.Lng = 0, 0 // "no location selected" sentinel

	_, err := sess.Create(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called, "validation failure must not reach the persistence layer")
	assert.Empty(t, sess.List())
}

func TestSession_Create_MissingName(t *testing.T) {
	sess := newSession(t, echoRepo())

	data := validCreateData()
	data.Name = "   " // whitespace-only should be treated as empty

	_, err := sess.Create(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSession_Create_MissingCountry(t *testing.T) {
	sess := newSession(t, echoRepo())

	data := validCreateData()
	data.Country = ""

	_, err := sess.Create(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSession_Create_TooManyPhotos_RejectsWholeBatch(t *testing.T) {
	sess := newSession(t, echoRepo())

	data := validCreateData()
	data.Photos = make([]string, 6)
	for i := range data.Photos {
		data.Photos[i] = "data:image/jpeg;base64,AAAA"
	}

	_, err := sess.Create(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, sess.List(), "no partial photo set may be accepted")
}

func TestSession_Create_BadPhotoPayload_RejectsWholeBatch(t *testing.T) {
	sess := newSession(t, echoRepo())

	data := validCreateData()
	data.Photos = []string{"data:image/jpeg;base64,AAAA", "not-an-image"}

	_, err := sess.Create(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, sess.List())
}

func TestSession_Create_RepoFailure_LeavesNoGhostEntry(t *testing.T) {
	remote := echoRepo()
	remote.create = func(context.Context, uuid.UUID, domain.CreateDestinationData) (domain.Destination, error) {
		return domain.Destination{}, errors.New("network down")
	}
	sess := newSession(t, remote)

	_, err := sess.Create(context.Background(), validCreateData())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, sess.List(), "a failed create must leave the collection untouched")
}

// ---- Update tests ----------------------------------------------------------

func TestSession_Update_PreservesPosition(t *testing.T) {
	sess := newSession(t, echoRepo())

	a, err := sess.Create(context.Background(), validCreateData())
	require.NoError(t, err)
	bData := validCreateData()
	bData.Name = "Kyoto"
	_, err = sess.Create(context.Background(), bData)
	require.NoError(t, err)

	// a sits at index 1 after b's head insert; updating it must not move it.
	upd := domain.UpdateDestinationData{
		Name:    "Paris, revisited",
		Country: "France",
		Lat:     a.Lat,
		Lng:     a.Lng,
		Status:  domain.StatusVisited,
		Notes:   a.Notes,
		Photos:  a.Photos,
	}
	_, err = sess.Update(context.Background(), a.ID, upd)
	require.NoError(t, err)

	list := sess.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Kyoto", list[0].Name)
	assert.Equal(t, "Paris, revisited", list[1].Name)
}

func TestSession_Update_NotOwned_BehavesAsNotFound(t *testing.T) {
	remote := echoRepo()
	remote.update = func(context.Context, uuid.UUID, string, domain.UpdateDestinationData) (domain.Destination, error) {
		// The repo scopes by owner: someone else's row affects zero rows.
		return domain.Destination{}, domain.ErrNotFound
	}
	sess := newSession(t, remote)

	upd := domain.UpdateDestinationData{
		Name: "Hijack", Country: "Nowhere", Lat: 1, Lng: 1, Status: domain.StatusWishlist,
	}
	_, err := sess.Update(context.Background(), "someone-elses-id", upd)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, sess.List())
}

func TestSession_Update_PhotosComeBackVerbatim(t *testing.T) {
	remote := echoRepo()
	remote.update = func(_ context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error) {
		// A misbehaving backend that drops photos on the round trip.
		return domain.Destination{ID: id, OwnerID: owner, Name: data.Name, Photos: nil}, nil
	}
	sess := newSession(t, remote)

	photos := []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"}
	upd := domain.UpdateDestinationData{
		Name: "Paris", Country: "France", Lat: 48.85, Lng: 2.35,
		Status: domain.StatusVisited, Photos: photos,
	}
	got, err := sess.Update(context.Background(), "some-id", upd)

	require.NoError(t, err)
	assert.Equal(t, photos, got.Photos, "submitted photos must survive the round trip")
}

// ---- Delete tests ----------------------------------------------------------

func TestSession_Delete_IsIdempotent(t *testing.T) {
	deleted := map[string]bool{}
	remote := echoRepo()
	remote.delete = func(_ context.Context, _ uuid.UUID, id string) error {
		if deleted[id] {
			return domain.ErrNotFound
		}
		deleted[id] = true
		return nil
	}
	sess := newSession(t, remote)

	created, err := sess.Create(context.Background(), validCreateData())
	require.NoError(t, err)

	require.NoError(t, sess.Delete(context.Background(), created.ID))
	assert.Empty(t, sess.List())

	// Second delete: already gone, still no error, collection unchanged.
	require.NoError(t, sess.Delete(context.Background(), created.ID))
	assert.Empty(t, sess.List())
}

func TestSession_Delete_TransportFailure_LeavesCollection(t *testing.T) {
	remote := echoRepo()
	remote.delete = func(context.Context, uuid.UUID, string) error {
		return errors.New("network down")
	}
	sess := newSession(t, remote)

	created, err := sess.Create(context.Background(), validCreateData())
	require.NoError(t, err)

	err = sess.Delete(context.Background(), created.ID)

	require.Error(t, err)
	assert.Len(t, sess.List(), 1, "a failed delete must leave the entry for retry")
}

// ---- GetByID tests ---------------------------------------------------------

func TestSession_GetByID_DistinguishesNotFoundFromTransport(t *testing.T) {
	remote := echoRepo()
	remote.getByID = func(context.Context, uuid.UUID, string) (domain.Destination, error) {
		return domain.Destination{}, domain.ErrNotFound
	}
	sess := newSession(t, remote)

	_, err := sess.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	remote.getByID = func(context.Context, uuid.UUID, string) (domain.Destination, error) {
		return domain.Destination{}, errors.New("network down")
	}
	_, err = sess.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ---- Load / lifecycle tests ------------------------------------------------

func TestOpen_RemoteReadFailure_FailsSoftToEmpty(t *testing.T) {
	remote := echoRepo()
	remote.listByOwner = func(context.Context, uuid.UUID) ([]domain.Destination, error) {
		return nil, errors.New("network down")
	}

	sess := newSession(t, remote)

	// The UI must never be stuck on a read error: it sees an empty list.
	assert.NotNil(t, sess.List())
	assert.Empty(t, sess.List())
}

func TestSession_Closed_DiscardsLateCreate(t *testing.T) {
	release := make(chan struct{})
	remote := echoRepo()
	inner := remote.create
	remote.create = func(ctx context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error) {
		<-release
		return inner(ctx, owner, data)
	}
	sess := newSession(t, remote)

	done := make(chan error, 1)
	go func() {
		_, err := sess.Create(context.Background(), validCreateData())
		done <- err
	}()

	// Logout lands while the create is in flight.
	sess.Close()
	close(release)

	err := <-done
	assert.ErrorIs(t, err, service.ErrSessionClosed)
	assert.Empty(t, sess.List(), "a late response must never reach a closed collection")
}

func TestOpen_DemoIdentity_UsesDemoPath(t *testing.T) {
	remoteCalled := false
	remote := &mockDestinationRepo{
		listByOwner: func(context.Context, uuid.UUID) ([]domain.Destination, error) {
			remoteCalled = true
			return nil, nil
		},
	}
	demoCalled := false
	demo := &mockDestinationRepo{
		listByOwner: func(context.Context, uuid.UUID) ([]domain.Destination, error) {
			demoCalled = true
			return nil, nil
		},
	}

	svc := service.NewDestinationService(remote, demo, service.Config{}, nil)
	svc.Open(context.Background(), domain.Identity{ID: domain.DemoIdentityID, Email: "demo@example.com"})

	assert.True(t, demoCalled, "demo identity must load from the local path")
	assert.False(t, remoteCalled, "demo identity must never touch the remote path")
}

func TestSession_List_ReturnsACopy(t *testing.T) {
	sess := newSession(t, echoRepo())
	_, err := sess.Create(context.Background(), validCreateData())
	require.NoError(t, err)

	list := sess.List()
	list[0].Name = "mutated"

	assert.Equal(t, "Paris", sess.List()[0].Name)
}
