package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	saved   *Session
	saves   int
	clears  int
	loadErr error
}

func (m *memStore) Save(ctx context.Context, s *Session) error {
	m.saves++
	m.saved = s
	return nil
}

func (m *memStore) Load(ctx context.Context) (*Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved, nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.clears++
	m.saved = nil
	return nil
}

func TestSetAndCurrent(t *testing.T) {
	store := &memStore{}
	mgr := NewManager(store)
	ctx := context.Background()

	assert.Nil(t, mgr.Current())

	s := &Session{UserID: "u1", Email: "ana@x.com", Token: "tok"}
	mgr.Set(ctx, s)
	assert.Equal(t, s, mgr.Current())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, s, store.saved)

	mgr.Clear(ctx)
	assert.Nil(t, mgr.Current())
	assert.Equal(t, 1, store.clears)
	assert.Nil(t, store.saved)
}

func TestObserversRunInRegistrationOrder(t *testing.T) {
	mgr := NewManager(&memStore{})
	ctx := context.Background()

	var seen []string
	mgr.Subscribe(func(s *Session) { seen = append(seen, "first") })
	mgr.Subscribe(func(s *Session) { seen = append(seen, "second") })
	mgr.Subscribe(func(s *Session) { seen = append(seen, "third") })

	mgr.Set(ctx, &Session{UserID: "u1"})
	assert.Equal(t, []string{"first", "second", "third"}, seen)
}

func TestObserverSeesNilOnLogout(t *testing.T) {
	mgr := NewManager(&memStore{})
	ctx := context.Background()

	var got []*Session
	mgr.Subscribe(func(s *Session) { got = append(got, s) })

	s := &Session{UserID: "u1"}
	mgr.Set(ctx, s)
	mgr.Clear(ctx)

	require.Len(t, got, 2)
	assert.Equal(t, s, got[0])
	assert.Nil(t, got[1])
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	mgr := NewManager(&memStore{})
	ctx := context.Background()

	calls := 0
	unsub := mgr.Subscribe(func(s *Session) { calls++ })
	mgr.Set(ctx, &Session{UserID: "u1"})
	unsub()
	mgr.Set(ctx, &Session{UserID: "u2"})

	assert.Equal(t, 1, calls)
}

func TestRestore(t *testing.T) {
	s := &Session{UserID: "u1", Email: "ana@x.com"}
	store := &memStore{saved: s}
	mgr := NewManager(store)

	notified := 0
	mgr.Subscribe(func(*Session) { notified++ })
	mgr.Restore(context.Background())

	require.NotNil(t, mgr.Current())
	assert.Equal(t, "u1", mgr.Current().UserID)
	assert.Equal(t, 1, notified, "restore replays the session to observers")
}

func TestRestoreFailureStartsLoggedOut(t *testing.T) {
	store := &memStore{loadErr: errors.New("redis down")}
	mgr := NewManager(store)
	mgr.Restore(context.Background())
	assert.Nil(t, mgr.Current())
}

func TestRestoreEmptyStore(t *testing.T) {
	mgr := NewManager(&memStore{})
	mgr.Restore(context.Background())
	assert.Nil(t, mgr.Current())
}
