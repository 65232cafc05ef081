package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	creds   Credentials
	loadErr error
	saveErr error
	saves   int
	cleared bool
}

func (m *memStore) Load() (Credentials, error) { return m.creds, m.loadErr }

func (m *memStore) Save(c Credentials) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.creds = c
	return nil
}

func (m *memStore) Clear() error {
	m.cleared = true
	m.creds = Credentials{}
	return nil
}

func TestCredentials_AuthHeader(t *testing.T) {
	c := Credentials{Username: "test@liferay.com", Password: "learn"}
	assert.Equal(t, "Basic dGVzdEBsaWZlcmF5LmNvbTpsZWFybg==", c.AuthHeader())
	assert.True(t, c.Complete())
	assert.False(t, Credentials{Username: "x"}.Complete())
}

func TestBootstrap(t *testing.T) {
	stored := Credentials{Username: "alice", Password: "s3cret"}

	tests := []struct {
		name      string
		stored    Credentials
		inMemory  Credentials
		wantLogin bool
		wantCreds Credentials
	}{
		{
			name:      "stored differs from empty memory",
			stored:    stored,
			wantLogin: true,
			wantCreds: stored,
		},
		{
			name:      "stored differs from other memory",
			stored:    stored,
			inMemory:  Credentials{Username: "bob", Password: "pw"},
			wantLogin: true,
			wantCreds: stored,
		},
		{
			name:      "stored equals memory",
			stored:    stored,
			inMemory:  stored,
			wantLogin: false,
			wantCreds: stored,
		},
		{
			name:      "stored password missing",
			stored:    Credentials{Username: "alice"},
			inMemory:  Credentials{Username: "bob", Password: "pw"},
			wantLogin: false,
			wantCreds: Credentials{Username: "bob", Password: "pw"},
		},
		{
			name:      "nothing stored",
			wantLogin: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{creds: tt.stored}
			s := New(store, tt.inMemory)

			loggedIn, err := s.Bootstrap(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantLogin, loggedIn)
			assert.Equal(t, tt.wantCreds, s.Credentials())
		})
	}
}

func TestBootstrap_StoreError(t *testing.T) {
	current := Credentials{Username: "bob", Password: "pw"}
	s := New(&memStore{loadErr: ErrCredentialsCorrupted}, current)

	loggedIn, err := s.Bootstrap(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialsCorrupted)
	assert.False(t, loggedIn)
	assert.Equal(t, current, s.Credentials())
}

func TestBootstrap_NilStore(t *testing.T) {
	s := New(nil, Credentials{})
	loggedIn, err := s.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestLoginAndLogout(t *testing.T) {
	store := &memStore{}
	s := New(store, Credentials{})

	creds := Credentials{Username: "alice", Password: "pw"}
	require.NoError(t, s.Login(creds))
	assert.Equal(t, creds, s.Credentials())
	assert.Equal(t, creds, store.creds)

	require.NoError(t, s.Logout())
	assert.Equal(t, Credentials{}, s.Credentials())
	assert.True(t, store.cleared)
}

func TestLogin_PersistFailureKeepsMemory(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	s := New(store, Credentials{})

	creds := Credentials{Username: "alice", Password: "pw"}
	err := s.Login(creds)

	require.Error(t, err)
	assert.Equal(t, creds, s.Credentials())
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, creds)

	want := Credentials{Username: "alice", Password: "pw"}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = os.Stat(path + ".lock")
	assert.True(t, os.IsNotExist(err), "lock file must be released")

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, got)
}

func TestFileStore_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrCredentialsCorrupted)

	require.NoError(t, os.WriteFile(path, []byte(`{"version":9,"username":"a","password":"b"}`), 0o600))
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrCredentialsCorrupted)
}

func TestFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestSession_BootstrapFromFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(Credentials{Username: "alice", Password: "pw"}))

	s := New(store, Credentials{})
	loggedIn, err := s.Bootstrap(context.Background())

	require.NoError(t, err)
	assert.True(t, loggedIn)
	assert.Equal(t, "alice", s.Credentials().Username)
}
