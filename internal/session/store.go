package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/florelia/floraladmin/internal/domain"
)

const (
	bucketName = "session"
	tokenKey   = "adminToken"
	profileKey = "adminProfile"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the single holder of the admin bearer token and identity. The
// token is written only by login, password-change and logout flows; every
// outbound request reads it through Token().
type Store struct {
	db *bolt.DB

	mu    sync.RWMutex
	token string
	admin domain.Admin
}

// Open loads the persisted session from the bbolt file at path, creating the
// file when absent.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	s := &Store{db: db}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if v := b.Get([]byte(tokenKey)); v != nil {
			s.token = string(v)
		}
		if v := b.Get([]byte(profileKey)); v != nil {
			_ = json.Unmarshal(v, &s.admin)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "load session")
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Store) Admin() domain.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// SetToken replaces the session after a successful login. It is one of the
// only two mutation entry points, Clear being the other.
func (s *Store) SetToken(token string, admin domain.Admin) error {
	s.mu.Lock()
	s.token = token
	s.admin = admin
	s.mu.Unlock()

	profile, err := json.Marshal(admin)
	if err != nil {
		return errors.Wrap(err, "encode admin profile")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Put([]byte(tokenKey), []byte(token)); err != nil {
			return err
		}
		return b.Put([]byte(profileKey), profile)
	})
}

// Clear drops the session; used by logout and forced re-login after a
// password change.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.admin = domain.Admin{}
	s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Delete([]byte(tokenKey)); err != nil {
			return err
		}
		return b.Delete([]byte(profileKey))
	})
}

// Identity returns the admin identifier decoded from the current token, or
// the empty string when no token is held.
func (s *Store) Identity() string {
	return DecodeIdentity(s.Token())
}

// DecodeIdentity extracts the admin identifier from the token payload without
// verifying the signature. The backend is the trust boundary; this value is
// for display and ownership filtering only and must never drive
// access-control decisions.
func DecodeIdentity(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, key := range []string{"adminId", "id", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
