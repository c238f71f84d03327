// Package session persists the authenticated identity and bearer token.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"taskcli/internal/service"
)

const (
	bucketName = "session"
	keyToken   = "auth_token"
	keyUser    = "user_data"
)

// Session is the authenticated identity for the current user.
// It is created on login, loaded at startup, and destroyed on logout or on
// an authentication-rejected response from the API.
type Session struct {
	Token string
	User  service.User
}

// Store is the durable session store. It holds two keys in a single bbolt
// bucket: the opaque bearer token and the JSON-serialized user.
type Store struct {
	db *bolt.DB
}

// Open initializes the session database and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted session. It returns nil when no token is stored
// or when the stored user data is missing or malformed: a corrupt session is
// treated as absent, not as an error.
func (s *Store) Load() (*Session, error) {
	var sess *Session
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		token := b.Get([]byte(keyToken))
		if len(token) == 0 {
			return nil
		}
		var user service.User
		if err := json.Unmarshal(b.Get([]byte(keyUser)), &user); err != nil {
			return nil
		}
		sess = &Session{Token: string(token), User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Save writes the token and user in a single transaction.
func (s *Store) Save(sess Session) error {
	userData, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Put([]byte(keyToken), []byte(sess.Token)); err != nil {
			return err
		}
		return b.Put([]byte(keyUser), userData)
	})
}

// Clear removes both keys.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Delete([]byte(keyToken)); err != nil {
			return err
		}
		return b.Delete([]byte(keyUser))
	})
}

// Token returns the stored bearer token, or "" when absent.
func (s *Store) Token() string {
	var token string
	_ = s.db.View(func(tx *bolt.Tx) error {
		token = string(tx.Bucket([]byte(bucketName)).Get([]byte(keyToken)))
		return nil
	})
	return token
}

// IsAuthenticated reports whether a token is stored.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
