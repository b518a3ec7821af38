package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CookieName is the session cookie used for both shoppers and admins.
const CookieName = "appSession"

// UserTTL and AdminTTL are the session lifetimes set at login.
const (
	UserTTL  = 24 * time.Hour
	AdminTTL = 8 * time.Hour
)

var ErrNotFound = errors.New("session not found")
var ErrBadCookie = errors.New("invalid session cookie")

// Session is the server-side session document. Mongo removes it via the
// TTL index on expires_at; Get double-checks the expiry so a stale document
// is never honoured between sweeps.
type Session struct {
	ID            string    `bson:"_id"`
	IsLoggedIn    bool      `bson:"isLoggedIn"`
	AdminLoggedIn bool      `bson:"adminLoggedIn"`
	UserID        string    `bson:"user_id,omitempty"`
	AdminID       string    `bson:"admin_id,omitempty"`
	Email         string    `bson:"email,omitempty"`
	Name          string    `bson:"name,omitempty"`
	CartID        string    `bson:"cart_id,omitempty"`
	Role          string    `bson:"role,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
	ExpiresAt     time.Time `bson:"expires_at"`
}

// Options is the recognised session configuration surface.
type Options struct {
	Name     string
	Secret   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// DefaultOptions reads the session config from the environment. Secure and
// SameSite are relaxed outside production so local frontends still work.
func DefaultOptions() Options {
	return Options{
		Name:     CookieName,
		Secret:   os.Getenv("SESSION_SECRET"),
		Path:     "/",
		Secure:   os.Getenv("APP_ENV") == "production",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Store persists sessions in a MongoDB collection.
type Store struct {
	collection *mongo.Collection
	opts       Options
}

// Default is the store the middleware and controllers use, set in main.
var Default *Store

func NewStore(collection *mongo.Collection, opts Options) *Store {
	return &Store{collection: collection, opts: opts}
}

func (s *Store) Options() Options {
	return s.opts
}

// New creates an unauthenticated session document with the user TTL.
// Login replaces the expiry with the role-specific one.
func (s *Store) New(ctx context.Context) (*Session, error) {
	sess := &Session{
		ID:        newSessionID(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(UserTTL),
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by id. Expired sessions count as not found.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Save upserts the session document. Store failures surface to the caller;
// the user sees "try again" rather than the process dying.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": sess.ID},
		sess,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Destroy removes the session from the store.
func (s *Store) Destroy(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Regenerate swaps the session id, keeping the data. Used after login so a
// pre-login cookie can never be replayed as an authenticated one.
func (s *Store) Regenerate(ctx context.Context, sess *Session) error {
	oldID := sess.ID
	sess.ID = newSessionID()
	if err := s.Save(ctx, sess); err != nil {
		sess.ID = oldID
		return err
	}
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": oldID})
	return err
}

// DeleteExpired removes sessions past their expiry. The TTL index already
// does this; the cron sweep covers deployments where the index is missing.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func newSessionID() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("session: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// Sign produces the cookie value: session id plus an HMAC tag under the
// configured secret, so a tampered id is rejected before hitting the store.
func (o Options) Sign(id string) string {
	mac := hmac.New(sha256.New, []byte(o.Secret))
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a cookie value and returns the embedded session id.
func (o Options) Verify(value string) (string, error) {
	dot := strings.LastIndexByte(value, '.')
	if dot <= 0 {
		return "", ErrBadCookie
	}
	id, tag := value[:dot], value[dot+1:]

	mac := hmac.New(sha256.New, []byte(o.Secret))
	mac.Write([]byte(id))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(tag), []byte(expected)) {
		return "", ErrBadCookie
	}
	return id, nil
}

// InitUserSession marks the session as a logged-in shopper with a 24 hour
// expiry. The caller must Save (or Regenerate) afterwards.
func InitUserSession(sess *Session, userID, email, name, cartID, role string) {
	sess.IsLoggedIn = true
	sess.UserID = userID
	sess.Email = email
	sess.Name = name
	sess.CartID = cartID
	sess.Role = role
	sess.ExpiresAt = time.Now().Add(UserTTL)
}

// InitAdminSession marks the session as a logged-in admin with an 8 hour
// expiry.
func InitAdminSession(sess *Session, adminID, email, name string) {
	sess.AdminLoggedIn = true
	sess.AdminID = adminID
	sess.Email = email
	sess.Name = name
	sess.ExpiresAt = time.Now().Add(AdminTTL)
}
