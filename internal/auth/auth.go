// Package auth derives "who is asking" from the session cookie and the
// user store. Permission rules across the app reduce to two questions it
// answers: is the requester the owner, and is the requester an admin.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/session"
	"github.com/jeffandersoncharriot/ByteBoard/internal/user"
)

// ErrUnauthenticated is returned whenever a request carries no usable
// session. The HTTP layer maps it to 401.
var ErrUnauthenticated = errors.New("You are not logged in!")

const (
	// LoginTTL is how long a fresh login lasts.
	LoginTTL = 30 * time.Minute
	// RefreshTTL is the short window granted on authenticated navigation.
	RefreshTTL = 2 * time.Minute
)

type Authorizer struct {
	sessions session.Store
	users    *user.Store
}

func New(sessions session.Store, users *user.Store) *Authorizer {
	return &Authorizer{sessions: sessions, users: users}
}

// Authenticate resolves the request's session cookie. It returns ("", nil)
// when there is no cookie, no matching session, or the session expired —
// expired sessions are deleted on the spot, which is the only purge
// mechanism there is.
func (a *Authorizer) Authenticate(ctx context.Context, r *http.Request) (string, *session.Session) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}

	sess, err := a.sessions.Get(ctx, cookie.Value)
	if err != nil || sess == nil {
		return "", nil
	}

	if sess.Expired() {
		_ = a.sessions.Delete(ctx, cookie.Value)
		return "", nil
	}

	return cookie.Value, sess
}

// CurrentUser resolves the authenticated requester to their account.
func (a *Authorizer) CurrentUser(ctx context.Context, r *http.Request) (*user.User, error) {
	_, sess := a.Authenticate(ctx, r)
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	id, err := bson.ObjectIDFromHex(sess.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return a.users.GetByID(ctx, id)
}

// Login creates a long-lived session for the user and sets the cookie.
func (a *Authorizer) Login(ctx context.Context, w http.ResponseWriter, userID bson.ObjectID) (*session.Session, error) {
	sess, err := a.sessions.Create(ctx, userID.Hex(), LoginTTL)
	if err != nil {
		return nil, errs.Wrap(err, "create a session")
	}
	session.SetCookie(w, sess.SessionID, sess.ExpiresAt)
	return sess, nil
}

// Logout deletes the request's session and erases the cookie. Fails with
// ErrUnauthenticated when there is nothing to log out of.
func (a *Authorizer) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sessionID, sess := a.Authenticate(ctx, r)
	if sess == nil {
		return ErrUnauthenticated
	}

	if err := a.sessions.Delete(ctx, sessionID); err != nil {
		return errs.Wrap(err, "delete a session")
	}
	session.ClearCookie(w)
	return nil
}

// Refresh supersedes the current session with a new short-lived one and
// reissues the cookie.
func (a *Authorizer) Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	oldID, sess := a.Authenticate(ctx, r)
	if sess == nil {
		return "", ErrUnauthenticated
	}

	fresh, err := a.sessions.Create(ctx, sess.UserID, RefreshTTL)
	if err != nil {
		return "", errs.Wrap(err, "refresh a session")
	}
	_ = a.sessions.Delete(ctx, oldID)

	session.SetCookie(w, fresh.SessionID, fresh.ExpiresAt)
	return fresh.SessionID, nil
}

// IsAdmin reports whether the requester is an administrator. Any failure
// to resolve the requester means false — permission checks fail closed.
func (a *Authorizer) IsAdmin(ctx context.Context, r *http.Request) bool {
	u, err := a.CurrentUser(ctx, r)
	if err != nil {
		logger.Error("could not verify admin status", map[string]any{"error": err.Error()})
		return false
	}
	return u.Admin
}

// SameUser compares two accounts by id.
func SameUser(a, b *user.User) bool {
	return a.ID == b.ID
}
