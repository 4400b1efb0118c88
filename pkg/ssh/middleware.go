package ssh

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/connectclub/clubterm/pkg/markdown"
	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"
)

// ErrPermissionDenied is returned when a user is not allowed connect.
var ErrPermissionDenied = fmt.Errorf("permission denied")

// fingerprintExtension holds the SHA256 fingerprint of the last offered key.
const fingerprintExtension = "pubkey-fp"

// ContextKeySessionID is the context key of the session ID.
var ContextKeySessionID = &struct{ string }{"session-id"}

// AuthenticationMiddleware handles authentication.
func AuthenticationMiddleware(sh ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		// XXX: The authentication key is set in the context but gossh doesn't
		// validate the authentication. We need to verify that the _last_ key
		// that was approved is the one that's being used.
		pk := s.PublicKey()
		if pk != nil {
			perms := s.Permissions().Permissions
			if perms == nil {
				wish.Fatalln(s, ErrPermissionDenied)
				return
			}

			fp := perms.Extensions[fingerprintExtension]
			if fp != gossh.FingerprintSHA256(pk) {
				wish.Fatalln(s, ErrPermissionDenied)
				return
			}
		}

		sh(s)
	}
}

// ExitMiddleware ends the session with a zero exit status once the handlers
// after it return. Sessions that already exited keep their status.
func ExitMiddleware(sh ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		sh(s)
		s.Exit(0) //nolint:errcheck
	}
}

// ContextMiddleware adds the config, markdown renderer, and logger to the
// session context.
func ContextMiddleware(cfg *config.Config, md *markdown.Renderer, logger *log.Logger) func(ssh.Handler) ssh.Handler {
	return func(sh ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			id := uuid.NewString()
			s.Context().SetValue(ContextKeySessionID, id)
			s.Context().SetValue(config.ContextKey, cfg)
			s.Context().SetValue(markdown.ContextKey, md)
			s.Context().SetValue(log.ContextKey, logger.WithPrefix("ssh").With("session", id))
			sh(s)
		}
	}
}

// SessionID returns the session ID set by ContextMiddleware.
func SessionID(ctx ssh.Context) string {
	if id, ok := ctx.Value(ContextKeySessionID).(string); ok {
		return id
	}
	return ""
}

// LoggingMiddleware logs the ssh connection.
func LoggingMiddleware(sh ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ctx := s.Context()
		logger := log.FromContext(ctx)
		ct := time.Now()
		ptyReq, _, isPty := s.Pty()
		logArgs := []interface{}{
			"addr", s.RemoteAddr().String(),
			"cmd", s.Command(),
		}

		if isPty {
			logArgs = append(logArgs,
				"term", ptyReq.Term,
				"width", ptyReq.Window.Width,
				"height", ptyReq.Window.Height,
			)
		}

		if config.IsVerbose() {
			var fp string
			if pk := s.PublicKey(); pk != nil {
				fp = gossh.FingerprintSHA256(pk)
			}
			logArgs = append(logArgs,
				"key", fp,
				"envs", s.Environ(),
			)
		}

		msg := fmt.Sprintf("user %q", s.User())
		logger.Debug(msg+" connected", logArgs...)
		sh(s)
		logger.Debug(msg+" disconnected", append(logArgs, "duration", time.Since(ct))...)
	}
}
