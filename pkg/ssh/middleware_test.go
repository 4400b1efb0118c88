package ssh

import (
	"context"
	"net"
	"testing"

	"github.com/charmbracelet/keygen"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/testsession"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/matryer/is"
	gossh "golang.org/x/crypto/ssh"
)

func TestPublicKeyHandlerKeepsLastFingerprint(t *testing.T) {
	is := is.New(t)
	dp := t.TempDir()
	first, err := keygen.New(dp+"/first", keygen.WithKeyType(keygen.Ed25519))
	is.NoErr(err)
	second, err := keygen.New(dp+"/second", keygen.WithKeyType(keygen.Ed25519))
	is.NoErr(err)

	firstKey, _, _, _, err := gossh.ParseAuthorizedKey([]byte(first.AuthorizedKey()))
	is.NoErr(err)
	secondKey, _, _, _, err := gossh.ParseAuthorizedKey([]byte(second.AuthorizedKey()))
	is.NoErr(err)

	s := &SSHServer{cfg: config.DefaultConfig()}
	ctx := newMockContext()

	is.True(s.PublicKeyHandler(ctx, firstKey))
	is.True(s.PublicKeyHandler(ctx, secondKey))
	is.Equal(ctx.Permissions().Extensions[fingerprintExtension], gossh.FingerprintSHA256(secondKey))

	is.True(!s.PublicKeyHandler(ctx, nil))
}

func TestExitMiddleware(t *testing.T) {
	t.Run("sends a zero status", func(t *testing.T) {
		is := is.New(t)
		s := testsession.New(t, &ssh.Server{
			Handler: ExitMiddleware(func(ssh.Session) {}),
		}, nil)
		is.NoErr(s.Run(""))
	})

	t.Run("keeps an earlier status", func(t *testing.T) {
		is := is.New(t)
		s := testsession.New(t, &ssh.Server{
			Handler: ExitMiddleware(func(s ssh.Session) {
				wish.Fatalln(s, ErrPermissionDenied)
			}),
		}, nil)
		err := s.Run("")
		ee, ok := err.(*gossh.ExitError)
		is.True(ok)
		is.Equal(ee.ExitStatus(), 1)
	})
}

func TestKeyboardInteractiveResetsFingerprint(t *testing.T) {
	is := is.New(t)
	s := &SSHServer{cfg: config.DefaultConfig()}
	ctx := newMockContext()
	ctx.permissions.Extensions[fingerprintExtension] = "SHA256:stale"

	is.True(s.KeyboardInteractiveHandler(ctx, nil))
	is.Equal(ctx.Permissions().Extensions[fingerprintExtension], "")
}

func TestSessionIDMissing(t *testing.T) {
	is := is.New(t)
	is.Equal(SessionID(newMockContext()), "")
}

// mockSSHContext implements ssh.Context for testing.
type mockSSHContext struct {
	context.Context
	values      map[any]any
	permissions *ssh.Permissions
}

func newMockContext() *mockSSHContext {
	return &mockSSHContext{
		Context:     context.Background(),
		values:      make(map[any]any),
		permissions: &ssh.Permissions{Permissions: &gossh.Permissions{Extensions: make(map[string]string)}},
	}
}

func (m *mockSSHContext) SetValue(key, value any) {
	if p, ok := value.(*ssh.Permissions); ok && key == ssh.ContextKeyPermissions {
		m.permissions = p
	}
	m.values[key] = value
}

func (m *mockSSHContext) Value(key any) any {
	if v, ok := m.values[key]; ok {
		return v
	}
	return m.Context.Value(key)
}

func (m *mockSSHContext) Permissions() *ssh.Permissions {
	return m.permissions
}

func (m *mockSSHContext) User() string          { return "" }
func (m *mockSSHContext) RemoteAddr() net.Addr  { return &net.TCPAddr{} }
func (m *mockSSHContext) LocalAddr() net.Addr   { return &net.TCPAddr{} }
func (m *mockSSHContext) ServerVersion() string { return "" }
func (m *mockSSHContext) ClientVersion() string { return "" }
func (m *mockSSHContext) SessionID() string     { return "" }
func (m *mockSSHContext) Lock()                 {}
func (m *mockSSHContext) Unlock()               {}
