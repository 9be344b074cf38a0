package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/photoshare/apiserver/internal/auth"
	"github.com/photoshare/apiserver/internal/logging"
	"github.com/photoshare/apiserver/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type publishedEvent struct {
	channel string
	data    []byte
	attrs   map[string]string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.events = append(p.events, publishedEvent{channel: channel, data: data, attrs: attrs})
	return "msg-1", nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.attrs["type"])
	}
	return out
}

type fixture struct {
	users     *store.MemoryUserRepository
	photos    *store.MemoryPhotoRepository
	comments  *store.MemoryCommentRepository
	publisher *recordingPublisher
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenService

	userService    *UserService
	authService    *AuthService
	photoService   *PhotoService
	commentService *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:     store.NewMemoryUserRepository(),
		photos:    store.NewMemoryPhotoRepository(),
		comments:  store.NewMemoryCommentRepository(),
		publisher: &recordingPublisher{},
		hasher:    auth.NewPasswordHasher(bcrypt.MinCost),
	}
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	f.tokens = tokens

	log := logging.Discard()
	events := NewEvents(f.publisher, "events", log)

	f.userService = NewUserService(f.users)
	f.authService, err = NewAuthService(f.userService, f.hasher, f.tokens, events, log)
	require.NoError(t, err)
	f.photoService = NewPhotoService(f.photos, f.comments, f.userService, events, log)
	f.commentService = NewCommentService(f.comments, f.photos, f.userService)
	return f
}
