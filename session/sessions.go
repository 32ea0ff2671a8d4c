package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"flyerboard/bizerror"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const TokenExpiration = 24 * time.Hour

const KeySecCtx = "SecCtx"

// KeySecToken is the session-scoped auth cookie.
const KeySecToken = "flyer-app-auth"

type LoginRequest struct {
	Password string `json:"password"`
}

type Session struct {
	Token       string    `json:"token"`
	SigningTime time.Time `json:"signingTime"`

	Context context.Context `json:"-"`
}

func (s *Session) Clone() Session {
	return Session{Token: s.Token, SigningTime: s.SigningTime, Context: s.Context}
}

// Gate guards the board with one shared password. Tokens live in an
// in-memory cache and every login attempt is rate limited.
type Gate struct {
	passwordHash [sha256.Size]byte
	limiter      *rate.Limiter

	TokenCache *cache.Cache
}

func NewGate(password string, loginRate float64, loginBurst int) *Gate {
	if loginBurst <= 0 {
		loginBurst = 1
	}
	return &Gate{
		passwordHash: sha256.Sum256([]byte(password)),
		limiter:      rate.NewLimiter(rate.Limit(loginRate), loginBurst),
		TokenCache:   cache.New(TokenExpiration, 1*time.Minute),
	}
}

func (g *Gate) Login(password string) (*Session, error) {
	if !g.limiter.Allow() {
		return nil, bizerror.ErrTooManyRequests
	}
	hash := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(hash[:], g.passwordHash[:]) != 1 {
		return nil, bizerror.ErrInvalidPassword
	}
	s := &Session{Token: uuid.New().String(), SigningTime: time.Now()}
	g.TokenCache.Set(s.Token, s, cache.DefaultExpiration)
	return s, nil
}

func (g *Gate) Logout(token string) {
	if token != "" {
		g.TokenCache.Delete(token)
	}
}

func (g *Gate) Lookup(token string) (*Session, bool) {
	value, found := g.TokenCache.Get(token)
	if !found {
		return nil, false
	}
	s, ok := value.(*Session)
	return s, ok
}

func (g *Gate) AuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(KeySecToken)
		if err != nil || token == "" {
			panic(bizerror.ErrUnauthenticated)
		}
		s, found := g.Lookup(token)
		if !found {
			panic(bizerror.ErrUnauthenticated)
		}
		InjectSessionIntoGinContext(ctx, s)
		ctx.Next()
	}
}

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySecCtx)
	if !found {
		return &Session{Context: ctx.Request.Context()}
	}
	s0, ok := value.(*Session)
	if !ok || s0.Token == "" {
		return &Session{Context: ctx.Request.Context()}
	}
	s := s0.Clone()
	s.Context = ctx.Request.Context() // trace context
	return &s
}

func InjectSessionIntoGinContext(ctx *gin.Context, s *Session) {
	if s != nil && s.Token != "" {
		ctx.Set(KeySecCtx, s)
	}
}
