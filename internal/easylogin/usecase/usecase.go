package usecase

import (
	"context"
	"errors"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/clock"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/hash"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/otpcode"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/ratelimit"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/sms"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// ErrRateLimited is returned by OtpStart when the origin exceeded its window.
var ErrRateLimited = errors.New("easylogin: too many requests")

// maxAttempts caps the number of verification checks per challenge.
const maxAttempts int16 = 5

// Wire-contract messages. The start endpoint collapses every processed
// outcome into one identical message; verify may be more specific.
const (
	msgProcessed   = "processed"
	msgVerifyFail  = "verification failed"
	msgCodeUsed    = "code already used"
	msgCodeExpired = "code expired"
	msgExhausted   = "too many attempts"
	msgWrongCode   = "incorrect code"
	msgVerified    = "verified"
)

type repoDB interface {
	GetMembersByName(ctx context.Context, name string, limit int32) ([]entity.Member, error)
	GetNewestChallenge(ctx context.Context, memberID int64, purpose entity.ChallengePurpose) (*entity.Challenge, error)

	CreateChallenge(ctx context.Context, in entity.Challenge) error
	IncrementChallengeAttempts(ctx context.Context, id int64) error
	ConsumeChallenge(ctx context.Context, id int64) error
	SetMemberPassword(ctx context.Context, memberID int64, hash string) error
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	cfg       config.Config
	limiter   ratelimit.Limiter
	codes     otpcode.Generator
	sms       sms.SMS
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	RepoDB      repoDB
	Validator   validator.Validator
	Config      config.Config
	RateLimiter ratelimit.Limiter
	Codes       otpcode.Generator
	SMS         sms.SMS
	HMAC        hash.Hash
	Bcrypt      hash.Hash
	UID         uid.NumberID
	OID         uid.StringID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		cfg:       dep.Config,
		limiter:   dep.RateLimiter,
		codes:     dep.Codes,
		sms:       dep.SMS,
		hmac:      dep.HMAC,
		bcrypt:    dep.Bcrypt,
		uid:       dep.UID,
		oid:       dep.OID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("easylogin.usecase").Start(ctx, name)
}
