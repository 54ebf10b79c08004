package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/clock"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/hash"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/idempotency"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/storage"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type MemberRegisteredEvent struct {
	MemberID       int64
	Email          string
	FullName       string
	ChallengeToken string
}

type MemberForgotPasswordEvent struct {
	MemberID       int64
	Email          string
	ChallengeToken string
}

type repoMessaging interface {
	PublishMemberRegistered(ctx context.Context, msg MemberRegisteredEvent) error
	PublishMemberForgotPassword(ctx context.Context, msg MemberForgotPasswordEvent) error
}

type repoDB interface {
	GetMemberLoginInfo(ctx context.Context, email string) (*entity.MemberLoginInfo, error)
	GetMemberCredentialInfo(ctx context.Context, id int64) (*entity.MemberCredentialInfo, error)
	GetChallengeMemberByTokenPurpose(ctx context.Context, token string, p entity.ChallengePurpose) (*entity.ChallengeMember, error)
	GetMemberByEmail(ctx context.Context, email string, includeDeleted bool) (*entity.Member, error)
	GetMemberByID(ctx context.Context, id int64, includeDeleted bool) (*entity.Member, error)
	GetMemberList(ctx context.Context, filter entity.MemberListFilterData) ([]entity.Member, int64, error)
	GetBirthdayMembers(ctx context.Context, month time.Month) ([]entity.BirthdayMember, error)
	GetStats(ctx context.Context, now time.Time) (*entity.Stats, error)

	CreateChallenge(ctx context.Context, in entity.Challenge) error
	ConsumeChallenge(ctx context.Context, id int64) error

	NewRegistration(ctx context.Context, member entity.NewMember, chal entity.Challenge, hash string) error
	NewMember(ctx context.Context, member entity.NewMember) error
	PatchMember(ctx context.Context, member entity.PatchMember) error
	UpsertMembers(ctx context.Context, members []entity.UpsertMember) (created, updated int, err error)
	VerifyMemberRegistration(ctx context.Context, data entity.VerifyMemberRegistration) error
	ResetMemberPassword(ctx context.Context, memberID, challengeID int64, newHash string) error
	UpdateMemberCredential(ctx context.Context, memberID int64, hash string) error
	UpdateMemberProfile(ctx context.Context, id int64, fullName, phone string, birthDate *time.Time) error
	UpdateMemberPhoto(ctx context.Context, id int64, photoURL string) error
	MarkMemberDeleted(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	hmac          hash.Hash
	bcrypt        hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	oid           uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	OID           uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		uuid:          dep.UUID,
		oid:           dep.OID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("membership.usecase").Start(ctx, name)
}

func (s *Usecase) ensureMemberStatusAllowed(ctx context.Context, memberID int64, status entity.MemberStatus) error {
	switch status.Ensure() {
	case entity.MemberStatusUnknown:
		slog.WarnContext(ctx, "member account status is unrecognized", "member_id", memberID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)

	case entity.MemberStatusUnverified:
		slog.WarnContext(ctx, "member account is unverified", "member_id", memberID)
		return goerror.NewBusiness("email not verified", goerror.CodeForbidden)

	case entity.MemberStatusBanned:
		slog.WarnContext(ctx, "member account is banned", "member_id", memberID)
		return goerror.NewBusiness("account is banned", goerror.CodeForbidden)

	case entity.MemberStatusInactive:
		slog.WarnContext(ctx, "member account is deleted", "member_id", memberID)
		return goerror.NewBusiness("account is deleted", goerror.CodeForbidden)

	default:
		return nil
	}
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "member_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
