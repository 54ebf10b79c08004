package easylogin

import (
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/inbound"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/outbound/db"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/clock"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/hash"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/otpcode"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/ratelimit"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/sms"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	RateLimiter ratelimit.Limiter          `validate:"required"`
	Codes       otpcode.Generator          `validate:"required"`
	SMS         sms.SMS                    `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	OID         uid.StringID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbEasy := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:      dbEasy,
		Validator:   dep.Validator,
		Config:      dep.Config,
		RateLimiter: dep.RateLimiter,
		Codes:       dep.Codes,
		SMS:         dep.SMS,
		HMAC:        dep.HMAC,
		Bcrypt:      dep.Bcrypt,
		UID:         dep.UID,
		OID:         dep.OID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
		Goroutine:   dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
