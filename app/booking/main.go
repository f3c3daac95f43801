package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/joho/godotenv"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
	"github.com/yunmaoQu/train-booking/app/booking/internal/conf"
	"github.com/yunmaoQu/train-booking/app/booking/internal/data"
	"github.com/yunmaoQu/train-booking/app/booking/internal/server"
	"github.com/yunmaoQu/train-booking/app/booking/internal/service"
)

var (
	Name    = "booking"
	Version = "dev"

	flagconf string
	flagenv  string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagenv, "env", ".env", "optional dotenv file")
}

func main() {
	flag.Parse()
	logger := klog.With(klog.NewStdLogger(os.Stdout),
		"ts", klog.DefaultTimestamp,
		"caller", klog.DefaultCaller,
		"service.name", Name,
		"service.version", Version,
	)
	helper := klog.NewHelper(logger)

	if err := godotenv.Load(flagenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		helper.Fatalf("load %s: %v", flagenv, err)
	}

	c := config.New(
		config.WithSource(
			env.NewSource("TICKETBOOK_"),
			file.NewSource(flagconf),
		),
	)
	defer c.Close()
	if err := c.Load(); err != nil {
		helper.Fatalf("load config: %v", err)
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		helper.Fatalf("scan config: %v", err)
	}

	app, cleanup, err := wireApp(&bc, logger)
	if err != nil {
		helper.Fatalf("init: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		helper.Error(err)
	}
}

func wireApp(bc *conf.Bootstrap, logger klog.Logger) (*kratos.App, func(), error) {
	if bc.Data == nil || bc.Auth == nil {
		return nil, nil, errors.New("config needs data and auth sections")
	}
	repo, cleanup, err := data.NewStateRepo(bc.Data, logger)
	if err != nil {
		return nil, nil, err
	}
	state, err := biz.Load(context.Background(), repo, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	mirror := biz.NewMirror(repo, state, bc.Data.PersistTimeout.Duration, logger)
	auth := biz.NewAuthUsecase(biz.AuthConfig{
		Secret:     []byte(bc.Auth.JWTSecret),
		Issuer:     bc.Auth.Issuer,
		TokenTTL:   bc.Auth.TokenTTL.Duration,
		BcryptCost: bc.Auth.BcryptCost,
	}, state, mirror, logger)
	booking := biz.NewBookingUsecase(state, mirror, logger)
	svc := service.NewBookingService(booking, auth, logger)
	httpSrv := server.NewHTTPServer(bc.Server, auth, svc, logger)

	app := kratos.New(
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(httpSrv),
		kratos.AfterStop(func(ctx context.Context) error {
			return mirror.Flush(ctx)
		}),
	)
	return app, cleanup, nil
}
