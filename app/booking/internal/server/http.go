package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/middleware/selector"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	v1 "github.com/yunmaoQu/train-booking/api/booking/v1"
	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
	"github.com/yunmaoQu/train-booking/app/booking/internal/conf"
	"github.com/yunmaoQu/train-booking/app/booking/internal/service"
)

// authenticated lists the operations that act on behalf of a user.
var authenticated = map[string]struct{}{
	v1.OperationBookingServiceBook:        {},
	v1.OperationBookingServiceListTickets: {},
	v1.OperationBookingServiceCancel:      {},
}

func requiresUser(_ context.Context, operation string) bool {
	_, ok := authenticated[operation]
	return ok
}

func NewHTTPServer(c *conf.Server, auth *biz.AuthUsecase, svc *service.BookingService, logger log.Logger) *khttp.Server {
	opts := []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			selector.Server(
				jwt.Server(auth.KeyFunc,
					jwt.WithSigningMethod(jwtv5.SigningMethodHS256),
					jwt.WithClaims(func() jwtv5.Claims { return &jwtv5.RegisteredClaims{} }),
				),
			).Match(requiresUser).Build(),
		),
	}
	if c != nil && c.HTTP != nil {
		if c.HTTP.Addr != "" {
			opts = append(opts, khttp.Address(c.HTTP.Addr))
		}
		if c.HTTP.Timeout.Duration > 0 {
			opts = append(opts, khttp.Timeout(c.HTTP.Timeout.Duration))
		}
	}
	srv := khttp.NewServer(opts...)
	v1.RegisterBookingServiceHTTPServer(srv, svc)
	return srv
}
