package bootstrap

import (
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/tenanttoken"

	"go.uber.org/fx"
)

var AuthModule = fx.Module("auth",
	fx.Provide(
		NewTenantTokenService,
	),
)

func NewTenantTokenService(cfg config.Config) *tenanttoken.Service {
	return tenanttoken.NewService(cfg.Auth.TokenSecret)
}
