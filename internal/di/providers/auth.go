package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/stockroomapp/stockroom-server/internal/auth"
	"github.com/stockroomapp/stockroom-server/internal/config"
	"github.com/stockroomapp/stockroom-server/internal/logger"
)

// AuthKey wraps the token signing key bytes.
type AuthKey []byte

// ProvideAuthKey loads the token signing key. A TOKEN_KEY environment
// variable (hex) takes precedence; otherwise the key is loaded from or
// generated under the data directory.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var key []byte
	var err error
	if keyHex := os.Getenv("TOKEN_KEY"); keyHex != "" {
		key, err = auth.ParseKeyHex(keyHex)
	} else {
		key, err = auth.LoadOrGenerateKey(cfg.Database.DataPath)
	}
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.TokenKey = key

	log.Info("Token key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}
