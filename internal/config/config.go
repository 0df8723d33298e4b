package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5433）

	JWTSecret string // JWT署名シークレット

	// 暗号資産決済
	CryptoRecipient string        // 送金先の固定アドレス
	WalletBridgeURL string        // ウォレットブリッジのURL（空なら決済不可）
	ConfirmTimeout  time.Duration // チェーン確認待ちの上限

	// チャットプロキシ
	ChatEndpoint string // 生成APIのURL
	ChatAPIKey   string // 生成APIのキー

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSなどで使う）
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		CryptoRecipient: os.Getenv("CRYPTO_RECIPIENT_ADDRESS"),
		WalletBridgeURL: os.Getenv("WALLET_BRIDGE_URL"),
		ConfirmTimeout:  confirmTimeoutFromEnv(),

		ChatEndpoint: os.Getenv("CHAT_ENDPOINT"),
		ChatAPIKey:   os.Getenv("CHAT_API_KEY"),

		GoEnv: os.Getenv("GO_ENV"),
		FEURL: os.Getenv("FE_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CryptoRecipient == "" {
		return Config{}, fmt.Errorf("CRYPTO_RECIPIENT_ADDRESS is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}

// 未設定なら90秒
func confirmTimeoutFromEnv() time.Duration {
	v := os.Getenv("CRYPTO_CONFIRM_TIMEOUT_SEC")
	if v == "" {
		return 90 * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec <= 0 {
		return 90 * time.Second
	}
	return time.Duration(sec) * time.Second
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
