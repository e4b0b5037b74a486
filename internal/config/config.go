package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"evmconfirm/internal/coin"
)

// CoinConfig describes the base coin or a known token.
type CoinConfig struct {
	Address  string `mapstructure:"address"`
	Code     string `mapstructure:"code"`
	Title    string `mapstructure:"title"`
	Decimals int    `mapstructure:"decimals"`
}

// RenderConfig holds configuration for the render command.
type RenderConfig struct {
	In           string
	Out          string
	RPCURL       string
	Locale       string
	LocaleFile   string
	OwnAddress   string
	Send         bool
	LogLevel     string
	Color        bool
	MaxRetries   int
	RetryBackoff time.Duration
	RPCRate      float64
	RPCBurst     int
	BaseCoin     CoinConfig
	Tokens       []CoinConfig
	Labels       map[string]string
}

// LoadRender merges config file, environment variables, and flags into RenderConfig.
func LoadRender(cfgFile string, flags *pflag.FlagSet) (RenderConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("EVMCONFIRM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("locale", "en")
	v.SetDefault("log-level", "info")
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 250*time.Millisecond)
	v.SetDefault("rpc-rate", 5.0)
	v.SetDefault("rpc-burst", 10)
	v.SetDefault("base-coin.code", "ETH")
	v.SetDefault("base-coin.title", "Ethereum")
	v.SetDefault("base-coin.decimals", 18)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return RenderConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return RenderConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return RenderConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var tokens []CoinConfig
	if err := v.UnmarshalKey("tokens", &tokens); err != nil {
		return RenderConfig{}, fmt.Errorf("decode tokens: %w", err)
	}

	cfg := RenderConfig{
		In:           v.GetString("in"),
		Out:          v.GetString("out"),
		RPCURL:       v.GetString("rpc"),
		Locale:       v.GetString("locale"),
		LocaleFile:   v.GetString("locale-file"),
		OwnAddress:   strings.TrimSpace(v.GetString("own-address")),
		Send:         v.GetBool("send"),
		LogLevel:     v.GetString("log-level"),
		Color:        v.GetBool("color"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		RPCRate:      v.GetFloat64("rpc-rate"),
		RPCBurst:     v.GetInt("rpc-burst"),
		BaseCoin: CoinConfig{
			Code:     v.GetString("base-coin.code"),
			Title:    v.GetString("base-coin.title"),
			Decimals: v.GetInt("base-coin.decimals"),
		},
		Tokens: tokens,
		Labels: getStringMap(v, "labels"),
	}

	return cfg, nil
}

// Coins validates and converts the configured base coin and tokens.
func (c RenderConfig) Coins() (coin.Coin, []coin.Coin, error) {
	if c.BaseCoin.Code == "" {
		return coin.Coin{}, nil, fmt.Errorf("base coin code is required")
	}
	baseDecimals, err := decimals(c.BaseCoin.Decimals)
	if err != nil {
		return coin.Coin{}, nil, fmt.Errorf("base coin %s: %w", c.BaseCoin.Code, err)
	}
	base := coin.Coin{Code: c.BaseCoin.Code, Title: c.BaseCoin.Title, Decimals: baseDecimals}
	if base.Title == "" {
		base.Title = base.Code
	}

	tokens := make([]coin.Coin, 0, len(c.Tokens))
	for _, token := range c.Tokens {
		address := strings.TrimSpace(token.Address)
		if !common.IsHexAddress(address) {
			return coin.Coin{}, nil, fmt.Errorf("invalid token address: %q", token.Address)
		}
		if token.Code == "" {
			return coin.Coin{}, nil, fmt.Errorf("token %s: code is required", address)
		}
		tokenDecimals, err := decimals(token.Decimals)
		if err != nil {
			return coin.Coin{}, nil, fmt.Errorf("token %s: %w", address, err)
		}
		title := token.Title
		if title == "" {
			title = token.Code
		}
		tokens = append(tokens, coin.Coin{
			Address:  common.HexToAddress(address),
			Code:     token.Code,
			Title:    title,
			Decimals: tokenDecimals,
		})
	}
	return base, tokens, nil
}

func decimals(d int) (uint8, error) {
	if d < 0 || d > math.MaxUint8 {
		return 0, fmt.Errorf("decimals %d out of range 0-%d", d, math.MaxUint8)
	}
	return uint8(d), nil
}

// Own parses the configured own address. Empty means the zero address.
func (c RenderConfig) Own() (common.Address, error) {
	if c.OwnAddress == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(c.OwnAddress) {
		return common.Address{}, fmt.Errorf("invalid own address: %q", c.OwnAddress)
	}
	return common.HexToAddress(c.OwnAddress), nil
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
