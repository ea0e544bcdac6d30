// tdxdump is a small diagnostic CLI: it connects to a quotation server
// configured in config.yaml, fetches a handful of records for the instruments
// given on the command line, and prints them.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mwquote/tdx/client"
	"github.com/mwquote/tdx/proto"
)

type config struct {
	Server struct {
		Addr           string        `mapstructure:"addr"`
		DialTimeout    time.Duration `mapstructure:"dial_timeout"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
	} `mapstructure:"server"`
	Bars int `mapstructure:"bars"`
}

func loadConfig() (*config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetDefault("server.addr", "119.147.212.81:7709")
	viper.SetDefault("bars", 10)

	if err := viper.ReadInConfig(); err != nil {
		// Defaults cover everything; only a malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

func newLogger() *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.TimeKey = "time"

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	return logger
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := newLogger()
	defer logger.Sync()

	c, err := client.Dial(client.Config{
		Addr:           cfg.Server.Addr,
		DialTimeout:    cfg.Server.DialTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("connect failed", zap.Error(err))
	}
	defer c.Close()

	for _, market := range []proto.Market{proto.MarketShenzhen, proto.MarketShanghai} {
		count, err := c.GetStockCount(market)
		if err != nil {
			logger.Fatal("stock count failed", zap.Stringer("market", market), zap.Error(err))
		}
		fmt.Printf("%s: %d listed securities\n", market, count)
	}

	for _, code := range os.Args[1:] {
		market := proto.MarketShanghai
		quotes, err := c.GetQuotes([]client.StockRef{{Market: market, Code: code}})
		if err != nil {
			logger.Fatal("quotes failed", zap.String("code", code), zap.Error(err))
		}
		for _, q := range quotes {
			fmt.Printf("%s%s price=%.2f open=%.2f high=%.2f low=%.2f volume=%d\n",
				q.Market, q.Code, q.Price, q.Open, q.High, q.Low, q.Volume)
		}

		bars, err := c.GetKLines(proto.KDaily, market, code, 0, uint16(cfg.Bars))
		if err != nil {
			logger.Fatal("klines failed", zap.String("code", code), zap.Error(err))
		}
		for _, b := range bars {
			fmt.Printf("  %s O=%.3f C=%.3f H=%.3f L=%.3f V=%.0f\n",
				b.Time.Format("2006-01-02 15:04"), b.Open, b.Close, b.High, b.Low, b.Volume)
		}
	}
}
