package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	mq "github.com/eclipse/paho.mqtt.golang"
	"github.com/nalxnet/openWB/internal/api"
	"github.com/nalxnet/openWB/internal/component"
	"github.com/nalxnet/openWB/internal/ha"
	mqttIface "github.com/nalxnet/openWB/internal/interface/mqtt"
	"github.com/nalxnet/openWB/internal/store"
)

type envCfg struct {
	IntervalSec int
	DevicesFile string
	HTTPAddr    string
	HADiscovery bool
	Redis       store.RedisConfig
}

func loadEnv() (envCfg, error) {
	cfg := envCfg{
		IntervalSec: 10,
		DevicesFile: getenv("DEVICES_FILE", "devices.yaml"),
		HTTPAddr:    getenv("HTTP_ADDR", ":9100"),
		Redis: store.RedisConfig{
			Address:  os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}
	var err error
	if cfg.IntervalSec, err = atoiEnv("INTERVAL_SEC", cfg.IntervalSec); err != nil {
		return cfg, err
	}
	if cfg.IntervalSec <= 0 {
		return cfg, fmt.Errorf("INTERVAL_SEC must be positive, got %d", cfg.IntervalSec)
	}
	if cfg.Redis.DB, err = atoiEnv("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	ttl, err := atoiEnv("REDIS_TTL_SEC", 0)
	if err != nil {
		return cfg, err
	}
	cfg.Redis.TTL = time.Duration(ttl) * time.Second

	if v := os.Getenv("HA_DISCOVERY"); v != "" {
		if cfg.HADiscovery, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("invalid HA_DISCOVERY %q: %w", v, err)
		}
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", k, v, err)
	}
	return n, nil
}

// Handle runs every device on its own ticker until ctx is done.
func (h *MainHandler) Handle(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	interval := time.Duration(h.cfg.IntervalSec) * time.Second
	h.logger.Info().Int("devices", len(h.Devices)).Dur("interval", interval).Msg("openwb-modbus up")

	if h.cfg.HADiscovery {
		if err := h.announce(); err != nil {
			h.logger.Warn().Err(err).Msg("home assistant discovery")
		}
	}

	var srv *http.Server
	serveErr := make(chan error, 1)
	if h.cfg.HTTPAddr != "" {
		srv = &http.Server{
			Addr:              h.cfg.HTTPAddr,
			Handler:           api.NewRouter(h.Reporter, h.Registry, h.logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()
	}

	var wg sync.WaitGroup
	for _, d := range h.Devices {
		d := d
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Loop(ctx, interval, h.logger)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		err = fmt.Errorf("http server: %w", err)
		cancel()
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	wg.Wait()
	h.logger.Info().Msg("openwb-modbus stopped")
	return err
}

func (h *MainHandler) componentInfos() []component.Info {
	var infos []component.Info
	for _, d := range h.Devices {
		for _, c := range d.Components() {
			infos = append(infos, c.Info())
		}
	}
	return infos
}

// announce publishes discovery and repeats it whenever Home Assistant comes
// back online.
func (h *MainHandler) announce() error {
	infos := h.componentInfos()
	err := h.MQTTClient.SubscribeToTopic(mqttIface.Subscription{
		Topic: ha.StatusTopic,
		QoS:   1,
		Callback: func(_ mq.Client, m mq.Message) {
			if string(m.Payload()) != "online" {
				return
			}
			if err := ha.Announce(h.MQTTClient, infos); err != nil {
				h.logger.Warn().Err(err).Msg("home assistant discovery")
			}
		},
	})
	return errors.Join(err, ha.Announce(h.MQTTClient, infos))
}
