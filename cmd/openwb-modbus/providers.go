package main

import (
	"context"

	"github.com/nalxnet/openWB/internal/client/modbus"
	"github.com/nalxnet/openWB/internal/client/mqtt"
	"github.com/nalxnet/openWB/internal/component"
	"github.com/nalxnet/openWB/internal/device"
	mqttIface "github.com/nalxnet/openWB/internal/interface/mqtt"
	"github.com/nalxnet/openWB/internal/metrics"
	"github.com/nalxnet/openWB/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

type MainHandler struct {
	MQTTClient mqttIface.Client
	Store      *store.Store
	Reporter   *component.Reporter
	Devices    []*device.Device
	Registry   *prometheus.Registry

	cfg    envCfg
	logger zerolog.Logger
}

func NewMainHandler(
	cfg envCfg,
	logger zerolog.Logger,
	mqttClient mqttIface.Client,
	st *store.Store,
	reporter *component.Reporter,
	devices []*device.Device,
	registry *prometheus.Registry,
) *MainHandler {
	return &MainHandler{
		MQTTClient: mqttClient,
		Store:      st,
		Reporter:   reporter,
		Devices:    devices,
		Registry:   registry,
		cfg:        cfg,
		logger:     logger,
	}
}

func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideMetrics(reg *prometheus.Registry) *metrics.Collector {
	return metrics.New(reg)
}

func ProvideMqttClient(logger zerolog.Logger) (mqttIface.Client, func(), error) {
	cfg, err := mqtt.LoadConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	client, err := mqtt.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close(250) }, nil
}

// ProvideSinks always publishes to the broker and mirrors into Redis when
// REDIS_ADDR is set.
func ProvideSinks(ctx context.Context, cfg envCfg, pub mqttIface.Client) ([]store.Sink, func(), error) {
	sinks := []store.Sink{store.NewMQTTSink(pub)}
	if cfg.Redis.Address == "" {
		return sinks, func() {}, nil
	}
	rs, closeFn, err := store.NewRedisSink(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return append(sinks, rs), func() { _ = closeFn() }, nil
}

func ProvideStore(logger zerolog.Logger, m *metrics.Collector, sinks []store.Sink) *store.Store {
	return store.New(logger, m, sinks...)
}

func ProvideReporter(st *store.Store, logger zerolog.Logger) *component.Reporter {
	return component.NewReporter(st, logger)
}

func ProvideDevices(cfg envCfg, st *store.Store, reporter *component.Reporter, m *metrics.Collector, logger zerolog.Logger) ([]*device.Device, func(), error) {
	f, err := device.LoadFile(cfg.DevicesFile)
	if err != nil {
		return nil, nil, err
	}
	modbusCfg, err := modbus.LoadEnvCfg()
	if err != nil {
		return nil, nil, err
	}
	devices, err := device.Build(f, device.Deps{
		Logger:   logger,
		Store:    st,
		Reporter: reporter,
		Metrics:  m,
		Modbus:   modbusCfg,
	})
	if err != nil {
		return nil, nil, err
	}
	return devices, func() { closeDevices(devices, logger) }, nil
}

func closeDevices(devices []*device.Device, logger zerolog.Logger) {
	for _, d := range devices {
		if err := d.Close(); err != nil {
			logger.Warn().Err(err).Str("device", d.Name()).Msg("device close")
		}
	}
}
