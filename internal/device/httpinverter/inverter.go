// Package httpinverter reads an inverter exposing plain-text numbers over HTTP.
package httpinverter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nalxnet/openWB/internal/component"
	"github.com/nalxnet/openWB/internal/simcount"
	"github.com/nalxnet/openWB/internal/store"
)

type Config struct {
	URL          string `yaml:"url"`
	PowerPath    string `yaml:"power_path"`
	ExportedPath string `yaml:"exported_path"`
}

type Inverter struct {
	info   component.Info
	cfg    Config
	client *http.Client
	store  store.InverterWriter
	sim    *simcount.Counter
}

func New(id int, name string, cfg Config, client *http.Client, st store.InverterWriter) *Inverter {
	return &Inverter{
		info:   component.Info{ID: id, Name: name, Type: "pv"},
		cfg:    cfg,
		client: client,
		store:  st,
		sim:    simcount.New(0, 0),
	}
}

func (i *Inverter) Info() component.Info { return i.info }

// enabled reports whether path points at a value. An empty path or "none"
// disables the reading.
func enabled(path string) bool {
	return path != "" && path != "none"
}

func (i *Inverter) fetch(ctx context.Context, path string) (float64, error) {
	url := strings.TrimRight(i.cfg.URL, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", url, err)
	}
	return v, nil
}

func (i *Inverter) ReadState(ctx context.Context) (store.InverterState, error) {
	power, err := i.fetch(ctx, i.cfg.PowerPath)
	if err != nil {
		return store.InverterState{}, err
	}
	if !enabled(i.cfg.ExportedPath) {
		_, exported := i.sim.Count(power)
		return store.InverterState{Power: power, Exported: exported}, nil
	}
	exported, err := i.fetch(ctx, i.cfg.ExportedPath)
	if err != nil {
		return store.InverterState{}, err
	}
	return store.InverterState{Power: power, Exported: exported}, nil
}

func (i *Inverter) Update(ctx context.Context) error {
	st, err := i.ReadState(ctx)
	if err != nil {
		return err
	}
	return i.store.SetInverter(ctx, i.info.ID, st)
}
