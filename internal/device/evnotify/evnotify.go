// Package evnotify fetches a vehicle's state of charge from the EVNotify API.
package evnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nalxnet/openWB/internal/component"
	"github.com/nalxnet/openWB/internal/store"
)

const DefaultAPI = "https://app.evnotify.de"

type Config struct {
	API   string `yaml:"api"`
	AKey  string `yaml:"akey"`
	Token string `yaml:"token"`
}

type socResponse struct {
	SoCDisplay *float64 `json:"soc_display"`
	SoCBMS     *float64 `json:"soc_bms"`
}

type EVNotify struct {
	info   component.Info
	cfg    Config
	client *http.Client
	store  store.CarWriter
}

func New(vehicleID int, name string, cfg Config, client *http.Client, st store.CarWriter) *EVNotify {
	if cfg.API == "" {
		cfg.API = DefaultAPI
	}
	return &EVNotify{
		info:   component.Info{ID: vehicleID, Name: name, Type: "vehicle"},
		cfg:    cfg,
		client: client,
		store:  st,
	}
}

func (e *EVNotify) Info() component.Info { return e.info }

// FetchSoC returns the displayed state of charge in percent.
func (e *EVNotify) FetchSoC(ctx context.Context) (float64, error) {
	q := url.Values{"akey": {e.cfg.AKey}, "token": {e.cfg.Token}}
	u := strings.TrimRight(e.cfg.API, "/") + "/soc?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("evnotify: %s", resp.Status)
	}
	var body socResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("evnotify: decode soc: %w", err)
	}
	if body.SoCDisplay == nil {
		return 0, fmt.Errorf("evnotify: response without soc_display")
	}
	return *body.SoCDisplay, nil
}

func (e *EVNotify) Update(ctx context.Context) error {
	soc, err := e.FetchSoC(ctx)
	if err != nil {
		return err
	}
	return e.store.SetCar(ctx, e.info.ID, store.CarState{SoC: soc})
}
