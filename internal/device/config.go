package device

import (
	"errors"
	"fmt"
	"os"

	"github.com/nalxnet/openWB/internal/device/modbusinverter"
	"gopkg.in/yaml.v3"
)

const (
	TypeSolarEdge = "solaredge"
	TypeModbus    = "modbus"
	TypeHTTP      = "http"
	TypeEVNotify  = "evnotify"
)

var ErrUnknownType = errors.New("unknown device type")

type File struct {
	Devices []Config `yaml:"devices"`
}

// Config describes one device and the components read through it. Modbus
// devices share a single link between their components.
type Config struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// solaredge, modbus
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// http
	URL string `yaml:"url"`

	// evnotify; empty means the public service
	API string `yaml:"api"`

	Components []ComponentConfig `yaml:"components"`
}

type ComponentConfig struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	UnitID uint8  `yaml:"unit_id"`

	Power    *modbusinverter.Register `yaml:"power"`
	Exported *modbusinverter.Register `yaml:"exported"`

	PowerPath    string `yaml:"power_path"`
	ExportedPath string `yaml:"exported_path"`

	AKey  string `yaml:"akey"`
	Token string `yaml:"token"`
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &out, nil
}

// Validate checks every device and returns all problems joined.
func (f *File) Validate() error {
	var errs []error
	names := map[string]bool{}
	ids := map[string]bool{}

	for i, d := range f.Devices {
		label := d.Name
		if label == "" {
			label = fmt.Sprintf("devices[%d]", i)
			errs = append(errs, fmt.Errorf("%s: name is required", label))
		} else if names[d.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate device name", label))
		}
		names[d.Name] = true

		if err := d.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}

		topic := "pv"
		if d.Type == TypeEVNotify {
			topic = "vehicle"
		}
		for _, c := range d.Components {
			key := fmt.Sprintf("%s/%d", topic, c.ID)
			if ids[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate %s id %d", label, topic, c.ID))
			}
			ids[key] = true
		}
	}
	return errors.Join(errs...)
}

func (d Config) validate() error {
	var errs []error
	switch d.Type {
	case TypeSolarEdge, TypeModbus:
		if d.Host == "" {
			errs = append(errs, errors.New("host is required"))
		}
		if d.Port < 0 || d.Port > 65535 {
			errs = append(errs, fmt.Errorf("invalid port %d", d.Port))
		}
	case TypeHTTP:
		if d.URL == "" {
			errs = append(errs, errors.New("url is required"))
		}
	case TypeEVNotify:
	default:
		return fmt.Errorf("%w %q", ErrUnknownType, d.Type)
	}

	if len(d.Components) == 0 {
		errs = append(errs, errors.New("no components"))
	}
	for _, c := range d.Components {
		if c.ID <= 0 {
			errs = append(errs, fmt.Errorf("component id must be positive, got %d", c.ID))
		}
		switch d.Type {
		case TypeModbus:
			if c.Power == nil {
				errs = append(errs, fmt.Errorf("component %d: power register is required", c.ID))
			}
		case TypeHTTP:
			if c.PowerPath == "" || c.PowerPath == "none" {
				errs = append(errs, fmt.Errorf("component %d: power_path is required", c.ID))
			}
		case TypeEVNotify:
			if c.AKey == "" || c.Token == "" {
				errs = append(errs, fmt.Errorf("component %d: akey and token are required", c.ID))
			}
		}
	}
	return errors.Join(errs...)
}
