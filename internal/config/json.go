// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StructuredJSONConfig is the on-disk form of [StructuredConfig]. Durations
// accept Go duration strings ("90s") or a number of seconds.
type StructuredJSONConfig struct {
	Backend struct {
		Address        string   `json:"address,omitempty"`
		Token          string   `json:"token,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
	} `json:"backend"`

	Target struct {
		NotebookID string `json:"notebook_id,omitempty"`
		DocumentID string `json:"document_id,omitempty"`
		TimeZone   string `json:"time_zone,omitempty"`
	} `json:"target"`

	Crypto struct {
		Salt   string `json:"salt,omitempty"`
		Scheme string `json:"scheme,omitempty"`
	} `json:"crypto"`

	Workers struct {
		SyncInterval         *Duration `json:"sync_interval,omitempty"`
		SyncOnLoad           *bool     `json:"sync_on_load,omitempty"`
		LinkImageConcurrency int       `json:"link_image_concurrency,omitempty"`
		LinkImageRate        float64   `json:"link_image_rate,omitempty"`
	} `json:"workers"`

	Storage struct {
		Driver string `json:"driver,omitempty"`
		DSN    string `json:"dsn,omitempty"`
	} `json:"storage"`

	DocStore struct {
		Address        string   `json:"address,omitempty"`
		Token          string   `json:"token,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
	} `json:"docstore"`

	Server struct {
		HTTPAddress    string   `json:"http_address,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
		AuthToken      string   `json:"auth_token,omitempty"`
	} `json:"server"`

	Log struct {
		File       string `json:"file,omitempty"`
		Level      string `json:"level,omitempty"`
		MaxSizeMB  int    `json:"max_size_mb,omitempty"`
		MaxBackups int    `json:"max_backups,omitempty"`
		MaxAgeDays int    `json:"max_age_days,omitempty"`
	} `json:"log"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return jsonCfg.toStructured(), nil
}

func (j *StructuredJSONConfig) toStructured() *StructuredConfig {
	cfg := &StructuredConfig{
		Backend: Backend{
			Address:        j.Backend.Address,
			Token:          j.Backend.Token,
			RequestTimeout: time.Duration(j.Backend.RequestTimeout),
		},
		Target: Target{
			NotebookID: j.Target.NotebookID,
			DocumentID: j.Target.DocumentID,
			TimeZone:   j.Target.TimeZone,
		},
		Crypto: Crypto{
			Salt:   j.Crypto.Salt,
			Scheme: j.Crypto.Scheme,
		},
		Workers: Workers{
			SyncOnLoad:           j.Workers.SyncOnLoad,
			LinkImageConcurrency: j.Workers.LinkImageConcurrency,
			LinkImageRate:        j.Workers.LinkImageRate,
		},
		Storage: Storage{
			Driver: j.Storage.Driver,
			DSN:    j.Storage.DSN,
		},
		DocStore: DocStore{
			Address:        j.DocStore.Address,
			Token:          j.DocStore.Token,
			RequestTimeout: time.Duration(j.DocStore.RequestTimeout),
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			AuthToken:      j.Server.AuthToken,
		},
		Log: Log{
			File:       j.Log.File,
			Level:      j.Log.Level,
			MaxSizeMB:  j.Log.MaxSizeMB,
			MaxBackups: j.Log.MaxBackups,
			MaxAgeDays: j.Log.MaxAgeDays,
		},
		JSONFilePath: "",
	}
	if j.Workers.SyncInterval != nil {
		interval := time.Duration(*j.Workers.SyncInterval)
		cfg.Workers.SyncInterval = &interval
	}
	return cfg
}

func toJSONConfig(cfg *StructuredConfig) StructuredJSONConfig {
	var j StructuredJSONConfig

	j.Backend.Address = cfg.Backend.Address
	j.Backend.Token = cfg.Backend.Token
	j.Backend.RequestTimeout = Duration(cfg.Backend.RequestTimeout)
	j.Target.NotebookID = cfg.Target.NotebookID
	j.Target.DocumentID = cfg.Target.DocumentID
	j.Target.TimeZone = cfg.Target.TimeZone
	j.Crypto.Salt = cfg.Crypto.Salt
	j.Crypto.Scheme = cfg.Crypto.Scheme
	if cfg.Workers.SyncInterval != nil {
		interval := Duration(*cfg.Workers.SyncInterval)
		j.Workers.SyncInterval = &interval
	}
	j.Workers.SyncOnLoad = cfg.Workers.SyncOnLoad
	j.Workers.LinkImageConcurrency = cfg.Workers.LinkImageConcurrency
	j.Workers.LinkImageRate = cfg.Workers.LinkImageRate
	j.Storage.Driver = cfg.Storage.Driver
	j.Storage.DSN = cfg.Storage.DSN
	j.DocStore.Address = cfg.DocStore.Address
	j.DocStore.Token = cfg.DocStore.Token
	j.DocStore.RequestTimeout = Duration(cfg.DocStore.RequestTimeout)
	j.Server.HTTPAddress = cfg.Server.HTTPAddress
	j.Server.RequestTimeout = Duration(cfg.Server.RequestTimeout)
	j.Server.AuthToken = cfg.Server.AuthToken
	j.Log.File = cfg.Log.File
	j.Log.Level = cfg.Log.Level
	j.Log.MaxSizeMB = cfg.Log.MaxSizeMB
	j.Log.MaxBackups = cfg.Log.MaxBackups
	j.Log.MaxAgeDays = cfg.Log.MaxAgeDays

	return j
}

// SaveJSON writes cfg to path as an indented JSON config file readable by
// the -c flag. Parent directories are created; the file is replaced
// atomically and readable by the owner only since it holds the token and
// the salt.
func SaveJSON(path string, cfg *StructuredConfig) error {
	data, err := json.MarshalIndent(toJSONConfig(cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding json configs: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".notesync-*.json")
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing config file: %w", err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing config file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s" and from a number of seconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
