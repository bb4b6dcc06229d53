// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagConfig          = "config"
	FlagBackendAddress  = "backend-address"
	FlagToken           = "token"
	FlagBackendTimeout  = "backend-timeout"
	FlagNotebook        = "notebook"
	FlagDocument        = "document"
	FlagTimeZone        = "time-zone"
	FlagSalt            = "salt"
	FlagCryptoScheme    = "crypto-scheme"
	FlagSyncInterval    = "sync-interval"
	FlagSyncOnLoad      = "sync-on-load"
	FlagStorageDriver   = "storage-driver"
	FlagDSN             = "dsn"
	FlagDocStoreAddress = "docstore-address"
	FlagDocStoreToken   = "docstore-token"
	FlagAddress         = "address"
	FlagAPIToken        = "api-token"
	FlagLogFile         = "log-file"
	FlagLogLevel        = "log-level"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags defines all configuration flags on fs. Only flags the user
// sets explicitly take part in the merge, so the defaults shown in the help
// output never override environment variables.
//
// Flags:
//
//	-c/--config            json file path with configs
//	--backend-address      note-push backend base URL
//	-t/--token             backend token
//	--backend-timeout      backend request timeout (e.g. "10s")
//	--notebook             target notebook id
//	--document             target document id
//	--time-zone            IANA zone of heading timestamps
//	--salt                 shared salt of encrypted records
//	--crypto-scheme        cipher scheme (xor or aes)
//	--sync-interval        sync period, 0 disables the timer
//	--sync-on-load         run a pass at start-up
//	--storage-driver       state store driver (sqlite or bolt)
//	-d/--dsn               state database path
//	--docstore-address     document store kernel address
//	--docstore-token       document store API token
//	-a/--address           control API address in format [host]:[port]
//	--api-token            bearer token required by the control API
//	--log-file             rotated log file, stdout when empty
//	--log-level            log level
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.String(FlagBackendAddress, "", "Note-push backend base URL")
	fs.StringP(FlagToken, "t", "", "Backend token")
	fs.Duration(FlagBackendTimeout, 0, "Backend request timeout (e.g. 10s)")
	fs.String(FlagNotebook, "", "Target notebook ID")
	fs.String(FlagDocument, "", "Target document ID")
	fs.String(FlagTimeZone, "", "IANA time zone of heading timestamps")
	fs.String(FlagSalt, "", "Shared salt of encrypted records")
	fs.String(FlagCryptoScheme, "", "Cipher scheme: xor or aes")
	fs.Duration(FlagSyncInterval, DefaultSyncInterval, "Sync period, 0 disables the timer")
	fs.Bool(FlagSyncOnLoad, true, "Run a sync pass at start-up")
	fs.String(FlagStorageDriver, "", "State store driver: sqlite or bolt")
	fs.StringP(FlagDSN, "d", "", "State database path")
	fs.String(FlagDocStoreAddress, "", "Document store kernel address")
	fs.String(FlagDocStoreToken, "", "Document store API token")
	fs.VarP(&NetAddress{}, FlagAddress, "a", "Control API address host:port")
	fs.String(FlagAPIToken, "", "Bearer token required by the control API")
	fs.String(FlagLogFile, "", "Log file, stdout when empty")
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
}

// flagsConfig collects the flags of fs that were set on the command line.
func flagsConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var errs []error

	str := func(name string, dst *string) {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		v, err := fs.GetString(name)
		errs = append(errs, err)
		*dst = v
	}
	dur := func(name string, dst *time.Duration) {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		v, err := fs.GetDuration(name)
		errs = append(errs, err)
		*dst = v
	}

	str(FlagConfig, &cfg.JSONFilePath)
	str(FlagBackendAddress, &cfg.Backend.Address)
	str(FlagToken, &cfg.Backend.Token)
	dur(FlagBackendTimeout, &cfg.Backend.RequestTimeout)
	str(FlagNotebook, &cfg.Target.NotebookID)
	str(FlagDocument, &cfg.Target.DocumentID)
	str(FlagTimeZone, &cfg.Target.TimeZone)
	str(FlagSalt, &cfg.Crypto.Salt)
	str(FlagCryptoScheme, &cfg.Crypto.Scheme)
	str(FlagStorageDriver, &cfg.Storage.Driver)
	str(FlagDSN, &cfg.Storage.DSN)
	str(FlagDocStoreAddress, &cfg.DocStore.Address)
	str(FlagDocStoreToken, &cfg.DocStore.Token)
	str(FlagAPIToken, &cfg.Server.AuthToken)
	str(FlagLogFile, &cfg.Log.File)
	str(FlagLogLevel, &cfg.Log.Level)

	if fs.Lookup(FlagSyncInterval) != nil && fs.Changed(FlagSyncInterval) {
		var interval time.Duration
		dur(FlagSyncInterval, &interval)
		cfg.Workers.SyncInterval = &interval
	}
	if fs.Lookup(FlagSyncOnLoad) != nil && fs.Changed(FlagSyncOnLoad) {
		v, err := fs.GetBool(FlagSyncOnLoad)
		errs = append(errs, err)
		cfg.Workers.SyncOnLoad = &v
	}
	if f := fs.Lookup(FlagAddress); f != nil && f.Changed {
		cfg.Server.HTTPAddress = f.Value.String()
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
