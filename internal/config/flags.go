package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// boolFlag records whether a boolean flag was given at all, so an absent
// -demo does not override a true value from another source.
type boolFlag struct {
	set   bool
	value bool
}

func (f *boolFlag) String() string { return strconv.FormatBool(f.value) }

func (f *boolFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.set, f.value = true, v
	return nil
}

func (f *boolFlag) IsBoolFlag() bool { return true }

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a local HTTP API address in format [host]:[port]
//	-grpc-address gRPC health address in format [host]:[port]
//	-vault SQLite vault file path
//	-backup-dir directory for exported archives
//	-c/-config JSON or YAML config file path
//	-demo enable demo mode
//	-inactivity-timeout vault inactivity timeout (e.g. "15m")
//	-lock-check-interval inactivity check period (e.g. "10s")
//	-remote remote REST backend base URL
//	-remote-db remote Postgres DSN
//	-remote-token bearer token for the REST backend
//	-request-timeout request timeout (e.g. "30s")
//	-log-level zerolog level
//	-log-dir client log directory
func parseFlags(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		serverAddress, grpcAddress NetAddress
		vaultPath, backupDir       string
		configPath                 string
		demo                       boolFlag
		inactivityTimeout          time.Duration
		lockCheckInterval          time.Duration
		remoteAddress, remoteDB    string
		remoteToken                string
		requestTimeout             time.Duration
		logLevel, logDir           string
	)

	fs.Var(&serverAddress, "a", "Local HTTP API address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC health address host:port")
	fs.StringVar(&vaultPath, "vault", "", "SQLite vault file path")
	fs.StringVar(&backupDir, "backup-dir", "", "Backup archive directory")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.Var(&demo, "demo", "Demo mode")
	fs.DurationVar(&inactivityTimeout, "inactivity-timeout", 0, "Vault inactivity timeout (e.g. 15m)")
	fs.DurationVar(&lockCheckInterval, "lock-check-interval", 0, "Inactivity check period (e.g. 10s)")
	fs.StringVar(&remoteAddress, "remote", "", "Remote REST backend base URL")
	fs.StringVar(&remoteDB, "remote-db", "", "Remote Postgres DSN")
	fs.StringVar(&remoteToken, "remote-token", "", "Remote bearer token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logDir, "log-dir", "", "Client log directory")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			InactivityTimeout: inactivityTimeout,
			LogLevel:          logLevel,
			LogDir:            logDir,
		},
		Storage: Storage{
			Vault:     Vault{Path: vaultPath},
			BackupDir: backupDir,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			DatabaseURI:    remoteDB,
			Token:          remoteToken,
			RequestTimeout: requestTimeout,
		},
		Workers:  Workers{LockCheckInterval: lockCheckInterval},
		FilePath: configPath,
	}
	if demo.set {
		cfg.App.DemoMode = demo.value
	}

	return cfg, nil
}

// String returns host:port, or "" when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil || strings.Count(s, ":") != 1 {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
