// Package connectivity checks that the services a generated project is
// configured for are reachable.
package connectivity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/resilience"
	"github.com/modu-ai/nestforge/pkg/models"
)

// ErrNotConfigured indicates the .env file lacks the settings for a probe.
var ErrNotConfigured = errors.New("connectivity: not configured")

// DefaultTimeout bounds each probe.
const DefaultTimeout = 5 * time.Second

// Kind selects how a probe connects.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindMySQL    Kind = "mysql"
	KindMongoDB  Kind = "mongodb"
	KindRedis    Kind = "redis"
)

// Probe is one service to check, built from the project's .env values.
type Probe struct {
	Name string
	Kind Kind
	// Addr is host:port for TCP-level probes and Redis.
	Addr string
	// DSN is the full connection string for PostgreSQL.
	DSN      string
	Password string
}

// Check is the outcome of one probe.
type Check struct {
	Probe   Probe
	Latency time.Duration
	Err     error
}

// OK reports whether the probe succeeded.
func (c Check) OK() bool { return c.Err == nil }

// Plan lists the probes for a project. Settings are read from env, the
// parsed .env file, which is where secrets live.
func Plan(rec *config.Record, env map[string]string) ([]Probe, error) {
	var probes []Probe

	switch rec.Database.Engine {
	case models.EnginePostgreSQL:
		host, port := env["DATABASE_HOST"], env["DATABASE_PORT"]
		if host == "" || port == "" {
			return nil, fmt.Errorf("%w: DATABASE_HOST and DATABASE_PORT", ErrNotConfigured)
		}
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(env["DATABASE_USER"], env["DATABASE_PASSWORD"]),
			Host:   net.JoinHostPort(host, port),
			Path:   "/" + env["DATABASE_NAME"],
		}
		q := url.Values{}
		if env["DATABASE_SSL"] == "true" {
			q.Set("sslmode", "require")
		} else {
			q.Set("sslmode", "disable")
		}
		u.RawQuery = q.Encode()
		probes = append(probes, Probe{Name: "PostgreSQL", Kind: KindPostgres, Addr: u.Host, DSN: u.String()})
	case models.EngineMySQL:
		host, port := env["DATABASE_HOST"], env["DATABASE_PORT"]
		if host == "" || port == "" {
			return nil, fmt.Errorf("%w: DATABASE_HOST and DATABASE_PORT", ErrNotConfigured)
		}
		probes = append(probes, Probe{Name: "MySQL", Kind: KindMySQL, Addr: net.JoinHostPort(host, port)})
	case models.EngineMongoDB:
		addr, err := mongoAddr(env["DATABASE_URI"])
		if err != nil {
			return nil, err
		}
		probes = append(probes, Probe{Name: "MongoDB", Kind: KindMongoDB, Addr: addr})
	}

	if rec.Features.Redis {
		host, port := env["REDIS_HOST"], env["REDIS_PORT"]
		if host == "" {
			host = config.DefaultRedisHost
		}
		if port == "" {
			port = config.DefaultRedisPort
		}
		probes = append(probes, Probe{
			Name:     "Redis",
			Kind:     KindRedis,
			Addr:     net.JoinHostPort(host, port),
			Password: env["REDIS_PASSWORD"],
		})
	}
	return probes, nil
}

// mongoAddr returns the first host of a mongodb:// URI. SRV URIs are
// resolved to their first target.
func mongoAddr(uri string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("%w: DATABASE_URI", ErrNotConfigured)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URI: %w", err)
	}
	host := strings.Split(u.Host, ",")[0]
	switch u.Scheme {
	case "mongodb":
		if _, _, err := net.SplitHostPort(host); err != nil {
			host = net.JoinHostPort(strings.Trim(host, "[]"), "27017")
		}
		return host, nil
	case "mongodb+srv":
		return "srv:" + u.Hostname(), nil
	}
	return "", fmt.Errorf("parse DATABASE_URI: unsupported scheme %q", u.Scheme)
}

// Checker runs probes.
type Checker struct {
	timeout time.Duration
	retry   resilience.RetryPolicy

	dial      func(ctx context.Context, network, addr string) (net.Conn, error)
	lookupSRV func(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
	pingPG    func(ctx context.Context, dsn string) error
	pingRedis func(ctx context.Context, addr, password string) error
}

// NewChecker creates a Checker with real network clients.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var d net.Dialer
	return &Checker{
		timeout:   timeout,
		dial:      d.DialContext,
		lookupSRV: net.DefaultResolver.LookupSRV,
		pingPG:    pingPostgres,
		pingRedis: pingRedis,
	}
}

// WithRetry returns a copy of c that retries failed probes under policy.
// Each attempt gets the full timeout.
func (c *Checker) WithRetry(policy resilience.RetryPolicy) *Checker {
	cp := *c
	cp.retry = policy
	return &cp
}

// Run executes every probe in order. Latency is that of the last attempt.
func (c *Checker) Run(ctx context.Context, probes []Probe) []Check {
	checks := make([]Check, 0, len(probes))
	for _, p := range probes {
		var latency time.Duration
		err := resilience.Retry(ctx, c.retry, func() error {
			pctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			start := time.Now()
			err := c.probe(pctx, p)
			latency = time.Since(start)
			return err
		})
		checks = append(checks, Check{Probe: p, Latency: latency, Err: err})
	}
	return checks
}

func (c *Checker) probe(ctx context.Context, p Probe) error {
	switch p.Kind {
	case KindPostgres:
		return c.pingPG(ctx, p.DSN)
	case KindRedis:
		return c.pingRedis(ctx, p.Addr, p.Password)
	case KindMySQL, KindMongoDB:
		addr := p.Addr
		if name, ok := strings.CutPrefix(addr, "srv:"); ok {
			_, records, err := c.lookupSRV(ctx, "mongodb", "tcp", name)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", name, err)
			}
			if len(records) == 0 {
				return fmt.Errorf("resolve %s: no SRV records", name)
			}
			addr = net.JoinHostPort(strings.TrimSuffix(records[0].Target, "."), strconv.Itoa(int(records[0].Port)))
		}
		conn, err := c.dial(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}
	return fmt.Errorf("unknown probe kind %q", p.Kind)
}

func pingPostgres(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	return conn.Ping(ctx)
}

func pingRedis(ctx context.Context, addr, password string) error {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	defer func() { _ = client.Close() }()
	return client.Ping(ctx).Err()
}
