package connectivity

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/modu-ai/nestforge/internal/config"
	"github.com/modu-ai/nestforge/internal/resilience"
	"github.com/modu-ai/nestforge/pkg/models"
)

func TestPlan(t *testing.T) {
	pg := config.NewDefaultRecord()
	pg.Features.Redis = true

	mysql := config.NewDefaultRecord()
	mysql.Database.Engine = models.EngineMySQL

	mongo := config.NewDefaultRecord()
	mongo.Database.Engine = models.EngineMongoDB

	tests := []struct {
		name string
		rec  *config.Record
		env  map[string]string
		want []Probe
	}{
		{
			name: "postgres with redis",
			rec:  pg,
			env: map[string]string{
				"DATABASE_HOST": "db", "DATABASE_PORT": "5432", "DATABASE_USER": "app",
				"DATABASE_PASSWORD": "p@ss", "DATABASE_NAME": "shop", "DATABASE_SSL": "true",
				"REDIS_HOST": "cache", "REDIS_PASSWORD": "pw",
			},
			want: []Probe{
				{Name: "PostgreSQL", Kind: KindPostgres, Addr: "db:5432", DSN: "postgres://app:p%40ss@db:5432/shop?sslmode=require"},
				{Name: "Redis", Kind: KindRedis, Addr: "cache:6379", Password: "pw"},
			},
		},
		{
			name: "mysql",
			rec:  mysql,
			env:  map[string]string{"DATABASE_HOST": "localhost", "DATABASE_PORT": "3306"},
			want: []Probe{{Name: "MySQL", Kind: KindMySQL, Addr: "localhost:3306"}},
		},
		{
			name: "mongodb default port",
			rec:  mongo,
			env:  map[string]string{"DATABASE_URI": "mongodb://user:pw@mongo1,mongo2:27018/app"},
			want: []Probe{{Name: "MongoDB", Kind: KindMongoDB, Addr: "mongo1:27017"}},
		},
		{
			name: "mongodb ipv6 default port",
			rec:  mongo,
			env:  map[string]string{"DATABASE_URI": "mongodb://[::1]/app"},
			want: []Probe{{Name: "MongoDB", Kind: KindMongoDB, Addr: "[::1]:27017"}},
		},
		{
			name: "mongodb ipv6 with port",
			rec:  mongo,
			env:  map[string]string{"DATABASE_URI": "mongodb://[::1]:27018/app"},
			want: []Probe{{Name: "MongoDB", Kind: KindMongoDB, Addr: "[::1]:27018"}},
		},
		{
			name: "mongodb srv",
			rec:  mongo,
			env:  map[string]string{"DATABASE_URI": "mongodb+srv://cluster.example.net/app"},
			want: []Probe{{Name: "MongoDB", Kind: KindMongoDB, Addr: "srv:cluster.example.net"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.rec, tt.env)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlan_MissingSettings(t *testing.T) {
	rec := config.NewDefaultRecord()
	if _, err := Plan(rec, map[string]string{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestChecker_TCPProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	c := NewChecker(time.Second)
	checks := c.Run(context.Background(), []Probe{
		{Name: "MySQL", Kind: KindMySQL, Addr: ln.Addr().String()},
	})
	if len(checks) != 1 || !checks[0].OK() {
		t.Errorf("checks = %+v, want one success", checks)
	}
}

func TestChecker_InjectedClients(t *testing.T) {
	errDown := errors.New("connection refused")
	var gotDSN, gotAddr, gotPassword string
	c := NewChecker(time.Second)
	c.pingPG = func(_ context.Context, dsn string) error {
		gotDSN = dsn
		return nil
	}
	c.pingRedis = func(_ context.Context, addr, password string) error {
		gotAddr, gotPassword = addr, password
		return errDown
	}

	checks := c.Run(context.Background(), []Probe{
		{Kind: KindPostgres, DSN: "postgres://x@db:5432/app"},
		{Kind: KindRedis, Addr: "cache:6379", Password: "pw"},
	})

	if !checks[0].OK() || !errors.Is(checks[1].Err, errDown) {
		t.Errorf("checks = %+v", checks)
	}
	if gotDSN != "postgres://x@db:5432/app" || gotAddr != "cache:6379" || gotPassword != "pw" {
		t.Errorf("clients got dsn=%q addr=%q password=%q", gotDSN, gotAddr, gotPassword)
	}
}

func TestChecker_SRVLookup(t *testing.T) {
	c := NewChecker(time.Second)
	c.lookupSRV = func(_ context.Context, service, proto, name string) (string, []*net.SRV, error) {
		if service != "mongodb" || proto != "tcp" || name != "cluster.example.net" {
			t.Errorf("lookup(%s, %s, %s)", service, proto, name)
		}
		return "", []*net.SRV{{Target: "shard0.example.net.", Port: 27017}}, nil
	}
	var dialed string
	c.dial = func(_ context.Context, _, addr string) (net.Conn, error) {
		dialed = addr
		client, server := net.Pipe()
		_ = server.Close()
		return client, nil
	}

	checks := c.Run(context.Background(), []Probe{{Kind: KindMongoDB, Addr: "srv:cluster.example.net"}})
	if !checks[0].OK() {
		t.Fatalf("check failed: %v", checks[0].Err)
	}
	if dialed != "shard0.example.net:27017" {
		t.Errorf("dialed %q", dialed)
	}
}

func TestChecker_RetriesUntilServiceIsUp(t *testing.T) {
	attempts := 0
	c := NewChecker(time.Second).WithRetry(resilience.RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
	})
	c.pingRedis = func(context.Context, string, string) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	}

	checks := c.Run(context.Background(), []Probe{{Kind: KindRedis, Addr: "cache:6379"}})
	if !checks[0].OK() {
		t.Fatalf("check failed: %v", checks[0].Err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
