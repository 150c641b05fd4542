package postgres

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawsitive-care/inventory-api/pkg/config"
)

const (
	applicationName = "pawsitive-inventory"
	pingTimeout     = 5 * time.Second
	// DNS público para contenedores cuyo resolver solo devuelve AAAA.
	fallbackDNS = "8.8.8.8:53"
)

// NewPool abre el pool y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// buildPoolConfig arma la configuración sin abrir conexiones.
func buildPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.ConnConfig.DialFunc = dialPreferIPv4
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Un movimiento no espera indefinidamente por el candado de la fila: 55P03 -> 409.
	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	if cfg.LockTimeout > 0 {
		params["lock_timeout"] = strconv.FormatInt(cfg.LockTimeout.Milliseconds(), 10)
	}

	// NUMERIC -> shopspring/decimal (unit_price, totales de órdenes)
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// dialPreferIPv4 marca por IPv4 cuando el host tiene registro A; si no, dial normal.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	ip, err := lookupIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// lookupIPv4 prueba el resolver del sistema y luego fallbackDNS.
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s es IPv6", host)
		}
		return host, nil
	}
	fallback := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", fallbackDNS)
		},
	}
	var lastErr error
	for _, r := range []*net.Resolver{net.DefaultResolver, fallback} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			lastErr = err
			continue
		}
		if len(ips) > 0 {
			return ips[0].String(), nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%s sin registro A", host)
	}
	return "", lastErr
}
