// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-redis-address redis address host:port
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key rate limit key hashing secret
//	-public-base-url origin of public profile pages
//	-cors-origins comma separated allowed origins
//	-rate-limit requests per window on public endpoints
//	-rate-limit-window rate limit window (e.g., "1m")
//	-analytics-days default analytics window in days
//	-analytics-timezone IANA timezone of analytics day buckets
//	-reconcile-interval usage reconcile interval
//	-server-url API base URL used by the client
//	-email / -password client credentials
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("tapcard", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, redisAddress string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var hashKey, publicBaseURL, corsOrigins, trustedProxies string
	var rateLimit int
	var rateLimitWindow time.Duration
	var analyticsDays int
	var analyticsTimezone string
	var reconcileInterval time.Duration
	var serverURL, email, password string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Rate limit key hashing secret")
	fs.StringVar(&publicBaseURL, "public-base-url", "", "Origin of public profile pages")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins")
	fs.StringVar(&trustedProxies, "trusted-proxies", "", "Comma separated trusted proxy IPs or CIDRs")
	fs.IntVar(&rateLimit, "rate-limit", 0, "Requests per window on public endpoints")
	fs.DurationVar(&rateLimitWindow, "rate-limit-window", 0, "Rate limit window (e.g., 1m)")
	fs.IntVar(&analyticsDays, "analytics-days", 0, "Default analytics window in days")
	fs.StringVar(&analyticsTimezone, "analytics-timezone", "", "Timezone of analytics day buckets")
	fs.DurationVar(&reconcileInterval, "reconcile-interval", 0, "Usage reconcile interval")
	fs.StringVar(&serverURL, "server-url", "", "API base URL used by the client")
	fs.StringVar(&email, "email", "", "Client login email")
	fs.StringVar(&password, "password", "", "Client login password")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
			PublicBaseURL: publicBaseURL,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Redis: Redis{Address: redisAddress},
		},
		Server: Server{
			HTTPAddress:        serverAddress.String(),
			RequestTimeout:     requestTimeout,
			CORSAllowedOrigins: splitList(corsOrigins),
			TrustedProxies:     splitList(trustedProxies),
			RateLimit: RateLimit{
				Requests: rateLimit,
				Window:   rateLimitWindow,
			},
		},
		Analytics: Analytics{
			DefaultWindowDays: analyticsDays,
			Timezone:          analyticsTimezone,
		},
		Adapter: Adapter{
			HTTPAddress: serverURL,
			Email:       email,
			Password:    password,
		},
		Workers:      Workers{ReconcileInterval: reconcileInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
