package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Yassin6up/somoo-sub001/utils"
)

// In-memory per-IP fixed-window limiter with trusted-proxy support. Designed
// to be swapped for Redis when the service runs on more than one instance.

type timestamps []int64 // unix nanos

func nowUnix() int64 { return time.Now().UnixNano() }

func getEnvDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return time.Duration(v) * time.Second
		}
	}
	return def
}

type IPRateLimiter struct {
	window      time.Duration
	maxReq      int
	mu          sync.Mutex
	state       map[string]timestamps
	cleanupTick time.Duration
	trustedCIDR []string
}

func NewIPRateLimiter(maxReq int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		window:      window,
		maxReq:      maxReq,
		state:       make(map[string]timestamps),
		cleanupTick: getEnvDuration("RATE_CLEANUP_SECONDS", 60*time.Second),
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		l.trustedCIDR = strings.Split(v, ",")
	}
	go l.cleanupLoop()
	return l
}

// clientIPGeneric returns the client IP string. X-Forwarded-For / X-Real-IP
// are honored only when the remote addr is inside one of the trusted CIDRs
// or equals a trusted IP.
func clientIPGeneric(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, _ := net.SplitHostPort(r.RemoteAddr)
	remoteIP := net.ParseIP(remoteHost)
	trusted := false
	for _, cidr := range trustedCIDR {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil {
				if remoteIP != nil && ipnet.Contains(remoteIP) {
					trusted = true
					break
				}
			}
			continue
		}
		if ip := net.ParseIP(cidr); ip != nil && remoteIP != nil && ip.Equal(remoteIP) {
			trusted = true
			break
		}
	}
	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if len(parts) > 0 {
				return strings.TrimSpace(parts[0])
			}
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			return strings.TrimSpace(xr)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware applies per-IP limits and sets rate-limit headers.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPGeneric(r, l.trustedCIDR)
		now := nowUnix()
		cutoff := now - int64(l.window)

		l.mu.Lock()
		arr := l.state[ip]
		var filtered timestamps
		for _, ts := range arr {
			if ts >= cutoff {
				filtered = append(filtered, ts)
			}
		}
		filtered = append(filtered, now)
		l.state[ip] = filtered
		count := len(filtered)
		l.mu.Unlock()

		remaining := l.maxReq - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", l.maxReq))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > l.maxReq {
			retryAfter := 1
			oldest := filtered[0]
			for _, ts := range filtered {
				if ts < oldest {
					oldest = ts
				}
			}
			if ns := oldest + int64(l.window) - now; ns > 0 {
				retryAfter = int(ns / 1e9)
				if retryAfter < 1 {
					retryAfter = 1
				}
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
				Success: false,
				Code:    "rate_limited",
				Message: "عدد كبير من الطلبات، حاول مرة أخرى لاحقًا",
				Data:    map[string]interface{}{"retry_after_seconds": retryAfter},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) cleanupLoop() {
	tick := time.NewTicker(l.cleanupTick)
	defer tick.Stop()
	for range tick.C {
		l.mu.Lock()
		cutoff := nowUnix() - int64(l.window)
		for k, arr := range l.state {
			var filtered timestamps
			for _, ts := range arr {
				if ts >= cutoff {
					filtered = append(filtered, ts)
				}
			}
			if len(filtered) == 0 {
				delete(l.state, k)
			} else {
				l.state[k] = filtered
			}
		}
		l.mu.Unlock()
	}
}

// Account lockout tracker for failed logins. Redis-backed when available so
// lockouts survive restarts and apply across instances.
var (
	loginMu   sync.Mutex
	failedMap = make(map[string]int)
	lockMap   = make(map[string]int64) // key -> lockUntil unix nanos
)

func lockDuration(failures int) time.Duration {
	switch {
	case failures <= 3:
		return 0
	case failures == 4:
		return 1 * time.Minute
	case failures == 5:
		return 5 * time.Minute
	case failures == 6:
		return 15 * time.Minute
	default:
		return 30 * time.Minute
	}
}

func IsAccountLocked(userID uint) (bool, time.Duration) {
	if utils.RedisClient != nil {
		ttl, err := utils.RedisClient.TTL(context.Background(), fmt.Sprintf("login:lock:u:%d", userID)).Result()
		if err == nil && ttl > 0 {
			return true, ttl
		}
		return false, 0
	}
	loginMu.Lock()
	defer loginMu.Unlock()
	key := fmt.Sprintf("u:%d", userID)
	until := lockMap[key]
	if until == 0 {
		return false, 0
	}
	now := nowUnix()
	if until > now {
		return true, time.Duration(until - now)
	}
	delete(lockMap, key)
	failedMap[key] = 0
	return false, 0
}

func RecordFailedLogin(userID uint) {
	if utils.RedisClient != nil {
		ctx := context.Background()
		failKey := fmt.Sprintf("login:fail:u:%d", userID)
		failures, err := utils.RedisClient.Incr(ctx, failKey).Result()
		if err == nil {
			_ = utils.RedisClient.Expire(ctx, failKey, 30*time.Minute).Err()
			if d := lockDuration(int(failures)); d > 0 {
				_ = utils.RedisClient.Set(ctx, fmt.Sprintf("login:lock:u:%d", userID), "1", d).Err()
			}
			return
		}
	}
	loginMu.Lock()
	defer loginMu.Unlock()
	key := fmt.Sprintf("u:%d", userID)
	failedMap[key]++
	if d := lockDuration(failedMap[key]); d > 0 {
		lockMap[key] = nowUnix() + int64(d)
	}
}

func ResetFailedLogin(userID uint) {
	if utils.RedisClient != nil {
		_ = utils.RedisClient.Del(context.Background(),
			fmt.Sprintf("login:fail:u:%d", userID),
			fmt.Sprintf("login:lock:u:%d", userID)).Err()
		return
	}
	loginMu.Lock()
	defer loginMu.Unlock()
	key := fmt.Sprintf("u:%d", userID)
	delete(lockMap, key)
	failedMap[key] = 0
}
