package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/model"
	"golang.org/x/time/rate"
)

// visitor holds a rate limiter and the last time it was used.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limits configures a RateLimiter. Rates are requests per minute.
type Limits struct {
	GlobalPerMinute float64
	GlobalBurst     int
	ParamPerMinute  float64
	ParamBurst      int
	// ParamKey is the query parameter limited per value, e.g. "location".
	ParamKey string
	// StaleAfter is how long an idle visitor is kept.
	StaleAfter time.Duration
	// TrustedProxies are the peers whose X-Forwarded-For header is believed.
	// Empty means the header is ignored.
	TrustedProxies []netip.Prefix
}

// LimitsFromConfig reads the limiter settings from config.
func LimitsFromConfig() Limits {
	globalRate, globalBurst := config.GetGlobalRateLimiterConfig()
	paramRate, paramBurst := config.GetParamRateLimiterConfig()
	return Limits{
		GlobalPerMinute: globalRate,
		GlobalBurst:     globalBurst,
		ParamPerMinute:  paramRate,
		ParamBurst:      paramBurst,
		ParamKey:        "location",
		StaleAfter:      config.GetRateLimiterCleanupTimeout(),
		TrustedProxies:  parseProxies(config.GetTrustedProxies()),
	}
}

// parseProxies accepts CIDR prefixes or bare addresses and skips anything else.
func parseProxies(entries []string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if p, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
			continue
		}
		config.GetLogger().Warnw("Ignoring invalid trusted proxy", "value", entry)
	}
	return prefixes
}

// RateLimiter enforces a per-IP limit and a per-IP, per-parameter-value limit.
type RateLimiter struct {
	limits Limits

	muGlobal sync.Mutex
	// key: ip
	global map[string]*visitor

	muParam sync.Mutex
	// key: ip -> param value
	param map[string]map[string]*visitor
}

func NewRateLimiter(limits Limits) *RateLimiter {
	return &RateLimiter{
		limits: limits,
		global: make(map[string]*visitor),
		param:  make(map[string]map[string]*visitor),
	}
}

func perMinute(n float64) rate.Limit {
	return rate.Limit(n / 60.0)
}

// globalLimiter returns the limiter for ip, creating one if it does not exist.
func (rl *RateLimiter) globalLimiter(ip string) *rate.Limiter {
	rl.muGlobal.Lock()
	defer rl.muGlobal.Unlock()
	v, exists := rl.global[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(perMinute(rl.limits.GlobalPerMinute), rl.limits.GlobalBurst)}
		rl.global[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// paramLimiter returns the limiter for ip and param, creating one if it does not exist.
func (rl *RateLimiter) paramLimiter(ip, param string) *rate.Limiter {
	rl.muParam.Lock()
	defer rl.muParam.Unlock()
	if _, ok := rl.param[ip]; !ok {
		rl.param[ip] = make(map[string]*visitor)
	}
	v, exists := rl.param[ip][param]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(perMinute(rl.limits.ParamPerMinute), rl.limits.ParamBurst)}
		rl.param[ip][param] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup removes visitors idle for longer than StaleAfter.
func (rl *RateLimiter) Cleanup() {
	rl.muGlobal.Lock()
	for ip, v := range rl.global {
		if time.Since(v.lastSeen) > rl.limits.StaleAfter {
			delete(rl.global, ip)
		}
	}
	rl.muGlobal.Unlock()

	rl.muParam.Lock()
	for ip, paramMap := range rl.param {
		for p, v := range paramMap {
			if time.Since(v.lastSeen) > rl.limits.StaleAfter {
				delete(paramMap, p)
			}
		}
		if len(paramMap) == 0 {
			delete(rl.param, ip)
		}
	}
	rl.muParam.Unlock()
}

// StartCleanup prunes stale visitors every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}

// Reset clears all visitor state. Used primarily for testing.
func (rl *RateLimiter) Reset() {
	rl.muGlobal.Lock()
	clear(rl.global)
	rl.muGlobal.Unlock()
	rl.muParam.Lock()
	clear(rl.param)
	rl.muParam.Unlock()
}

// visitors reports how many IPs are tracked by each limiter.
func (rl *RateLimiter) visitors() (global, param int) {
	rl.muGlobal.Lock()
	global = len(rl.global)
	rl.muGlobal.Unlock()
	rl.muParam.Lock()
	param = len(rl.param)
	rl.muParam.Unlock()
	return
}

func (rl *RateLimiter) trusted(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range rl.limits.TrustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the address a request is limited under. X-Forwarded-For is only
// read when the peer is a trusted proxy; the nearest untrusted hop wins.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr // fallback
	}
	if !rl.trusted(ip) {
		return ip
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !rl.trusted(hop) {
			return hop
		}
		ip = hop
	}
	return ip
}

func writeTooManyRequests(w http.ResponseWriter, errMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	resp := model.ErrorResponse(errMsg)
	resp.Message = message
	_ = json.NewEncoder(w).Encode(resp)
}

// Middleware enforces the global limit, then the per-parameter limit for requests
// carrying the parameter. Requests over either limit get a 429 with a JSON error.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		param := strings.TrimSpace(r.URL.Query().Get(rl.limits.ParamKey))
		if !rl.globalLimiter(ip).Allow() {
			config.GetLogger().Warnw("Rate limit exceeded", "ip", ip, "limit", "global")
			writeTooManyRequests(w,
				fmt.Sprintf("Rate limit exceeded: max %g requests per minute per user/IP", rl.limits.GlobalPerMinute),
				"Too Many Requests (global limit)")
			return
		}
		if param != "" && !rl.paramLimiter(ip, strings.ToLower(param)).Allow() {
			config.GetLogger().Warnw("Rate limit exceeded", "ip", ip, "limit", "param", "value", param)
			writeTooManyRequests(w,
				fmt.Sprintf("Rate limit exceeded: max %g requests per minute per unique %s per user/IP", rl.limits.ParamPerMinute, rl.limits.ParamKey),
				"Too Many Requests (per-param limit)")
			return
		}
		next.ServeHTTP(w, r)
	})
}
