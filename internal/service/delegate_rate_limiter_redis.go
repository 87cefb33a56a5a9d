package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// El script incrementa el contador de la sesion y el contador global en la
// misma ventana y devuelve 1 si ambos quedan dentro de sus topes. El tope
// global acota el gasto total en el colaborador de generacion aunque un
// atacante rote session_ids.
const redisDelegateAllowScript = `
local session = redis.call("INCR", KEYS[1])
if session == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local global = redis.call("INCR", KEYS[2])
if global == 1 then
  redis.call("EXPIRE", KEYS[2], ARGV[1])
end
if session > tonumber(ARGV[2]) or global > tonumber(ARGV[3]) then
  return 0
end
return 1
`

const (
	delegateSessionKeyPrefix = "delegate:rl:s:"
	delegateGlobalKeyPrefix  = "delegate:rl:g:"
)

// redisDelegateRateLimiter acota las invocaciones al delegado de generacion
// por sesion y en total dentro de ventanas fijas alineadas al reloj. Las
// claves llevan el numero de ventana ademas del EXPIRE, asi un contador
// huerfano nunca sangra hacia la ventana siguiente. Fail-open: si redis falla,
// la llamada se permite para no degradar la conversacion.
type redisDelegateRateLimiter struct {
	client    redisEvaler
	window    time.Duration
	max       int
	globalMax int
	now       func() time.Time
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisDelegateRateLimiter(client *redis.Client, window time.Duration, max, globalMax int) DelegateRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	if globalMax < max {
		globalMax = max * 20
	}
	return &redisDelegateRateLimiter{
		client:    client,
		window:    window,
		max:       max,
		globalMax: globalMax,
		now:       time.Now,
	}
}

func (l *redisDelegateRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int64(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	bucket := l.now().UTC().Unix() / seconds
	sessionKey := fmt.Sprintf("%s%d:%s", delegateSessionKeyPrefix, bucket, normalizedKey)
	globalKey := fmt.Sprintf("%s%d", delegateGlobalKeyPrefix, bucket)

	allowed, err := l.client.Eval(ctx, redisDelegateAllowScript,
		[]string{sessionKey, globalKey},
		seconds, l.max, l.globalMax,
	).Int()
	if err != nil {
		return true
	}
	return allowed == 1
}
