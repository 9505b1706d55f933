package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client envuelve la conexión Redis usada como caché de respuestas.
type Client struct {
	rdb *redis.Client
}

// New crea el cliente Redis. La caché es opcional: si el ping falla se
// devuelve nil y el servicio sigue sin caché.
func New(ctx context.Context, addr, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] No disponible en %s, se continúa sin caché: %v", addr, err)
		return nil
	}

	log.Printf("[REDIS] Conectado a %s (DB %d)", addr, db)
	return &Client{rdb: rdb}
}

// GetJSON busca una clave y decodifica el JSON almacenado en v.
// Devuelve false (sin error) cuando la clave no existe.
func (c *Client) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa v y lo guarda con el TTL indicado.
func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

// Ping reporta si la conexión sigue viva.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
