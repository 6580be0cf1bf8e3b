package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/journey/cart/internal/otel"
	"github.com/Alturino/journey/cart/pkg/journey"
	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
	inOtel "github.com/Alturino/journey/internal/otel"
)

const maxUpdateAttempts = 5

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) RedisStore {
	return RedisStore{client: client, ttl: ttl}
}

func decodeCart(raw []byte, err error) (*journey.Cart, error) {
	cart := journey.NewCart()
	if errors.Is(err, redis.Nil) {
		return cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading cart with error=%w", err)
	}
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("failed decoding cart with error=%w", err)
	}
	return cart, nil
}

func (s RedisStore) Load(c context.Context, sessionID uuid.UUID) (*journey.Cart, error) {
	c, span := otel.Tracer.Start(c, "RedisStore Load")
	defer span.End()

	key := KEY_CARTS + sessionID.String()
	cart, err := decodeCart(s.client.Get(c, key).Bytes())
	if err != nil {
		inOtel.RecordError(err, span)
		return nil, err
	}
	return cart, nil
}

// Update retries when another writer changes the session between read and
// write, and gives up with ErrConcurrentUpdate after a few attempts.
func (s RedisStore) Update(
	c context.Context,
	sessionID uuid.UUID,
	fn func(*journey.Cart) error,
) (*journey.Cart, error) {
	c, span := otel.Tracer.Start(c, "RedisStore Update")
	defer span.End()

	key := KEY_CARTS + sessionID.String()
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisStore Update").
		Str(constants.KEY_CACHE_KEY, key).
		Logger()

	var cart *journey.Cart
	txf := func(tx *redis.Tx) error {
		current, err := decodeCart(tx.Get(c, key).Bytes())
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		payload, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("failed encoding cart with error=%w", err)
		}
		_, err = tx.TxPipelined(c, func(pipe redis.Pipeliner) error {
			pipe.Set(c, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		cart = current
		return nil
	}

	for attempt := range maxUpdateAttempts {
		err := s.client.Watch(c, txf, key)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			inOtel.RecordError(err, span)
			return nil, err
		}
		logger.Debug().Int("attempt", attempt+1).Msg("cart changed while updating, retrying")
	}

	err := fmt.Errorf("failed updating cart after %d attempts with error=%w", maxUpdateAttempts, inErrors.ErrConcurrentUpdate)
	inOtel.RecordError(err, span)
	logger.Warn().Err(err).Msg(err.Error())
	return nil, err
}

func (s RedisStore) Delete(c context.Context, sessionID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "RedisStore Delete")
	defer span.End()

	if err := s.client.Del(c, KEY_CARTS+sessionID.String()).Err(); err != nil {
		err = fmt.Errorf("failed deleting cart with error=%w", err)
		inOtel.RecordError(err, span)
		return err
	}
	return nil
}
