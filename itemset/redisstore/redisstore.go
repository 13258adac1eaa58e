/*
Package redisstore provides an itemset.Store backed by a redis DB, so
that mined pattern tables can be shared across processes.
*/
package redisstore

import (
	"context"
	"fmt"

	"gopkg.in/redis.v5"

	"github.com/basketlab/fpgrowth/itemset"
)

/*
PatternEncodeDecoder is an interface for objects that allow encoding
patterns into slices of bytes and decoding them back to patterns.
*/
type PatternEncodeDecoder interface {

	//Encode receives a *itemset.Pattern
	//and returns a slice of bytes with the pattern encoded
	//or an error if the encoding could not be performed for
	//some reason.
	Encode(*itemset.Pattern) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *itemset.Pattern decoded from the slice
	//of bytes or an error if the decoding could not be
	//performed for some reason.
	Decode([]byte) (*itemset.Pattern, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	pencdec PatternEncodeDecoder
}

/*
New builds an itemset.Store backed by a redis DB. The given prefix
namespaces every key the store uses: each pattern is kept under
prefix:pattern:key, and prefix:keys is a set with every stored
pattern key.
*/
func New(rc *redis.Client, prefix string, pencdec PatternEncodeDecoder) itemset.Store {
	return &redisStore{rc, prefix, pencdec}
}

func (rs *redisStore) Put(ctx context.Context, p *itemset.Pattern) error {
	data, err := rs.pencdec.Encode(p)
	if err != nil {
		return fmt.Errorf("storing pattern {%s}: encoding pattern: %v", p, err)
	}
	key := p.Key()
	_, err = rs.rc.Set(rs.patternKey(key), data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing pattern {%s} in redis: %v", p, err)
	}
	_, err = rs.rc.SAdd(rs.keysKey(), key).Result()
	if err != nil {
		return fmt.Errorf("registering pattern {%s} in redis key set: %v", p, err)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, items []string) (*itemset.Pattern, error) {
	key := itemset.Key(items)
	data, err := rs.rc.Get(rs.patternKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving pattern %q: %v", key, err)
	}
	p, err := rs.pencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving pattern %q: decoding %q: %v", key, data, err)
	}
	return p, nil
}

func (rs *redisStore) Read(ctx context.Context) (<-chan *itemset.Pattern, <-chan error) {
	patterns := make(chan *itemset.Pattern)
	errs := make(chan error, 1)
	go func() {
		keys, err := rs.rc.SMembers(rs.keysKey()).Result()
		if err != nil {
			err = fmt.Errorf("listing pattern keys: %v", err)
		}
		for _, key := range keys {
			if err != nil {
				break
			}
			var data string
			data, err = rs.rc.Get(rs.patternKey(key)).Result()
			if err == redis.Nil {
				err = nil
				continue
			}
			if err != nil {
				err = fmt.Errorf("retrieving pattern %q: %v", key, err)
				break
			}
			var p *itemset.Pattern
			p, err = rs.pencdec.Decode([]byte(data))
			if err != nil {
				err = fmt.Errorf("retrieving pattern %q: decoding %q: %v", key, data, err)
				break
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case patterns <- p:
			}
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(patterns)
	}()
	return patterns, errs
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) patternKey(key string) string {
	return fmt.Sprintf("%s:pattern:%s", rs.prefix, key)
}

func (rs *redisStore) keysKey() string {
	return fmt.Sprintf("%s:keys", rs.prefix)
}
