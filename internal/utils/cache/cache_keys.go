package cache

import "fmt"

type EntityType string

const (
	EntityRate EntityType = "rate"
)

type KeyType string

const (
	KeyPair KeyType = "pair"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("btcledger:%s:%s:%v", entity, keyType, value)
}

// RateKey is the key under which the rate of a currency pair is cached.
func RateKey(base, quote string) string {
	return GenerateKey(EntityRate, KeyPair, base+"_"+quote)
}
