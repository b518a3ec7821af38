package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis connection, used for OTPs and other
// short-lived keys.
var Client *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	log.Println("Connected to Redis")
}

func Close() {
	if Client != nil {
		Client.Close()
	}
}

// SetOTP stores a registration OTP for the given email with a TTL.
func SetOTP(ctx context.Context, email, otp string, ttl time.Duration) error {
	return Client.Set(ctx, "otp:"+email, otp, ttl).Err()
}

// GetOTP returns the stored OTP, or an empty string when none exists.
func GetOTP(ctx context.Context, email string) (string, error) {
	otp, err := Client.Get(ctx, "otp:"+email).Result()
	if err == redis.Nil {
		return "", nil
	}
	return otp, err
}

// DeleteOTP removes a consumed OTP.
func DeleteOTP(ctx context.Context, email string) error {
	return Client.Del(ctx, "otp:"+email).Err()
}

// SetPendingUser keeps a not-yet-verified registration payload around until
// the OTP is confirmed or the TTL runs out.
func SetPendingUser(ctx context.Context, email string, payload []byte, ttl time.Duration) error {
	return Client.Set(ctx, "pending_user:"+email, payload, ttl).Err()
}

func GetPendingUser(ctx context.Context, email string) ([]byte, error) {
	payload, err := Client.Get(ctx, "pending_user:"+email).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return payload, err
}

func DeletePendingUser(ctx context.Context, email string) error {
	return Client.Del(ctx, "pending_user:"+email).Err()
}
