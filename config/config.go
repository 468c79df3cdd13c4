package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig is optional: when URL is empty the catalog is served from
// the embedded fixtures instead of Postgres.
type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicOrders   string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	PrometheusPort string
}

// CheckoutConfig carries the storefront pricing rules and the messaging
// channel the order summary is handed off to.
type CheckoutConfig struct {
	ShippingFlatCents int64
	TaxRatePercent    int64
	WhatsAppNumber    string
	OrderRefPrefix    string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	shipping, _ := strconv.ParseInt(getEnv("CHECKOUT_SHIPPING_CENTS", "999"), 10, 64)
	taxRate, _ := strconv.ParseInt(getEnv("CHECKOUT_TAX_RATE_PERCENT", "8"), 10, 64)

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicOrders:   getEnv("KAFKA_TOPIC_ORDER_EVENTS", "storefront-order-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "storefront-service-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			PrometheusPort: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Checkout: CheckoutConfig{
			ShippingFlatCents: shipping,
			TaxRatePercent:    taxRate,
			WhatsAppNumber:    getEnv("CHECKOUT_WHATSAPP_NUMBER", "15551234567"),
			OrderRefPrefix:    getEnv("CHECKOUT_ORDER_REF_PREFIX", "TA"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
