package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string

	// Remote collaborator endpoints. Empty means the in-process stand-in.
	InventoryBaseURL  string
	PaymentBaseURL    string
	AggregatorBaseURL string

	// Local stand-in knobs.
	DefaultStock       int
	PaymentSuccessRate float64
	Catalog            map[string]string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists

	return Config{
		ServiceName: getenv("SERVICE_NAME", "orderservice"),
		Env:         getenv("ENV", "dev"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		InventoryBaseURL:  getenv("INVENTORY_BASE_URL", ""),
		PaymentBaseURL:    getenv("PAYMENT_BASE_URL", ""),
		AggregatorBaseURL: getenv("AGGREGATOR_BASE_URL", ""),

		DefaultStock:       getenvInt("DEFAULT_STOCK", 100),
		PaymentSuccessRate: getenvFloat("PAYMENT_SUCCESS_RATE", 0.7),
		Catalog:            parsePairs(getenv("PRODUCT_CATALOG", "")),

		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "order-events"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parsePairs parses "id=name,id=name" catalog seeds.
func parsePairs(v string) map[string]string {
	out := make(map[string]string)
	for _, pair := range splitCSV(v) {
		if id, name, ok := strings.Cut(pair, "="); ok {
			out[strings.TrimSpace(id)] = strings.TrimSpace(name)
		}
	}
	return out
}
