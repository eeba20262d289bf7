package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	Environment      string
	FirebaseProject  string
	FirebaseApiKey   string
	CredentialsFile  string
	StorageBucket    string
	ChapaSecretKey   string
	ChapaCallbackURL string
	MessageCoinCost  int64
	CoinUnitPrice    int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		FirebaseProject:  getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:   getEnv("FIREBASE_API_KEY", ""),
		CredentialsFile:  getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		ChapaSecretKey:   getEnv("CHAPA_SECRET_KEY", ""),
		ChapaCallbackURL: getEnv("CHAPA_CALLBACK_URL", ""),
		MessageCoinCost:  getEnvAsInt64("MESSAGE_COIN_COST", 10),
		CoinUnitPrice:    getEnvAsInt64("COIN_UNIT_PRICE", 5), // ETB per coin
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
